package category

// Category is one node of the catalog tree. A nil ParentID marks a root.
type Category struct {
	ID       int    `json:"categoryID"`
	Name     string `json:"categoryName"`
	Slug     string `json:"slug"`
	ParentID *int   `json:"parentID,omitempty"`
}

// Node is a category with its resolved URL path and children, as returned
// by the tree endpoint.
type Node struct {
	Category
	Path     string  `json:"path"`
	Children []*Node `json:"children,omitempty"`
}
