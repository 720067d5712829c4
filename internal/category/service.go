package category

import "errors"

var ErrNotFound = errors.New("category not found")

// Service builds hierarchical views over the flat category rows.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// PathFor walks the parent chain of a category and returns its URL path,
// e.g. /men/shoes/sneakers. Broken parent links terminate the walk at the
// last resolvable ancestor; cycles are cut instead of looping forever.
func (s *Service) PathFor(id int) (string, error) {
	cats, err := s.repo.List()
	if err != nil {
		return "", err
	}
	byID := make(map[int]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	if _, ok := byID[id]; !ok {
		return "", ErrNotFound
	}
	return pathFor(byID, id), nil
}

func pathFor(byID map[int]Category, id int) string {
	segments := make([]string, 0, 4)
	seen := make(map[int]bool)
	cur, ok := byID[id]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		segments = append(segments, cur.Slug)
		if cur.ParentID == nil {
			break
		}
		cur, ok = byID[*cur.ParentID]
	}

	// reverse into root-first order
	path := ""
	for i := len(segments) - 1; i >= 0; i-- {
		path += "/" + segments[i]
	}
	return path
}

// Tree assembles the full category tree with resolved paths. Children keep
// the repository's ordering.
func (s *Service) Tree() ([]*Node, error) {
	cats, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	byID := make(map[int]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	nodes := make(map[int]*Node, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &Node{Category: c, Path: pathFor(byID, c.ID)}
	}

	roots := make([]*Node, 0)
	for _, c := range cats {
		n := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != n {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		// roots and orphans (deleted parents) both surface at the top level
		roots = append(roots, n)
	}
	return roots, nil
}
