package category

import "database/sql"

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every category row ordered by id.
// If the table is not available the function returns an empty slice (caller-friendly).
func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, category_name, slug, parent_id FROM categories ORDER BY category_id`)
	if err != nil {
		return []Category{}, nil
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			c      Category
			parent sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &parent); err != nil {
			continue
		}
		if parent.Valid {
			v := int(parent.Int64)
			c.ParentID = &v
		}
		out = append(out, c)
	}
	return out, nil
}
