package wishlist

import (
	"database/sql"
	"time"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listQuery = `
SELECT product_id FROM wishlists WHERE user_id = $1 ORDER BY created_at, product_id`

func (r *PostgresRepository) Add(userID int, productID int) ([]int, error) {
	res, err := r.db.Exec(`
		INSERT INTO wishlists (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, time.Now(),
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrAlreadyListed
	}
	return r.List(userID)
}

func (r *PostgresRepository) Remove(userID int, productID int) ([]int, error) {
	res, err := r.db.Exec(`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotListed
	}
	return r.List(userID)
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	rows, err := r.db.Query(listQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
