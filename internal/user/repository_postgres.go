package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (*User, error) {
	var (
		u     User
		phone sql.NullString
	)
	err := r.db.QueryRow(
		`SELECT user_id, email, first_name, last_name, phone, created_at, updated_at FROM users WHERE user_id = $1`, id).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &phone, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	return &u, nil
}
