package cart

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	lineColumns = `cart_item_id, user_id, product_id, variant_id, quantity`

	upsertQuery = `
		UPDATE cart_items
		SET quantity = quantity + $4, updated_at = $5
		WHERE user_id = $1 AND product_id = $2 AND variant_id IS NOT DISTINCT FROM $3
		RETURNING ` + lineColumns + `
	`
	insertQuery = `
		INSERT INTO cart_items (user_id, product_id, variant_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + lineColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanLine(row interface{ Scan(...any) error }) (*Line, error) {
	var ln Line
	var variant sql.NullInt64
	if err := row.Scan(&ln.ID, &ln.UserID, &ln.ProductID, &variant, &ln.Quantity); err != nil {
		return nil, err
	}
	if variant.Valid {
		v := int(variant.Int64)
		ln.VariantID = &v
	}
	return &ln, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Line, error) {
	rows, err := r.db.Query(`SELECT `+lineColumns+` FROM cart_items WHERE user_id = $1 ORDER BY cart_item_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		ln, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ln)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(lineID int) (*Line, error) {
	row := r.db.QueryRow(`SELECT `+lineColumns+` FROM cart_items WHERE cart_item_id = $1`, lineID)
	ln, err := scanLine(row)
	if err == sql.ErrNoRows {
		return nil, ErrLineNotFound
	}
	return ln, err
}

func (r *PostgresRepository) Upsert(userID int, productID int, variantID *int, qty int) (*Line, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	var variant sql.NullInt64
	if variantID != nil {
		variant = sql.NullInt64{Int64: int64(*variantID), Valid: true}
	}

	row := r.db.QueryRow(upsertQuery, userID, productID, variant, qty, now)
	ln, err := scanLine(row)
	if err == nil {
		return ln, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	row = r.db.QueryRow(insertQuery, userID, productID, variant, qty, now)
	return scanLine(row)
}

func (r *PostgresRepository) SetQuantity(lineID int, qty int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $2, updated_at = $3 WHERE cart_item_id = $1`, lineID, qty, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(lineID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_item_id = $1`, lineID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByVariant(userID int, variantID int) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND variant_id = $2`, userID, variantID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear deletes the user's cart lines and pending applied coupon as one
// transaction, so a failure leaves both intact.
func (r *PostgresRepository) Clear(userID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM applied_coupons WHERE user_id = $1 AND state = 'PENDING'`, userID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
