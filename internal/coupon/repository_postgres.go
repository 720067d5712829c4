package coupon

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	couponColumns = `coupon_id, code, price_type, value, min_order_amount, from_date, to_date, status`

	getPendingQuery = `
		SELECT a.id, a.user_id, a.state, a.order_id, a.applied_at,
		       c.coupon_id, c.code, c.price_type, c.value, c.min_order_amount, c.from_date, c.to_date, c.status
		FROM applied_coupons a
		JOIN coupons c ON c.coupon_id = a.coupon_id
		WHERE a.user_id = $1 AND a.state = 'PENDING'
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCoupon(row interface{ Scan(...any) error }) (*Coupon, error) {
	var c Coupon
	var from, to sql.NullTime
	if err := row.Scan(&c.ID, &c.Code, &c.PriceType, &c.Value, &c.MinOrderAmount, &from, &to, &c.Status); err != nil {
		return nil, err
	}
	if from.Valid {
		t := from.Time
		c.FromDate = &t
	}
	if to.Valid {
		t := to.Time
		c.ToDate = &t
	}
	return &c, nil
}

func (r *PostgresRepository) FindByCode(code string) (*Coupon, error) {
	row := r.db.QueryRow(`SELECT `+couponColumns+` FROM coupons WHERE lower(code) = lower($1)`, code)
	c, err := scanCoupon(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) ListActive() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT ` + couponColumns + ` FROM coupons WHERE status ORDER BY coupon_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetPending(userID int) (*Applied, error) {
	var a Applied
	var orderID sql.NullInt64
	var from, to sql.NullTime
	err := r.db.QueryRow(getPendingQuery, userID).Scan(
		&a.ID, &a.UserID, &a.State, &orderID, &a.AppliedAt,
		&a.Coupon.ID, &a.Coupon.Code, &a.Coupon.PriceType, &a.Coupon.Value,
		&a.Coupon.MinOrderAmount, &from, &to, &a.Coupon.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNoPending
	}
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		v := int(orderID.Int64)
		a.OrderID = &v
	}
	if from.Valid {
		t := from.Time
		a.Coupon.FromDate = &t
	}
	if to.Valid {
		t := to.Time
		a.Coupon.ToDate = &t
	}
	return &a, nil
}

// SavePending replaces the user's pending row. Applying a new coupon while
// one is already attached swaps it out.
func (r *PostgresRepository) SavePending(userID int, couponID int, appliedAt string) (*Applied, error) {
	if appliedAt == "" {
		appliedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := r.db.Exec(`DELETE FROM applied_coupons WHERE user_id = $1 AND state = 'PENDING'`, userID); err != nil {
		return nil, err
	}
	if _, err := r.db.Exec(
		`INSERT INTO applied_coupons (user_id, coupon_id, state, applied_at) VALUES ($1, $2, 'PENDING', $3)`,
		userID, couponID, appliedAt); err != nil {
		return nil, err
	}
	return r.GetPending(userID)
}

func (r *PostgresRepository) DeletePending(userID int) error {
	res, err := r.db.Exec(`DELETE FROM applied_coupons WHERE user_id = $1 AND state = 'PENDING'`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoPending
	}
	return nil
}
