package order

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (order_number, user_id, total_mrp, coupon_discount, platform_fee, shipping_fee, grand_total, status, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING order_id
	`
	insertItemQuery = `
		INSERT INTO order_items (order_id, product_id, variant_id, name, image, unit_price, unit_mrp, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	insertPaymentQuery = `
		INSERT INTO payments (order_id, method, status, amount)
		VALUES ($1, $2, $3, $4)
	`
	consumeCouponQuery = `
		UPDATE applied_coupons SET state = 'CONSUMED', order_id = $1
		WHERE user_id = $2 AND state = 'PENDING'
	`

	listOrdersQuery = `
		SELECT order_id, order_number, user_id, total_mrp, coupon_discount, platform_fee, shipping_fee, grand_total, status, payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id DESC
	`
	listItemsQuery = `
		SELECT id, order_id, product_id, variant_id, name, image, unit_price, unit_mrp, quantity
		FROM order_items
		WHERE order_id = ANY($1::int[])
		ORDER BY id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// translateFK turns a Postgres foreign-key violation into ErrBadReference
// so the handler can name the offending field in a 400.
func translateFK(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return fmt.Errorf("%w: %s", ErrBadReference, field)
	}
	return err
}

// Place writes the order, its items, and the payment row, consumes the
// user's pending coupon, and empties the cart — all in one transaction.
func (r *PostgresRepository) Place(ord Order, items []Item, pay Payment) (*Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(insertOrderQuery,
		ord.Number, ord.UserID, ord.TotalMRP, ord.CouponDiscount, ord.PlatformFee,
		ord.ShippingFee, ord.GrandTotal, ord.Status, ord.PaymentMethod, ord.CreatedAt).Scan(&ord.ID)
	if err != nil {
		tx.Rollback()
		return nil, translateFK(err)
	}

	for i := range items {
		items[i].OrderID = ord.ID
		var variant sql.NullInt64
		if items[i].VariantID != nil {
			variant = sql.NullInt64{Int64: int64(*items[i].VariantID), Valid: true}
		}
		if _, err := tx.Exec(insertItemQuery,
			ord.ID, items[i].ProductID, variant, items[i].Name, items[i].Image,
			items[i].UnitPrice, items[i].UnitMRP, items[i].Quantity); err != nil {
			tx.Rollback()
			return nil, translateFK(err)
		}
	}

	if _, err := tx.Exec(insertPaymentQuery, ord.ID, pay.Method, pay.Status, pay.Amount); err != nil {
		tx.Rollback()
		return nil, translateFK(err)
	}

	if _, err := tx.Exec(consumeCouponQuery, ord.ID, ord.UserID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, ord.UserID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ord.Items = items
	return &ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.TotalMRP, &o.CouponDiscount,
			&o.PlatformFee, &o.ShippingFee, &o.GrandTotal, &o.Status, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(listItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byOrder := make(map[int][]Item)
	for itemRows.Next() {
		var it Item
		var variant sql.NullInt64
		var image sql.NullString
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &variant, &it.Name, &image,
			&it.UnitPrice, &it.UnitMRP, &it.Quantity); err != nil {
			return nil, err
		}
		if variant.Valid {
			v := int(variant.Int64)
			it.VariantID = &v
		}
		if image.Valid {
			it.Image = &image.String
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}
