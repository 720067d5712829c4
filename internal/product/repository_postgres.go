package product

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `product_id, product_name, slug, brand, category_id, price, mrp, image, color, size, sla_days, delivery_charge`

	listByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var (
		p        Product
		brand    sql.NullString
		category sql.NullInt64
		image    sql.NullString
		color    sql.NullString
		size     sql.NullString
		sla      sql.NullInt64
		charge   decimal.NullDecimal
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &brand, &category, &p.Price, &p.MRP, &image, &color, &size, &sla, &charge); err != nil {
		return nil, err
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if category.Valid {
		v := int(category.Int64)
		p.CategoryID = &v
	}
	if image.Valid {
		p.Image = &image.String
	}
	if color.Valid {
		p.Color = &color.String
	}
	if size.Valid {
		p.Size = &size.String
	}
	if sla.Valid {
		v := int(sla.Int64)
		p.SLADays = &v
	}
	if charge.Valid {
		p.DeliveryCharge = &charge.Decimal
	}
	return &p, nil
}

func (r *PostgresRepository) GetByID(id int) (*Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetVariant(id int) (*Variant, error) {
	var (
		v           Variant
		price, mrp  decimal.NullDecimal
		image       sql.NullString
		color, size sql.NullString
	)
	err := r.db.QueryRow(
		`SELECT variant_id, product_id, price, mrp, image, color, size FROM product_variants WHERE variant_id = $1`, id).
		Scan(&v.ID, &v.ProductID, &price, &mrp, &image, &color, &size)
	if err == sql.ErrNoRows {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	if price.Valid {
		v.Price = &price.Decimal
	}
	if mrp.Valid {
		v.MRP = &mrp.Decimal
	}
	if image.Valid {
		v.Image = &image.String
	}
	if color.Valid {
		v.Color = &color.String
	}
	if size.Valid {
		v.Size = &size.String
	}
	return &v, nil
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List(categoryID *int, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 100
	}

	var (
		rows *sql.Rows
		err  error
	)
	if categoryID != nil {
		rows, err = r.db.Query(`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY product_id LIMIT $2`, *categoryID, limit)
	} else {
		rows, err = r.db.Query(`SELECT `+productColumns+` FROM products ORDER BY product_id LIMIT $1`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
