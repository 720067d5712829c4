package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/velora-shop/velora-backend/internal/cart"
	"github.com/velora-shop/velora-backend/internal/category"
	"github.com/velora-shop/velora-backend/internal/config"
	"github.com/velora-shop/velora-backend/internal/coupon"
	"github.com/velora-shop/velora-backend/internal/order"
	"github.com/velora-shop/velora-backend/internal/product"
	"github.com/velora-shop/velora-backend/internal/user"
	"github.com/velora-shop/velora-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db)

	// shared read-side services first; cart and wishlist enrich through them
	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	couponRepo := coupon.NewPostgresRepository(db)
	couponService := coupon.NewService(couponRepo)
	couponHandler := coupon.NewHandler(couponService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService, couponRepo, cart.Config{
		Delivery:    cfg.Delivery,
		PlatformFee: cfg.PlatformFee,
		Calendar:    cfg.Calendar,
	})
	cartHandler := cart.NewHandler(cartService)

	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), cartService))

	userHandler := user.NewHandler(user.NewPostgresRepository(db))

	wishlistService := wishlist.NewService(wishlist.NewPostgresRepository(db), productService)
	wishlistHandler := wishlist.NewHandler(wishlistService)

	// public routes go in before the JWT gate
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)

	app.Use(checkMiddleware)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables the app reads and writes. Idempotent, so
// a fresh database comes up without a separate migration step.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			category_name TEXT NOT NULL,
			slug TEXT NOT NULL,
			parent_id INT REFERENCES categories (category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			slug TEXT NOT NULL,
			brand TEXT,
			category_id INT REFERENCES categories (category_id),
			price NUMERIC NOT NULL,
			mrp NUMERIC NOT NULL,
			image TEXT,
			color TEXT,
			size TEXT,
			sla_days INT,
			delivery_charge NUMERIC
		)`,
		`CREATE TABLE IF NOT EXISTS product_variants (
			variant_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products (product_id),
			price NUMERIC,
			mrp NUMERIC,
			image TEXT,
			color TEXT,
			size TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			cart_item_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users (user_id),
			product_id INT NOT NULL REFERENCES products (product_id),
			variant_id INT REFERENCES product_variants (variant_id),
			quantity INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			coupon_id SERIAL PRIMARY KEY,
			code TEXT UNIQUE NOT NULL,
			price_type TEXT NOT NULL,
			value NUMERIC NOT NULL,
			min_order_amount NUMERIC NOT NULL DEFAULT 0,
			from_date TIMESTAMPTZ,
			to_date TIMESTAMPTZ,
			status BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS applied_coupons (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users (user_id),
			coupon_id INT NOT NULL REFERENCES coupons (coupon_id),
			state TEXT NOT NULL DEFAULT 'PENDING',
			order_id INT,
			applied_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_number TEXT UNIQUE NOT NULL,
			user_id INT NOT NULL REFERENCES users (user_id),
			total_mrp NUMERIC NOT NULL,
			coupon_discount NUMERIC NOT NULL DEFAULT 0,
			platform_fee NUMERIC NOT NULL DEFAULT 0,
			shipping_fee NUMERIC NOT NULL DEFAULT 0,
			grand_total NUMERIC NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders (order_id),
			product_id INT NOT NULL REFERENCES products (product_id),
			variant_id INT REFERENCES product_variants (variant_id),
			name TEXT NOT NULL,
			image TEXT,
			unit_price NUMERIC NOT NULL,
			unit_mrp NUMERIC NOT NULL,
			quantity INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			payment_id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders (order_id),
			method TEXT NOT NULL,
			status TEXT NOT NULL,
			amount NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS wishlists (
			user_id INT NOT NULL REFERENCES users (user_id),
			product_id INT NOT NULL REFERENCES products (product_id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, product_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
