// cmd/seed/main.go
//
// Creates the catalog schema and upserts the demo rows. Safe to run
// repeatedly.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"m3dshop/internal/infra/config"
	"m3dshop/internal/infra/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS brands (
    id      BIGSERIAL PRIMARY KEY,
    name    TEXT NOT NULL,
    name_en TEXT
);

CREATE TABLE IF NOT EXISTS products (
    id             BIGSERIAL PRIMARY KEY,
    slug           TEXT NOT NULL UNIQUE,
    name           TEXT NOT NULL,
    name_en        TEXT,
    description    TEXT,
    description_en TEXT,
    price          BIGINT NOT NULL,
    currency       TEXT NOT NULL DEFAULT 'usd',
    brand_id       BIGINT REFERENCES brands(id),
    url            TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type brandRow struct {
	id   int64
	name string
}

type productRow struct {
	id          int64
	slug        string
	name        string
	description string
	price       int64
	currency    string
	brandID     int64
	url         string
}

const loremDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

var brands = []brandRow{
	{1, "قوالب"},
	{2, "إضافات"},
}

var products = []productRow{
	{1, "yallashoot", "قالب يلاشوت YallaShoot", loremDescription, 5000, "usd", 1, "https://example.com/demos/shootkoora"},
	{2, "M0dev", "تصميم وتطوير المواقع الإلكترونية", loremDescription, 2999, "usd", 1, "https://example.com/demos/m0news"},
	{3, "maxkoor", "قالب ماكس كورة MaxKoora", loremDescription, 45000, "usd", 1, "https://example.com/demos/M0wiki"},
	{4, "AlphaFlash", "قالب ألفا فلاش AlphaFlash", loremDescription, 1, "usd", 1, "https://example.com/demos/maxkoora"},
	{5, "M0sport", "السحب التلقائي لجدول المباريات M0SportAPI", loremDescription, 50000, "usd", 1, "https://example.com/demos/shootkooraV2"},
	{6, "shootkoora", "قالب شوت كورة ShootKoora", loremDescription, 30000, "usd", 2, "https://example.com/demos/M0sportAPI"},
	{7, "M0plyr", "M0plyr مشغل ملفات البث المباشر", loremDescription, 45000, "usd", 1, "https://example.com/demos/shootkooraV3"},
}

func main() {
	cfg := config.Load()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Printf("[seed] FATAL: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, db.Client); err != nil {
		log.Printf("[seed] FATAL: %v", err)
		os.Exit(1)
	}
	log.Printf("[seed] done: %d brands, %d products", len(brands), len(products))
}

func run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}

	for _, b := range brands {
		if _, err := db.ExecContext(ctx, `
INSERT INTO brands (id, name)
VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING`, b.id, b.name); err != nil {
			return err
		}
	}

	for _, p := range products {
		if _, err := db.ExecContext(ctx, `
INSERT INTO products (id, slug, name, description, price, currency, brand_id, url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`,
			p.id, p.slug, p.name, p.description, p.price, p.currency, p.brandID, p.url); err != nil {
			return err
		}
	}

	// Keep the sequences ahead of the fixed-id rows.
	if _, err := db.ExecContext(ctx, `SELECT setval('brands_id_seq', (SELECT COALESCE(MAX(id), 1) FROM brands))`); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `SELECT setval('products_id_seq', (SELECT COALESCE(MAX(id), 1) FROM products))`); err != nil {
		return err
	}

	// English names default to the Arabic rows until translated.
	if _, err := db.ExecContext(ctx, `UPDATE products SET name_en = name WHERE name_en IS NULL`); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `UPDATE brands SET name_en = name WHERE name_en IS NULL`); err != nil {
		return err
	}
	return nil
}
