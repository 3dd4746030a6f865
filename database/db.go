package database

import (
	"context"

	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/jmoiron/sqlx"
)

// Schéma BikeStore minimal servi par la source PostgreSQL
// Les colonnes list_price gardent leur nom d'origine dans les deux tables:
// la désambiguïsation est faite au chargement, pas dans la base.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS categories (
	category_id   BIGINT PRIMARY KEY,
	category_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS staffs (
	staff_id   BIGINT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	product_id   BIGINT PRIMARY KEY,
	product_name TEXT NOT NULL,
	category_id  BIGINT NOT NULL,
	model_year   INTEGER NOT NULL,
	list_price   NUMERIC(12, 2) NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	order_id    BIGINT PRIMARY KEY,
	customer_id BIGINT,
	staff_id    BIGINT,
	store_id    BIGINT,
	order_date  DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id   BIGINT NOT NULL,
	item_id    BIGINT NOT NULL,
	product_id BIGINT NOT NULL,
	quantity   INTEGER NOT NULL,
	list_price NUMERIC(12, 2) NOT NULL,
	discount   NUMERIC(4, 2) NOT NULL,
	PRIMARY KEY (order_id, item_id)
);
`

// Open ouvre la connexion PostgreSQL avec la configuration du pool
func Open(ctx context.Context, cfg sharedinfra.PostgresConfig) (*sqlx.DB, error) {
	return sharedinfra.OpenPostgres(ctx, cfg)
}

// CreateSchema crée les cinq tables si elles n'existent pas
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
