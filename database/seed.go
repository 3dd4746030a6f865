package database

import (
	"context"
	"fmt"

	datasetdomain "bikestore/internal/dataset/domain"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SeedCounts nombre de lignes insérées par table
type SeedCounts map[string]int

// SeedDatabase remplace le contenu des cinq tables par le dataset
// Tout est fait dans une seule transaction: en cas d'erreur la base reste
// dans son état précédent.
func SeedDatabase(ctx context.Context, db *sqlx.DB, ds *datasetdomain.Dataset, logger *zap.Logger) (SeedCounts, error) {
	if err := CreateSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	counts := SeedCounts{}
	uow := sharedinfra.NewUnitOfWork(db)
	err := uow.Execute(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "TRUNCATE order_items, orders, products, categories, staffs"); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		steps := []struct {
			table string
			fn    func(context.Context, *sqlx.Tx, *datasetdomain.Dataset) (int, error)
		}{
			{datasetdomain.TableCategories, seedCategories},
			{datasetdomain.TableStaffs, seedStaffs},
			{datasetdomain.TableProducts, seedProducts},
			{datasetdomain.TableOrders, seedOrders},
			{datasetdomain.TableOrderItems, seedOrderItems},
		}
		for _, step := range steps {
			n, err := step.fn(ctx, tx, ds)
			if err != nil {
				return fmt.Errorf("seed %s: %w", step.table, err)
			}
			counts[step.table] = n
			logger.Info("table seeded", zap.String("table", step.table), zap.Int("rows", n))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "ANALYZE"); err != nil {
		logger.Warn("analyze failed", zap.Error(err))
	}
	return counts, nil
}

func seedCategories(ctx context.Context, tx *sqlx.Tx, ds *datasetdomain.Dataset) (int, error) {
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO categories (category_id, category_name) VALUES ($1, $2)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, c := range ds.Categories() {
		if _, err := stmt.ExecContext(ctx, int64(c.ID()), c.Name()); err != nil {
			return 0, err
		}
	}
	return len(ds.Categories()), nil
}

func seedStaffs(ctx context.Context, tx *sqlx.Tx, ds *datasetdomain.Dataset) (int, error) {
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO staffs (staff_id, first_name, last_name) VALUES ($1, $2, $3)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, s := range ds.Staffs() {
		if _, err := stmt.ExecContext(ctx, int64(s.ID()), s.FirstName(), s.LastName()); err != nil {
			return 0, err
		}
	}
	return len(ds.Staffs()), nil
}

func seedProducts(ctx context.Context, tx *sqlx.Tx, ds *datasetdomain.Dataset) (int, error) {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO products (product_id, product_name, category_id, model_year, list_price)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range ds.Products() {
		_, err := stmt.ExecContext(ctx,
			int64(p.ID()), p.Name(), int64(p.CategoryID()), p.ModelYear(), p.ListPrice().String())
		if err != nil {
			return 0, err
		}
	}
	return len(ds.Products()), nil
}

func seedOrders(ctx context.Context, tx *sqlx.Tx, ds *datasetdomain.Dataset) (int, error) {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO orders (order_id, customer_id, staff_id, store_id, order_date)
		VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, 0), $5)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, o := range ds.Orders() {
		_, err := stmt.ExecContext(ctx,
			int64(o.ID()), int64(o.CustomerID()), int64(o.StaffID()), int64(o.StoreID()), o.OrderDate())
		if err != nil {
			return 0, err
		}
	}
	return len(ds.Orders()), nil
}

func seedOrderItems(ctx context.Context, tx *sqlx.Tx, ds *datasetdomain.Dataset) (int, error) {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO order_items (order_id, item_id, product_id, quantity, list_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	// item_id absent de la source: numérotation séquentielle par commande
	next := make(map[int64]int64)
	for _, it := range ds.OrderItems() {
		orderID := int64(it.OrderID())
		itemID := it.ItemID()
		if itemID == 0 {
			next[orderID]++
			itemID = next[orderID]
		}
		_, err := stmt.ExecContext(ctx,
			orderID, itemID, int64(it.ProductID()), it.Quantity().Value(),
			it.UnitPrice().String(), it.Discount().String())
		if err != nil {
			return 0, err
		}
	}
	return len(ds.OrderItems()), nil
}
