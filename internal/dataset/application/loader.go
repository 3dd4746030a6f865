package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bikestore/internal/dataset/domain"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"go.uber.org/zap"
)

// Source fournit les tables brutes (CSV, PostgreSQL, mémoire pour les tests)
type Source interface {
	Fetch(ctx context.Context, table string) (*domain.RawTable, error)
}

// Loader charge et type les cinq tables sources
type Loader struct {
	logger  *zap.Logger
	workers int
}

// NewLoader crée un nouveau loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger:  logger,
		workers: len(domain.Tables),
	}
}

// Load lit les cinq tables en parallèle puis les valide et les type
// Toute erreur est fatale et retournée sous forme de *domain.LoadError.
func (l *Loader) Load(ctx context.Context, src Source) (*domain.Dataset, error) {
	start := time.Now()

	pool := sharedinfra.NewWorkerPool(ctx, l.workers)
	pool.Start()

	var mu sync.Mutex
	raw := make(map[string]*domain.RawTable, len(domain.Tables))

	for _, table := range domain.Tables {
		table := table
		err := pool.Submit(func(ctx context.Context) error {
			t, err := src.Fetch(ctx, table)
			if err != nil {
				return asLoadError(table, err)
			}
			mu.Lock()
			raw[table] = t
			mu.Unlock()
			return nil
		})
		if err != nil {
			pool.Stop()
			return nil, &domain.LoadError{Table: table, Err: fmt.Errorf("submit fetch: %w", err)}
		}
	}

	if err := pool.Wait(); err != nil {
		l.logger.Error("source fetch failed", zap.Error(err))
		return nil, firstLoadError(err)
	}

	ds, err := domain.BuildDataset(raw)
	if err != nil {
		l.logger.Error("dataset validation failed", zap.Error(err))
		return nil, err
	}

	l.logger.Info("dataset loaded",
		zap.String("generation", ds.Generation().String()),
		zap.Int("products", len(raw[domain.TableProducts].Rows)),
		zap.Int("order_items", len(raw[domain.TableOrderItems].Rows)),
		zap.Int("orders", len(raw[domain.TableOrders].Rows)),
		zap.Int("categories", len(raw[domain.TableCategories].Rows)),
		zap.Int("staffs", len(raw[domain.TableStaffs].Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}

// asLoadError garantit que les erreurs de source sont des LoadError
func asLoadError(table string, err error) error {
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &domain.LoadError{Table: table, Err: err}
}

// firstLoadError extrait la première LoadError d'une erreur jointe
// pour que l'appelant reçoive toujours un *domain.LoadError.
func firstLoadError(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var loadErr *domain.LoadError
			if errors.As(e, &loadErr) {
				return loadErr
			}
		}
	}
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &domain.LoadError{Table: "*", Err: err}
}
