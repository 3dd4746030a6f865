package infrastructure

import (
	"context"
	"errors"
	"testing"

	"bikestore/database"
	"bikestore/internal/dataset/domain"
	"bikestore/internal/testhelpers"

	"go.uber.org/zap"
)

// Test d'intégration: nécessite PostgreSQL (skip sinon)
func TestPostgresSource_RoundTrip(t *testing.T) {
	db := testhelpers.SkipIfNoDatabase(t)
	ctx := context.Background()

	seeded := testhelpers.SampleDataset(t)
	if _, err := database.SeedDatabase(ctx, db, seeded, zap.NewNop()); err != nil {
		t.Fatalf("SeedDatabase() error = %v", err)
	}

	src := NewPostgresSource(db, "")
	raw := make(map[string]*domain.RawTable)
	for _, name := range domain.Tables {
		table, err := src.Fetch(ctx, name)
		if err != nil {
			t.Fatalf("Fetch(%s) error = %v", name, err)
		}
		raw[name] = table
	}

	ds, err := domain.BuildDataset(raw)
	if err != nil {
		t.Fatalf("BuildDataset() error = %v", err)
	}
	if len(ds.OrderItems()) != len(seeded.OrderItems()) {
		t.Errorf("order items = %d, want %d", len(ds.OrderItems()), len(seeded.OrderItems()))
	}
	if len(ds.Products()) != len(seeded.Products()) {
		t.Errorf("products = %d, want %d", len(ds.Products()), len(seeded.Products()))
	}
}

func TestPostgresSource_UnknownTable(t *testing.T) {
	db := testhelpers.SkipIfNoDatabase(t)

	_, err := NewPostgresSource(db, "").Fetch(context.Background(), "stores")
	if !errors.Is(err, domain.ErrMissingTable) {
		t.Errorf("Fetch(stores) error = %v, want ErrMissingTable", err)
	}
}
