package application

import (
	"context"
	"errors"
	"testing"

	"bikestore/internal/dataset/domain"
	"bikestore/internal/testhelpers"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoader_Load(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	loader := NewLoader(zap.New(core))
	src := testhelpers.NewMemorySource(testhelpers.SampleTables())

	ds, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.OrderItems()) != 6 || len(ds.Staffs()) != 2 {
		t.Errorf("unexpected dataset sizes: items=%d staffs=%d", len(ds.OrderItems()), len(ds.Staffs()))
	}
	if src.Calls() != len(domain.Tables) {
		t.Errorf("source read %d times, want %d", src.Calls(), len(domain.Tables))
	}
	if logs.FilterMessage("dataset loaded").Len() != 1 {
		t.Error("expected a 'dataset loaded' log entry")
	}
}

func TestLoader_MissingTable(t *testing.T) {
	tables := testhelpers.SampleTables()
	delete(tables, domain.TableCategories)

	ds, err := NewLoader(nil).Load(context.Background(), testhelpers.NewMemorySource(tables))
	if ds != nil {
		t.Fatal("dataset must be nil on error")
	}
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error %T is not a *LoadError", err)
	}
	if loadErr.Table != domain.TableCategories || !errors.Is(err, domain.ErrMissingTable) {
		t.Errorf("error = %v, want missing categories", err)
	}
}

func TestLoader_InvalidData(t *testing.T) {
	tables := testhelpers.SampleTables()
	tables[domain.TableOrderItems].Rows[0][5] = "-0.1"

	_, err := NewLoader(nil).Load(context.Background(), testhelpers.NewMemorySource(tables))
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) || loadErr.Table != domain.TableOrderItems {
		t.Errorf("error = %v, want LoadError on order_items", err)
	}
}

type failingSource struct{ err error }

func (s failingSource) Fetch(ctx context.Context, table string) (*domain.RawTable, error) {
	return nil, s.err
}

func TestLoader_SourceErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := NewLoader(nil).Load(context.Background(), failingSource{err: boom})
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error %T is not a *LoadError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped source error", err)
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, testhelpers.NewMemorySource(testhelpers.SampleTables()))
	if err == nil {
		t.Fatal("Load() with canceled context should fail")
	}
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("error %T is not a *LoadError", err)
	}
}
