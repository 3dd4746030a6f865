package testhelpers

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bikestore/config"
	"bikestore/internal/dataset/domain"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

// SampleTables petit jeu BikeStore couvrant les cas de jointure
//
// Faits attendus après jointure (3 lignes sur 6):
//   - Road     2023-01  100  (Fabiola Jackson)
//   - Road     2023-02   50  (Mireya Copeland)
//   - Mountain 2023-01  200  (vendeur 9 inconnu)
//
// Lignes écartées: produit 99 inconnu, produit 30 sans catégorie, commande 103 inconnue.
func SampleTables() map[string]*domain.RawTable {
	return map[string]*domain.RawTable{
		domain.TableCategories: domain.NewRawTable(domain.TableCategories,
			[]string{"category_id", "category_name"},
			[][]string{
				{"1", "Mountain"},
				{"2", "Road"},
				{"3", "Electric"},
			}),
		domain.TableProducts: domain.NewRawTable(domain.TableProducts,
			[]string{"product_id", "product_name", "brand_id", "category_id", "model_year", "list_price"},
			[][]string{
				{"10", "Trek 820", "9", "1", "2016", "379.99"},
				{"20", "Surly, Straggler", "8", "2", "2017", "1549.00"},
				{"30", "Orphan Bike", "1", "99", "2018", "10.00"},
			}),
		domain.TableStaffs: domain.NewRawTable(domain.TableStaffs,
			[]string{"staff_id", "first_name", "last_name"},
			[][]string{
				{"1", "Fabiola", "Jackson"},
				{"2", "Mireya", "Copeland"},
			}),
		domain.TableOrders: domain.NewRawTable(domain.TableOrders,
			[]string{"order_id", "customer_id", "order_status", "order_date", "store_id", "staff_id"},
			[][]string{
				{"100", "1", "4", "2023-01-10", "1", "1"},
				{"101", "2", "4", "2023-02-05", "1", "2"},
				{"102", "3", "4", "2023-01-20", "2", "9"},
			}),
		domain.TableOrderItems: domain.NewRawTable(domain.TableOrderItems,
			[]string{"order_id", "item_id", "product_id", "quantity", "list_price", "discount"},
			[][]string{
				{"100", "1", "20", "1", "100.00", "0"},
				{"101", "1", "20", "1", "50.00", "0.00"},
				{"102", "1", "10", "2", "100.00", "0"},
				{"102", "2", "30", "1", "10.00", "0"},
				{"100", "2", "99", "1", "5.00", "0"},
				{"103", "1", "10", "1", "1.00", "0"},
			}),
	}
}

// SampleDataset construit le dataset typé de SampleTables
func SampleDataset(tb testing.TB) *domain.Dataset {
	tb.Helper()

	ds, err := domain.BuildDataset(SampleTables())
	if err != nil {
		tb.Fatalf("BuildDataset(SampleTables()) error = %v", err)
	}
	return ds
}

// MemorySource source de tables en mémoire, compte les lectures
type MemorySource struct {
	mu     sync.Mutex
	tables map[string]*domain.RawTable
	calls  int
}

// NewMemorySource crée une source en mémoire
func NewMemorySource(tables map[string]*domain.RawTable) *MemorySource {
	return &MemorySource{tables: tables}
}

// Fetch retourne la table demandée ou une LoadError ErrMissingTable
func (s *MemorySource) Fetch(ctx context.Context, table string) (*domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	t, ok := s.tables[table]
	if !ok {
		return nil, &domain.LoadError{Table: table, Err: domain.ErrMissingTable}
	}
	return t, nil
}

// Replace remplace une table (simule une source modifiée entre deux chargements)
func (s *MemorySource) Replace(table string, t *domain.RawTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = t
}

// Calls retourne le nombre de lectures effectuées
func (s *MemorySource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// WriteCSVDir écrit chaque table dans <dir>/<table>.csv et retourne le répertoire
func WriteCSVDir(tb testing.TB, tables map[string]*domain.RawTable) string {
	tb.Helper()

	dir := tb.TempDir()
	for name, t := range tables {
		f, err := os.Create(filepath.Join(dir, name+".csv"))
		if err != nil {
			tb.Fatalf("create %s: %v", name, err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(t.Header); err != nil {
			tb.Fatalf("write %s header: %v", name, err)
		}
		if err := w.WriteAll(t.Rows); err != nil {
			tb.Fatalf("write %s rows: %v", name, err)
		}
		if err := f.Close(); err != nil {
			tb.Fatalf("close %s: %v", name, err)
		}
	}
	return dir
}

// SkipIfNoDatabase skip le test si PostgreSQL n'est pas disponible,
// sinon retourne une connexion fermée à la fin du test
func SkipIfNoDatabase(tb testing.TB) *sqlx.DB {
	tb.Helper()

	if testing.Short() {
		tb.Skip("skipping database test in short mode")
	}
	_ = godotenv.Load("../../../.env")

	cfg := config.LoadEnv()
	db, err := sharedinfra.OpenPostgres(context.Background(), cfg.Postgres)
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}
