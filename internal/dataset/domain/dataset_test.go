package domain_test

import (
	"errors"
	"testing"
	"time"

	"bikestore/internal/dataset/domain"
	ordersdomain "bikestore/internal/orders/domain"
	shareddomain "bikestore/internal/shared/domain"
	"bikestore/internal/testhelpers"
)

func TestBuildDataset_Sample(t *testing.T) {
	ds := testhelpers.SampleDataset(t)

	if got := len(ds.Products()); got != 3 {
		t.Errorf("products = %d, want 3", got)
	}
	if got := len(ds.OrderItems()); got != 6 {
		t.Errorf("order items = %d, want 6", got)
	}
	if got := len(ds.Orders()); got != 3 {
		t.Errorf("orders = %d, want 3", got)
	}
	if got := len(ds.Categories()); got != 3 {
		t.Errorf("categories = %d, want 3", got)
	}
	if got := len(ds.Staffs()); got != 2 {
		t.Errorf("staffs = %d, want 2", got)
	}
}

func TestBuildDataset_GenerationIsUnique(t *testing.T) {
	a := testhelpers.SampleDataset(t)
	b := testhelpers.SampleDataset(t)
	if a.Generation() == b.Generation() {
		t.Error("two loads must not share a generation")
	}
}

func TestBuildDataset_ListPriceIsDisambiguated(t *testing.T) {
	ds := testhelpers.SampleDataset(t)

	product := ds.Products()[0]
	if product.ListPrice().Cmp(shareddomain.MustParseMoney("379.99")) != 0 {
		t.Errorf("catalog price = %s, want 379.99", product.ListPrice())
	}
	item := ds.OrderItems()[2]
	if item.UnitPrice().Cmp(shareddomain.MustParseMoney("100")) != 0 {
		t.Errorf("order price = %s, want 100 (price at sale, not catalog)", item.UnitPrice())
	}
}

func TestBuildDataset_NormalizesHeaders(t *testing.T) {
	tables := testhelpers.SampleTables()
	tables[domain.TableCategories].Header = []string{"\ufeffCategory_ID", " CATEGORY_NAME "}

	ds, err := domain.BuildDataset(tables)
	if err != nil {
		t.Fatalf("BuildDataset() error = %v", err)
	}
	if ds.Categories()[0].Name() != "Mountain" {
		t.Errorf("first category = %q", ds.Categories()[0].Name())
	}
}

func TestBuildDataset_OptionalColumns(t *testing.T) {
	tables := testhelpers.SampleTables()
	tables[domain.TableOrderItems] = domain.NewRawTable(domain.TableOrderItems,
		[]string{"order_id", "product_id", "quantity", "list_price", "discount"},
		[][]string{{"100", "20", "1", "100.00", "0.2"}},
	)

	ds, err := domain.BuildDataset(tables)
	if err != nil {
		t.Fatalf("BuildDataset() error = %v", err)
	}
	item := ds.OrderItems()[0]
	if item.ItemID() != 0 {
		t.Errorf("absent item_id = %d, want 0", item.ItemID())
	}
	if item.LineTotal().Cmp(shareddomain.MustParseMoney("80")) != 0 {
		t.Errorf("line total = %s, want 80", item.LineTotal())
	}
}

func TestBuildDataset_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(map[string]*domain.RawTable)
		wantErr    error
		wantTable  string
		wantRow    int
		wantColumn string
	}{
		{
			name:      "missing table",
			mutate:    func(m map[string]*domain.RawTable) { delete(m, domain.TableStaffs) },
			wantErr:   domain.ErrMissingTable,
			wantTable: domain.TableStaffs,
		},
		{
			name: "missing required column",
			mutate: func(m map[string]*domain.RawTable) {
				m[domain.TableOrderItems].Header = []string{"order_id", "item_id", "product_id", "quantity", "list_price", "remise"}
			},
			wantErr:    domain.ErrMissingColumn,
			wantTable:  domain.TableOrderItems,
			wantColumn: "discount",
		},
		{
			name:       "unparseable date",
			mutate:     func(m map[string]*domain.RawTable) { m[domain.TableOrders].Rows[1][3] = "2023-13-45" },
			wantErr:    domain.ErrInvalidDate,
			wantTable:  domain.TableOrders,
			wantRow:    2,
			wantColumn: "order_date",
		},
		{
			name:      "discount out of range",
			mutate:    func(m map[string]*domain.RawTable) { m[domain.TableOrderItems].Rows[0][5] = "1.5" },
			wantErr:   ordersdomain.ErrInvalidDiscount,
			wantTable: domain.TableOrderItems,
			wantRow:   1,
		},
		{
			name:      "zero quantity",
			mutate:    func(m map[string]*domain.RawTable) { m[domain.TableOrderItems].Rows[3][3] = "0" },
			wantErr:   domain.ErrInvalidValue,
			wantTable: domain.TableOrderItems,
			wantRow:   4,
		},
		{
			name:       "quantity overflow",
			mutate:     func(m map[string]*domain.RawTable) { m[domain.TableOrderItems].Rows[3][3] = "18446744073709551617" },
			wantErr:    shareddomain.ErrInvalidQuantity,
			wantTable:  domain.TableOrderItems,
			wantRow:    4,
			wantColumn: "quantity",
		},
		{
			name:       "negative price",
			mutate:     func(m map[string]*domain.RawTable) { m[domain.TableProducts].Rows[2][5] = "-10" },
			wantErr:    shareddomain.ErrNegativeAmount,
			wantTable:  domain.TableProducts,
			wantRow:    3,
			wantColumn: domain.ColumnListPriceProduct,
		},
		{
			name:       "non numeric id",
			mutate:     func(m map[string]*domain.RawTable) { m[domain.TableCategories].Rows[0][0] = "one" },
			wantErr:    domain.ErrInvalidValue,
			wantTable:  domain.TableCategories,
			wantRow:    1,
			wantColumn: "category_id",
		},
		{
			name:       "duplicate primary key",
			mutate:     func(m map[string]*domain.RawTable) { m[domain.TableProducts].Rows[1][0] = "10" },
			wantErr:    domain.ErrDuplicateKey,
			wantTable:  domain.TableProducts,
			wantRow:    2,
			wantColumn: "product_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := testhelpers.SampleTables()
			tt.mutate(tables)

			ds, err := domain.BuildDataset(tables)
			if ds != nil {
				t.Fatal("dataset must be nil on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var loadErr *domain.LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error %T is not a *LoadError", err)
			}
			if loadErr.Table != tt.wantTable || loadErr.Row != tt.wantRow || loadErr.Column != tt.wantColumn {
				t.Errorf("LoadError = {%s %d %s}, want {%s %d %s}",
					loadErr.Table, loadErr.Row, loadErr.Column, tt.wantTable, tt.wantRow, tt.wantColumn)
			}
		})
	}
}

func TestParseOrderDate(t *testing.T) {
	want := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"2016-01-01", "2016-01-01 13:45:00", "2016-01-01T13:45:00Z", "01/01/2016", " 2016-01-01 "} {
		got, err := domain.ParseOrderDate(input)
		if err != nil {
			t.Errorf("ParseOrderDate(%q) error = %v", input, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseOrderDate(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := domain.ParseOrderDate("yesterday"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("ParseOrderDate(yesterday) error = %v, want ErrInvalidDate", err)
	}
}

func TestSchema_SourceColumn(t *testing.T) {
	schema := domain.Schemas[domain.TableOrderItems]
	if got := schema.SourceColumn(domain.ColumnListPriceOrder); got != "list_price" {
		t.Errorf("SourceColumn(list_price_order) = %q, want list_price", got)
	}
	if got := schema.SourceColumn("discount"); got != "discount" {
		t.Errorf("SourceColumn(discount) = %q", got)
	}
}

func TestLoadError_Message(t *testing.T) {
	err := &domain.LoadError{Table: "orders", Row: 3, Column: "order_date", Err: domain.ErrInvalidDate}
	if err.Error() != "load orders: row 3, column order_date: invalid date" {
		t.Errorf("Error() = %q", err.Error())
	}
}
