package domain

import (
	"testing"

	datasetdomain "bikestore/internal/dataset/domain"
	"bikestore/internal/shared/domain"
	"bikestore/internal/testhelpers"
)

func TestComputeOverview(t *testing.T) {
	facts, _ := sampleFacts(t)
	o := ComputeOverview(facts)

	if o.TotalSales.Cmp(domain.MustParseMoney("350")) != 0 {
		t.Errorf("TotalSales = %s, want 350", o.TotalSales)
	}
	if o.Orders != 3 || o.Products != 2 || o.Customers != 3 || o.Lines != 3 {
		t.Errorf("overview = %+v", o)
	}
}

func TestComputeOverview_UnknownCustomerNotCounted(t *testing.T) {
	tables := testhelpers.SampleTables()
	orders := tables[datasetdomain.TableOrders].Rows
	orders[1][1] = "NULL"
	orders[2][1] = ""

	ds, err := datasetdomain.BuildDataset(tables)
	if err != nil {
		t.Fatalf("BuildDataset() error = %v", err)
	}
	facts, _ := BuildFacts(ds)

	o := ComputeOverview(facts)
	if o.Customers != 1 {
		t.Errorf("Customers = %d, want 1 (NULL and empty ids are not customers)", o.Customers)
	}
	if o.Orders != 3 {
		t.Errorf("Orders = %d, want 3", o.Orders)
	}
}

func TestComputeOverview_Empty(t *testing.T) {
	o := ComputeOverview(NewFactTable(nil))
	if !o.TotalSales.IsZero() || o.Orders != 0 || o.Lines != 0 {
		t.Errorf("overview of empty table = %+v", o)
	}
}

func TestCategoriesWithoutSales(t *testing.T) {
	facts, _ := sampleFacts(t)

	got := CategoriesWithoutSales([]string{"Road", "Electric", "Mountain", "BMX"}, facts)
	if len(got) != 2 || got[0] != "BMX" || got[1] != "Electric" {
		t.Errorf("CategoriesWithoutSales() = %v, want [BMX Electric]", got)
	}
	if got := CategoriesWithoutSales(nil, facts); len(got) != 0 {
		t.Errorf("no selection should give no alert, got %v", got)
	}
}

func TestNewStats_EmptySections(t *testing.T) {
	s := NewStats(DefaultCriteria(nil))

	if !s.IsEmpty() {
		t.Error("new stats should be empty")
	}
	for _, sum := range []Summary{s.ByCategory(), s.ByMonth(), s.TopProducts(), s.TopStaff()} {
		if sum.Entries == nil {
			t.Errorf("%s: nil entries", sum.Dimension)
		}
	}
	if s.CategoriesWithoutSales() == nil {
		t.Error("CategoriesWithoutSales() should not be nil")
	}
}
