package domain

import (
	"errors"
	"testing"
	"time"

	"bikestore/internal/shared/domain"
)

func TestDefaultCriteria(t *testing.T) {
	facts, _ := sampleFacts(t)
	c := DefaultCriteria(facts)

	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "Mountain" || cats[1] != "Road" {
		t.Errorf("Categories() = %v, want [Mountain Road]", cats)
	}
	if c.DateRange().String() != "2023-01-10..2023-02-05" {
		t.Errorf("DateRange() = %s", c.DateRange())
	}
	if c.Limit() != DefaultLimit || c.StaffLimit() != DefaultStaffLimit || !c.MinAmount().IsZero() {
		t.Errorf("unexpected defaults: limit=%d staff=%d min=%s", c.Limit(), c.StaffLimit(), c.MinAmount())
	}

	// les critères par défaut gardent toutes les lignes
	if got := Filter(facts, c).Len(); got != facts.Len() {
		t.Errorf("Filter(default) kept %d rows, want %d", got, facts.Len())
	}
}

func TestNewCriteria_Validation(t *testing.T) {
	dr := rangeOf(t, "2023-01-01", "2023-12-31")

	if _, err := NewCriteria(nil, dr, domain.ZeroMoney(), 0, 8); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("limit 0: error = %v, want ErrInvalidLimit", err)
	}
	if _, err := NewCriteria(nil, dr, domain.ZeroMoney(), 10, -1); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("staff limit -1: error = %v, want ErrInvalidLimit", err)
	}
	if _, err := NewCriteria([]string{"Road"}, dr, domain.ZeroMoney(), 10, 8); err != nil {
		t.Errorf("valid criteria: error = %v", err)
	}

	c := DefaultCriteria(nil)
	if _, err := c.WithMinAmount(domain.ZeroMoney()); err != nil {
		t.Errorf("WithMinAmount(0) error = %v", err)
	}
	if _, err := c.WithLimit(-3); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("WithLimit(-3) error = %v", err)
	}
}

func TestFilter(t *testing.T) {
	facts, _ := sampleFacts(t)
	base := DefaultCriteria(facts)

	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{"all", base, 3},
		{"one category", base.WithCategories([]string{"Road"}), 2},
		{"unknown category", base.WithCategories([]string{"Electric"}), 0},
		{"no category selected", base.WithCategories(nil), 0},
		{"category names are exact", base.WithCategories([]string{"road"}), 0},
		{"january only", base.WithDateRange(rangeOf(t, "2023-01-01", "2023-01-31")), 2},
		{"inclusive single day", base.WithDateRange(rangeOf(t, "2023-02-05", "2023-02-05")), 1},
		{"empty range", base.WithDateRange(rangeOf(t, "2023-12-31", "2023-01-01")), 0},
		{"outside observed range", base.WithDateRange(rangeOf(t, "2024-01-01", "2024-12-31")), 0},
		{
			"category and range",
			base.WithCategories([]string{"Mountain"}).WithDateRange(rangeOf(t, "2023-01-15", "2023-01-31")),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filter(facts, tt.criteria).Len(); got != tt.want {
				t.Errorf("Filter() kept %d rows, want %d", got, tt.want)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	facts, _ := sampleFacts(t)
	c := DefaultCriteria(facts).
		WithCategories([]string{"Road"}).
		WithDateRange(rangeOf(t, "2023-01-01", "2023-01-31"))

	once := Filter(facts, c)
	twice := Filter(once, c)

	if once.Len() != twice.Len() {
		t.Fatalf("Filter twice kept %d rows, once %d", twice.Len(), once.Len())
	}
	for i := 0; i < once.Len(); i++ {
		if once.At(i) != twice.At(i) {
			t.Errorf("row %d differs after second filter", i)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	facts, _ := sampleFacts(t)
	before := facts.Len()

	Filter(facts, DefaultCriteria(facts).WithCategories([]string{"Road"}))
	if facts.Len() != before {
		t.Errorf("input table changed from %d to %d rows", before, facts.Len())
	}
}

func TestFilter_MinAmountDoesNotFilterRows(t *testing.T) {
	facts, _ := sampleFacts(t)
	c, err := DefaultCriteria(facts).WithMinAmount(domain.MustParseMoney("1000"))
	if err != nil {
		t.Fatal(err)
	}
	if got := Filter(facts, c).Len(); got != facts.Len() {
		t.Errorf("min amount filtered rows: kept %d, want %d", got, facts.Len())
	}
}

func TestObservedDateRange_Empty(t *testing.T) {
	dr := ObservedDateRange(NewFactTable(nil))
	if !dr.IsEmpty() {
		t.Errorf("ObservedDateRange(empty) = %s, want an empty range", dr)
	}
	if len(ObservedCategories(nil)) != 0 {
		t.Error("ObservedCategories(nil) should be empty")
	}
}

func TestObservedDateRange_EmptyIgnoresLocalZone(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	for _, loc := range []*time.Location{time.UTC, time.FixedZone("UTC-5", -5*3600), time.FixedZone("UTC+9", 9*3600)} {
		time.Local = loc
		dr := ObservedDateRange(NewFactTable(nil))
		if got := dr.String(); got != "1970-01-01..1969-12-31" {
			t.Errorf("%s: ObservedDateRange(empty) = %s, want 1970-01-01..1969-12-31", loc, got)
		}
	}
}
