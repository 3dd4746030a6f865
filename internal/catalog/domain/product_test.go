package domain

import (
	"testing"

	"bikestore/internal/shared/domain"
)

func TestNewProduct(t *testing.T) {
	price := domain.MustParseMoney("379.99")
	tests := []struct {
		name    string
		pname   string
		year    int
		wantErr bool
	}{
		{"valid", "Trek 820 - 2016", 2016, false},
		{"empty name", "", 2016, true},
		{"negative year", "Trek", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(1, tt.pname, 6, tt.year, price)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProduct error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (p.CategoryID() != 6 || p.ListPrice().Cmp(price) != 0) {
				t.Errorf("unexpected product %+v", p)
			}
		})
	}
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(1, "Children Bicycles")
	if err != nil || c.Name() != "Children Bicycles" {
		t.Fatalf("NewCategory = %v, %v", c, err)
	}
	if _, err := NewCategory(2, ""); err == nil {
		t.Error("empty category name should be rejected")
	}
}
