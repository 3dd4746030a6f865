package domain

import (
	"strconv"

	analyticsdomain "bikestore/internal/analytics/domain"
	"bikestore/internal/shared/domain"
)

// Tabular toute donnée exportable à plat: colonnes stables + lignes texte
// analyticsdomain.Summary l'implémente directement.
type Tabular interface {
	Columns() []string
	Rows() [][]string
}

// ToFlatRows retourne l'en-tête suivi des enregistrements, ordre stable
func ToFlatRows(t Tabular) [][]string {
	rows := t.Rows()
	out := make([][]string, 0, len(rows)+1)
	out = append(out, t.Columns())
	return append(out, rows...)
}

// SalesReport rapport détaillé des ventes filtrées (une ligne par fait)
type SalesReport struct {
	facts *analyticsdomain.FactTable
}

// NewSalesReport crée le rapport détaillé d'une table de faits
func NewSalesReport(facts *analyticsdomain.FactTable) SalesReport {
	return SalesReport{facts: facts}
}

// SalesReportHeaders retourne les en-têtes du rapport détaillé
func SalesReportHeaders() []string {
	return []string{
		"order_id",
		"order_date",
		"product_name",
		"category_name",
		"staff_name",
		"quantity",
		"list_price_order",
		"discount",
		"line_total",
		"period",
	}
}

// Columns implémente Tabular
func (r SalesReport) Columns() []string {
	return SalesReportHeaders()
}

// Rows implémente Tabular
func (r SalesReport) Rows() [][]string {
	rows := make([][]string, 0, r.facts.Len())
	r.facts.Each(func(f *analyticsdomain.SalesFact) {
		rows = append(rows, ToSalesRow(f))
	})
	return rows
}

// ToSalesRow convertit un fait en ligne d'export (décimaux non arrondis)
func ToSalesRow(f *analyticsdomain.SalesFact) []string {
	staff := ""
	if f.HasStaff() {
		staff = f.FirstName() + " " + f.LastName()
	}
	return []string{
		strconv.FormatInt(int64(f.OrderID()), 10),
		f.OrderDate().Format(domain.DateLayout),
		f.ProductName(),
		f.CategoryName(),
		staff,
		strconv.Itoa(f.Quantity().Value()),
		f.UnitPrice().String(),
		f.Discount().String(),
		f.LineTotal().String(),
		f.Period().String(),
	}
}

// ExecutiveSummary résumé exécutif (métrique, valeur)
type ExecutiveSummary struct {
	overview analyticsdomain.Overview
}

// NewExecutiveSummary crée le résumé exécutif d'une vue d'ensemble
func NewExecutiveSummary(o analyticsdomain.Overview) ExecutiveSummary {
	return ExecutiveSummary{overview: o}
}

// Columns implémente Tabular
func (e ExecutiveSummary) Columns() []string {
	return []string{"metric", "value"}
}

// Rows implémente Tabular
func (e ExecutiveSummary) Rows() [][]string {
	return [][]string{
		{"total_sales", e.overview.TotalSales.String()},
		{"orders", strconv.Itoa(e.overview.Orders)},
		{"products", strconv.Itoa(e.overview.Products)},
		{"customers", strconv.Itoa(e.overview.Customers)},
		{"lines", strconv.Itoa(e.overview.Lines)},
	}
}
