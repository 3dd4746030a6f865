package domain

import (
	"sort"

	catalogdomain "bikestore/internal/catalog/domain"
	ordersdomain "bikestore/internal/orders/domain"
	"bikestore/internal/shared/domain"
)

// Overview indicateurs clés du panneau exécutif
type Overview struct {
	TotalSales domain.Money `json:"total_sales"`
	Orders     int          `json:"orders"`
	Products   int          `json:"products"`
	Customers  int          `json:"customers"`
	Lines      int          `json:"lines"`
}

// ComputeOverview calcule les KPIs: ventes totales, commandes, produits
// et clients distincts (hors client inconnu)
func ComputeOverview(facts *FactTable) Overview {
	orders := make(map[ordersdomain.OrderID]struct{})
	products := make(map[catalogdomain.ProductID]struct{})
	customers := make(map[ordersdomain.CustomerID]struct{})

	total := domain.ZeroMoney()
	facts.Each(func(f *SalesFact) {
		total = total.Add(f.lineTotal)
		orders[f.orderID] = struct{}{}
		products[f.productID] = struct{}{}
		// client inconnu (NULL à la source)
		if f.customerID != 0 {
			customers[f.customerID] = struct{}{}
		}
	})

	return Overview{
		TotalSales: total,
		Orders:     len(orders),
		Products:   len(products),
		Customers:  len(customers),
		Lines:      facts.Len(),
	}
}

// CategoriesWithoutSales catégories sélectionnées absentes des faits filtrés
func CategoriesWithoutSales(selected []string, facts *FactTable) []string {
	withSales := make(map[string]struct{})
	facts.Each(func(f *SalesFact) {
		withSales[f.categoryName] = struct{}{}
	})
	out := make([]string, 0)
	for _, name := range selected {
		if _, ok := withSales[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Stats représente le tableau de bord calculé pour un jeu de critères
type Stats struct {
	criteria     Criteria
	overview     Overview
	byCategory   Summary
	byMonth      Summary
	topProducts  Summary
	topStaff     Summary
	missingSales []string
}

// NewStats crée une nouvelle instance de Stats (sections vides)
func NewStats(criteria Criteria) *Stats {
	return &Stats{
		criteria:     criteria,
		overview:     Overview{TotalSales: domain.ZeroMoney()},
		byCategory:   Summary{Dimension: DimensionCategory, Entries: []Entry{}},
		byMonth:      Summary{Dimension: DimensionMonth, Entries: []Entry{}},
		topProducts:  Summary{Dimension: DimensionProduct, Entries: []Entry{}},
		topStaff:     Summary{Dimension: DimensionStaff, Entries: []Entry{}},
		missingSales: make([]string, 0),
	}
}

// Criteria retourne les critères utilisés
func (s *Stats) Criteria() Criteria { return s.criteria }

// Overview retourne les KPIs
func (s *Stats) Overview() Overview { return s.overview }

// ByCategory retourne les ventes par catégorie
func (s *Stats) ByCategory() Summary { return s.byCategory }

// ByMonth retourne l'évolution mensuelle
func (s *Stats) ByMonth() Summary { return s.byMonth }

// TopProducts retourne les meilleurs produits
func (s *Stats) TopProducts() Summary { return s.topProducts }

// TopStaff retourne les meilleurs vendeurs
func (s *Stats) TopStaff() Summary { return s.topStaff }

// CategoriesWithoutSales retourne l'alerte catégories sans ventes
func (s *Stats) CategoriesWithoutSales() []string {
	return append([]string{}, s.missingSales...)
}

// IsEmpty indique qu'aucune ligne ne satisfait les critères
func (s *Stats) IsEmpty() bool { return s.overview.Lines == 0 }

// SetOverview définit les KPIs
func (s *Stats) SetOverview(o Overview) { s.overview = o }

// SetByCategory définit les ventes par catégorie
func (s *Stats) SetByCategory(sum Summary) { s.byCategory = sum }

// SetByMonth définit l'évolution mensuelle
func (s *Stats) SetByMonth(sum Summary) { s.byMonth = sum }

// SetTopProducts définit les meilleurs produits
func (s *Stats) SetTopProducts(sum Summary) { s.topProducts = sum }

// SetTopStaff définit les meilleurs vendeurs
func (s *Stats) SetTopStaff(sum Summary) { s.topStaff = sum }

// SetCategoriesWithoutSales définit l'alerte catégories sans ventes
func (s *Stats) SetCategoriesWithoutSales(names []string) { s.missingSales = names }
