package domain

import (
	"errors"
	"sort"
	"time"

	"bikestore/internal/shared/domain"
)

const (
	// DefaultLimit nombre de produits affichés par défaut (top 10)
	DefaultLimit = 10
	// DefaultStaffLimit nombre de vendeurs affichés par défaut (top 8)
	DefaultStaffLimit = 8
)

var (
	// ErrInvalidLimit une limite doit être strictement positive
	ErrInvalidLimit = errors.New("limit must be positive")
	// ErrNegativeMinAmount le seuil minimal ne peut pas être négatif
	ErrNegativeMinAmount = errors.New("minimum amount cannot be negative")
)

// Criteria critères de filtrage fournis par la couche de présentation
// Value Object: chaque With* retourne une copie.
//
// "Toutes les catégories" est représenté explicitement par l'ensemble complet
// des catégories observées (voir DefaultCriteria). Un ensemble vide ne garde
// aucune ligne. MinAmount et les limites ne filtrent jamais les lignes: ce sont
// des paramètres des agrégations (TopProducts, TopStaff).
type Criteria struct {
	categories map[string]struct{}
	dateRange  domain.DateRange
	minAmount  domain.Money
	limit      int
	staffLimit int
}

// NewCriteria crée des critères avec validation
func NewCriteria(
	categories []string,
	dateRange domain.DateRange,
	minAmount domain.Money,
	limit int,
	staffLimit int,
) (Criteria, error) {
	if limit <= 0 || staffLimit <= 0 {
		return Criteria{}, ErrInvalidLimit
	}
	if minAmount.Amount().IsNegative() {
		return Criteria{}, ErrNegativeMinAmount
	}
	return Criteria{
		categories: toSet(categories),
		dateRange:  dateRange,
		minAmount:  minAmount,
		limit:      limit,
		staffLimit: staffLimit,
	}, nil
}

// DefaultCriteria toutes les catégories observées, toute la période observée,
// seuil 0, top 10 produits et top 8 vendeurs.
func DefaultCriteria(facts *FactTable) Criteria {
	return Criteria{
		categories: toSet(ObservedCategories(facts)),
		dateRange:  ObservedDateRange(facts),
		minAmount:  domain.ZeroMoney(),
		limit:      DefaultLimit,
		staffLimit: DefaultStaffLimit,
	}
}

// Categories retourne l'ensemble des catégories retenues, trié
func (c Criteria) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for name := range c.categories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DateRange retourne la période retenue (bornes incluses)
func (c Criteria) DateRange() domain.DateRange { return c.dateRange }

// MinAmount retourne le seuil minimal des totaux produits
func (c Criteria) MinAmount() domain.Money { return c.minAmount }

// Limit retourne le nombre de produits du classement
func (c Criteria) Limit() int { return c.limit }

// StaffLimit retourne le nombre de vendeurs du classement
func (c Criteria) StaffLimit() int { return c.staffLimit }

// WithCategories remplace l'ensemble des catégories
func (c Criteria) WithCategories(categories []string) Criteria {
	c.categories = toSet(categories)
	return c
}

// WithDateRange remplace la période
func (c Criteria) WithDateRange(dr domain.DateRange) Criteria {
	c.dateRange = dr
	return c
}

// WithMinAmount remplace le seuil minimal
func (c Criteria) WithMinAmount(m domain.Money) (Criteria, error) {
	if m.Amount().IsNegative() {
		return c, ErrNegativeMinAmount
	}
	c.minAmount = m
	return c, nil
}

// WithLimit remplace la limite du top produits
func (c Criteria) WithLimit(limit int) (Criteria, error) {
	if limit <= 0 {
		return c, ErrInvalidLimit
	}
	c.limit = limit
	return c, nil
}

// WithStaffLimit remplace la limite du top vendeurs
func (c Criteria) WithStaffLimit(limit int) (Criteria, error) {
	if limit <= 0 {
		return c, ErrInvalidLimit
	}
	c.staffLimit = limit
	return c, nil
}

// HasCategory vérifie l'appartenance exacte d'une catégorie à l'ensemble
func (c Criteria) HasCategory(name string) bool {
	_, ok := c.categories[name]
	return ok
}

// Matches vérifie si une ligne satisfait les critères de catégorie et de date
func (c Criteria) Matches(f *SalesFact) bool {
	return c.HasCategory(f.categoryName) && c.dateRange.Contains(f.orderDate)
}

// Filter retourne une nouvelle table avec les lignes qui satisfont les critères
// La table d'entrée n'est jamais modifiée. Une période vide (début > fin) donne
// une table vide. Idempotent: Filter(Filter(t, c), c) == Filter(t, c).
func Filter(facts *FactTable, c Criteria) *FactTable {
	out := make([]*SalesFact, 0, facts.Len())
	if c.dateRange.IsEmpty() || len(c.categories) == 0 {
		return NewFactTable(out)
	}
	facts.Each(func(f *SalesFact) {
		if c.Matches(f) {
			out = append(out, f)
		}
	})
	return NewFactTable(out)
}

// ObservedCategories retourne les noms de catégories présents, triés
func ObservedCategories(facts *FactTable) []string {
	seen := make(map[string]struct{})
	facts.Each(func(f *SalesFact) {
		seen[f.categoryName] = struct{}{}
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ObservedDateRange retourne [min, max] des dates de commande
// Pour une table vide, la période retournée est vide (début > fin).
func ObservedDateRange(facts *FactTable) domain.DateRange {
	if facts.Len() == 0 {
		epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
		return domain.NewDateRange(epoch, epoch.AddDate(0, 0, -1))
	}
	first := facts.At(0).orderDate
	min, max := first, first
	facts.Each(func(f *SalesFact) {
		if f.orderDate.Before(min) {
			min = f.orderDate
		}
		if f.orderDate.After(max) {
			max = f.orderDate
		}
	})
	return domain.NewDateRange(min, max)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
