package domain

import (
	"sort"

	"bikestore/internal/shared/domain"
)

// Dimensions des résumés
const (
	DimensionCategory = "category"
	DimensionMonth    = "month"
	DimensionProduct  = "product"
	DimensionStaff    = "staff"
)

// Entry une paire (clé, total) d'un résumé
type Entry struct {
	Key   string       `json:"key"`
	Total domain.Money `json:"total"`
}

// Summary résumé ordonné d'une agrégation
// Entries n'est jamais nil: un résumé vide est un état valide ("pas de données").
type Summary struct {
	Dimension string  `json:"dimension"`
	Entries   []Entry `json:"entries"`
}

// Len retourne le nombre d'entrées
func (s Summary) Len() int { return len(s.Entries) }

// IsEmpty indique l'absence de données
func (s Summary) IsEmpty() bool { return len(s.Entries) == 0 }

// Total somme toutes les entrées
func (s Summary) Total() domain.Money {
	total := domain.ZeroMoney()
	for _, e := range s.Entries {
		total = total.Add(e.Total)
	}
	return total
}

// Columns en-têtes de l'export plat
func (s Summary) Columns() []string {
	return []string{s.Dimension, "total"}
}

// Rows lignes de l'export plat, totaux non arrondis
func (s Summary) Rows() [][]string {
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, []string{e.Key, e.Total.String()})
	}
	return rows
}

// group accumulateur (clé -> total) qui conserve la valeur de tri de la clé
// key est la clé affichée; tie départage deux groupes de même clé affichée.
type group struct {
	key    string
	tie    string
	period domain.Period
	total  domain.Money
}

// groupBy somme line_total par clé de regroupement K
// keyFn retourne la clé affichée et ok=false pour ignorer une ligne.
func groupBy[K comparable](facts *FactTable, keyFn func(f *SalesFact) (K, string, bool)) map[K]*group {
	groups := make(map[K]*group)
	facts.Each(func(f *SalesFact) {
		k, display, ok := keyFn(f)
		if !ok {
			return
		}
		g, exists := groups[k]
		if !exists {
			g = &group{key: display, tie: display, period: f.period, total: domain.ZeroMoney()}
			groups[k] = g
		}
		g.total = g.total.Add(f.lineTotal)
	})
	return groups
}

// byTotalDesc total décroissant, égalités départagées par clé croissante
func byTotalDesc[K comparable](groups map[K]*group) []Entry {
	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].total.Cmp(list[j].total); c != 0 {
			return c > 0
		}
		if list[i].key != list[j].key {
			return list[i].key < list[j].key
		}
		return list[i].tie < list[j].tie
	})
	entries := make([]Entry, 0, len(list))
	for _, g := range list {
		entries = append(entries, Entry{Key: g.key, Total: g.total})
	}
	return entries
}

func limitEntries(entries []Entry, limit int) []Entry {
	if limit >= 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// ByCategory ventes par catégorie, total décroissant
func ByCategory(facts *FactTable) Summary {
	groups := groupBy(facts, func(f *SalesFact) (string, string, bool) {
		return f.categoryName, f.categoryName, true
	})
	return Summary{Dimension: DimensionCategory, Entries: byTotalDesc(groups)}
}

// ByMonth ventes par mois, ordre CHRONOLOGIQUE (série temporelle)
func ByMonth(facts *FactTable) Summary {
	groups := groupBy(facts, func(f *SalesFact) (domain.Period, string, bool) {
		return f.period, f.period.String(), true
	})
	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].period.Before(list[j].period)
	})
	entries := make([]Entry, 0, len(list))
	for _, g := range list {
		entries = append(entries, Entry{Key: g.key, Total: g.total})
	}
	return Summary{Dimension: DimensionMonth, Entries: entries}
}

// TopProducts meilleurs produits par total, groupes sous minTotal écartés
// Le seuil s'applique aux totaux agrégés, jamais aux lignes.
func TopProducts(facts *FactTable, limit int, minTotal domain.Money) Summary {
	groups := groupBy(facts, func(f *SalesFact) (string, string, bool) {
		return f.productName, f.productName, true
	})
	for key, g := range groups {
		if g.total.Cmp(minTotal) < 0 {
			delete(groups, key)
		}
	}
	return Summary{Dimension: DimensionProduct, Entries: limitEntries(byTotalDesc(groups), limit)}
}

// staffName identité d'un vendeur: deux couples (prénom, nom) distincts
// restent deux groupes même si leur libellé affiché est identique.
type staffName struct {
	first string
	last  string
}

// TopStaff meilleurs vendeurs (prénom, nom) par total
// Les lignes dont le vendeur est inconnu sont ignorées.
func TopStaff(facts *FactTable, limit int) Summary {
	groups := groupBy(facts, func(f *SalesFact) (staffName, string, bool) {
		if !f.hasStaff {
			return staffName{}, "", false
		}
		return staffName{first: f.firstName, last: f.lastName}, staffKey(f.firstName, f.lastName), true
	})
	for k, g := range groups {
		g.tie = k.first + "\x00" + k.last
	}
	return Summary{Dimension: DimensionStaff, Entries: limitEntries(byTotalDesc(groups), limit)}
}

func staffKey(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
