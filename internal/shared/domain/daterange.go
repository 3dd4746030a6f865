package domain

import (
	"time"
)

// DateLayout est le format calendaire utilisé partout (paramètres, exports)
const DateLayout = "2006-01-02"

// DateOf tronque un instant à sa date calendaire (minuit UTC)
// Toutes les comparaisons de dates se font sur des valeurs normalisées
// par DateOf, l'heure et le fuseau de la source sont ignorés.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate lit une date au format YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DateRange représente une période calendaire aux bornes inclusives
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - start > end est une période valide mais vide (aucune date ne la satisfait)
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée une période à partir de deux dates (bornes incluses)
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		start: DateOf(start),
		end:   DateOf(end),
	}
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// IsEmpty indique que la borne de début est postérieure à la borne de fin
func (dr DateRange) IsEmpty() bool {
	return dr.start.After(dr.end)
}

// Contains vérifie si une date appartient à la période (bornes incluses)
func (dr DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(dr.start) && !d.After(dr.end)
}

// String rend la période sous la forme "2016-01-01..2018-12-28"
func (dr DateRange) String() string {
	return dr.start.Format(DateLayout) + ".." + dr.end.Format(DateLayout)
}
