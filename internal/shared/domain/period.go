package domain

import (
	"fmt"
	"time"
)

// PeriodLayout est la représentation textuelle d'un mois calendaire
const PeriodLayout = "2006-01"

// Period représente un mois calendaire, clé triable (année, mois)
type Period struct {
	year  int
	month time.Month
}

// PeriodOf retourne le mois calendaire d'une date
func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

// ParsePeriod lit une période "YYYY-MM"
func ParsePeriod(value string) (Period, error) {
	t, err := time.Parse(PeriodLayout, value)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", value, err)
	}
	return PeriodOf(t), nil
}

// Year retourne l'année
func (p Period) Year() int {
	return p.year
}

// Month retourne le mois
func (p Period) Month() time.Month {
	return p.month
}

// Before indique si p précède other chronologiquement
func (p Period) Before(other Period) bool {
	if p.year != other.year {
		return p.year < other.year
	}
	return p.month < other.month
}

// String rend la période au format "YYYY-MM"
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}
