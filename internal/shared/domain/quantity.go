package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity quantité non entière ou hors de l'intervalle d'un int
var ErrInvalidQuantity = errors.New("invalid quantity")

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt)
	minQuantity = decimal.NewFromInt(math.MinInt)
)

// Quantity représente une quantité avec validation
type Quantity struct {
	value int
}

// NewQuantity crée une nouvelle instance de Quantity avec validation
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// ParseQuantity lit une quantité entière ("2" ou "2.0" issu d'un export tableur)
func ParseQuantity(value string) (Quantity, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return NewQuantity(n)
	}
	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsInteger() || d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
		return Quantity{}, fmt.Errorf("%w %q", ErrInvalidQuantity, value)
	}
	return NewQuantity(int(d.IntPart()))
}

// MustNewQuantity crée une Quantity en paniquant si invalide
func MustNewQuantity(value int) Quantity {
	q, err := NewQuantity(value)
	if err != nil {
		panic(fmt.Sprintf("invalid quantity: %v", err))
	}
	return q
}

// Value retourne la valeur
func (q Quantity) Value() int {
	return q.value
}

// Decimal retourne la quantité comme facteur décimal
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(q.value))
}

// Add additionne deux quantités
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value + other.value}
}

// IsZero vérifie si la quantité est nulle
func (q Quantity) IsZero() bool {
	return q.value == 0
}
