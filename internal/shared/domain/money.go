package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount est retournée quand un montant négatif est construit
var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money représente une valeur monétaire exacte (jamais arrondie)
// Les montants sont en décimal pour que les sommes et les exports
// restituent exactement ce qui a été calculé.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney retourne un montant nul
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount}, nil
}

// ParseMoney construit un Money depuis sa représentation textuelle
func ParseMoney(value string) (Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return NewMoney(amount)
}

// MustParseMoney comme ParseMoney mais panique si invalide (tests, constantes)
func MustParseMoney(value string) Money {
	m, err := ParseMoney(value)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// Amount retourne le montant
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add additionne deux montants
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Multiply multiplie le montant par un facteur positif ou nul
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, errors.New("multiplication factor cannot be negative")
	}
	return Money{amount: m.amount.Mul(factor)}, nil
}

// Cmp compare deux montants (-1, 0, 1)
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String rend le montant sans arrondi ni séparateur de milliers
func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON encode le montant comme nombre JSON exact
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}
