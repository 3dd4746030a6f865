package domain

import (
	"errors"
	"fmt"

	catalogdomain "bikestore/internal/catalog/domain"
	"bikestore/internal/shared/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidDiscount est retournée pour une remise hors de [0, 1)
var ErrInvalidDiscount = errors.New("discount must be in [0, 1)")

// OrderItem représente une ligne de commande
// unitPrice est le prix AU MOMENT DE LA VENTE (list_price_order), distinct
// du prix catalogue actuel du produit.
type OrderItem struct {
	orderID   OrderID
	itemID    int64
	productID catalogdomain.ProductID
	quantity  domain.Quantity
	unitPrice domain.Money
	discount  decimal.Decimal
}

// NewOrderItem crée un nouvel item de commande avec validation
// Une remise hors de [0, 1) est une erreur de qualité des données:
// elle n'est jamais ramenée silencieusement dans l'intervalle.
func NewOrderItem(
	orderID OrderID,
	itemID int64,
	productID catalogdomain.ProductID,
	quantity domain.Quantity,
	unitPrice domain.Money,
	discount decimal.Decimal,
) (*OrderItem, error) {
	if quantity.IsZero() {
		return nil, errors.New("quantity cannot be zero")
	}
	if discount.IsNegative() || discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDiscount, discount)
	}

	return &OrderItem{
		orderID:   orderID,
		itemID:    itemID,
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		discount:  discount,
	}, nil
}

// OrderID retourne l'identifiant de la commande
func (oi *OrderItem) OrderID() OrderID {
	return oi.orderID
}

// ItemID retourne le numéro de ligne dans la commande
func (oi *OrderItem) ItemID() int64 {
	return oi.itemID
}

// ProductID retourne l'identifiant du produit
func (oi *OrderItem) ProductID() catalogdomain.ProductID {
	return oi.productID
}

// Quantity retourne la quantité
func (oi *OrderItem) Quantity() domain.Quantity {
	return oi.quantity
}

// UnitPrice retourne le prix unitaire pratiqué
func (oi *OrderItem) UnitPrice() domain.Money {
	return oi.unitPrice
}

// Discount retourne la remise (fraction dans [0, 1))
func (oi *OrderItem) Discount() decimal.Decimal {
	return oi.discount
}

// LineTotal calcule quantity * unit_price * (1 - discount), sans arrondi
// Toujours >= 0 grâce aux invariants du constructeur.
func (oi *OrderItem) LineTotal() domain.Money {
	gross, _ := oi.unitPrice.Multiply(oi.quantity.Decimal())
	net, _ := gross.Multiply(decimal.NewFromInt(1).Sub(oi.discount))
	return net
}
