package domain

import (
	"errors"
	"time"

	"bikestore/internal/shared/domain"
)

// OrderID représente l'identifiant unique d'une commande
type OrderID int64

// CustomerID représente l'identifiant d'un client
type CustomerID int64

// StoreID représente l'identifiant d'un magasin (0 si inconnu)
type StoreID int64

// Order représente une commande, immuable une fois chargée
type Order struct {
	id         OrderID
	customerID CustomerID
	staffID    StaffID
	storeID    StoreID
	orderDate  time.Time
}

// NewOrder crée une nouvelle commande avec validation
// orderDate est normalisée à la date calendaire (minuit UTC).
func NewOrder(
	id OrderID,
	customerID CustomerID,
	staffID StaffID,
	storeID StoreID,
	orderDate time.Time,
) (*Order, error) {
	if orderDate.IsZero() {
		return nil, errors.New("order date cannot be empty")
	}

	return &Order{
		id:         id,
		customerID: customerID,
		staffID:    staffID,
		storeID:    storeID,
		orderDate:  domain.DateOf(orderDate),
	}, nil
}

// ID retourne l'identifiant de la commande
func (o *Order) ID() OrderID {
	return o.id
}

// CustomerID retourne l'identifiant du client
func (o *Order) CustomerID() CustomerID {
	return o.customerID
}

// StaffID retourne l'identifiant du vendeur
func (o *Order) StaffID() StaffID {
	return o.staffID
}

// StoreID retourne l'identifiant du magasin
func (o *Order) StoreID() StoreID {
	return o.storeID
}

// OrderDate retourne la date de commande
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}
