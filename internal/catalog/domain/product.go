package domain

import (
	"errors"

	"bikestore/internal/shared/domain"
)

// ProductID représente l'identifiant unique d'un produit
type ProductID int64

// Product représente un produit du catalogue
// listPrice est le prix catalogue ACTUEL (list_price_product), à ne pas
// confondre avec le prix pratiqué au moment de la vente porté par OrderItem.
type Product struct {
	id         ProductID
	name       string
	categoryID CategoryID
	modelYear  int
	listPrice  domain.Money
}

// NewProduct crée une nouvelle instance de Product avec validation
func NewProduct(
	id ProductID,
	name string,
	categoryID CategoryID,
	modelYear int,
	listPrice domain.Money,
) (*Product, error) {
	if name == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if modelYear < 0 {
		return nil, errors.New("model year cannot be negative")
	}

	return &Product{
		id:         id,
		name:       name,
		categoryID: categoryID,
		modelYear:  modelYear,
		listPrice:  listPrice,
	}, nil
}

// ID retourne l'identifiant du produit
func (p *Product) ID() ProductID {
	return p.id
}

// Name retourne le nom du produit
func (p *Product) Name() string {
	return p.name
}

// CategoryID retourne la catégorie du produit
func (p *Product) CategoryID() CategoryID {
	return p.categoryID
}

// ModelYear retourne l'année du modèle
func (p *Product) ModelYear() int {
	return p.modelYear
}

// ListPrice retourne le prix catalogue actuel
func (p *Product) ListPrice() domain.Money {
	return p.listPrice
}
