package domain

import (
	"time"

	catalogdomain "bikestore/internal/catalog/domain"
	datasetdomain "bikestore/internal/dataset/domain"
	ordersdomain "bikestore/internal/orders/domain"
	"bikestore/internal/shared/domain"

	"github.com/shopspring/decimal"
)

// SalesFact ligne dénormalisée: une ligne de commande avec son produit,
// sa catégorie, sa commande et son vendeur, plus line_total et period.
// Dérivée, jamais modifiée: les champs sont privés et exposés en lecture.
type SalesFact struct {
	orderID    ordersdomain.OrderID
	itemID     int64
	customerID ordersdomain.CustomerID
	storeID    ordersdomain.StoreID
	orderDate  time.Time

	productID    catalogdomain.ProductID
	productName  string
	modelYear    int
	catalogPrice domain.Money

	categoryID   catalogdomain.CategoryID
	categoryName string

	staffID   ordersdomain.StaffID
	firstName string
	lastName  string
	hasStaff  bool

	quantity  domain.Quantity
	unitPrice domain.Money
	discount  decimal.Decimal

	lineTotal domain.Money
	period    domain.Period
}

// OrderID retourne l'identifiant de la commande
func (f *SalesFact) OrderID() ordersdomain.OrderID { return f.orderID }

// ItemID retourne le numéro de ligne de commande
func (f *SalesFact) ItemID() int64 { return f.itemID }

// CustomerID retourne l'identifiant du client
func (f *SalesFact) CustomerID() ordersdomain.CustomerID { return f.customerID }

// StoreID retourne l'identifiant du magasin
func (f *SalesFact) StoreID() ordersdomain.StoreID { return f.storeID }

// OrderDate retourne la date de commande
func (f *SalesFact) OrderDate() time.Time { return f.orderDate }

// ProductID retourne l'identifiant du produit
func (f *SalesFact) ProductID() catalogdomain.ProductID { return f.productID }

// ProductName retourne le nom du produit
func (f *SalesFact) ProductName() string { return f.productName }

// ModelYear retourne l'année du modèle
func (f *SalesFact) ModelYear() int { return f.modelYear }

// CatalogPrice retourne le prix catalogue actuel (list_price_product)
func (f *SalesFact) CatalogPrice() domain.Money { return f.catalogPrice }

// CategoryID retourne l'identifiant de la catégorie
func (f *SalesFact) CategoryID() catalogdomain.CategoryID { return f.categoryID }

// CategoryName retourne le nom de la catégorie
func (f *SalesFact) CategoryName() string { return f.categoryName }

// StaffID retourne l'identifiant du vendeur (0 si inconnu)
func (f *SalesFact) StaffID() ordersdomain.StaffID { return f.staffID }

// FirstName retourne le prénom du vendeur
func (f *SalesFact) FirstName() string { return f.firstName }

// LastName retourne le nom du vendeur
func (f *SalesFact) LastName() string { return f.lastName }

// HasStaff indique si le vendeur de la commande a été trouvé
func (f *SalesFact) HasStaff() bool { return f.hasStaff }

// Quantity retourne la quantité vendue
func (f *SalesFact) Quantity() domain.Quantity { return f.quantity }

// UnitPrice retourne le prix pratiqué (list_price_order)
func (f *SalesFact) UnitPrice() domain.Money { return f.unitPrice }

// Discount retourne la remise
func (f *SalesFact) Discount() decimal.Decimal { return f.discount }

// LineTotal retourne quantity * unit_price * (1 - discount)
func (f *SalesFact) LineTotal() domain.Money { return f.lineTotal }

// Period retourne le mois calendaire de la commande
func (f *SalesFact) Period() domain.Period { return f.period }

// FactTable collection immuable de SalesFact
// Partageable librement entre goroutines: aucune méthode ne la modifie.
type FactTable struct {
	facts []*SalesFact
}

// NewFactTable enveloppe des faits existants
func NewFactTable(facts []*SalesFact) *FactTable {
	return &FactTable{facts: facts}
}

// Len retourne le nombre de lignes
func (t *FactTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.facts)
}

// At retourne la i-ème ligne
func (t *FactTable) At(i int) *SalesFact {
	return t.facts[i]
}

// Each parcourt les lignes dans l'ordre
func (t *FactTable) Each(fn func(f *SalesFact)) {
	if t == nil {
		return
	}
	for _, f := range t.facts {
		fn(f)
	}
}

// Total somme les line_total de toutes les lignes
func (t *FactTable) Total() domain.Money {
	total := domain.ZeroMoney()
	t.Each(func(f *SalesFact) {
		total = total.Add(f.lineTotal)
	})
	return total
}

// JoinReport compte les lignes conservées et écartées par les jointures internes
// Les écarts référentiels ne sont pas des erreurs: l'appelant qui veut les
// surveiller compare ItemsIn et FactsOut.
type JoinReport struct {
	ItemsIn            int
	FactsOut           int
	MissingProduct     int
	MissingCategory    int
	MissingOrder       int
	MissingStaffOnFact int
}

// Dropped retourne le nombre de lignes écartées
func (r JoinReport) Dropped() int {
	return r.ItemsIn - r.FactsOut
}

// BuildFacts joint les tables du dataset en une table de faits
// Jointures internes OrderItem -> Product -> Category -> Order, dans l'ordre
// des lignes de commande. Le vendeur est rattaché par recherche: un vendeur
// manquant n'écarte pas la ligne. Fonction pure.
func BuildFacts(ds *datasetdomain.Dataset) (*FactTable, JoinReport) {
	products := make(map[catalogdomain.ProductID]*catalogdomain.Product)
	for _, p := range ds.Products() {
		products[p.ID()] = p
	}
	categories := make(map[catalogdomain.CategoryID]*catalogdomain.Category)
	for _, c := range ds.Categories() {
		categories[c.ID()] = c
	}
	orders := make(map[ordersdomain.OrderID]*ordersdomain.Order)
	for _, o := range ds.Orders() {
		orders[o.ID()] = o
	}
	staffs := make(map[ordersdomain.StaffID]*ordersdomain.Staff)
	for _, s := range ds.Staffs() {
		staffs[s.ID()] = s
	}

	items := ds.OrderItems()
	report := JoinReport{ItemsIn: len(items)}
	facts := make([]*SalesFact, 0, len(items))

	for _, item := range items {
		product, ok := products[item.ProductID()]
		if !ok {
			report.MissingProduct++
			continue
		}
		category, ok := categories[product.CategoryID()]
		if !ok {
			report.MissingCategory++
			continue
		}
		order, ok := orders[item.OrderID()]
		if !ok {
			report.MissingOrder++
			continue
		}

		fact := &SalesFact{
			orderID:      order.ID(),
			itemID:       item.ItemID(),
			customerID:   order.CustomerID(),
			storeID:      order.StoreID(),
			orderDate:    order.OrderDate(),
			productID:    product.ID(),
			productName:  product.Name(),
			modelYear:    product.ModelYear(),
			catalogPrice: product.ListPrice(),
			categoryID:   category.ID(),
			categoryName: category.Name(),
			staffID:      order.StaffID(),
			quantity:     item.Quantity(),
			unitPrice:    item.UnitPrice(),
			discount:     item.Discount(),
			lineTotal:    item.LineTotal(),
			period:       domain.PeriodOf(order.OrderDate()),
		}
		if staff, ok := staffs[order.StaffID()]; ok {
			fact.firstName = staff.FirstName()
			fact.lastName = staff.LastName()
			fact.hasStaff = true
		} else {
			report.MissingStaffOnFact++
		}
		facts = append(facts, fact)
	}

	report.FactsOut = len(facts)
	return NewFactTable(facts), report
}
