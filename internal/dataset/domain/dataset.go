package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	catalogdomain "bikestore/internal/catalog/domain"
	ordersdomain "bikestore/internal/orders/domain"
	shareddomain "bikestore/internal/shared/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dataset contexte explicite contenant les cinq tables typées
// Une génération (UUID) identifie chaque chargement: tout ce qui est dérivé
// du dataset (table de faits) est mémoïsé par génération et jamais patché.
type Dataset struct {
	generation uuid.UUID
	loadedAt   time.Time
	products   []*catalogdomain.Product
	categories []*catalogdomain.Category
	orders     []*ordersdomain.Order
	orderItems []*ordersdomain.OrderItem
	staffs     []*ordersdomain.Staff
}

// NewDataset assemble un dataset à partir de tables déjà typées
func NewDataset(
	products []*catalogdomain.Product,
	orderItems []*ordersdomain.OrderItem,
	orders []*ordersdomain.Order,
	categories []*catalogdomain.Category,
	staffs []*ordersdomain.Staff,
) *Dataset {
	return &Dataset{
		generation: uuid.New(),
		loadedAt:   time.Now(),
		products:   products,
		categories: categories,
		orders:     orders,
		orderItems: orderItems,
		staffs:     staffs,
	}
}

// Generation retourne l'identité de ce chargement
func (d *Dataset) Generation() uuid.UUID {
	return d.generation
}

// LoadedAt retourne l'instant du chargement
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Products retourne les produits
func (d *Dataset) Products() []*catalogdomain.Product {
	return append([]*catalogdomain.Product{}, d.products...)
}

// Categories retourne les catégories
func (d *Dataset) Categories() []*catalogdomain.Category {
	return append([]*catalogdomain.Category{}, d.categories...)
}

// Orders retourne les commandes
func (d *Dataset) Orders() []*ordersdomain.Order {
	return append([]*ordersdomain.Order{}, d.orders...)
}

// OrderItems retourne les lignes de commande
func (d *Dataset) OrderItems() []*ordersdomain.OrderItem {
	return append([]*ordersdomain.OrderItem{}, d.orderItems...)
}

// Staffs retourne les vendeurs
func (d *Dataset) Staffs() []*ordersdomain.Staff {
	return append([]*ordersdomain.Staff{}, d.staffs...)
}

// BuildDataset valide et type les cinq tables brutes
// La première erreur rencontrée est retournée sous forme de *LoadError.
func BuildDataset(raw map[string]*RawTable) (*Dataset, error) {
	products, err := parseProducts(raw[TableProducts])
	if err != nil {
		return nil, err
	}
	orderItems, err := parseOrderItems(raw[TableOrderItems])
	if err != nil {
		return nil, err
	}
	orders, err := parseOrders(raw[TableOrders])
	if err != nil {
		return nil, err
	}
	categories, err := parseCategories(raw[TableCategories])
	if err != nil {
		return nil, err
	}
	staffs, err := parseStaffs(raw[TableStaffs])
	if err != nil {
		return nil, err
	}
	return NewDataset(products, orderItems, orders, categories, staffs), nil
}

// dateLayouts formats acceptés pour order_date
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseOrderDate lit une date de commande dans l'un des formats acceptés
func ParseOrderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return shareddomain.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// rowParser accumule le contexte d'erreur d'une ligne en cours de lecture
type rowParser struct {
	table *boundTable
	name  string
	row   []string
	line  int
	err   error
}

func (p *rowParser) fail(column string, err error) {
	if p.err == nil {
		p.err = &LoadError{Table: p.name, Row: p.line, Column: column, Err: err}
	}
}

func (p *rowParser) text(column string) string {
	return strings.TrimSpace(p.table.value(p.row, column))
}

func (p *rowParser) int64(column string) int64 {
	v := p.text(column)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(column, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v))
	}
	return n
}

// optionalInt64 traite "" et "NULL" comme absents (0)
func (p *rowParser) optionalInt64(column string) int64 {
	v := p.text(column)
	if v == "" || strings.EqualFold(v, "null") {
		return 0
	}
	return p.int64(column)
}

func (p *rowParser) decimal(column string) decimal.Decimal {
	v := p.text(column)
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.fail(column, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v))
	}
	return d
}

func (p *rowParser) money(column string) shareddomain.Money {
	m, err := shareddomain.NewMoney(p.decimal(column))
	if err != nil {
		p.fail(column, fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}
	return m
}

func (p *rowParser) quantity(column string) shareddomain.Quantity {
	q, err := shareddomain.ParseQuantity(p.text(column))
	if err != nil {
		p.fail(column, fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}
	return q
}

func (p *rowParser) date(column string) time.Time {
	t, err := ParseOrderDate(p.text(column))
	if err != nil {
		p.fail(column, err)
	}
	return t
}

// eachRow applique fn à chaque ligne de la table, arrêt à la première erreur
func eachRow(table string, raw *RawTable, fn func(p *rowParser) error) error {
	bound, err := Schemas[table].bind(raw)
	if err != nil {
		return err
	}
	for i, row := range bound.raw.Rows {
		p := &rowParser{table: bound, name: table, row: row, line: i + 1}
		if err := fn(p); err != nil {
			if p.err != nil {
				return p.err
			}
			return &LoadError{Table: table, Row: p.line, Err: err}
		}
		if p.err != nil {
			return p.err
		}
	}
	return nil
}

// uniqueKeys détecte les clés primaires dupliquées
type uniqueKeys map[int64]struct{}

func (u uniqueKeys) add(p *rowParser, column string, key int64) {
	if _, dup := u[key]; dup {
		p.fail(column, fmt.Errorf("%w: %d", ErrDuplicateKey, key))
		return
	}
	u[key] = struct{}{}
}

func parseProducts(raw *RawTable) ([]*catalogdomain.Product, error) {
	var out []*catalogdomain.Product
	seen := uniqueKeys{}
	err := eachRow(TableProducts, raw, func(p *rowParser) error {
		id := p.int64("product_id")
		seen.add(p, "product_id", id)
		year := p.int64("model_year")
		price := p.money(ColumnListPriceProduct)
		categoryID := p.int64("category_id")
		if p.err != nil {
			return p.err
		}
		product, err := catalogdomain.NewProduct(
			catalogdomain.ProductID(id),
			p.text("product_name"),
			catalogdomain.CategoryID(categoryID),
			int(year),
			price,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		out = append(out, product)
		return nil
	})
	return out, err
}

func parseOrderItems(raw *RawTable) ([]*ordersdomain.OrderItem, error) {
	var out []*ordersdomain.OrderItem
	err := eachRow(TableOrderItems, raw, func(p *rowParser) error {
		orderID := p.int64("order_id")
		itemID := p.optionalInt64("item_id")
		productID := p.int64("product_id")
		qty := p.quantity("quantity")
		price := p.money(ColumnListPriceOrder)
		discount := p.decimal("discount")
		if p.err != nil {
			return p.err
		}
		item, err := ordersdomain.NewOrderItem(
			ordersdomain.OrderID(orderID),
			itemID,
			catalogdomain.ProductID(productID),
			qty,
			price,
			discount,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		out = append(out, item)
		return nil
	})
	return out, err
}

func parseOrders(raw *RawTable) ([]*ordersdomain.Order, error) {
	var out []*ordersdomain.Order
	seen := uniqueKeys{}
	err := eachRow(TableOrders, raw, func(p *rowParser) error {
		id := p.int64("order_id")
		seen.add(p, "order_id", id)
		customerID := p.optionalInt64("customer_id")
		staffID := p.optionalInt64("staff_id")
		storeID := p.optionalInt64("store_id")
		orderDate := p.date("order_date")
		if p.err != nil {
			return p.err
		}
		order, err := ordersdomain.NewOrder(
			ordersdomain.OrderID(id),
			ordersdomain.CustomerID(customerID),
			ordersdomain.StaffID(staffID),
			ordersdomain.StoreID(storeID),
			orderDate,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
		out = append(out, order)
		return nil
	})
	return out, err
}

func parseCategories(raw *RawTable) ([]*catalogdomain.Category, error) {
	var out []*catalogdomain.Category
	seen := uniqueKeys{}
	err := eachRow(TableCategories, raw, func(p *rowParser) error {
		id := p.int64("category_id")
		seen.add(p, "category_id", id)
		if p.err != nil {
			return p.err
		}
		category, err := catalogdomain.NewCategory(catalogdomain.CategoryID(id), p.text("category_name"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		out = append(out, category)
		return nil
	})
	return out, err
}

func parseStaffs(raw *RawTable) ([]*ordersdomain.Staff, error) {
	var out []*ordersdomain.Staff
	seen := uniqueKeys{}
	err := eachRow(TableStaffs, raw, func(p *rowParser) error {
		id := p.int64("staff_id")
		seen.add(p, "staff_id", id)
		if p.err != nil {
			return p.err
		}
		staff, err := ordersdomain.NewStaff(ordersdomain.StaffID(id), p.text("first_name"), p.text("last_name"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		out = append(out, staff)
		return nil
	})
	return out, err
}
