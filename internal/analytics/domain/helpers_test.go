package domain

import (
	"testing"

	catalogdomain "bikestore/internal/catalog/domain"
	datasetdomain "bikestore/internal/dataset/domain"
	ordersdomain "bikestore/internal/orders/domain"
	"bikestore/internal/shared/domain"
	"bikestore/internal/testhelpers"

	"github.com/shopspring/decimal"
)

// line une vente à une ligne (quantité 1, sans remise)
type line struct {
	category string
	product  string
	date     string
	amount   string
}

// tableOf construit une table de faits, une commande par ligne
func tableOf(t testing.TB, lines ...line) *FactTable {
	t.Helper()

	categoryIDs := map[string]catalogdomain.CategoryID{}
	productIDs := map[string]catalogdomain.ProductID{}
	var (
		categories []*catalogdomain.Category
		products   []*catalogdomain.Product
		orders     []*ordersdomain.Order
		items      []*ordersdomain.OrderItem
	)
	staff, _ := ordersdomain.NewStaff(1, "Ann", "Lee")

	for i, l := range lines {
		cid, ok := categoryIDs[l.category]
		if !ok {
			cid = catalogdomain.CategoryID(len(categoryIDs) + 1)
			categoryIDs[l.category] = cid
			c, err := catalogdomain.NewCategory(cid, l.category)
			if err != nil {
				t.Fatal(err)
			}
			categories = append(categories, c)
		}
		pid, ok := productIDs[l.product]
		if !ok {
			pid = catalogdomain.ProductID(len(productIDs) + 1)
			productIDs[l.product] = pid
			p, err := catalogdomain.NewProduct(pid, l.product, cid, 2023, domain.MustParseMoney("1"))
			if err != nil {
				t.Fatal(err)
			}
			products = append(products, p)
		}

		orderDate, err := domain.ParseDate(l.date)
		if err != nil {
			t.Fatal(err)
		}
		order, err := ordersdomain.NewOrder(ordersdomain.OrderID(i+1), ordersdomain.CustomerID(i+1), 1, 1, orderDate)
		if err != nil {
			t.Fatal(err)
		}
		orders = append(orders, order)

		item, err := ordersdomain.NewOrderItem(order.ID(), 1, pid, domain.MustNewQuantity(1), domain.MustParseMoney(l.amount), decimal.Zero)
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, item)
	}

	ds := datasetdomain.NewDataset(products, items, orders, categories, []*ordersdomain.Staff{staff})
	facts, _ := BuildFacts(ds)
	return facts
}

// sampleFacts table de faits du jeu de test partagé
func sampleFacts(t *testing.T) (*FactTable, JoinReport) {
	t.Helper()
	return BuildFacts(testhelpers.SampleDataset(t))
}

func assertEntries(t *testing.T, got Summary, want ...string) {
	t.Helper()

	if len(want)%2 != 0 {
		t.Fatal("want must be key/total pairs")
	}
	if got.Len() != len(want)/2 {
		t.Fatalf("%s: got %d entries %v, want %d", got.Dimension, got.Len(), got.Rows(), len(want)/2)
	}
	for i := 0; i < len(want); i += 2 {
		e := got.Entries[i/2]
		if e.Key != want[i] || e.Total.Cmp(domain.MustParseMoney(want[i+1])) != 0 {
			t.Errorf("%s[%d] = (%s, %s), want (%s, %s)", got.Dimension, i/2, e.Key, e.Total, want[i], want[i+1])
		}
	}
}

func rangeOf(t *testing.T, from, to string) domain.DateRange {
	t.Helper()

	start, err := domain.ParseDate(from)
	if err != nil {
		t.Fatal(err)
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		t.Fatal(err)
	}
	return domain.NewDateRange(start, end)
}
