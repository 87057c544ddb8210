package files

import (
	"reflect"
	"testing"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
	"github.com/shopspring/decimal"
)

func testCollections() Collections {
	return Collections{
		Orders:         "Orders",
		FinishedOrders: "FinishedOrders",
		Items:          "Items",
		FinishedItems:  "FinishedItems",
		Menu:           "MenuItems",
		Stock:          "Stock",
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	s := store.New(t.TempDir(), logging.NewNoopLogger())
	c := NewCatalog(s, testCollections(), logging.NewNoopLogger())
	if err := s.EnsureCollections(c.CollectionNames()...); err != nil {
		t.Fatal(err)
	}
	return c, s
}

func sampleOrder() *restaurant.Order {
	tmpl := restaurant.NewMenuTemplate("Burger", "food", decimal.RequireFromString("8.50"))
	tmpl.Base = restaurant.Ingredients{"Bun": 1, "Patty": 1}
	o := restaurant.NewOrder(1000, 5)
	o.AddItem(restaurant.FromTemplate(tmpl, 1000, 1000, 5))
	o.AddItem(restaurant.FromTemplate(tmpl, 1001, 1000, 5))
	return o
}

func TestOrderRepoSaveGet(t *testing.T) {
	c, s := newTestCatalog(t)
	o := sampleOrder()

	c.Orders.Save(o)

	got, ok := c.Orders.Get(1000)
	if !ok {
		t.Fatal("Get() missing order")
	}
	if got.TableNumber != 5 || !reflect.DeepEqual(got.ItemNumbers(), []int{1000, 1001}) {
		t.Errorf("Get() = %+v", got)
	}
	if !got.Items[0].Price.Equal(decimal.RequireFromString("8.50")) {
		t.Errorf("item price = %s", got.Items[0].Price)
	}
	if !s.Exists("Items", "1001") {
		t.Error("items not stored separately")
	}
}

func TestOrderRepoSkipsMissingItems(t *testing.T) {
	c, _ := newTestCatalog(t)
	o := sampleOrder()
	c.Orders.Save(o)
	c.Items.Delete(1001)

	got, ok := c.Orders.Get(1000)
	if !ok {
		t.Fatal("Get() missing order")
	}
	if !reflect.DeepEqual(got.ItemNumbers(), []int{1000}) {
		t.Errorf("items = %v, want [1000]", got.ItemNumbers())
	}
}

func TestOrderRepoMalformedRecordIsAbsent(t *testing.T) {
	c, s := newTestCatalog(t)
	s.Save("Orders", "1000", []byte("{broken"))

	if _, ok := c.Orders.Get(1000); ok {
		t.Error("Get() returned a malformed order")
	}
	if got := c.Orders.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestOrderRepoFinish(t *testing.T) {
	c, s := newTestCatalog(t)
	o := sampleOrder()
	c.Orders.Save(o)

	c.Orders.Finish(o)

	if c.Orders.Exists(1000) || !c.Orders.ExistsFinished(1000) {
		t.Error("order not moved to finished collection")
	}
	if s.Exists("Items", "1000") || !s.Exists("FinishedItems", "1000") {
		t.Error("items not moved to finished collection")
	}
	got, ok := c.Orders.Get(1000)
	if !ok || !got.Finished || len(got.Items) != 2 {
		t.Errorf("Get() after finish = %+v, %v", got, ok)
	}
	if len(c.Orders.List()) != 0 || len(c.Orders.ListFinished()) != 1 {
		t.Error("List()/ListFinished() disagree with finish")
	}
}

func TestOrderRepoDelete(t *testing.T) {
	c, _ := newTestCatalog(t)
	o := sampleOrder()
	c.Orders.Save(o)

	c.Orders.Delete(o)

	if _, ok := c.Orders.Get(1000); ok {
		t.Error("order still present")
	}
	if len(c.Items.List()) != 0 {
		t.Error("items still present")
	}
}

func TestMenuRepoKinds(t *testing.T) {
	c, s := newTestCatalog(t)
	burger := restaurant.NewMenuTemplate("Burger", "food", decimal.NewFromInt(8))
	cola := restaurant.NewMenuTemplate("Cola", "beverage", decimal.NewFromInt(2))

	c.Menu.Save(burger)
	c.Menu.Save(cola)

	if !s.Exists("MenuItems/Food", "Burger") || !s.Exists("MenuItems/Beverage", "Cola") {
		t.Fatal("templates not filed by kind")
	}

	burger.Kind = "beverage"
	c.Menu.Save(burger)
	if s.Exists("MenuItems/Food", "Burger") {
		t.Error("template left under previous kind")
	}

	names := []string{}
	for _, tmpl := range c.Menu.List() {
		names = append(names, tmpl.Name)
	}
	if !reflect.DeepEqual(names, []string{"Burger", "Cola"}) {
		t.Errorf("List() = %v", names)
	}

	c.Menu.Delete("Cola")
	if c.Menu.Exists("Cola") {
		t.Error("Delete() left template")
	}
	if _, ok := c.Menu.Get("Burger"); !ok {
		t.Error("Get(Burger) missing")
	}
}

func TestSupplyRepo(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.Supplies.Save(restaurant.NewSupply("Tomato", 4))
	c.Supplies.Save(restaurant.NewSupply("Cheese", 10))

	got, ok := c.Supplies.Get("Cheese")
	if !ok || got.Quantity != 10 || got.Threshold != restaurant.DefaultThreshold {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
	list := c.Supplies.List()
	if len(list) != 2 || list[0].Name != "Cheese" {
		t.Errorf("List() = %v", list)
	}
}

func TestCatalogExists(t *testing.T) {
	c, _ := newTestCatalog(t)
	o := sampleOrder()
	tmpl := restaurant.NewMenuTemplate("Burger", "food", decimal.NewFromInt(8))
	supply := restaurant.NewSupply("Cheese", 1)
	c.Orders.Save(o)
	c.Menu.Save(tmpl)
	c.Supplies.Save(supply)

	tests := []struct {
		name   string
		entity restaurant.Entity
		want   bool
	}{
		{name: "order", entity: o, want: true},
		{name: "item", entity: o.Items[0], want: true},
		{name: "menu", entity: tmpl, want: true},
		{name: "supply", entity: supply, want: true},
		{name: "missingOrder", entity: restaurant.NewOrder(2000, 1), want: false},
		{name: "missingItem", entity: &restaurant.Item{Number: 2000}, want: false},
		{name: "missingMenu", entity: restaurant.NewMenuTemplate("Soup", "food", decimal.Zero), want: false},
		{name: "missingSupply", entity: restaurant.NewSupply("Salt", 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Exists(tt.entity); got != tt.want {
				t.Errorf("Exists() = %v, want %v", got, tt.want)
			}
		})
	}
}
