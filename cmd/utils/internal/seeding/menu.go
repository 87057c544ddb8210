package seeding

import (
	"errors"

	"github.com/appetiteclub/floorsync/internal/floor"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/logging"
	"github.com/shopspring/decimal"
)

type demoTemplate struct {
	name         string
	kind         string
	price        string
	description  string
	base         restaurant.Ingredients
	additions    restaurant.Ingredients
	subtractions restaurant.Ingredients
}

var demoMenu = []demoTemplate{
	{
		name:         "Burger",
		kind:         "food",
		price:        "8.50",
		description:  "Beef patty on a toasted bun",
		base:         restaurant.Ingredients{"Bun": 1, "Patty": 1, "Lettuce": 1, "Tomato": 1},
		additions:    restaurant.Ingredients{"Cheese": 1, "Bacon": 2, "Patty": 1},
		subtractions: restaurant.Ingredients{"Lettuce": 1, "Tomato": 1},
	},
	{
		name:         "Fries",
		kind:         "food",
		price:        "3.00",
		base:         restaurant.Ingredients{"Potato": 2},
		additions:    restaurant.Ingredients{"Cheese": 2},
		subtractions: restaurant.Ingredients{},
	},
	{
		name:         "Grilled Cheese",
		kind:         "food",
		price:        "6.25",
		base:         restaurant.Ingredients{"Bread": 2, "Cheese": 2},
		additions:    restaurant.Ingredients{"Tomato": 1, "Bacon": 2},
		subtractions: restaurant.Ingredients{},
	},
	{
		name:         "Lemonade",
		kind:         "beverage",
		price:        "2.75",
		base:         restaurant.Ingredients{"Lemon": 2, "Sugar": 1},
		additions:    restaurant.Ingredients{"Sugar": 1},
		subtractions: restaurant.Ingredients{"Sugar": 1},
	},
	{
		name:         "Iced Tea",
		kind:         "beverage",
		price:        "2.50",
		base:         restaurant.Ingredients{"Tea": 1},
		additions:    restaurant.Ingredients{"Lemon": 1, "Sugar": 1},
		subtractions: restaurant.Ingredients{},
	},
}

var demoStock = map[string]int{
	"Bun":     40,
	"Patty":   40,
	"Lettuce": 30,
	"Tomato":  30,
	"Cheese":  50,
	"Bacon":   30,
	"Potato":  60,
	"Bread":   30,
	"Lemon":   25,
	"Sugar":   40,
	"Tea":     25,
}

// Result counts what a seeding run created.
type Result struct {
	Templates int
	Supplies  int
}

// DemoTemplates builds the demo menu templates.
func DemoTemplates() []*restaurant.Item {
	out := make([]*restaurant.Item, 0, len(demoMenu))
	for _, d := range demoMenu {
		tmpl := restaurant.NewMenuTemplate(d.name, d.kind, decimal.RequireFromString(d.price))
		tmpl.Description = d.description
		tmpl.Base = d.base.Clone()
		tmpl.AvailableAdditions = d.additions.Clone()
		tmpl.AvailableSubtractions = d.subtractions.Clone()
		out = append(out, tmpl)
	}
	return out
}

// SeedMenu creates the demo menu and stock through the floor services so
// running stations receive the changes. Existing entries are left alone,
// which makes repeated runs harmless.
func SeedMenu(f *floor.Floor, logger logging.Logger) (Result, error) {
	logger = logging.OrNoop(logger)
	var res Result

	for _, tmpl := range DemoTemplates() {
		err := f.Menu.Create(tmpl)
		switch {
		case errors.Is(err, floor.ErrMenuItemExists):
			logger.Debug("demo template already present", "name", tmpl.Name)
		case err != nil:
			return res, err
		default:
			res.Templates++
		}
	}

	for _, name := range restaurant.Ingredients(demoStock).Names() {
		_, err := f.Stock.Create(name, demoStock[name])
		switch {
		case errors.Is(err, floor.ErrSupplyExists):
			logger.Debug("demo supply already present", "supply", name)
		case err != nil:
			return res, err
		default:
			res.Supplies++
		}
	}

	logger.Info("demo seeding applied", "templates", res.Templates, "supplies", res.Supplies)
	return res, nil
}
