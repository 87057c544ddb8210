package restaurant

import (
	"fmt"
	"strings"
)

// Category is the closed set of replicated entity kinds. Adding a value
// means extending every switch over it.
type Category int

const (
	CategoryOrder Category = iota + 1
	CategoryOrderItem
	CategoryMenuItem
	CategorySupply
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryOrder,
	CategoryOrderItem,
	CategoryMenuItem,
	CategorySupply,
}

func (c Category) Code() string {
	switch c {
	case CategoryOrder:
		return "order"
	case CategoryOrderItem:
		return "item"
	case CategoryMenuItem:
		return "menu"
	case CategorySupply:
		return "supply"
	default:
		return ""
	}
}

func (c Category) String() string {
	if code := c.Code(); code != "" {
		return code
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) Valid() bool {
	return c.Code() != ""
}

// CategoryByCode returns the category for a code, or false if unknown.
func CategoryByCode(code string) (Category, bool) {
	for _, c := range Categories {
		if c.Code() == code {
			return c, true
		}
	}
	return 0, false
}

// Entity is anything the store persists and the broadcaster replicates.
type Entity interface {
	Category() Category
	Key() string
}

// RefOf returns the category-qualified key of e, e.g. "order-1000".
// Order and item numbers share a numeric range, so lock and mailbox files
// are always named by ref.
func RefOf(e Entity) string {
	return e.Category().Code() + "-" + e.Key()
}

// ParseRef splits a ref produced by RefOf.
func ParseRef(ref string) (Category, string, error) {
	code, key, ok := strings.Cut(ref, "-")
	if !ok || key == "" {
		return 0, "", fmt.Errorf("malformed ref %q", ref)
	}
	c, ok := CategoryByCode(code)
	if !ok {
		return 0, "", fmt.Errorf("unknown category in ref %q", ref)
	}
	return c, key, nil
}
