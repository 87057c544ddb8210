package restaurant

import (
	"fmt"
	"strconv"
)

// Order groups the items of one table visit. Finished orders have been paid.
type Order struct {
	Number      int     `json:"number"`
	TableNumber int     `json:"table_number"`
	Finished    bool    `json:"finished"`
	Items       []*Item `json:"items"`
}

func NewOrder(number, tableNumber int) *Order {
	return &Order{Number: number, TableNumber: tableNumber, Items: []*Item{}}
}

func (o *Order) Category() Category { return CategoryOrder }

func (o *Order) Key() string { return strconv.Itoa(o.Number) }

func (o *Order) AddItem(item *Item) {
	o.Items = append(o.Items, item)
}

// PutItem replaces the item with the same number or appends it.
func (o *Order) PutItem(item *Item) {
	for idx, existing := range o.Items {
		if existing.Number == item.Number {
			o.Items[idx] = item
			return
		}
	}
	o.AddItem(item)
}

// RemoveItem drops the numbered item and reports whether it was present.
func (o *Order) RemoveItem(number int) bool {
	for idx, existing := range o.Items {
		if existing.Number == number {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			return true
		}
	}
	return false
}

func (o *Order) Item(number int) *Item {
	for _, item := range o.Items {
		if item.Number == number {
			return item
		}
	}
	return nil
}

func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// IsReady reports whether every item is ready or served.
func (o *Order) IsReady() bool {
	for _, item := range o.Items {
		if !item.IsReady() {
			return false
		}
	}
	return true
}

// IsSeen reports whether the kitchen acknowledged every item.
func (o *Order) IsSeen() bool {
	for _, item := range o.Items {
		if !item.IsSeen() {
			return false
		}
	}
	return true
}

func (o *Order) ItemNumbers() []int {
	numbers := make([]int, 0, len(o.Items))
	for _, item := range o.Items {
		numbers = append(numbers, item.Number)
	}
	return numbers
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d (table %d)", o.Number, o.TableNumber)
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]*Item, 0, len(o.Items))
	for _, item := range o.Items {
		c.Items = append(c.Items, item.Clone())
	}
	return &c
}
