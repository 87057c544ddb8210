package restaurant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/appetiteclub/floorsync/pkg/enums/itemstatus"
	"github.com/appetiteclub/floorsync/pkg/enums/location"
	"github.com/appetiteclub/floorsync/pkg/enums/menukind"
	"github.com/shopspring/decimal"
)

// MenuTemplateNumber marks an Item acting as a menu template.
const MenuTemplateNumber = -1

var (
	ErrAdditionNotAvailable    = errors.New("addition not available for item")
	ErrSubtractionNotAvailable = errors.New("subtraction not available for item")
)

// Item is both a menu template (Number == MenuTemplateNumber) and an ordered
// item derived from one. Ordered items copy their template at creation and
// never follow it afterwards.
type Item struct {
	Number      int             `json:"number"`
	OrderNumber int             `json:"order_number,omitempty"`
	TableNumber int             `json:"table_number,omitempty"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`

	Base                  Ingredients `json:"base,omitempty"`
	AvailableAdditions    Ingredients `json:"available_additions,omitempty"`
	AvailableSubtractions Ingredients `json:"available_subtractions,omitempty"`
	Additions             Ingredients `json:"additions,omitempty"`
	Subtractions          Ingredients `json:"subtractions,omitempty"`

	AdditionalRequest string `json:"additional_request,omitempty"`
	Status            string `json:"status,omitempty"`
	Location          string `json:"location,omitempty"`
}

// NewMenuTemplate returns a template of the given kind. Unknown kinds
// default to food.
func NewMenuTemplate(name, kind string, price decimal.Decimal) *Item {
	k := menukind.Kinds.Food
	if found := menukind.ByName(kind); found != nil {
		k = *found
	}
	return &Item{
		Number:                MenuTemplateNumber,
		Name:                  name,
		Kind:                  k.Code(),
		Price:                 price,
		Base:                  Ingredients{},
		AvailableAdditions:    Ingredients{},
		AvailableSubtractions: Ingredients{},
	}
}

// FromTemplate derives an unseen ordered item from a menu template.
func FromTemplate(tmpl *Item, number, orderNumber, tableNumber int) *Item {
	return &Item{
		Number:                number,
		OrderNumber:           orderNumber,
		TableNumber:           tableNumber,
		Name:                  tmpl.Name,
		Kind:                  tmpl.Kind,
		Price:                 tmpl.Price,
		Description:           tmpl.Description,
		Base:                  tmpl.Base.Clone(),
		AvailableAdditions:    tmpl.AvailableAdditions.Clone(),
		AvailableSubtractions: tmpl.AvailableSubtractions.Clone(),
		Additions:             Ingredients{},
		Subtractions:          Ingredients{},
		Status:                itemstatus.Statuses.Unseen.Code(),
		Location:              location.Locations.Kitchen.Code(),
	}
}

func (i *Item) Category() Category {
	if i.IsTemplate() {
		return CategoryMenuItem
	}
	return CategoryOrderItem
}

func (i *Item) Key() string {
	if i.IsTemplate() {
		return i.Name
	}
	return strconv.Itoa(i.Number)
}

func (i *Item) IsTemplate() bool {
	return i.Number == MenuTemplateNumber
}

// Needed returns the ingredients this item consumes.
func (i *Item) Needed() Ingredients {
	return Needed(i.Base, i.Subtractions, i.Additions)
}

// AddAddition adds one serving of an available addition. Repeating it
// stacks the quantity.
func (i *Item) AddAddition(name string) error {
	q, ok := i.AvailableAdditions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAdditionNotAvailable, name)
	}
	if i.Additions == nil {
		i.Additions = Ingredients{}
	}
	i.Additions[name] += q
	return nil
}

// AddSubtraction applies an available subtraction. Repeating it is a no-op.
func (i *Item) AddSubtraction(name string) error {
	q, ok := i.AvailableSubtractions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSubtractionNotAvailable, name)
	}
	if i.Subtractions == nil {
		i.Subtractions = Ingredients{}
	}
	i.Subtractions[name] = q
	return nil
}

// IsSeen reports whether the kitchen has acknowledged the item.
func (i *Item) IsSeen() bool {
	return itemstatus.Rank(i.Status) >= itemstatus.Rank(itemstatus.Statuses.Seen.Code())
}

func (i *Item) IsReady() bool {
	return itemstatus.Rank(i.Status) >= itemstatus.Rank(itemstatus.Statuses.Ready.Code())
}

func (i *Item) IsServed() bool {
	return i.Status == itemstatus.Statuses.Served.Code()
}

func (i *Item) MarkSeen() {
	i.Status = itemstatus.Statuses.Seen.Code()
}

// MarkReady flags the item as cooked and moves it to the front.
func (i *Item) MarkReady() {
	i.Status = itemstatus.Statuses.Ready.Code()
	i.Location = location.Locations.Front.Code()
}

func (i *Item) MarkServed() {
	i.Status = itemstatus.Statuses.Served.Code()
}

func (i *Item) SendToKitchen() {
	i.Location = location.Locations.Kitchen.Code()
}

func (i *Item) ResetStatus() {
	i.Status = itemstatus.Statuses.Unseen.Code()
}

// AppendRequest adds a line to the additional request.
func (i *Item) AppendRequest(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if i.AdditionalRequest == "" {
		i.AdditionalRequest = text
		return
	}
	i.AdditionalRequest += "\n" + text
}

func (i *Item) InKitchen() bool {
	return i.Location == location.Locations.Kitchen.Code()
}

func (i *Item) String() string {
	if i.IsTemplate() {
		return i.Name
	}
	return fmt.Sprintf("%s #%d", i.Name, i.Number)
}

// Clone returns a deep copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Base = i.Base.Clone()
	c.AvailableAdditions = i.AvailableAdditions.Clone()
	c.AvailableSubtractions = i.AvailableSubtractions.Clone()
	c.Additions = i.Additions.Clone()
	c.Subtractions = i.Subtractions.Clone()
	return &c
}
