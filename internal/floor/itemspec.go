package floor

import (
	"fmt"
	"strings"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// ItemSpec is the text form of a customized item:
//
//	Burger
//	+Bacon
//	-Pickle
//	*no salt
//
// The first line names the menu item. "+" adds one serving of an available
// addition, "-" applies an available subtraction, "*" adds a line to the
// additional request.
type ItemSpec struct {
	Name         string
	Additions    []string
	Subtractions []string
	Request      string
}

func ParseItemSpec(text string) (ItemSpec, error) {
	var spec ItemSpec
	var requests []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if spec.Name == "" {
			spec.Name = line
			continue
		}
		body := strings.TrimSpace(line[1:])
		switch line[0] {
		case '+':
			if body != "" {
				spec.Additions = append(spec.Additions, body)
			}
		case '-':
			if body != "" {
				spec.Subtractions = append(spec.Subtractions, body)
			}
		case '*':
			if body != "" {
				requests = append(requests, body)
			}
		default:
			return ItemSpec{}, fmt.Errorf("unrecognized item spec line %q", line)
		}
	}
	if spec.Name == "" {
		return ItemSpec{}, fmt.Errorf("%w: item spec has no menu item name", ErrInvalidName)
	}
	spec.Request = strings.Join(requests, "\n")
	return spec, nil
}

func (s ItemSpec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, a := range s.Additions {
		b.WriteString("\n+" + a)
	}
	for _, sub := range s.Subtractions {
		b.WriteString("\n-" + sub)
	}
	if s.Request != "" {
		for _, line := range strings.Split(s.Request, "\n") {
			b.WriteString("\n*" + line)
		}
	}
	return b.String()
}

// SpecOf renders an item back into spec form.
func SpecOf(item *restaurant.Item) ItemSpec {
	spec := ItemSpec{Name: item.Name, Request: item.AdditionalRequest}
	for _, name := range item.Additions.Names() {
		times := 1
		if per := item.AvailableAdditions[name]; per > 0 {
			times = item.Additions[name] / per
		}
		for i := 0; i < times; i++ {
			spec.Additions = append(spec.Additions, name)
		}
	}
	spec.Subtractions = item.Subtractions.Names()
	return spec
}

// Apply replaces the customization of item with the spec's.
func (s ItemSpec) Apply(item *restaurant.Item) error {
	item.Additions = restaurant.Ingredients{}
	item.Subtractions = restaurant.Ingredients{}
	item.AdditionalRequest = s.Request
	for _, a := range s.Additions {
		if err := item.AddAddition(a); err != nil {
			return err
		}
	}
	for _, sub := range s.Subtractions {
		if err := item.AddSubtraction(sub); err != nil {
			return err
		}
	}
	return nil
}

// Build derives an ordered item from the template and applies the spec.
func (s ItemSpec) Build(tmpl *restaurant.Item, number, orderNumber, tableNumber int) (*restaurant.Item, error) {
	item := restaurant.FromTemplate(tmpl, number, orderNumber, tableNumber)
	if err := s.Apply(item); err != nil {
		return nil, err
	}
	return item, nil
}

// FormatItemSpec renders an item in the text form ParseItemSpec reads.
func FormatItemSpec(item *restaurant.Item) string {
	return SpecOf(item).String()
}
