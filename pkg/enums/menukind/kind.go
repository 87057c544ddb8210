package menukind

import "strings"

// Kind splits menu templates into the Food and Beverage sub-collections.
type Kind struct {
	Name string
}

func (k Kind) Code() string {
	return k.Name
}

// Dir is the sub-directory name of the menu collection holding this kind.
func (k Kind) Dir() string {
	return k.Label()
}

func (k Kind) Label() string {
	if len(k.Name) == 0 {
		return ""
	}
	return strings.ToUpper(k.Name[:1]) + k.Name[1:]
}

type Enum struct {
	Food     Kind
	Beverage Kind
}

var Kinds = Enum{
	Food:     Kind{Name: "food"},
	Beverage: Kind{Name: "beverage"},
}

var All = []Kind{
	Kinds.Food,
	Kinds.Beverage,
}

// ByName returns the kind for a given name, or nil if not found
func ByName(name string) *Kind {
	for _, k := range All {
		if k.Name == strings.ToLower(name) {
			return &k
		}
	}
	return nil
}
