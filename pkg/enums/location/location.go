package location

import "strings"

// Location is where an ordered item currently sits.
type Location struct {
	Name string
}

func (l Location) Code() string {
	return l.Name
}

func (l Location) Label() string {
	if len(l.Name) == 0 {
		return ""
	}
	return strings.ToUpper(l.Name[:1]) + l.Name[1:]
}

type Enum struct {
	Kitchen Location
	Front   Location
}

var Locations = Enum{
	Kitchen: Location{Name: "kitchen"},
	Front:   Location{Name: "front"},
}

var All = []Location{
	Locations.Kitchen,
	Locations.Front,
}

// ByName returns the location for a given name, or nil if not found
func ByName(name string) *Location {
	for _, l := range All {
		if l.Name == name {
			return &l
		}
	}
	return nil
}
