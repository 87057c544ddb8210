package itemstatus

import "strings"

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

type Enum struct {
	Unseen Status
	Seen   Status
	Ready  Status
	Served Status
}

var Statuses = Enum{
	Unseen: Status{Name: "unseen"},
	Seen:   Status{Name: "seen"},
	Ready:  Status{Name: "ready"},
	Served: Status{Name: "served"},
}

// All lists statuses in lifecycle order.
var All = []Status{
	Statuses.Unseen,
	Statuses.Seen,
	Statuses.Ready,
	Statuses.Served,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// Rank is the position of the named status in the lifecycle, -1 if unknown.
func Rank(name string) int {
	for i, s := range All {
		if s.Name == name {
			return i
		}
	}
	return -1
}
