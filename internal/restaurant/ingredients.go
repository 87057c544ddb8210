package restaurant

import "sort"

// Ingredients maps an ingredient name to a quantity.
type Ingredients map[string]int

func (in Ingredients) Clone() Ingredients {
	out := make(Ingredients, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Merge returns a new map holding the per-key sum of in and other.
func (in Ingredients) Merge(other Ingredients) Ingredients {
	out := in.Clone()
	for k, v := range other {
		out[k] += v
	}
	return out
}

// Names returns the ingredient names in sorted order.
func (in Ingredients) Names() []string {
	names := make([]string, 0, len(in))
	for k := range in {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Needed computes base - subtraction + addition. A subtraction only affects
// keys present in base; an addition may introduce a new key. Entries that
// drop to zero or below are omitted.
func Needed(base, subtraction, addition Ingredients) Ingredients {
	out := make(Ingredients, len(base)+len(addition))
	for name, q := range base {
		if sub, ok := subtraction[name]; ok {
			q -= sub
		}
		out[name] = q
	}
	for name, q := range addition {
		out[name] += q
	}
	for name, q := range out {
		if q <= 0 {
			delete(out, name)
		}
	}
	return out
}
