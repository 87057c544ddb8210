package restaurant

import (
	"reflect"
	"testing"
)

func TestNeeded(t *testing.T) {
	tests := []struct {
		name        string
		base        Ingredients
		subtraction Ingredients
		addition    Ingredients
		want        Ingredients
	}{
		{
			name: "baseOnly",
			base: Ingredients{"Bun": 1, "Patty": 1},
			want: Ingredients{"Bun": 1, "Patty": 1},
		},
		{
			name:        "subtractionReducesBase",
			base:        Ingredients{"Bun": 1, "Cheese": 2},
			subtraction: Ingredients{"Cheese": 1},
			want:        Ingredients{"Bun": 1, "Cheese": 1},
		},
		{
			name:        "subtractionRemovesIngredient",
			base:        Ingredients{"Bun": 1, "Pickle": 1},
			subtraction: Ingredients{"Pickle": 1},
			want:        Ingredients{"Bun": 1},
		},
		{
			name:        "subtractionOfMissingKeyIgnored",
			base:        Ingredients{"Bun": 1},
			subtraction: Ingredients{"Onion": 1},
			want:        Ingredients{"Bun": 1},
		},
		{
			name:     "additionAugmentsExisting",
			base:     Ingredients{"Cheese": 1},
			addition: Ingredients{"Cheese": 2},
			want:     Ingredients{"Cheese": 3},
		},
		{
			name:     "additionIntroducesNewKey",
			base:     Ingredients{"Bun": 1},
			addition: Ingredients{"Bacon": 2},
			want:     Ingredients{"Bun": 1, "Bacon": 2},
		},
		{
			name:        "subtractionAndAdditionOnSameKey",
			base:        Ingredients{"Cheese": 2},
			subtraction: Ingredients{"Cheese": 1},
			addition:    Ingredients{"Cheese": 3},
			want:        Ingredients{"Cheese": 4},
		},
		{
			name: "emptyBase",
			want: Ingredients{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Needed(tt.base, tt.subtraction, tt.addition)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Needed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIngredientsMergeDoesNotMutate(t *testing.T) {
	a := Ingredients{"Cheese": 1}
	b := Ingredients{"Cheese": 2, "Bun": 1}

	got := a.Merge(b)

	if !reflect.DeepEqual(got, Ingredients{"Cheese": 3, "Bun": 1}) {
		t.Errorf("Merge() = %v", got)
	}
	if a["Cheese"] != 1 || len(a) != 1 {
		t.Errorf("Merge() mutated receiver: %v", a)
	}
}

func TestIngredientsNamesSorted(t *testing.T) {
	got := Ingredients{"Tomato": 1, "Bun": 1, "Lettuce": 1}.Names()
	want := []string{"Bun", "Lettuce", "Tomato"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
