package floor

import (
	"reflect"
	"testing"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/shopspring/decimal"
)

func TestParseItemSpec(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    ItemSpec
		wantErr bool
	}{
		{name: "nameOnly", text: "Burger", want: ItemSpec{Name: "Burger"}},
		{
			name: "full",
			text: "\n Burger \n+Bacon\n+Bacon\n-Pickle\n*no salt\n*extra napkins\n",
			want: ItemSpec{
				Name:         "Burger",
				Additions:    []string{"Bacon", "Bacon"},
				Subtractions: []string{"Pickle"},
				Request:      "no salt\nextra napkins",
			},
		},
		{name: "emptyPrefixIgnored", text: "Burger\n+\n*", want: ItemSpec{Name: "Burger"}},
		{name: "blank", text: " \n\t", wantErr: true},
		{name: "strayLine", text: "Burger\nBacon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemSpec(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseItemSpec() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpecOfRoundTrip(t *testing.T) {
	tmpl := restaurant.NewMenuTemplate("Burger", "food", decimal.RequireFromString("9"))
	tmpl.Base = restaurant.Ingredients{"Bun": 1, "Pickle": 1}
	tmpl.AvailableAdditions = restaurant.Ingredients{"Bacon": 2}
	tmpl.AvailableSubtractions = restaurant.Ingredients{"Pickle": 1}

	text := "Burger\n+Bacon\n+Bacon\n-Pickle\n*no salt"
	spec, err := ParseItemSpec(text)
	if err != nil {
		t.Fatal(err)
	}
	item, err := spec.Build(tmpl, 1000, 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := item.Needed(); !reflect.DeepEqual(got, restaurant.Ingredients{"Bun": 1, "Bacon": 4}) {
		t.Errorf("Needed() = %v", got)
	}
	if got := SpecOf(item).String(); got != text {
		t.Errorf("SpecOf().String() = %q, want %q", got, text)
	}
}
