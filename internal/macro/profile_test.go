package macro

import (
	"testing"

	"beondiet/models"
)

func TestContributionScalesPer100Grams(t *testing.T) {
	t.Parallel()

	a := models.Ingredient{Carbs: 10, Protein: 2, Fat: 1, Kcal: 60}
	cases := []struct {
		name  string
		grams int
		want  Profile
	}{
		{"double", 200, Profile{Grams: 200, Carbs: 20, Protein: 4, Fat: 2, Kcal: 120}},
		{"exact", 100, Profile{Grams: 100, Carbs: 10, Protein: 2, Fat: 1, Kcal: 60}},
		{"half", 50, Profile{Grams: 50, Carbs: 5, Protein: 1, Fat: 0.5, Kcal: 30}},
		{"zero", 0, Profile{}},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Contribution(a, tt.grams); got != tt.want {
				t.Fatalf("Contribution(%d) = %+v, want %+v", tt.grams, got, tt.want)
			}
		})
	}
}

func TestRounded(t *testing.T) {
	t.Parallel()

	p := Profile{Grams: 30, Carbs: 1.005, Protein: 2.344, Fat: 0.125, Kcal: 33.3333}
	got := p.Rounded(2)
	want := Profile{Grams: 30, Carbs: 1.0, Protein: 2.34, Fat: 0.13, Kcal: 33.33}
	// 1.005 is stored as 1.00499999... so it rounds down.
	if got != want {
		t.Fatalf("Rounded(2) = %+v, want %+v", got, want)
	}

	if got := p.Rounded(-1); got != p {
		t.Fatalf("Rounded(-1) = %+v, want unchanged %+v", got, p)
	}
}

func TestFromRecipe(t *testing.T) {
	t.Parallel()

	if _, ok := FromRecipe(models.Recipe{}); ok {
		t.Fatalf("expected unaggregated recipe to report ok=false")
	}

	grams, carbs, protein, fat, kcal := 250, 12.5, 3.0, 1.5, 80.0
	got, ok := FromRecipe(models.Recipe{Grams: &grams, Carbs: &carbs, Protein: &protein, Fat: &fat, Kcal: &kcal})
	if !ok {
		t.Fatalf("expected aggregated recipe to report ok=true")
	}
	want := Profile{Grams: 250, Carbs: 12.5, Protein: 3, Fat: 1.5, Kcal: 80}
	if got != want {
		t.Fatalf("FromRecipe = %+v, want %+v", got, want)
	}
}
