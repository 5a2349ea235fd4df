package alchemy

import "math"

// Reagent is a single input requirement of a recipe: Coefficient units of the
// named substance are consumed per unit of product made. A zero coefficient is
// legal and imposes no cap on production.
type Reagent struct {
	Coefficient float64
	Name        string
}

// Recipe converts fixed ratios of reagents into one unit of its product.
// Reagent order is preserved from the declaration.
type Recipe struct {
	Product  string
	Reagents []Reagent
}

// RecipeTable maps product names to their recipes. It is built once during
// Laboratory construction and read-only afterwards.
type RecipeTable struct {
	recipes map[string]*Recipe
	// products in declaration order, for deterministic iteration
	order []string
}

// newRecipeTable validates and registers the recipe collection.
//
// Product names are registered in the inventory (at quantity 0) before any
// reagent list is validated, so recipes may reference products declared later
// in the same collection. Reagent names must resolve to a known substance, raw
// or product; coefficients must be finite and >= 0. A recipe may reference its
// own product or form mutual references - cycles are legal here and handled by
// the component analysis.
func newRecipeTable(recipes map[string][]Reagent, productOrder []string, inv *Inventory) (*RecipeTable, error) {
	table := &RecipeTable{
		recipes: make(map[string]*Recipe, len(recipes)),
		order:   make([]string, 0, len(recipes)),
	}

	// First pass: normalize and register every product so reagent lists can
	// forward-reference products declared later.
	normalized := make([]string, 0, len(productOrder))
	for _, product := range productOrder {
		name, err := normalizeNonEmpty("recipe product", product)
		if err != nil {
			return nil, err
		}
		if err := inv.Declare(name); err != nil {
			return nil, err
		}
		normalized = append(normalized, name)
	}

	// Second pass: validate reagent lists against the now-complete substance set
	for i, product := range productOrder {
		name := normalized[i]
		reagents := recipes[product]
		if len(reagents) == 0 {
			return nil, &ErrInvalidInput{
				Field:  "recipe " + name,
				Reason: "reagent list must be a non-empty sequence",
			}
		}

		resolved := make([]Reagent, 0, len(reagents))
		for _, reagent := range reagents {
			reagentName, err := normalizeNonEmpty("reagent of "+name, reagent.Name)
			if err != nil {
				return nil, err
			}
			if !inv.Has(reagentName) {
				return nil, &ErrUnknownSubstance{Name: reagentName}
			}
			c := reagent.Coefficient
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				return nil, &ErrInvalidQuantity{Field: "reagent " + reagentName + " of " + name, Value: c}
			}
			resolved = append(resolved, Reagent{Coefficient: c, Name: reagentName})
		}

		table.recipes[name] = &Recipe{Product: name, Reagents: resolved}
		table.order = append(table.order, name)
	}

	return table, nil
}

// Lookup returns the recipe for a product, or nil if the name has no recipe
func (t *RecipeTable) Lookup(product string) *Recipe {
	return t.recipes[product]
}

// HasRecipe reports whether the name is a producible product
func (t *RecipeTable) HasRecipe(name string) bool {
	_, ok := t.recipes[name]
	return ok
}

// Products returns the product names in declaration order
func (t *RecipeTable) Products() []string {
	return t.order
}

// Len returns the number of recipes in the table
func (t *RecipeTable) Len() int {
	return len(t.recipes)
}
