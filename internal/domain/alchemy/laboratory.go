package alchemy

import (
	"math"
	"sort"
)

// defaultResidueEpsilon is the cutoff below which post-production stock
// residues on the cyclic commit path are snapped to exactly 0, so float
// drift from internal recirculation cannot accumulate across calls.
const defaultResidueEpsilon = 1e-12

// Laboratory is the aggregate root of the production system. It owns the
// inventory, the immutable recipe table, the component partition of the
// recipe dependency graph and the cached inverse matrices of every cyclic
// component - all fixed at construction. The only mutation it performs
// afterwards is stock movement through Add and Make.
//
// A Laboratory is single-threaded by contract: calls run to completion and
// no partial effects are ever observable.
type Laboratory struct {
	inventory  *Inventory
	recipes    *RecipeTable
	components *componentSet

	residueEpsilon float64
}

// LaboratoryOption configures a Laboratory at construction
type LaboratoryOption func(*Laboratory)

// WithResidueEpsilon overrides the near-zero snapping threshold used when
// committing cyclic production. The acyclic path never snaps: its decrements
// are single multiplications with no accumulated recirculation error, and
// snapping there would silently alter observable mass balance.
func WithResidueEpsilon(epsilon float64) LaboratoryOption {
	return func(l *Laboratory) {
		l.residueEpsilon = epsilon
	}
}

// NewLaboratory builds a production system from raw substance names, optional
// initial stock overrides and an optional recipe collection.
//
// Validation order follows the external contract: the substance list first,
// then the stock mapping, then the recipes. Products are registered before
// reagent lists are resolved, so recipes may forward-reference products
// declared elsewhere in the same collection. Component analysis and cyclic
// matrix inversion run on the finalized recipe table before any initial stock
// is applied. Any validation error is returned before a Laboratory exists, so
// no partial construction is observable.
func NewLaboratory(substances []string, stock map[string]float64, recipes map[string][]Reagent, opts ...LaboratoryOption) (*Laboratory, error) {
	if substances == nil {
		return nil, &ErrInvalidInput{Field: "substances", Reason: "must be a list of substance names"}
	}
	if len(substances) == 0 {
		return nil, &ErrInvalidInput{Field: "substances", Reason: "list must not be empty"}
	}

	inventory := NewInventory()
	for _, raw := range substances {
		name, err := normalizeNonEmpty("substance", raw)
		if err != nil {
			return nil, err
		}
		if err := inventory.Declare(name); err != nil {
			return nil, err
		}
	}

	// Deterministic product registration order: identical inputs must yield
	// identical component partitions and inverse matrices.
	productOrder := make([]string, 0, len(recipes))
	for product := range recipes {
		productOrder = append(productOrder, product)
	}
	sort.Strings(productOrder)

	table, err := newRecipeTable(recipes, productOrder, inventory)
	if err != nil {
		return nil, err
	}

	components := analyzeComponents(table)
	if err := solveComponents(components, table); err != nil {
		return nil, err
	}

	// Initial stock applies only after the analysis above, and only to
	// already-known names (raw or product).
	stockOrder := make([]string, 0, len(stock))
	for name := range stock {
		stockOrder = append(stockOrder, name)
	}
	sort.Strings(stockOrder)
	for _, raw := range stockOrder {
		name, err := normalizeNonEmpty("initial stock entry", raw)
		if err != nil {
			return nil, err
		}
		if !inventory.Has(name) {
			return nil, &ErrUnknownSubstance{Name: name}
		}
		qty := stock[raw]
		if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
			return nil, &ErrInvalidQuantity{Field: name, Value: qty}
		}
		inventory.set(name, qty)
	}

	lab := &Laboratory{
		inventory:      inventory,
		recipes:        table,
		components:     components,
		residueEpsilon: defaultResidueEpsilon,
	}
	for _, opt := range opts {
		opt(lab)
	}
	return lab, nil
}

// Quantity returns the current stock of a substance
func (l *Laboratory) Quantity(name string) (float64, error) {
	normalized, err := normalizeNonEmpty("substance", name)
	if err != nil {
		return 0, err
	}
	return l.inventory.Quantity(normalized)
}

// Add increases the stock of a substance by amount and returns the new total
func (l *Laboratory) Add(name string, amount float64) (float64, error) {
	normalized, err := normalizeNonEmpty("substance", name)
	if err != nil {
		return 0, err
	}
	return l.inventory.Add(normalized, amount)
}

// Make attempts to produce the desired quantity of a product and returns the
// quantity actually produced, which may be smaller when stock runs short -
// insufficient stock is never an error. Requesting an unknown name or a name
// without a recipe produces 0. Consumption and production commit atomically:
// either the full decrement/increment set applies or nothing does.
func (l *Laboratory) Make(product string, desired float64) (float64, error) {
	normalized, err := normalizeNonEmpty("product", product)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(desired) || math.IsInf(desired, 0) || desired < 0 {
		return 0, &ErrInvalidQuantity{Field: normalized, Value: desired}
	}
	if desired == 0 || !l.recipes.HasRecipe(normalized) {
		return 0, nil
	}

	inFlight := make(map[string]bool)
	return l.resolve(normalized, desired, inFlight, nil)
}

// resolve routes a production request to the steady-state path when the
// target sits in a cyclic component and to the recursive path otherwise.
// The in-flight set and path are borrowed through the whole recursion of a
// single Make call and never outlive it.
func (l *Laboratory) resolve(product string, desired float64, inFlight map[string]bool, path []string) (float64, error) {
	if comp := l.components.lookup(product); comp != nil && comp.cyclic {
		return l.makeCyclic(comp, product, desired, inFlight, path)
	}
	return l.makeAcyclic(product, desired, inFlight, path)
}

// makeAcyclic performs depth-first recursive resolution for a product whose
// component is acyclic. Reagent shortfalls are topped up recursively, then
// the achievable output is the minimum of stock/coefficient over reagents
// with positive coefficient, capped at the request.
func (l *Laboratory) makeAcyclic(product string, desired float64, inFlight map[string]bool, path []string) (float64, error) {
	recipe := l.recipes.Lookup(product)
	if recipe == nil {
		return 0, nil
	}

	// Guard against re-entering a product already on the active call path.
	// Cycles are routed through the steady-state path, so tripping this means
	// the component analysis and the recipe table disagree.
	if inFlight[product] {
		return 0, &ErrCircularDependency{Product: product, Chain: append(append([]string{}, path...), product)}
	}
	inFlight[product] = true
	defer delete(inFlight, product)
	currentPath := append(path, product)

	for _, reagent := range recipe.Reagents {
		needed := reagent.Coefficient * desired
		available := l.inventory.peek(reagent.Name)
		if available < needed && l.recipes.HasRecipe(reagent.Name) {
			if _, err := l.resolve(reagent.Name, needed-available, inFlight, currentPath); err != nil {
				return 0, err
			}
		}
	}

	achievable := desired
	for _, reagent := range recipe.Reagents {
		if reagent.Coefficient <= 0 {
			continue
		}
		if limit := l.inventory.peek(reagent.Name) / reagent.Coefficient; limit < achievable {
			achievable = limit
		}
	}
	if achievable <= 0 || math.IsNaN(achievable) || math.IsInf(achievable, 0) {
		return 0, nil
	}

	// Sole mutation point of the acyclic path: the decrement/increment pair
	// always executes together.
	for _, reagent := range recipe.Reagents {
		l.inventory.set(reagent.Name, l.inventory.peek(reagent.Name)-reagent.Coefficient*achievable)
	}
	l.inventory.set(product, l.inventory.peek(product)+achievable)
	return achievable, nil
}

// makeCyclic performs steady-state resolution for a target inside a cyclic
// component, using the component's cached (I - M)^-1 to translate the
// external demand into the gross production each member must generate,
// including amounts recirculated internally.
func (l *Laboratory) makeCyclic(comp *component, target string, desired float64, inFlight map[string]bool, path []string) (float64, error) {
	n := comp.size()
	demand := make([]float64, n)
	demand[comp.indexOf[target]] = desired
	gross := comp.inverse.mulVec(demand)

	// Planned production per member after offsetting existing stock. For the
	// target, stock offsets only the internally consumed portion of its gross
	// production - the externally demanded portion must be freshly made.
	planned := make([]float64, n)
	for i, member := range comp.members {
		g := gross[i]
		if g <= 0 {
			continue
		}
		available := l.inventory.peek(member)
		if member == target {
			internal := g - desired
			if internal < 0 {
				internal = 0
			}
			planned[i] = g - math.Min(available, internal)
		} else {
			planned[i] = math.Max(g-available, 0)
		}
	}

	// Reagent needs drawn from outside the component, summed across every
	// member with planned production.
	externalNeed := make(map[string]float64)
	externalOrder := make([]string, 0)
	for i, member := range comp.members {
		if planned[i] <= 0 {
			continue
		}
		for _, reagent := range l.recipes.Lookup(member).Reagents {
			if comp.contains(reagent.Name) || reagent.Coefficient <= 0 {
				continue
			}
			if _, seen := externalNeed[reagent.Name]; !seen {
				externalOrder = append(externalOrder, reagent.Name)
			}
			externalNeed[reagent.Name] += reagent.Coefficient * planned[i]
		}
	}
	// With no external draw the cycle can only shuffle what already exists:
	// nothing new is producible.
	if len(externalNeed) == 0 {
		return 0, nil
	}

	for _, name := range externalOrder {
		needed := externalNeed[name]
		available := l.inventory.peek(name)
		if available < needed && l.recipes.HasRecipe(name) {
			if _, err := l.resolve(name, needed-available, inFlight, path); err != nil {
				return 0, err
			}
		}
	}

	scale := 1.0
	for _, name := range externalOrder {
		ratio := l.inventory.peek(name) / externalNeed[name]
		if ratio < scale {
			scale = ratio
		}
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0, nil
	}

	// Commit: scaled production first, then every member's reagent
	// consumption including intra-component draws. Residues below the
	// configured epsilon snap to exactly 0.
	for i, member := range comp.members {
		if planned[i] <= 0 {
			continue
		}
		l.inventory.set(member, l.inventory.peek(member)+planned[i]*scale)
	}
	for i, member := range comp.members {
		if planned[i] <= 0 {
			continue
		}
		produced := planned[i] * scale
		for _, reagent := range l.recipes.Lookup(member).Reagents {
			next := l.inventory.peek(reagent.Name) - reagent.Coefficient*produced
			if math.Abs(next) < l.residueEpsilon {
				next = 0
			}
			l.inventory.set(reagent.Name, next)
		}
	}

	return desired * scale, nil
}

// HasRecipe reports whether the name is a producible product
func (l *Laboratory) HasRecipe(name string) bool {
	return l.recipes.HasRecipe(NormalizeName(name))
}

// RecipeOf returns a copy of a product's reagent list, or false for
// raw substances and unknown names
func (l *Laboratory) RecipeOf(product string) ([]Reagent, bool) {
	recipe := l.recipes.Lookup(NormalizeName(product))
	if recipe == nil {
		return nil, false
	}
	reagents := make([]Reagent, len(recipe.Reagents))
	copy(reagents, recipe.Reagents)
	return reagents, true
}

// InCycle reports whether a product belongs to a cyclic recipe group
func (l *Laboratory) InCycle(product string) bool {
	comp := l.components.lookup(NormalizeName(product))
	return comp != nil && comp.cyclic
}

// CycleMembers returns the members of the cyclic group containing the
// product, or false when the product is not part of one
func (l *Laboratory) CycleMembers(product string) ([]string, bool) {
	comp := l.components.lookup(NormalizeName(product))
	if comp == nil || !comp.cyclic {
		return nil, false
	}
	members := make([]string, comp.size())
	copy(members, comp.members)
	return members, true
}

// Substances returns every tracked substance name, sorted
func (l *Laboratory) Substances() []string {
	names := l.inventory.Names()
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all current stock levels
func (l *Laboratory) Snapshot() map[string]float64 {
	return l.inventory.Snapshot()
}
