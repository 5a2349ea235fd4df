package alchemy

// The dependency graph contains only producible products: an edge
// product -> reagent exists iff the reagent itself has a recipe. Raw-substance
// reagents are leaves and never enter the graph. The graph exists solely to
// partition products into strongly connected components; it is derived once
// from the finalized recipe table and discarded state-wise after analysis.

// component is a strongly connected group of mutually dependent products.
// A component is cyclic when it has more than one member, or a single member
// whose recipe consumes its own product with a positive coefficient.
type component struct {
	id      int
	members []string
	// position of each member in the members slice, for demand vector indexing
	indexOf map[string]int
	cyclic  bool
	// inverse of (I - M) for cyclic components, attached by the solver at
	// construction time and immutable afterwards
	inverse *matrix
}

// componentSet is the SCC partition of the recipe dependency graph
type componentSet struct {
	// components in reverse topological order (dependencies first)
	components []*component
	// product name -> owning component
	byProduct map[string]*component
}

// analyzeComponents partitions the products of the recipe table into strongly
// connected components using Tarjan's algorithm. The traversal uses an
// explicit frame stack instead of call recursion, so recipe graphs of any
// depth are handled without growing the goroutine stack.
func analyzeComponents(table *RecipeTable) *componentSet {
	products := table.Products()
	n := len(products)

	nodeIndex := make(map[string]int, n)
	for i, p := range products {
		nodeIndex[p] = i
	}

	adjacency := make([][]int, n)
	selfLoop := make([]bool, n)
	for i, p := range products {
		recipe := table.Lookup(p)
		for _, reagent := range recipe.Reagents {
			target, producible := nodeIndex[reagent.Name]
			if !producible {
				continue
			}
			if target == i {
				// Self edges matter for cyclicity only when the recipe
				// actually consumes its own product.
				if reagent.Coefficient > 0 {
					selfLoop[i] = true
				}
				continue
			}
			adjacency[i] = append(adjacency[i], target)
		}
	}

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	tarjanStack := make([]int, 0, n)
	counter := 0

	set := &componentSet{byProduct: make(map[string]*component, n)}

	// walk frame: the node being expanded and its next unexplored edge
	type frame struct {
		node int
		edge int
	}

	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}

		frames := []frame{{node: start}}
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.node

			if f.edge == 0 {
				index[v] = counter
				lowlink[v] = counter
				counter++
				tarjanStack = append(tarjanStack, v)
				onStack[v] = true
			}

			descended := false
			for f.edge < len(adjacency[v]) {
				w := adjacency[v][f.edge]
				f.edge++
				if index[w] == unvisited {
					frames = append(frames, frame{node: w})
					descended = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if descended {
				continue
			}

			// v is fully explored: emit its component if it is a root
			if lowlink[v] == index[v] {
				comp := &component{id: len(set.components), indexOf: make(map[string]int)}
				for {
					top := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[top] = false
					comp.indexOf[products[top]] = len(comp.members)
					comp.members = append(comp.members, products[top])
					if top == v {
						break
					}
				}
				comp.cyclic = len(comp.members) > 1 || selfLoop[v]
				for _, member := range comp.members {
					set.byProduct[member] = comp
				}
				set.components = append(set.components, comp)
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}

	return set
}

// lookup returns the component owning a product, or nil for non-products
func (s *componentSet) lookup(product string) *component {
	return s.byProduct[product]
}

// contains reports whether a substance belongs to this component
func (c *component) contains(name string) bool {
	_, ok := c.indexOf[name]
	return ok
}

// size returns the number of member products
func (c *component) size() int {
	return len(c.members)
}
