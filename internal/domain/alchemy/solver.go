package alchemy

// solveComponents builds, for every cyclic component, the linear system that
// describes its internal recirculation and caches the inverted system matrix
// on the component. This runs exactly once, at construction time.
//
// For a component with members m_0..m_{n-1}, M[row][col] holds the amount of
// m_row consumed per unit of m_col produced. Reagents outside the component
// are excluded here; production time treats them as external requirements.
// The system matrix I - M maps gross production to net output, so its inverse
// maps a demand vector to the gross production vector required to net it.
func solveComponents(set *componentSet, table *RecipeTable) error {
	for _, comp := range set.components {
		if !comp.cyclic {
			continue
		}

		n := comp.size()
		m := newMatrix(n)
		for col, product := range comp.members {
			recipe := table.Lookup(product)
			for _, reagent := range recipe.Reagents {
				row, internal := comp.indexOf[reagent.Name]
				if !internal {
					continue
				}
				// A recipe lists each reagent once, but accumulate anyway so a
				// repeated reagent entry stays mass-balanced.
				m.set(row, col, m.at(row, col)+reagent.Coefficient)
			}
		}

		system := identity(n)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				system.set(r, c, system.at(r, c)-m.at(r, c))
			}
		}

		inverse, ok := system.inverse()
		if !ok {
			members := make([]string, n)
			copy(members, comp.members)
			return &ErrSingularSystem{Members: members}
		}
		comp.inverse = inverse
	}
	return nil
}
