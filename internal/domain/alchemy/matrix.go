package alchemy

import "math"

// matrix is a dense row-major float64 matrix, sized for cyclic recipe
// components (a handful of rows). Kept local rather than pulling in a linear
// algebra dependency for one inversion at construction time.
type matrix struct {
	n    int
	data []float64
}

// newMatrix creates a zeroed n x n matrix
func newMatrix(n int) *matrix {
	return &matrix{n: n, data: make([]float64, n*n)}
}

// identity returns the n x n identity matrix
func identity(n int) *matrix {
	m := newMatrix(n)
	for i := 0; i < n; i++ {
		m.set(i, i, 1)
	}
	return m
}

func (m *matrix) at(r, c int) float64 {
	return m.data[r*m.n+c]
}

func (m *matrix) set(r, c int, v float64) {
	m.data[r*m.n+c] = v
}

// mulVec returns m * v
func (m *matrix) mulVec(v []float64) []float64 {
	out := make([]float64, m.n)
	for r := 0; r < m.n; r++ {
		sum := 0.0
		for c := 0; c < m.n; c++ {
			sum += m.at(r, c) * v[c]
		}
		out[r] = sum
	}
	return out
}

// clone returns a deep copy of m
func (m *matrix) clone() *matrix {
	cp := newMatrix(m.n)
	copy(cp.data, m.data)
	return cp
}

// inverse computes m^-1 by Gauss-Jordan elimination with partial pivoting:
// per column, the untouched row with the largest absolute value in that column
// becomes the pivot row, bounding the numeric error. A pivot smaller in
// magnitude than machine epsilon means the system is singular and the caller
// gets a nil matrix with ok=false.
func (m *matrix) inverse() (*matrix, bool) {
	n := m.n
	work := m.clone()
	inv := identity(n)

	for col := 0; col < n; col++ {
		// Partial pivot: pick the strongest remaining row for this column
		pivotRow := col
		pivotAbs := math.Abs(work.at(col, col))
		for r := col + 1; r < n; r++ {
			if abs := math.Abs(work.at(r, col)); abs > pivotAbs {
				pivotRow = r
				pivotAbs = abs
			}
		}
		if pivotAbs < machineEpsilon {
			return nil, false
		}
		if pivotRow != col {
			work.swapRows(pivotRow, col)
			inv.swapRows(pivotRow, col)
		}

		// Scale the pivot row so the pivot becomes 1
		pivot := work.at(col, col)
		for c := 0; c < n; c++ {
			work.set(col, c, work.at(col, c)/pivot)
			inv.set(col, c, inv.at(col, c)/pivot)
		}

		// Eliminate the column from every other row
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := work.at(r, col)
			if factor == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				work.set(r, c, work.at(r, c)-factor*work.at(col, c))
				inv.set(r, c, inv.at(r, c)-factor*inv.at(col, c))
			}
		}
	}

	return inv, true
}

func (m *matrix) swapRows(a, b int) {
	if a == b {
		return
	}
	for c := 0; c < m.n; c++ {
		m.data[a*m.n+c], m.data[b*m.n+c] = m.data[b*m.n+c], m.data[a*m.n+c]
	}
}

// machineEpsilon is the float64 unit roundoff, the singularity cutoff for pivots
var machineEpsilon = math.Nextafter(1, 2) - 1
