// Package vrp - dense int64 matrix for distances and durations.
//
// A single flat buffer in row-major order keeps hot-path lookups free of
// interface indirection and bounds re-checks beyond the slice's own.
//
// Complexity: At/Set are O(1); construction and validation are O(n²).
package vrp

// Matrix is a dense square int64 matrix in row-major order.
type Matrix struct {
	n     int
	cells []int64
}

// NewMatrix returns a zero-filled n×n matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, cells: make([]int64, n*n)}
}

// MatrixFromRows copies rows into a dense matrix. Returns ErrMatrixShape
// when rows is empty or ragged or non-square.
func MatrixFromRows(rows [][]int64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrMatrixShape
	}
	m := NewMatrix(n)

	var i int
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, ErrMatrixShape
		}
		copy(m.cells[i*n:(i+1)*n], rows[i])
	}

	return m, nil
}

// Order returns the matrix order n.
func (m *Matrix) Order() int { return m.n }

// At returns the entry at (i, j). Out-of-range indices panic via the
// underlying slice; validated callers never trigger it.
func (m *Matrix) At(i, j int) int64 { return m.cells[i*m.n+j] }

// Set assigns the entry at (i, j).
func (m *Matrix) Set(i, j int, v int64) { m.cells[i*m.n+j] = v }

// validate reports diagonal and negativity defects relative to the expected
// order, appending messages to errs.
func (m *Matrix) validate(kind string, order int, errs []string) []string {
	if m == nil || m.n != order {
		return append(errs, ErrMatrixShape.Error()+": "+kind)
	}

	var i, j int
	for i = 0; i < m.n; i++ {
		if m.At(i, i) != 0 {
			errs = append(errs, ErrMatrixDiagonal.Error()+": "+kind)
			break
		}
	}
	for i = 0; i < m.n; i++ {
		for j = 0; j < m.n; j++ {
			if m.At(i, j) < 0 {
				return append(errs, ErrNegativeMatrixEntry.Error()+": "+kind)
			}
		}
	}

	return errs
}
