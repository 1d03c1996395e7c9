// Package sparsity describes which entries of a matrix are structurally
// nonzero, in compressed column storage.
package sparsity

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var ErrInvalidPattern = errors.New("invalid sparsity pattern")

// Pattern is an immutable compressed-column sparsity pattern.
//
// Column c owns the nonzeros colind[c] .. colind[c+1]-1, whose row indices are
// stored strictly increasing in row.
type Pattern struct {
	nrow   int
	ncol   int
	colind []int
	row    []int
}

// New validates and copies a compressed-column description.
func New(nrow, ncol int, colind, row []int) (*Pattern, error) {
	if nrow < 0 || ncol < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidPattern, nrow, ncol)
	}

	if len(colind) != ncol+1 {
		return nil, fmt.Errorf("%w: colind has %d entries, want %d", ErrInvalidPattern, len(colind), ncol+1)
	}

	if colind[0] != 0 {
		return nil, fmt.Errorf("%w: colind must start at 0", ErrInvalidPattern)
	}

	if colind[ncol] != len(row) {
		return nil, fmt.Errorf("%w: colind ends at %d but there are %d rows", ErrInvalidPattern, colind[ncol], len(row))
	}

	for c := range ncol {
		if colind[c+1] < colind[c] {
			return nil, fmt.Errorf("%w: colind decreases at column %d", ErrInvalidPattern, c)
		}

		if colind[c+1] > len(row) {
			return nil, fmt.Errorf("%w: colind %d exceeds %d rows", ErrInvalidPattern, colind[c+1], len(row))
		}
	}

	for c := range ncol {
		for k := colind[c]; k < colind[c+1]; k++ {
			if row[k] < 0 || row[k] >= nrow {
				return nil, fmt.Errorf("%w: row %d out of range in column %d", ErrInvalidPattern, row[k], c)
			}

			if k > colind[c] && row[k] <= row[k-1] {
				return nil, fmt.Errorf("%w: rows not strictly increasing in column %d", ErrInvalidPattern, c)
			}
		}
	}

	return &Pattern{
		nrow:   nrow,
		ncol:   ncol,
		colind: slices.Clone(colind),
		row:    slices.Clone(row),
	}, nil
}

// Dense returns the fully populated nrow x ncol pattern.
func Dense(nrow, ncol int) *Pattern {
	colind := make([]int, ncol+1)
	row := make([]int, 0, nrow*ncol)

	for c := range ncol {
		for r := range nrow {
			row = append(row, r)
		}

		colind[c+1] = colind[c] + nrow
	}

	return &Pattern{nrow: nrow, ncol: ncol, colind: colind, row: row}
}

// Scalar returns the dense 1x1 pattern.
func Scalar() *Pattern {
	return Dense(1, 1)
}

// Diagonal returns the n x n pattern with nonzeros on the diagonal only.
func Diagonal(n int) *Pattern {
	colind := make([]int, n+1)
	row := make([]int, n)

	for i := range n {
		colind[i+1] = i + 1
		row[i] = i
	}

	return &Pattern{nrow: n, ncol: n, colind: colind, row: row}
}

// Triplet builds a pattern from (row, col) coordinates. Duplicates are merged.
func Triplet(nrow, ncol int, rows, cols []int) (*Pattern, error) {
	if len(rows) != len(cols) {
		return nil, fmt.Errorf("%w: %d rows but %d cols", ErrInvalidPattern, len(rows), len(cols))
	}

	perCol := make([][]int, ncol)

	for i := range rows {
		r, c := rows[i], cols[i]
		if r < 0 || r >= nrow || c < 0 || c >= ncol {
			return nil, fmt.Errorf("%w: entry (%d,%d) outside %dx%d", ErrInvalidPattern, r, c, nrow, ncol)
		}

		perCol[c] = append(perCol[c], r)
	}

	colind := make([]int, ncol+1)

	var row []int

	for c, rs := range perCol {
		sort.Ints(rs)
		rs = slices.Compact(rs)
		row = append(row, rs...)
		colind[c+1] = len(row)
	}

	return New(nrow, ncol, colind, row)
}

func (p *Pattern) Rows() int { return p.nrow }

func (p *Pattern) Cols() int { return p.ncol }

// Nnz returns the number of structural nonzeros.
func (p *Pattern) Nnz() int { return len(p.row) }

// Numel returns the number of entries of the dense matrix.
func (p *Pattern) Numel() int { return p.nrow * p.ncol }

func (p *Pattern) IsScalar() bool { return p.nrow == 1 && p.ncol == 1 }

// Colind returns a copy of the column offsets.
func (p *Pattern) Colind() []int { return slices.Clone(p.colind) }

// Row returns a copy of the row indices.
func (p *Pattern) Row() []int { return slices.Clone(p.row) }

// Compress encodes the pattern as nrow, ncol, colind..., row....
func (p *Pattern) Compress() []int {
	out := make([]int, 0, 2+len(p.colind)+len(p.row))
	out = append(out, p.nrow, p.ncol)
	out = append(out, p.colind...)

	return append(out, p.row...)
}

// Equal reports structural equality.
func (p *Pattern) Equal(q *Pattern) bool {
	if p == q {
		return true
	}

	if p == nil || q == nil {
		return false
	}

	return p.nrow == q.nrow && p.ncol == q.ncol &&
		slices.Equal(p.colind, q.colind) && slices.Equal(p.row, q.row)
}

// Transpose returns the pattern of the transposed matrix.
func (p *Pattern) Transpose() *Pattern {
	colind := make([]int, p.nrow+1)
	for _, r := range p.row {
		colind[r+1]++
	}

	for r := range p.nrow {
		colind[r+1] += colind[r]
	}

	next := slices.Clone(colind[:p.nrow])
	row := make([]int, len(p.row))

	for c := range p.ncol {
		for k := p.colind[c]; k < p.colind[c+1]; k++ {
			r := p.row[k]
			row[next[r]] = c
			next[r]++
		}
	}

	return &Pattern{nrow: p.ncol, ncol: p.nrow, colind: colind, row: row}
}

// Product returns the pattern of a*b.
func Product(a, b *Pattern) (*Pattern, error) {
	if a.ncol != b.nrow {
		return nil, fmt.Errorf("%w: cannot multiply %s by %s", ErrInvalidPattern, a, b)
	}

	colind := make([]int, b.ncol+1)
	mark := make([]int, a.nrow)

	for i := range mark {
		mark[i] = -1
	}

	var row []int

	for c := range b.ncol {
		start := len(row)

		for kb := b.colind[c]; kb < b.colind[c+1]; kb++ {
			k := b.row[kb]
			for ka := a.colind[k]; ka < a.colind[k+1]; ka++ {
				r := a.row[ka]
				if mark[r] != c {
					mark[r] = c
					row = append(row, r)
				}
			}
		}

		sort.Ints(row[start:])
		colind[c+1] = len(row)
	}

	return &Pattern{nrow: a.nrow, ncol: b.ncol, colind: colind, row: row}, nil
}

// String gives a short description such as "3x3,5nz".
func (p *Pattern) String() string {
	return fmt.Sprintf("%dx%d,%dnz", p.nrow, p.ncol, p.Nnz())
}
