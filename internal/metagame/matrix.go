// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metagame

import "fmt"

// Matrix is a dense, square, row-major matrix of float64 values.
// The zero value is an empty 0x0 matrix.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix builds a Matrix from row slices. Every row must have len(rows)
// entries. The input is copied.
func NewMatrix(rows [][]float64) (Matrix, error) {
	n := len(rows)
	data := make([]float64, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDataset, i, len(row), n)
		}
		copy(data[i*n:(i+1)*n], row)
	}
	return Matrix{n: n, data: data}, nil
}

// Len returns the number of rows (and columns).
func (m Matrix) Len() int {
	return m.n
}

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns row i. The returned slice aliases the matrix storage and must
// not be modified.
func (m Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}
