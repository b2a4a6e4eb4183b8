// Package sudoku holds the input surface of the proof system: validated cell
// values and completely filled 9x9 grids. A Grid that exists is structurally
// sound; every row, column and box holds nine distinct values.
package sudoku

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the side length of a classic grid.
	Size = 9
	// BoxSize is the side length of a box.
	BoxSize = 3
	// NbCells is the total cell count.
	NbCells = Size * Size
)

var (
	ErrInvalidLength  = errors.New("sudoku: grid must contain exactly 81 characters")
	ErrDuplicateValue = errors.New("sudoku: duplicate value")
)

// Grid is a completely filled, internally valid 9x9 assignment. Immutable
// once constructed.
type Grid struct {
	cells [NbCells]Value
}

// Parse builds a Grid from an 81-character string of digits '1'..'9', cells
// listed row by row. It rejects wrong lengths, non-digit characters and any
// duplicate within a row, column or box.
func Parse(s string) (*Grid, error) {
	if len(s) != NbCells {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, len(s))
	}
	var g Grid
	for i := 0; i < NbCells; i++ {
		v, err := ParseValue(rune(s[i]))
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		g.cells[i] = v
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// At returns the value at the given zero-based row and column.
func (g *Grid) At(row, col int) Value {
	return g.cells[row*Size+col]
}

// Assignment returns the cell values row by row, as consumed by the graph
// reduction. The returned slice is a copy.
func (g *Grid) Assignment() []Value {
	out := make([]Value, NbCells)
	copy(out, g.cells[:])
	return out
}

func (g *Grid) validate() error {
	for row := 0; row < Size; row++ {
		var seen [Size + 1]bool
		for col := 0; col < Size; col++ {
			v := g.At(row, col)
			if seen[v] {
				return fmt.Errorf("%w: %s twice in row %d", ErrDuplicateValue, v, row+1)
			}
			seen[v] = true
		}
	}
	for col := 0; col < Size; col++ {
		var seen [Size + 1]bool
		for row := 0; row < Size; row++ {
			v := g.At(row, col)
			if seen[v] {
				return fmt.Errorf("%w: %s twice in column %d", ErrDuplicateValue, v, col+1)
			}
			seen[v] = true
		}
	}
	for box := 0; box < Size; box++ {
		var seen [Size + 1]bool
		baseRow := (box / BoxSize) * BoxSize
		baseCol := (box % BoxSize) * BoxSize
		for i := 0; i < Size; i++ {
			v := g.At(baseRow+i/BoxSize, baseCol+i%BoxSize)
			if seen[v] {
				return fmt.Errorf("%w: %s twice in box %d", ErrDuplicateValue, v, box+1)
			}
			seen[v] = true
		}
	}
	return nil
}

// String renders the grid with box separators.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteString(g.At(row, col).String())
			if col%BoxSize == BoxSize-1 && col != Size-1 {
				sb.WriteByte('|')
			}
		}
		sb.WriteByte('\n')
		if row%BoxSize == BoxSize-1 && row != Size-1 {
			sb.WriteString("---+---+---\n")
		}
	}
	return sb.String()
}
