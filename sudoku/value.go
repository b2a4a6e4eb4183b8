package sudoku

import (
	"errors"
	"fmt"
	"strconv"
)

// Value is one of the nine Sudoku symbols. It doubles as a color in the
// coloring reduction. The zero Value is invalid; construct through NewValue
// or ParseValue so that out-of-range integers are a construction-time error.
type Value uint8

var ErrInvalidValue = errors.New("sudoku: value out of range [1,9]")

// NewValue validates and converts a raw integer into a Value.
func NewValue(v uint8) (Value, error) {
	if v < 1 || v > 9 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidValue, v)
	}
	return Value(v), nil
}

// ParseValue converts a digit rune in '1'..'9' into a Value.
func ParseValue(r rune) (Value, error) {
	if r < '1' || r > '9' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, r)
	}
	return Value(r - '0'), nil
}

// Index maps the value onto [0,9).
func (v Value) Index() int {
	return int(v) - 1
}

func (v Value) String() string {
	return strconv.Itoa(int(v))
}

// Values returns the nine symbols in ascending order.
func Values() [9]Value {
	return [9]Value{1, 2, 3, 4, 5, 6, 7, 8, 9}
}
