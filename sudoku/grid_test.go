package sudoku

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGrid = "296541378851273694743698251915764832387152946624839517139486725478325169562917483"

func TestParse(t *testing.T) {
	g, err := Parse(validGrid)
	require.NoError(t, err)
	assert.Equal(t, Value(2), g.At(0, 0))
	assert.Equal(t, Value(3), g.At(8, 8))
	assert.Len(t, g.Assignment(), NbCells)
}

func TestParseWrongLength(t *testing.T) {
	_, err := Parse(validGrid[:80])
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = Parse(validGrid + "1")
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestParseBadCharacter(t *testing.T) {
	for _, c := range []string{"0", ".", "a", " "} {
		s := c + validGrid[1:]
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalidValue, "character %q", c)
	}
}

func TestParseDuplicate(t *testing.T) {
	// first two cells of row 1 set to the same value
	s := []byte(validGrid)
	s[1] = s[0]
	_, err := Parse(string(s))
	require.ErrorIs(t, err, ErrDuplicateValue)

	// column duplicate: cell (1,0) copies cell (0,0); keep row 2 free of a
	// row-level duplicate by also replacing the cell that held that value
	s = []byte(validGrid)
	old := s[9]
	s[9] = s[0]
	for i := 10; i < 18; i++ {
		if s[i] == s[0] {
			s[i] = old
		}
	}
	_, err = Parse(string(s))
	require.ErrorIs(t, err, ErrDuplicateValue)
}

func TestAssignmentIsACopy(t *testing.T) {
	g, err := Parse(validGrid)
	require.NoError(t, err)

	a := g.Assignment()
	a[0] = 9
	assert.Equal(t, Value(2), g.At(0, 0))
}

func TestGridString(t *testing.T) {
	g, err := Parse(validGrid)
	require.NoError(t, err)

	s := g.String()
	assert.True(t, strings.HasPrefix(s, "296|541|378\n"))
	assert.Contains(t, s, "---+---+---")
	assert.Equal(t, 11, strings.Count(s, "\n"))
}

func TestNewValue(t *testing.T) {
	for v := uint8(1); v <= 9; v++ {
		got, err := NewValue(v)
		require.NoError(t, err)
		assert.Equal(t, Value(v), got)
	}
	for _, v := range []uint8{0, 10, 42, 255} {
		_, err := NewValue(v)
		require.ErrorIs(t, err, ErrInvalidValue)
	}
}

func TestValueIndex(t *testing.T) {
	for i, v := range Values() {
		assert.Equal(t, i, v.Index())
	}
}
