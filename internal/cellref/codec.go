package cellref

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxColumns is the number of columns a single-letter reference can address.
const MaxColumns = 26

var (
	// ErrIndexOutOfRange is returned when a coordinate cannot be written as a
	// reference string.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidReference is returned when reference text cannot be decoded
	// into a coordinate.
	ErrInvalidReference = errors.New("invalid cell reference")
)

// Coordinate is a zero-based (row, column) position in a grid. It is
// comparable and is used as the key of every table in the application.
type Coordinate struct {
	Row    int
	Column int
}

// Less reports whether c sorts before o in row-major order.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Column < o.Column
}

// Compare returns -1, 0 or +1 following row-major order. It is meant for
// slices.SortFunc.
func (c Coordinate) Compare(o Coordinate) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	default:
		return 0
	}
}

// String renders the coordinate as a reference ("b3") when it is
// addressable, or as "(row,col)" otherwise.
func (c Coordinate) String() string {
	ref, err := ToReference(c)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
	}
	return ref
}

// ToReference converts a coordinate to its reference string, e.g.
// {Row: 3, Column: 5} => "f4".
func ToReference(c Coordinate) (string, error) {
	if c.Column < 0 || c.Column >= MaxColumns || c.Row < 0 {
		return "", fmt.Errorf("%w: (%d,%d)", ErrIndexOutOfRange, c.Row, c.Column)
	}
	// Base-36 digits 10..35 are exactly the letters a..z.
	letter := strconv.FormatInt(int64(c.Column+10), 36)
	return letter + strconv.Itoa(c.Row+1), nil
}

// ToCoordinate converts a reference string to a coordinate, e.g.
// "e7" => {Row: 6, Column: 4}. The letter is case-insensitive and the row
// number must be a positive decimal integer.
func ToCoordinate(ref string) (Coordinate, error) {
	if len(ref) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	column, ok := columnOf(ref[0])
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	digits := ref[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row == 0 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	return Coordinate{Row: row - 1, Column: column}, nil
}

// columnOf maps an ASCII letter to its column index.
func columnOf(b byte) (int, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return int(b - 'a'), true
	case b >= 'A' && b <= 'Z':
		return int(b - 'A'), true
	default:
		return 0, false
	}
}
