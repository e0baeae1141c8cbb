package frame

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrEmpty is returned when a table has no data rows or no columns.
var ErrEmpty = errors.New("table has no data")

// Coerce parses a cell as a number. Cells that are empty, non-numeric or
// not finite become 0; "true" and "false" become 1 and 0.
func Coerce(cell string) float64 {
	s := strings.TrimSpace(cell)
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}
	switch strings.ToLower(s) {
	case "true":
		return 1
	default:
		return 0
	}
}

// Numeric converts every cell of t with Coerce.
func Numeric(t *Table) (*mat.Dense, error) {
	if len(t.Rows) == 0 || len(t.Header) == 0 {
		return nil, ErrEmpty
	}
	m := mat.NewDense(len(t.Rows), len(t.Header), nil)
	for i, row := range t.Rows {
		for j, cell := range row {
			if j >= len(t.Header) {
				break
			}
			m.Set(i, j, Coerce(cell))
		}
	}
	return m, nil
}
