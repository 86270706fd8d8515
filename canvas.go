package marquee

import (
	"fmt"
	"slices"
	"strings"

	"github.com/k1LoW/errors"
)

// The contribution graph is a canvas of 52 weeks by 7 days.
//
//	  0   7  ...  350 357
//	  1   8  ...  351 358
//	... ...  ...  ... ...
//	  6  13  ...  356 363
const (
	Rows    = 7
	Columns = 52
	Size    = Rows * Columns
)

// Pixel is a cell of the canvas addressed column-major (column*Rows + row).
// Row 0 is the top day of the week and column 0 is the oldest week.
type Pixel int

// PixelAt returns the pixel at the given column and row.
func PixelAt(column, row int) Pixel {
	return Pixel(column*Rows + row)
}

func (p Pixel) Column() int {
	return int(p) / Rows
}

func (p Pixel) Row() int {
	return int(p) % Rows
}

// Valid reports whether p lies on the canvas.
func (p Pixel) Valid() bool {
	return p >= 0 && p < Size
}

// Pixels is a sorted set of unique pixels.
type Pixels []Pixel

// Union merges the outputs of pattern generators into a sorted set.
func Union(sets ...[]Pixel) (_ Pixels, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	seen := make(map[Pixel]struct{})
	var ps Pixels
	for _, set := range sets {
		for _, p := range set {
			if !p.Valid() {
				return nil, fmt.Errorf("pixel %d is out of the canvas [0, %d)", p, Size)
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			ps = append(ps, p)
		}
	}
	slices.Sort(ps)
	return ps, nil
}

// Contains reports whether p is lit.
func (ps Pixels) Contains(p Pixel) bool {
	_, ok := slices.BinarySearch(ps, p)
	return ok
}

// Preview renders the canvas row by row, 'x' for a lit pixel.
func (ps Pixels) Preview() string {
	var b strings.Builder
	for r := range Rows {
		for c := range Columns {
			if ps.Contains(PixelAt(c, r)) {
				b.WriteByte('x')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
