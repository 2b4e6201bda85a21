// Package grid stores motion and privacy block maps and converts them between
// the packed wire representation and grids of different resolution.
package grid

import (
	"encoding/hex"
	"strings"

	"github.com/juju/errors"
)

// Canonical grid used by the platform for every camera.
const (
	CanonicalRows = 36
	CanonicalCols = 44
)

// Size is a grid resolution in cells.
type Size struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

// Canonical is the platform grid size.
var Canonical = Size{Rows: CanonicalRows, Cols: CanonicalCols}

// Cells returns the number of cells of the size.
func (s Size) Cells() int {
	return s.Rows * s.Cols
}

// PackedLen returns the number of bytes Pack produces for the size.
func (s Size) PackedLen() int {
	return (s.Cells() + 7) / 8
}

// Valid reports whether the size has at least one cell.
func (s Size) Valid() bool {
	return s.Rows > 0 && s.Cols > 0
}

// Grid is a fixed-capacity bitset addressed by row and column.
type Grid struct {
	size  Size
	words []uint64
}

// New returns an empty grid. Non-positive dimensions produce an empty 0x0 grid.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	return &Grid{
		size:  Size{Rows: rows, Cols: cols},
		words: make([]uint64, (rows*cols+63)/64),
	}
}

// NewCanonical returns an empty grid of the canonical size.
func NewCanonical() *Grid {
	return New(CanonicalRows, CanonicalCols)
}

func (g *Grid) Size() Size { return g.size }
func (g *Grid) Rows() int  { return g.size.Rows }
func (g *Grid) Cols() int  { return g.size.Cols }

func (g *Grid) index(row, col int) (int, bool) {
	if row < 0 || col < 0 || row >= g.size.Rows || col >= g.size.Cols {
		return 0, false
	}
	return row*g.size.Cols + col, true
}

// Get returns the cell state. Cells outside the grid read as false.
func (g *Grid) Get(row, col int) bool {
	i, ok := g.index(row, col)
	if !ok {
		return false
	}
	return g.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set changes the cell state. Cells outside the grid are ignored.
func (g *Grid) Set(row, col int, on bool) {
	i, ok := g.index(row, col)
	if !ok {
		return
	}
	if on {
		g.words[i>>6] |= 1 << (uint(i) & 63)
	} else {
		g.words[i>>6] &^= 1 << (uint(i) & 63)
	}
}

// Fill sets every cell to on.
func (g *Grid) Fill(on bool) {
	for r := 0; r < g.size.Rows; r++ {
		for c := 0; c < g.size.Cols; c++ {
			g.Set(r, c, on)
		}
	}
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	n := 0
	for r := 0; r < g.size.Rows; r++ {
		for c := 0; c < g.size.Cols; c++ {
			if g.Get(r, c) {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.size != other.size {
		return false
	}
	for i := range g.words {
		if g.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, words: make([]uint64, len(g.words))}
	copy(c.words, g.words)
	return c
}

// String renders the grid one row per line with '#' for set cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.size.Rows; r++ {
		for c := 0; c < g.size.Cols; c++ {
			if g.Get(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Pack serializes the grid row-major, most significant bit first.
// Padding bits of the last byte are zero.
func Pack(g *Grid) []byte {
	b := make([]byte, g.size.PackedLen())
	for r := 0; r < g.size.Rows; r++ {
		for c := 0; c < g.size.Cols; c++ {
			if g.Get(r, c) {
				i := r*g.size.Cols + c
				b[i/8] |= 0x80 >> (i % 8)
			}
		}
	}
	return b
}

// Unpack is the inverse of Pack. The buffer must hold exactly ceil(rows*cols/8) bytes.
func Unpack(b []byte, rows, cols int) (*Grid, error) {
	size := Size{Rows: rows, Cols: cols}
	if !size.Valid() {
		return nil, errors.NotValidf("grid size %dx%d", cols, rows)
	}
	if len(b) != size.PackedLen() {
		return nil, errors.NotValidf("grid of %d bytes for %dx%d cells", len(b), cols, rows)
	}
	g := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if b[i/8]&(0x80>>(i%8)) != 0 {
				g.Set(r, c, true)
			}
		}
	}
	return g, nil
}

// Resample maps src onto a grid of dstRows x dstCols. Every destination cell
// takes the value of the source cell containing its center:
//
//	srcRow = floor((2*dstRow + 1) * srcRows / (2 * dstRows))
//
// and the same for columns. Resampling to a finer grid and back is lossless.
func Resample(src *Grid, dstRows, dstCols int) *Grid {
	dst := New(dstRows, dstCols)
	if !src.size.Valid() || !dst.size.Valid() {
		return dst
	}
	for r := 0; r < dstRows; r++ {
		sr := (2*r + 1) * src.size.Rows / (2 * dstRows)
		for c := 0; c < dstCols; c++ {
			sc := (2*c + 1) * src.size.Cols / (2 * dstCols)
			if src.Get(sr, sc) {
				dst.Set(r, c, true)
			}
		}
	}
	return dst
}

// EncodeHex packs the grid and returns upper-case hex.
func EncodeHex(g *Grid) string {
	return strings.ToUpper(hex.EncodeToString(Pack(g)))
}

// DecodeHex parses hex produced by EncodeHex.
func DecodeHex(s string, rows, cols int) (*Grid, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.NotValidf("grid hex %q", s)
	}
	return Unpack(b, rows, cols)
}
