// Package assets generates placeholder glyph sprites for the crosser and
// caches them by key. The engine only relies on sprite dimensions; the
// glyphs themselves are cosmetic.
package assets

import (
	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// Sprite is a small block of colored cells. Cells with a zero rune are transparent.
type Sprite struct {
	W, H  int
	cells []core.Cell
}

func newSprite(w, h int) *Sprite {
	return &Sprite{W: w, H: h, cells: make([]core.Cell, w*h)}
}

// At returns the cell at (x, y) within the sprite.
func (s *Sprite) At(x, y int) core.Cell {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return core.Cell{}
	}
	return s.cells[y*s.W+x]
}

func (s *Sprite) set(x, y int, r rune, c core.Color) {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return
	}
	s.cells[y*s.W+x] = core.Cell{Rune: r, Color: c}
}

func (s *Sprite) fill(r rune, c core.Color) {
	for i := range s.cells {
		s.cells[i] = core.Cell{Rune: r, Color: c}
	}
}

// text writes a label centered on row y, clipped to the sprite width.
func (s *Sprite) text(y int, label string, c core.Color) {
	runes := []rune(label)
	if len(runes) > s.W {
		runes = runes[:s.W]
	}
	x := (s.W - len(runes)) / 2
	for i, r := range runes {
		s.set(x+i, y, r, c)
	}
}

// Draw blits the sprite onto dst with its top-left corner at (x, y).
func (s *Sprite) Draw(dst *core.Screen, x, y int) {
	for sy := 0; sy < s.H; sy++ {
		for sx := 0; sx < s.W; sx++ {
			cell := s.cells[sy*s.W+sx]
			if cell.Rune == 0 {
				continue
			}
			dst.SetColored(x+sx, y+sy, cell.Rune, cell.Color)
		}
	}
}
