package crosser

import (
	"math"

	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// HUDRows is the number of screen rows reserved above the playfield.
const HUDRows = 1

// Viewport fits the game's pixel canvas into a terminal screen, keeping the
// aspect ratio. A terminal cell is treated as twice as tall as it is wide.
type Viewport struct {
	scale float64 // Game pixels per column; a row spans 2*scale pixels
	offX  int
	offY  int
	cols  int
	rows  int
	gameW float64
	gameH float64
}

// NewViewport computes the largest aspect-correct fit of the game canvas
// into a screenW x screenH terminal, below the HUD row.
func NewViewport(g config.GameDimensions, screenW, screenH int) Viewport {
	gw, gh := float64(g.GameWidth), float64(g.GameHeight)
	availW := core.Max(screenW, 1)
	availH := core.Max(screenH-HUDRows, 1)

	scale := math.Max(gw/float64(availW), gh/(2*float64(availH)))
	if scale <= 0 {
		scale = 1
	}

	cols := core.Clamp(int(math.Round(gw/scale)), 1, availW)
	rows := core.Clamp(int(math.Round(gh/(2*scale))), 1, availH)

	return Viewport{
		scale: scale,
		offX:  (availW - cols) / 2,
		offY:  HUDRows + (availH-rows)/2,
		cols:  cols,
		rows:  rows,
		gameW: gw,
		gameH: gh,
	}
}

// Bounds returns the playfield area in screen cells.
func (v Viewport) Bounds() core.Rect {
	return core.NewRect(v.offX, v.offY, v.cols, v.rows)
}

// Size converts a pixel size to a cell size of at least 1x1.
func (v Viewport) Size(w, h float64) (int, int) {
	cw := int(math.Round(w / v.scale))
	ch := int(math.Round(h / (2 * v.scale)))
	return core.Max(cw, 1), core.Max(ch, 1)
}

// ToCell converts a game pixel position to a screen cell.
func (v Viewport) ToCell(x, y float64) (int, int) {
	return v.offX + int(math.Floor(x/v.scale)), v.offY + int(math.Floor(y/(2*v.scale)))
}

// ToGame converts a screen cell to the game pixel position of its centre.
// Cells outside the playfield map outside the canvas.
func (v Viewport) ToGame(col, row int) (float64, float64) {
	x := (float64(col-v.offX) + 0.5) * v.scale
	y := (float64(row-v.offY) + 0.5) * 2 * v.scale
	return x, y
}

// CellOrigin returns the top-left screen cell of a box centred on (cx, cy).
func (v Viewport) CellOrigin(cx, cy, w, h float64) (int, int) {
	return v.ToCell(cx-w/2, cy-h/2)
}
