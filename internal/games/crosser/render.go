package crosser

import (
	"fmt"

	"github.com/vovakirdan/rasta-crosser/internal/assets"
	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// Render draws the current state onto dst. It reads the state only.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()
	vp := NewViewport(e.cfg.Game, dst.Width(), dst.Height())

	e.renderBackground(dst, vp)
	e.renderVehicles(dst, vp)
	e.renderPlayer(dst, vp)
	e.renderHUD(dst, vp)
}

func (e *Engine) renderBackground(dst *core.Screen, vp Viewport) {
	gw, gh := float64(e.cfg.Game.GameWidth), float64(e.cfg.Game.GameHeight)
	bounds := vp.Bounds()
	tw, th := vp.Size(gw, sidewalkHeight)

	road := e.sprites.Background(assets.TileRoad, tw, th)
	for y := sidewalkHeight; y < gh-sidewalkHeight; y += sidewalkHeight {
		cx, cy := vp.ToCell(0, y)
		drawClipped(dst, road, cx, cy, bounds)
	}

	sidewalk := e.sprites.Background(assets.TileSidewalk, tw, th)
	cx, cy := vp.ToCell(0, 0)
	drawClipped(dst, sidewalk, cx, cy, bounds)
	cx, cy = vp.ToCell(0, gh-sidewalkHeight)
	drawClipped(dst, sidewalk, cx, cy, bounds)
}

func (e *Engine) renderVehicles(dst *core.Screen, vp Viewport) {
	bounds := vp.Bounds()
	for _, v := range e.state.Vehicles {
		w, h := vp.Size(v.Width, v.Height)
		s := e.sprites.Vehicle(v.Type, string(v.Direction), w, h)
		cx, cy := vp.CellOrigin(v.X, v.Y, v.Width, v.Height)
		drawClipped(dst, s, cx, cy, bounds)
	}
}

func (e *Engine) renderPlayer(dst *core.Screen, vp Viewport) {
	state := assets.PlayerIdle
	switch e.state.Player.AnimationState {
	case AnimHopping:
		state = assets.PlayerHop
	case AnimCollision:
		state = assets.PlayerCollision
	}

	w, h := vp.Size(PlayerBoxSize, PlayerBoxSize)
	s := e.sprites.Player(state, w, h)
	px, py := e.RenderPosition()
	cx, cy := vp.CellOrigin(px, py, PlayerBoxSize, PlayerBoxSize)
	drawClipped(dst, s, cx, cy, vp.Bounds())
}

func (e *Engine) renderHUD(dst *core.Screen, vp Viewport) {
	bounds := vp.Bounds()
	dst.DrawTextColored(bounds.X, 0, fmt.Sprintf("Score: %d", e.state.Score), core.ColorWhite)
	city := e.City().Name
	dst.DrawTextColored(bounds.Right()-len([]rune(city)), 0, city, core.ColorYellow)

	mid := bounds.Y + bounds.H/2
	switch e.state.Status {
	case StatusPaused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorYellow)
		dst.DrawTextCentered(mid+1, " Press SPACE to resume ", core.ColorLightGray)
	case StatusGameOver:
		box := core.NewRect(bounds.X+bounds.W/2-13, mid-3, 26, 7)
		dst.DrawRect(box, ' ', core.ColorDefault)
		dst.DrawBox(box, core.ColorRed)
		dst.DrawTextCentered(mid-1, "GAME OVER", core.ColorRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("Final Score: %d", e.state.Score), core.ColorWhite)
		dst.DrawTextCentered(mid+1, "Press R to restart", core.ColorLightGray)
	}
}

// drawClipped blits s at (x, y), skipping cells outside clip.
func drawClipped(dst *core.Screen, s *assets.Sprite, x, y int, clip core.Rect) {
	for sy := 0; sy < s.H; sy++ {
		row := y + sy
		if row < clip.Y || row >= clip.Bottom() {
			continue
		}
		for sx := 0; sx < s.W; sx++ {
			col := x + sx
			if col < clip.X || col >= clip.Right() {
				continue
			}
			cell := s.At(sx, sy)
			if cell.Rune == 0 {
				continue
			}
			dst.SetColored(col, row, cell.Rune, cell.Color)
		}
	}
}
