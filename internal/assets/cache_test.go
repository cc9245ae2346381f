package assets

import (
	"sync"
	"testing"

	"github.com/vovakirdan/rasta-crosser/internal/core"
)

func TestCacheReturnsSameSprite(t *testing.T) {
	c := NewCache()

	a := c.Vehicle("cng", "left", 5, 2)
	b := c.Vehicle("cng", "left", 5, 2)
	if a != b {
		t.Error("same key should return the cached sprite")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}

	c.Vehicle("cng", "right", 5, 2)
	c.Player(PlayerIdle, 3, 2)
	c.Background(TileRoad, 80, 4)
	if c.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, expected 0", c.Len())
	}
}

func TestVehicleSpriteLayout(t *testing.T) {
	c := NewCache()

	left := c.Vehicle("bus", "left", 10, 3)
	if left.W != 10 || left.H != 3 {
		t.Fatalf("sprite size = %dx%d, expected 10x3", left.W, left.H)
	}
	if left.At(0, 1).Rune != '◀' {
		t.Errorf("leftward arrow should be on the left edge, got %q", left.At(0, 1).Rune)
	}
	if left.At(5, 0).Color != core.ColorBlue {
		t.Errorf("bus body should be blue, got %v", left.At(5, 0).Color)
	}

	right := c.Vehicle("bus", "right", 10, 3)
	if right.At(9, 1).Rune != '▶' {
		t.Errorf("rightward arrow should be on the right edge, got %q", right.At(9, 1).Rune)
	}

	unknown := c.Vehicle("hovercraft", "left", 4, 1)
	if unknown.At(2, 0).Color != core.ColorLightGray {
		t.Errorf("unknown type should use fallback color, got %v", unknown.At(2, 0).Color)
	}
}

func TestPlayerSpriteStates(t *testing.T) {
	c := NewCache()

	tests := []struct {
		state PlayerState
		color core.Color
	}{
		{PlayerIdle, core.ColorGreen},
		{PlayerHop, core.ColorDarkGreen},
		{PlayerCollision, core.ColorRed},
	}

	for _, tc := range tests {
		t.Run(string(tc.state), func(t *testing.T) {
			s := c.Player(tc.state, 3, 2)
			if s.At(0, 0).Color != tc.color {
				t.Errorf("body color = %v, expected %v", s.At(0, 0).Color, tc.color)
			}
		})
	}
}

func TestSpriteClampsSize(t *testing.T) {
	s := NewCache().Player(PlayerIdle, 0, -3)
	if s.W != 1 || s.H != 1 {
		t.Errorf("degenerate size should clamp to 1x1, got %dx%d", s.W, s.H)
	}
}

func TestSpriteDraw(t *testing.T) {
	dst := core.NewScreen(6, 3)
	s := NewCache().Background(TileSidewalk, 4, 2)
	s.Draw(dst, 1, 1)

	if dst.Get(0, 0) != ' ' {
		t.Error("Draw should not touch cells outside the sprite")
	}
	if r := dst.Get(1, 1); r != '░' && r != '▒' {
		t.Errorf("expected sidewalk texture at (1,1), got %q", r)
	}

	// Clipped draw must not panic
	s.Draw(dst, 5, 2)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Vehicle("cng", "left", 5, 2)
		}()
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("concurrent requests should share one sprite, Len() = %d", c.Len())
	}
}
