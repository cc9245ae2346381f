package assets

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// PlayerState selects the player sprite variant.
type PlayerState string

const (
	PlayerIdle      PlayerState = "idle"
	PlayerHop       PlayerState = "hop"
	PlayerCollision PlayerState = "collision"
)

// TileKind selects a background tile.
type TileKind string

const (
	TileRoad     TileKind = "road"
	TileSidewalk TileKind = "sidewalk"
)

// vehicleColors maps vehicle types to their body color.
var vehicleColors = map[string]core.Color{
	"cng":        core.ColorYellow,
	"rickshaw":   core.ColorGreen,
	"bus":        core.ColorBlue,
	"truck":      core.ColorGray,
	"motorcycle": core.ColorRed,
	"car":        core.ColorPurple,
	"tempo":      core.ColorOrange,
}

// Cache generates sprites on first request and returns the same instance afterwards.
// Safe for concurrent use; one cache may back several sessions.
type Cache struct {
	mu      sync.Mutex
	sprites map[string]*Sprite
}

// NewCache creates an empty sprite cache.
func NewCache() *Cache {
	return &Cache{sprites: make(map[string]*Sprite)}
}

// Len returns the number of cached sprites.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sprites)
}

// Clear drops every cached sprite.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sprites = make(map[string]*Sprite)
}

func (c *Cache) get(key string, build func() *Sprite) *Sprite {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sprites[key]; ok {
		return s
	}
	s := build()
	c.sprites[key] = s
	return s
}

// Player returns the player sprite for a state at the given cell size.
func (c *Cache) Player(state PlayerState, w, h int) *Sprite {
	w, h = core.Max(w, 1), core.Max(h, 1)
	key := fmt.Sprintf("player-%s-%dx%d", state, w, h)

	return c.get(key, func() *Sprite {
		color := core.ColorGreen
		label, glyph := "RASTA", '☺'
		switch state {
		case PlayerHop:
			color = core.ColorDarkGreen
			label, glyph = "HOP!", '▲'
		case PlayerCollision:
			color = core.ColorRed
			label, glyph = "OUCH", '✖'
		}

		s := newSprite(w, h)
		s.fill('█', color)
		if w >= len(label) {
			s.text(h/2, label, core.ColorBlack)
		} else {
			s.set(w/2, h/2, glyph, core.ColorWhite)
		}
		return s
	})
}

// Vehicle returns a vehicle sprite for a type and travel direction at the given cell size.
// The arrow sits on the leading edge.
func (c *Cache) Vehicle(vehicleType, direction string, w, h int) *Sprite {
	w, h = core.Max(w, 1), core.Max(h, 1)
	key := fmt.Sprintf("vehicle-%s-%s-%dx%d", vehicleType, direction, w, h)

	return c.get(key, func() *Sprite {
		color, ok := vehicleColors[vehicleType]
		if !ok {
			color = core.ColorLightGray
		}

		s := newSprite(w, h)
		s.fill('█', color)
		if w >= len(vehicleType)+2 {
			s.text(h/2, strings.ToUpper(vehicleType), core.ColorBlack)
		}
		if direction == "left" {
			s.set(0, h/2, '◀', core.ColorBlack)
		} else {
			s.set(w-1, h/2, '▶', core.ColorBlack)
		}
		return s
	})
}

// Background returns a background tile at the given cell size.
func (c *Cache) Background(kind TileKind, w, h int) *Sprite {
	w, h = core.Max(w, 1), core.Max(h, 1)
	key := fmt.Sprintf("bg-%s-%dx%d", kind, w, h)

	return c.get(key, func() *Sprite {
		s := newSprite(w, h)
		if kind == TileSidewalk {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if (x/2+y)%2 == 1 {
						s.set(x, y, '▒', core.ColorGray)
					} else {
						s.set(x, y, '░', core.ColorLightGray)
					}
				}
			}
			return s
		}

		s.fill(' ', core.ColorAsphalt)
		// Dashed divider along the top edge of each road band
		for x := 0; x < w; x++ {
			if (x/2)%2 == 0 {
				s.set(x, 0, '╌', core.ColorAmber)
			}
		}
		return s
	})
}
