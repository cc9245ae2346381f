// Package crosser implements the lane-crossing game engine: the authoritative
// game state, the per-frame simulation step, vehicle traffic, collision
// detection and the command-driven state machine.
//
// The engine is single-threaded. Update, HandleInput and Render must be
// called from one logical thread of control; the host decides which.
package crosser

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rasta-crosser/internal/assets"
	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// Timing and geometry constants.
const (
	HopDuration     = 200.0 // Milliseconds for one hop, independent of frame rate
	FrameReference  = 16.67 // Milliseconds in a 60fps frame; vehicle speeds are per reference frame
	PlayerBoxSize   = 32.0  // Player collision box edge in pixels
	SpawnOffset     = 100.0 // Spawn distance beyond the canvas edge
	CullMargin      = 200.0 // Vehicles further than this beyond an edge are removed
	sidewalkHeight  = 80.0  // Height of the top and bottom sidewalk bands
	defaultLogLabel = "crosser"
)

// Observer receives a read-only snapshot after every completed simulation frame.
type Observer func(GameState)

// Engine owns one game. Construct it with New.
type Engine struct {
	cfg          *config.GameConfig
	difficulty   *config.DifficultyManager
	trafficLanes []float64
	state        GameState
	rng          *rand.Rand
	sprites      *assets.Cache
	logger       *log.Logger
	observer     Observer
	nextID       uint64
	initialized  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's random source for reproducible traffic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSprites shares a sprite cache between engines.
func WithSprites(c *assets.Cache) Option {
	return func(e *Engine) {
		e.sprites = c
	}
}

// New validates the configuration and builds an engine holding the initial state.
// The configuration is treated as immutable for the engine's lifetime.
func New(cfg *config.GameConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("crosser: %w: nil configuration", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("crosser: %w", err)
	}

	e := &Engine{
		cfg:          cfg,
		difficulty:   config.NewDifficultyManager(cfg.Difficulty),
		trafficLanes: cfg.Lanes.TrafficLanes(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.sprites == nil {
		e.sprites = assets.NewCache()
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{Prefix: defaultLogLabel})
	}

	e.state = e.initialState()
	return e, nil
}

// initialState computes a fresh game: player centred near the bottom safe zone.
func (e *Engine) initialState() GameState {
	g := e.cfg.Game
	w, h, grid := float64(g.GameWidth), float64(g.GameHeight), float64(g.GridSize)

	return GameState{
		Status:      StatusPlaying,
		Score:       0,
		CurrentCity: 0,
		Lives:       1,
		Player: Player{
			X:              w / 2,
			Y:              h - grid*2,
			GridX:          g.GameWidth / 2 / g.GridSize,
			GridY:          (g.GameHeight - g.GridSize*2) / g.GridSize,
			AnimationState: AnimIdle,
		},
		Vehicles:        []Vehicle{},
		CurrentLevel:    1,
		HopCount:        0,
		ComboMultiplier: 1,
		LastUpdateTime:  0,
	}
}

// Initialize pre-generates the sprites the first city needs.
// Call it once before starting the loop.
func (e *Engine) Initialize(ctx context.Context) error {
	e.logger.Info("initializing sprites")

	vp := NewViewport(e.cfg.Game, core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH)
	pw, ph := vp.Size(PlayerBoxSize, PlayerBoxSize)
	for _, st := range []assets.PlayerState{assets.PlayerIdle, assets.PlayerHop, assets.PlayerCollision} {
		e.sprites.Player(st, pw, ph)
	}

	for _, vt := range e.cfg.Cities[0].VehicleTypes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("crosser: initialize: %w", err)
		}
		vc, ok := e.cfg.Vehicles[vt]
		if !ok {
			continue
		}
		vw, vh := vp.Size(vc.Width, vc.Height)
		e.sprites.Vehicle(vt, string(DirLeft), vw, vh)
		e.sprites.Vehicle(vt, string(DirRight), vw, vh)
	}

	tw, th := vp.Size(float64(e.cfg.Game.GameWidth), sidewalkHeight)
	e.sprites.Background(assets.TileRoad, tw, th)
	e.sprites.Background(assets.TileSidewalk, tw, th)

	e.initialized = true
	e.logger.Info("engine initialized", "sprites", e.sprites.Len())
	return nil
}

// Initialized reports whether Initialize has completed.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.GameConfig {
	return e.cfg
}

// SetObserver installs the single snapshot observer. Nil clears it.
func (e *Engine) SetObserver(fn Observer) {
	e.observer = fn
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() GameState {
	return e.state.Clone()
}

// Status returns the current status.
func (e *Engine) Status() Status {
	return e.state.Status
}

// City returns the configuration of the current city.
func (e *Engine) City() config.CityConfig {
	return e.cfg.Cities[e.state.CurrentCity]
}

// Update runs one simulation step for dt elapsed milliseconds.
// Nothing changes unless the game is playing.
func (e *Engine) Update(dt float64) {
	if e.state.Status != StatusPlaying {
		return
	}

	e.state.LastUpdateTime += dt
	e.advancePlayer(dt)
	e.moveVehicles(dt)
	e.cullVehicles()
	e.checkCollisions()
	e.maybeSpawn()

	if e.observer != nil {
		e.observer(e.state.Clone())
	}
}

// advancePlayer progresses an in-flight hop and snaps to the cell centre on completion.
func (e *Engine) advancePlayer(dt float64) {
	p := &e.state.Player
	if !p.IsMoving {
		return
	}

	p.AnimationProgress += dt / HopDuration
	if p.AnimationProgress >= 1 {
		p.IsMoving = false
		p.AnimationProgress = 0
		p.AnimationState = AnimIdle
		p.X, p.Y = e.cellCenter(p.GridX, p.GridY)
	}
}

// cellCenter returns the pixel centre of a grid cell.
func (e *Engine) cellCenter(gx, gy int) (float64, float64) {
	grid := float64(e.cfg.Game.GridSize)
	return float64(gx)*grid + grid/2, float64(gy)*grid + grid/2
}

// RenderPosition returns where the player is drawn: the hop origin
// interpolated toward the destination cell by the hop progress.
func (e *Engine) RenderPosition() (float64, float64) {
	p := e.state.Player
	if !p.IsMoving {
		return p.X, p.Y
	}
	tx, ty := e.cellCenter(p.GridX, p.GridY)
	return p.X + (tx-p.X)*p.AnimationProgress, p.Y + (ty-p.Y)*p.AnimationProgress
}

// checkCollisions ends the game on the first vehicle overlapping the player.
func (e *Engine) checkCollisions() {
	px, py := e.RenderPosition()
	playerBox := core.CenteredBox(px, py, PlayerBoxSize, PlayerBoxSize)

	for _, v := range e.state.Vehicles {
		if playerBox.Intersects(v.Box()) {
			e.handleCollision(v)
			return
		}
	}
}

func (e *Engine) handleCollision(v Vehicle) {
	e.state.Player.AnimationState = AnimCollision
	e.state.Status = StatusGameOver
	e.logger.Info("game over",
		"score", e.state.Score,
		"hops", e.state.HopCount,
		"city", e.City().Name,
		"vehicle", v.Type,
	)
}
