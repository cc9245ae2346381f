package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/core"
	"github.com/vovakirdan/rasta-crosser/internal/games/crosser"
	"github.com/vovakirdan/rasta-crosser/internal/storage"
)

// EventGameOver is broadcast to spectators when a run ends.
const EventGameOver = "game_over"

// gameSession holds the mutable parts of a running game. GameModel is copied
// by value on every Bubble Tea update, so they live behind a pointer.
type gameSession struct {
	engine *crosser.Engine
	loop   *crosser.Loop
	ticker *tickRequester
	last   crosser.GameState
	saved  bool
}

// GameModel runs one crosser engine inside a Bubble Tea program.
type GameModel struct {
	s          *gameSession
	opts       Options
	difficulty config.DifficultyPreset
	sessionID  string
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	gestures   *core.GestureTracker
	quitting   bool
	backToMenu bool
}

// NewGameModel builds and initializes an engine for gameCfg with the preset applied.
func NewGameModel(gameCfg *config.GameConfig, preset config.DifficultyPreset, opts Options, sessionID string) (GameModel, error) {
	cfg := *gameCfg
	config.ApplyPreset(&cfg, preset)

	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	engine, err := crosser.New(&cfg,
		crosser.WithSeed(rt.Seed),
		crosser.WithLogger(opts.Logger),
		crosser.WithSprites(opts.Sprites),
	)
	if err != nil {
		return GameModel{}, err
	}
	if err := engine.Initialize(context.Background()); err != nil {
		return GameModel{}, err
	}

	s := &gameSession{
		engine: engine,
		ticker: &tickRequester{},
		last:   engine.Snapshot(),
	}
	s.loop = crosser.NewLoop(engine.Update, nil, s.ticker)

	hub := opts.Hub
	engine.SetObserver(func(st crosser.GameState) {
		s.last = st
		if hub != nil {
			hub.BroadcastToSession(sessionID, st)
		}
	})

	return GameModel{
		s:          s,
		opts:       opts,
		difficulty: preset,
		sessionID:  sessionID,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		config:     rt,
		keyMapper:  NewKeyMapper(),
		gestures:   &core.GestureTracker{},
	}, nil
}

// Init starts the loop and the tick stream.
func (m GameModel) Init() tea.Cmd {
	m.s.loop.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		m.s.ticker.fire(time.Time(msg))
		m.recordGameOver()
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.s.loop.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from a settled game
	if action == core.ActionBack {
		st := m.s.engine.Status()
		if st == crosser.StatusPaused || st == crosser.StatusGameOver {
			m.s.loop.Stop()
			m.backToMenu = true
		}
		return m, nil
	}

	m.apply(action)
	return m, nil
}

// handleMouse turns press/release pairs into swipe and tap gestures.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	vp := crosser.NewViewport(m.s.engine.Config().Game, m.screen.Width(), m.screen.Height())
	x, y := vp.ToGame(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		m.gestures.Press(x, y, time.Now())
	case tea.MouseActionRelease:
		m.apply(m.gestures.Release(x, y, time.Now()))
	}
	return m, nil
}

// apply delivers an action to the engine between frames.
func (m GameModel) apply(action core.Action) {
	cmd := crosser.CommandFromAction(action)
	if cmd == crosser.CommandNone {
		return
	}
	m.s.loop.Do(func() {
		m.s.engine.HandleInput(cmd)
	})
}

// recordGameOver saves a finished run once per game over.
func (m GameModel) recordGameOver() {
	s := m.s
	switch s.engine.Status() {
	case crosser.StatusPlaying:
		s.saved = false
		return
	case crosser.StatusGameOver:
	default:
		return
	}
	if s.saved {
		return
	}
	s.saved = true

	snap := s.engine.Snapshot()
	if m.opts.Hub != nil {
		m.opts.Hub.BroadcastEvent(m.sessionID, EventGameOver, map[string]int{"score": snap.Score, "hops": snap.HopCount})
	}
	m.saveRun(snap)
}

// saveRun stores a finished run. Runs without points are not kept.
func (m GameModel) saveRun(snap crosser.GameState) {
	if m.opts.Store == nil || snap.Score <= 0 {
		return
	}

	id, err := m.opts.Store.SaveRun(storage.Run{
		City:       m.s.engine.City().ID,
		Player:     m.opts.Player,
		Score:      snap.Score,
		Hops:       snap.HopCount,
		Duration:   time.Duration(snap.LastUpdateTime * float64(time.Millisecond)),
		Difficulty: string(m.difficulty),
	})
	if err != nil {
		m.opts.Logger.Warn("cannot save run", "err", err)
		return
	}
	m.opts.Logger.Debug("run saved", "id", id, "score", snap.Score)
}

// saveScreenshot saves the current screen to a text file.
func (m GameModel) saveScreenshot() {
	m.s.engine.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".crosser", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("crosser_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.s.engine.Render(m.screen)
	return RenderScreen(m.screen)
}

// Snapshot returns the last state published by the engine.
func (m GameModel) Snapshot() crosser.GameState {
	return m.s.last
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
