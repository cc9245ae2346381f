package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/rasta-crosser/internal/assets"
	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/core"
	"github.com/vovakirdan/rasta-crosser/internal/storage"
	"github.com/vovakirdan/rasta-crosser/internal/transport/websocket"
)

// Options configures a terminal session.
type Options struct {
	Runtime core.RuntimeConfig

	// ConfigSource is a file path or http(s) URL; empty uses the search order of config.Load.
	ConfigSource string
	// Config, when set, is used instead of loading ConfigSource.
	Config *config.GameConfig

	Difficulty config.DifficultyPreset
	SkipMenu   bool // Start playing as soon as the config is loaded

	Store   *storage.Store // Optional run history
	Hub     *websocket.Hub // Optional spectator feed
	Logger  *log.Logger    // Defaults to a discarding logger
	Sprites *assets.Cache  // Shared sprite cache; one per session if nil
	Player  string         // Recorded with saved runs
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Sprites == nil {
		o.Sprites = assets.NewCache()
	}
	if o.Difficulty == "" {
		o.Difficulty = config.DifficultyNormal
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = 60
	}
	return o
}

type sessionMode int

const (
	modeLoading sessionMode = iota
	modeError
	modeMenu
	modeGame
	modeScores
)

// configLoadedMsg carries the result of the asynchronous config load.
type configLoadedMsg struct {
	cfg *config.GameConfig
	err error
}

var (
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2)
)

// SessionModel manages the full session flow:
// loading -> menu -> game/scores -> menu.
type SessionModel struct {
	opts      Options
	mode      sessionMode
	runtime   core.RuntimeConfig
	sessionID string

	cfg     *config.GameConfig
	loadErr error

	spinner  spinner.Model
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session that starts by loading the configuration.
func NewSessionModel(opts Options) SessionModel {
	opts = opts.withDefaults()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	return SessionModel{
		opts:      opts,
		mode:      modeLoading,
		runtime:   opts.Runtime,
		sessionID: uuid.NewString(),
		spinner:   s,
	}
}

// SessionID identifies this session on the spectator feed.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init starts the spinner and the config load.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadConfig())
}

func (m SessionModel) loadConfig() tea.Cmd {
	preloaded := m.opts.Config
	source := m.opts.ConfigSource
	return func() tea.Msg {
		if preloaded != nil {
			return configLoadedMsg{cfg: preloaded}
		}
		cfg, err := config.Load(context.Background(), source)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeLoading:
		return m.updateLoading(msg)
	case modeError:
		return m.updateError(msg)
	case modeMenu:
		return m.updateMenu(msg)
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	}
	return m, nil
}

func (m SessionModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case configLoadedMsg:
		if msg.err != nil {
			m.opts.Logger.Error("cannot load config", "source", m.opts.ConfigSource, "err", msg.err)
			m.loadErr = msg.err
			m.mode = modeError
			return m, nil
		}
		m.cfg = msg.cfg
		if m.opts.SkipMenu {
			return m.startGame(m.opts.Difficulty)
		}
		return m.openMenu()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m.quit()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SessionModel) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "r":
			m.loadErr = nil
			m.mode = modeLoading
			return m, tea.Batch(m.spinner.Tick, m.loadConfig())
		case "q", "ctrl+c", "esc":
			return m.quit()
		}
	}
	return m, nil
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		return m.quit()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	switch selected.Choice {
	case ChoicePlay:
		return m.startGame(selected.Difficulty)
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.cfg.Cities, m.runtime.ScreenW, m.runtime.ScreenH)
		m.mode = modeScores
		return m, m.scores.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		return m.quit()
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.IsGoingBack() {
		return m.openMenu()
	}
	return m, cmd
}

// openMenu shows a fresh menu with the first city's best score.
func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	city := ""
	highScore := 0
	if len(m.cfg.Cities) > 0 {
		city = m.cfg.Cities[0].Name
		if m.opts.Store != nil {
			hs, err := m.opts.Store.HighScore(m.cfg.Cities[0].ID)
			if err != nil {
				m.opts.Logger.Warn("cannot read high score", "err", err)
			}
			highScore = hs
		}
	}

	m.menu = NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH, city, highScore)
	m.mode = modeMenu
	return m, m.menu.Init()
}

func (m SessionModel) startGame(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	opts := m.opts
	opts.Runtime = m.runtime

	gm, err := NewGameModel(m.cfg, preset, opts, m.sessionID)
	if err != nil {
		m.opts.Logger.Error("cannot start game", "err", err)
		m.loadErr = err
		m.mode = modeError
		return m, nil
	}

	m.opts.Logger.Info("game started", "session", m.sessionID, "difficulty", preset, "player", m.opts.Player)
	m.game = &gm
	m.mode = modeGame
	return m, gm.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.game != nil {
		m.game.s.loop.Stop()
	}
	if m.opts.Hub != nil {
		m.opts.Hub.BroadcastEvent(m.sessionID, websocket.EventSessionEnd, nil)
	}
	return m, tea.Quit
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeLoading:
		return fmt.Sprintf("\n\n   %s Loading configuration...\n\n   q: quit\n", m.spinner.View())
	case modeError:
		return m.errorView()
	case modeMenu:
		return m.menu.View()
	case modeGame:
		return m.game.View()
	case modeScores:
		return m.scores.View()
	}
	return ""
}

func (m SessionModel) errorView() string {
	var b strings.Builder
	b.WriteString(errorTitleStyle.Render("Cannot start the game"))
	b.WriteString("\n\n")
	if m.loadErr != nil {
		b.WriteString(m.loadErr.Error())
	}
	b.WriteString("\n\n")
	b.WriteString(menuDimStyle.Render("r: retry  q: quit"))

	box := errorBoxStyle.Render(b.String())
	return lipgloss.Place(m.runtime.ScreenW, m.runtime.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// Run starts a local session and blocks until it ends.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
