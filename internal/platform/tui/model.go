// Package tui provides the Bubble Tea integration for the rogue runtime.
// The model forwards every key to the runtime and applies the returned
// reactions in order; nothing advances without input.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/rogue"
	"github.com/vovakirdan/tui-rogue/internal/storage"
)

// Options configures a Model.
type Options struct {
	// Player is recorded with the finished run. Defaults to $USER.
	Player string
	// Store receives the run record when the session ends. May be nil.
	Store  *storage.Store
	Logger *log.Logger
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	rt     *rogue.RunTime
	screen *core.Screen
	style  string
	opts   Options

	message  string
	isError  bool
	prompt   string
	status   string
	mapView  string
	termW    int
	termH    int
	quitting bool
	saved    bool
	err      error
}

// NewModel builds a fresh runtime from cfg and wraps it in a model.
func NewModel(cfg rogue.GameConfig, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = os.Getenv("USER")
	}

	rt, err := cfg.Build(rogue.WithLogger(opts.Logger))
	if err != nil {
		return Model{}, err
	}
	w, h, err := rt.ScreenSize()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		rt:     rt,
		screen: core.NewScreen(w, h),
		style:  cfg.Dungeon,
		opts:   opts,
	}
	if err := m.redraw(); err != nil {
		return Model{}, err
	}
	if err := m.refreshStatus(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model. The game is turn based, so no command is needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	// Global keys bypass the runtime
	if IsForceQuit(msg) {
		m.finish(storage.EndDisconnect)
		return m, tea.Quit
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	m.message, m.isError = "", false
	reactions, err := m.rt.ReactToKey(KeyFromMsg(msg))
	if err != nil {
		return m.handleError(err)
	}
	if err := m.apply(reactions); err != nil {
		return m.handleError(err)
	}
	if m.rt.Over() {
		m.finish(storage.EndQuit)
		return m, tea.Quit
	}
	return m, nil
}

// handleError shows recoverable input errors and ends the session on
// anything else.
func (m Model) handleError(err error) (tea.Model, tea.Cmd) {
	if kind, ok := gameerr.KindOf(err); ok && kind.Recoverable() {
		var e *gameerr.Error
		errors.As(err, &e)
		m.message, m.isError = e.Error(), true
		return m, nil
	}

	m.opts.Logger.Error("runtime failed", "err", err)
	m.err = err
	m.finish(storage.EndDisconnect)
	return m, tea.Quit
}

// apply handles reactions in the order the runtime produced them.
func (m *Model) apply(reactions []core.Reaction) error {
	for _, r := range reactions {
		switch r := r.(type) {
		case core.Notify:
			m.message = r.Msg.String()
		case core.Redraw:
			if err := m.redraw(); err != nil {
				return err
			}
		case core.StatusUpdated:
			if err := m.refreshStatus(); err != nil {
				return err
			}
		case core.UiTransition:
			m.prompt = r.State.Prompt()
		}
	}
	return nil
}

func (m *Model) redraw() error {
	m.screen.Clear()
	err := m.rt.DrawScreen(func(p core.Positioned) error {
		if !m.screen.Set(p.Coord, p.Tile) {
			return gameerr.Newf(gameerr.Index, "cell %s is off screen", p.Coord)
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.mapView = RenderMap(m.screen, 1, m.screen.Height()-2)
	return nil
}

func (m *Model) refreshStatus() error {
	entries, err := m.rt.PlayerStatus()
	if err != nil {
		return err
	}
	m.status = FormatStatus(entries)
	return nil
}

// finish records the run once and releases the runtime.
func (m *Model) finish(reason storage.EndReason) {
	m.quitting = true
	if m.saved {
		return
	}
	m.saved = true
	defer m.rt.Close()

	if m.opts.Store == nil {
		return
	}
	sd, err := m.rt.SaveData()
	if err != nil {
		m.opts.Logger.Warn("cannot snapshot run", "err", err)
		return
	}
	rec := storage.NewRunRecord(m.opts.Player, m.style, sd, reason)
	id, err := m.opts.Store.SaveRun(rec)
	if err != nil {
		m.opts.Logger.Warn("cannot save run", "err", err)
		return
	}
	m.opts.Logger.Info("run saved", "id", id, "player", rec.Player, "gold", rec.Gold, "level", rec.Level, "end", rec.EndReason)
}

// saveScreenshot saves the current map to a file.
func (m *Model) saveScreenshot() {
	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".rogue", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.style, timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
	m.message = "screenshot saved to " + path
}

// Message returns the text of the message line.
func (m Model) Message() string {
	if m.prompt != "" {
		return m.prompt
	}
	return m.message
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Quitting reports whether the session has ended.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(m.err.Error()) + "\n"
		}
		return messageStyle.Render(m.message) + "\n"
	}

	width := int(m.screen.Width())
	height := int(m.screen.Height())
	if m.termW > 0 && (m.termW < width || m.termH < height) {
		return errorStyle.Render(fmt.Sprintf(
			"terminal too small: %dx%d, need %dx%d", m.termW, m.termH, width, height))
	}

	var sb strings.Builder
	switch {
	case m.prompt != "":
		sb.WriteString(promptStyle.Render(fit(m.prompt, width)))
	case m.isError:
		sb.WriteString(errorStyle.Render(fit(m.message, width)))
	default:
		sb.WriteString(messageStyle.Render(fit(m.message, width)))
	}
	sb.WriteByte('\n')
	sb.WriteString(m.mapView)
	sb.WriteByte('\n')
	sb.WriteString(statusStyle.Render(fit(m.status, width)))
	return sb.String()
}

// Run starts the Bubble Tea program for a local session.
func Run(cfg rogue.GameConfig, opts Options) error {
	model, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
