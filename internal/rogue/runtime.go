package rogue

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/dungeon"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
)

// session owns the state shared between the runtime and the dungeon for
// one play session. The runtime only holds a handle to it.
type session struct {
	info   *core.GameInfo
	config *core.ConfigInner
	items  *item.Handler
}

func newSession(config core.ConfigInner, items item.Config) *session {
	return &session{
		info:   core.NewGameInfo(),
		config: &config,
		items:  item.NewHandler(items, config.Seed),
	}
}

// teardown releases the shared state. Handles resolved afterwards fail.
func (s *session) teardown() {
	s.info = nil
	s.config = nil
	s.items = nil
}

func (s *session) alive() bool {
	return s.info != nil && s.config != nil && s.items != nil
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger *log.Logger
}

// WithLogger sets the logger used by the runtime, the dungeon and the item
// handler.
func WithLogger(l *log.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// RunTime is a live game session.
//
// It must not be used from more than one goroutine at a time.
type RunTime struct {
	session *session
	dungeon dungeon.Dungeon
	keymap  core.KeyMap
	ui      core.UiState
	// running is set between the run prefix and its direction key.
	running bool
	over    bool
	logger  *log.Logger
}

// Build validates the config and constructs a new session. Every call
// creates fresh state; nothing is shared between runtimes.
func (c GameConfig) Build(opts ...BuildOption) (*RunTime, error) {
	o := buildOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	inner, err := c.toInner()
	if err != nil {
		return nil, gameerr.Wrap(err, "in GameConfig::Build")
	}
	if err := c.Item.Validate(); err != nil {
		return nil, gameerr.Wrap(err, "in GameConfig::Build")
	}
	km, err := c.keyMap()
	if err != nil {
		return nil, gameerr.Wrap(err, "in GameConfig::Build")
	}

	s := newSession(inner, c.Item)
	s.items.SetLogger(o.logger)
	dg, err := dungeon.Build(c.Style, dungeon.Deps{
		Config: inner,
		Info:   s.info,
		Items:  s.items,
		Logger: o.logger,
	})
	if err != nil {
		return nil, gameerr.Wrap(err, "in GameConfig::Build")
	}

	o.logger.Debug("runtime built", "seed", inner.Seed, "width", inner.Width, "height", inner.Height, "style", c.Dungeon)
	return &RunTime{
		session: s,
		dungeon: dg,
		keymap:  km,
		logger:  o.logger,
	}, nil
}

// Close ends the session and releases its state. Calls made afterwards
// return a LogicError.
func (rt *RunTime) Close() {
	rt.dungeon = nil
	rt.session.teardown()
}

func (rt *RunTime) resolve(context string) (*session, error) {
	if rt.dungeon == nil || !rt.session.alive() {
		return nil, gameerr.Wrap(gameerr.New(gameerr.LogicError, "session already torn down"), context)
	}
	return rt.session, nil
}

// ReactToKey processes one key and returns what happened.
func (rt *RunTime) ReactToKey(key core.Key) ([]core.Reaction, error) {
	const context = "in RunTime::ReactToKey"
	if _, err := rt.resolve(context); err != nil {
		return nil, err
	}
	if rt.over {
		return nil, gameerr.Wrap(gameerr.New(gameerr.LogicError, "game already quit"), context)
	}

	var (
		res []core.Reaction
		err error
	)
	switch {
	case rt.ui.IsMordal():
		res, err = rt.reactMordal(key)
	case rt.running:
		res, err = rt.reactRun(key)
	default:
		res, err = rt.reactNormal(key)
	}
	if err != nil {
		return nil, gameerr.Wrap(err, context)
	}
	rt.logger.Debug("reacted", "key", key, "reactions", len(res))
	return res, nil
}

func (rt *RunTime) reactNormal(key core.Key) ([]core.Reaction, error) {
	action, ok := rt.keymap.Get(key)
	if !ok {
		return nil, gameerr.InvalidKey(key)
	}
	if dir, ok := action.Direction(); ok {
		return rt.dungeon.Move(dir)
	}
	switch action {
	case core.ActionRun:
		rt.running = true
		return nil, nil
	case core.ActionSearch:
		return rt.dungeon.Search()
	case core.ActionDescend:
		return rt.dungeon.Descend()
	case core.ActionQuit:
		rt.ui = core.UiMordal(core.MordalQuit)
		return []core.Reaction{core.UiTransition{State: rt.ui}}, nil
	default:
		return nil, gameerr.InvalidKey(key)
	}
}

func (rt *RunTime) reactRun(key core.Key) ([]core.Reaction, error) {
	rt.running = false
	if key == core.KeyEsc {
		return nil, gameerr.New(gameerr.IncompleteInput, "run cancelled")
	}
	action, _ := rt.keymap.Get(key)
	dir, ok := action.Direction()
	if !ok || dir == core.Stay {
		return nil, gameerr.InvalidKey(key)
	}
	return rt.dungeon.Run(dir)
}

func (rt *RunTime) reactMordal(key core.Key) ([]core.Reaction, error) {
	switch key {
	case "y", "Y":
		rt.ui = core.UiNormal
		rt.over = true
		return []core.Reaction{core.Notify{Msg: core.Quit{}}}, nil
	case "n", "N", core.KeyEsc:
		rt.ui = core.UiNormal
		return []core.Reaction{core.UiTransition{State: rt.ui}}, nil
	default:
		return nil, gameerr.InvalidKey(key)
	}
}

// DrawScreen calls fn for every visible map cell.
func (rt *RunTime) DrawScreen(fn func(core.Positioned) error) error {
	const context = "in RunTime::DrawScreen"
	if _, err := rt.resolve(context); err != nil {
		return err
	}
	return gameerr.Wrap(rt.dungeon.Draw(fn), context)
}

// PlayerStatus returns the player status in display order.
func (rt *RunTime) PlayerStatus() ([]core.StatusEntry, error) {
	if _, err := rt.resolve("in RunTime::PlayerStatus"); err != nil {
		return nil, err
	}
	return rt.dungeon.Status(), nil
}

// ScreenSize returns the configured screen size.
func (rt *RunTime) ScreenSize() (core.X, core.Y, error) {
	s, err := rt.resolve("in RunTime::ScreenSize")
	if err != nil {
		return 0, 0, err
	}
	return s.config.Width, s.config.Height, nil
}

// Info returns a copy of the session progress.
func (rt *RunTime) Info() (core.GameInfo, error) {
	s, err := rt.resolve("in RunTime::Info")
	if err != nil {
		return core.GameInfo{}, err
	}
	return *s.info, nil
}

// Config returns the resolved configuration, including the actual seed.
func (rt *RunTime) Config() (core.ConfigInner, error) {
	s, err := rt.resolve("in RunTime::Config")
	if err != nil {
		return core.ConfigInner{}, err
	}
	return *s.config, nil
}

// UiState returns the current modal state.
func (rt *RunTime) UiState() core.UiState {
	return rt.ui
}

// Over reports whether the player confirmed quitting.
func (rt *RunTime) Over() bool {
	return rt.over
}

// SetKeyMap replaces the key bindings.
func (rt *RunTime) SetKeyMap(km core.KeyMap) error {
	if err := km.Validate(); err != nil {
		return gameerr.Wrap(gameerr.New(gameerr.InvalidSetting, err.Error()), "in RunTime::SetKeyMap")
	}
	rt.keymap = km.Clone()
	return nil
}

// SaveData is a serializable snapshot of a session.
type SaveData struct {
	Info    core.GameInfo    `json:"game_info"`
	Config  core.ConfigInner `json:"config"`
	Dungeon dungeon.Snapshot `json:"dungeon"`
	Items   item.Snapshot    `json:"items"`
}

// SaveData returns a snapshot of the session.
func (rt *RunTime) SaveData() (SaveData, error) {
	s, err := rt.resolve("in RunTime::SaveData")
	if err != nil {
		return SaveData{}, err
	}
	return SaveData{
		Info:    *s.info,
		Config:  *s.config,
		Dungeon: rt.dungeon.Snapshot(),
		Items:   s.items.Snapshot(),
	}, nil
}
