package ui

import (
	"math/rand"
	"reflect"
	"time"

	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/backend"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/data/dispatcher"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/reveal"
	"github.com/atomicstack/darktriad/internal/session"
	"github.com/atomicstack/darktriad/internal/theme"
	"github.com/atomicstack/darktriad/internal/ui/command"
	uistate "github.com/atomicstack/darktriad/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	centerCopy     = "The gate to everything divine intellectual and the hidden knowledge laid by the hierarchy to be bestowed upon all who seek the true divine knowledge. Enter the temple now."
	loadingCopy    = "Invoking the Triad..."
	frameInterval  = 33 * time.Millisecond
	glitchInterval = 2200 * time.Millisecond
	fpsWindow      = 500 * time.Millisecond

	minIntensity  = 0.5
	maxIntensity  = 1.5
	intensityStep = 0.05
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Session is the part of session.Session the presentation layer drives.
type Session interface {
	LoadSession() session.ConfigPayload
	SwapBackground(mode background.Mode, id string) (background.Descriptor, error)
	Reload(payload assets.Payload) (session.ReloadResult, error)
	Events() <-chan struct{}
	Drain() []session.Event
	Visibility() reveal.Visibility
	Playback() (clock string, err error)
	MediaTime() float64
	Actions(n int) []string
}

// Options configures a Model.
type Options struct {
	Session    Session
	Watcher    *backend.Watcher
	Width      int
	Height     int
	ShowFooter bool
	Debug      bool
	// Manual disables the timers and channel listeners; messages are then
	// delivered explicitly, as Harness does.
	Manual bool
	Now    func() time.Time
	Seed   int64
}

// Model implements the Bubble Tea model for the presentation.
type Model struct {
	session    Session
	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	handlers   map[reflect.Type]msgHandler
	keys       keyMap
	help       help.Model
	manual     bool
	now        func() time.Time
	rng        *rand.Rand

	loading     bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	showDebug   bool
	errMsg      string
	backendErr  string

	config     session.ConfigPayload
	current    background.Descriptor
	clock      string
	playErr    error
	mediaTime  float64
	visibility reveal.Visibility
	actions    []string
	intensity  float64
	glitch     int

	controls    []*glyph.Control
	texts       []string
	buttonWidth int
	focus       int
	hover       int
	picker      *uistate.Level

	fps       int
	frames    int
	fpsMark   time.Time
	lastFrame time.Time

	hits hitboxes
}

// NewModel builds the presentation for an already started session.
func NewModel(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}
	m := &Model{
		session:    opts.Session,
		backend:    opts.Watcher,
		dispatcher: dispatcher.New(opts.Session),
		bus:        command.New(),
		keys:       newKeyMap(),
		help:       help.New(),
		manual:     opts.Manual,
		now:        now,
		rng:        rand.New(rand.NewSource(seed)),
		loading:    true,
		showFooter: opts.ShowFooter,
		showDebug:  opts.Debug,
		intensity:  1,
		focus:      -1,
		hover:      -1,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSessionCmd(m.session)}
	if !m.manual {
		cmds = append(cmds, waitForSessionEvent(m.session), frameTick(), glitchTick())
		if m.backend != nil {
			cmds = append(cmds, waitForBackendEvent(m.backend))
		}
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(sessionLoadedMsg{}):  m.handleSessionLoadedMsg,
		reflect.TypeOf(sessionEventMsg{}):   m.handleSessionEventMsg,
		reflect.TypeOf(swapResultMsg{}):     m.handleSwapResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(glitchMsg{}):         m.handleGlitchMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	return nil
}

// overlayOpacity is the darkening applied over the current background.
func (m *Model) overlayOpacity() float64 {
	return background.OverlayOpacity(m.current.OverlayIntensity, m.intensity)
}
