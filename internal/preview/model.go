package preview

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/rileyhilliard/osd/internal/overlay"
)

// Sampler produces a fresh metrics snapshot. *metrics.Collector implements it.
type Sampler interface {
	Collect(ctx context.Context) (*metrics.Snapshot, error)
}

// Options configures a preview Model.
type Options struct {
	Template overlay.Template
	Mode     overlay.Mode
	Sampler  Sampler

	// Overrides are consulted before the sampled snapshot.
	Overrides metrics.Source

	// Interval between samples. Zero means one second.
	Interval time.Duration

	// Timeout bounds a single sample. Zero means twice the interval.
	Timeout time.Duration

	Logger logger.Logger
}

// Layout reserved around the overlay body.
const (
	headerHeight = 2
	footerHeight = 3
)

// markupPattern matches renderer tags such as <C4>, <A0=-4> or <FR>.
var markupPattern = regexp.MustCompile(`<[^<>]*>`)

// Model is the Bubble Tea model for the overlay preview.
type Model struct {
	tmpl      overlay.Template
	mode      overlay.Mode
	sampler   Sampler
	overrides metrics.Source
	interval  time.Duration
	timeout   time.Duration
	keys      KeyMap
	log       logger.Logger

	snapshot   *metrics.Snapshot
	lastErr    error
	samples    int
	lastUpdate time.Time

	width    int
	height   int
	plain    bool
	showHelp bool
	quitting bool

	viewport      viewport.Model
	viewportReady bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// sampleMsg carries the result of one Sampler call.
type sampleMsg struct {
	snapshot *metrics.Snapshot
	err      error
	time     time.Time
}

// NewModel creates a preview model.
func NewModel(opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * opts.Interval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return Model{
		tmpl:      opts.Template,
		mode:      opts.Mode,
		sampler:   opts.Sampler,
		overrides: opts.Overrides,
		interval:  opts.Interval,
		timeout:   opts.Timeout,
		keys:      DefaultKeyMap,
		log:       opts.Logger,
	}
}

// Init starts the tick timer and triggers an initial sample.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.sampleCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
		if m.viewportReady {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		bodyHeight := m.height - headerHeight - footerHeight
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.viewportReady {
			m.viewport = viewport.New(m.width, bodyHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = bodyHeight
		}
		m.refreshViewport()

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.sampleCmd())

	case sampleMsg:
		m.lastUpdate = msg.time
		if msg.err != nil {
			// Keep showing the previous snapshot.
			m.lastErr = msg.err
			m.log.Warn("sample failed: %v", msg.err)
		} else {
			m.lastErr = nil
			m.snapshot = msg.snapshot
			m.samples++
		}
		m.refreshViewport()
	}

	return m, nil
}

// handleKey processes keyboard input. Returns true if the key was handled.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return true, nil

	case m.showHelp && key.Matches(msg, m.keys.Close):
		m.showHelp = false
		return true, nil

	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.CycleMode):
		m.mode = m.mode.Next()
		m.log.Debug("mode -> %s", m.mode)
		m.refreshViewport()
		return true, nil

	case key.Matches(msg, m.keys.Plain):
		m.plain = !m.plain
		m.refreshViewport()
		return true, nil

	case key.Matches(msg, m.keys.Refresh):
		return true, m.sampleCmd()
	}
	return false, nil
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleCmd returns a command that collects one snapshot.
func (m Model) sampleCmd() tea.Cmd {
	if m.sampler == nil {
		return nil
	}
	sampler, timeout := m.sampler, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := sampler.Collect(ctx)
		return sampleMsg{snapshot: snap, err: err, time: time.Now()}
	}
}

// Mode returns the mode currently rendered.
func (m Model) Mode() overlay.Mode {
	return m.mode
}

// Source returns what placeholders resolve against: overrides first, then
// the latest snapshot.
func (m Model) Source() metrics.Source {
	return metrics.Chain{m.overrides, m.snapshot}
}

// Overlay returns the rendered overlay markup for the current state.
func (m Model) Overlay() string {
	return m.tmpl.Render(m.mode, m.Source())
}

// body returns the overlay as it is shown in the terminal. Overlay line
// breaks are CRLF; the terminal only needs LF.
func (m Model) body() string {
	text := strings.ReplaceAll(m.Overlay(), "\r\n", "\n")
	if m.plain {
		text = StripMarkup(text)
	}
	return text
}

func (m *Model) refreshViewport() {
	if m.viewportReady {
		m.viewport.SetContent(m.body())
	}
}

// StripMarkup removes renderer tags, leaving the text a reader would see.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}
