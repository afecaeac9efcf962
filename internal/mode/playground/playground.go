// Package playground provides an interactive demo wiring a plain text input
// to the composition overlay and the selection store: type into the input,
// watch the styled backdrop track it, and simulate an IME composition to see
// the logical caret hold steady.
package playground

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/overtype/internal/compose"
	"github.com/zjrosen/overtype/internal/config"
	"github.com/zjrosen/overtype/internal/log"
	"github.com/zjrosen/overtype/internal/pubsub"
	"github.com/zjrosen/overtype/internal/selection"
	"github.com/zjrosen/overtype/internal/ui/overlay"
	"github.com/zjrosen/overtype/internal/ui/styles"
	"github.com/zjrosen/overtype/internal/watcher"
)

const (
	zoneInput    = "playground-input"
	defaultWidth = 60
)

// flushDeferredMsg drains the deferred-update queue one tick after the
// triggering event, giving the host time to commit its selection change.
type flushDeferredMsg struct{}

// Model is the playground's Bubble Tea model.
type Model struct {
	cfg        config.Config
	configPath string

	input    textinput.Model
	rawHost  *inputHost
	host     selection.MutableHost
	store    *selection.Store
	renderer *overlay.Renderer
	matchers []compose.Matcher

	broker   *pubsub.Broker[string]
	listener *pubsub.Listener[string]
	watch    *watcher.Watcher
	ctx      context.Context
	cancel   context.CancelFunc

	deferred    []func()
	flushQueued bool

	// Simulated IME composition session.
	composing  bool
	composeBuf string
	composeAt  int // rune index where the composition began
	committed  string

	lastEvent string
	width     int
}

// New creates the playground model. configPath may be empty, which disables
// live reload.
func New(cfg config.Config, configPath string) (*Model, error) {
	matchers, err := config.CompileMatchers(cfg.Matchers)
	if err != nil {
		return nil, fmt.Errorf("compiling matchers: %w", err)
	}

	input := textinput.New()
	input.Placeholder = cfg.UI.Placeholder
	input.Prompt = "> "
	input.Focus()

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		cfg:        cfg,
		configPath: configPath,
		input:      input,
		renderer:   overlay.NewRenderer(defaultWidth),
		matchers:   matchers,
		broker:     pubsub.NewBroker[string](),
		ctx:        ctx,
		cancel:     cancel,
		width:      defaultWidth,
	}

	// Selection writes from pointer interactions go through the forwarding
	// adapter, so every programmatic caret move schedules a deferred re-read.
	m.store = selection.New(nil)
	m.rawHost = &inputHost{input: &m.input}
	m.host = selection.InterceptSelection(m.rawHost, func(_, _ int) {
		m.store.ScheduleUpdate()
	})
	m.store.Attach(m.host)
	m.store.SetScheduler(func(fn func()) {
		m.deferred = append(m.deferred, fn)
	})
	m.store.Subscribe(func() {
		snap := m.store.Snapshot()
		m.lastEvent = "selection " + formatSnapshot(snap)
		m.broker.Publish(pubsub.SelectionChanged, formatSnapshot(snap))
	})

	if cfg.AutoReload && configPath != "" {
		wcfg := watcher.DefaultConfig(configPath)
		wcfg.Broker = m.broker
		if cfg.AutoReloadDebounce > 0 {
			wcfg.DebounceDur = time.Duration(cfg.AutoReloadDebounce) * time.Millisecond
		}
		w, err := watcher.New(wcfg)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("creating config watcher: %w", err)
		}
		if _, err := w.Start(); err != nil {
			cancel()
			return nil, fmt.Errorf("starting config watcher: %w", err)
		}
		m.watch = w
	}

	m.listener = pubsub.NewListener(ctx, m.broker)

	return m, nil
}

// Close releases the watcher and broker resources.
func (m *Model) Close() {
	m.cancel()
	if m.watch != nil {
		_ = m.watch.Stop()
	}
	m.broker.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listener.Listen())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width - 6 // borders, padding, prompt
		if m.width < 10 {
			m.width = 10
		}
		m.input.Width = m.width
		m.renderer.SetWidth(m.width)

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case flushDeferredMsg:
		m.flushQueued = false
		pending := m.deferred
		m.deferred = nil
		for _, fn := range pending {
			fn()
		}

	case pubsub.Event[string]:
		if msg.Type == pubsub.ConfigReloaded {
			m.reloadConfig()
		}
		cmds = append(cmds, m.listener.Listen())
	}

	if len(m.deferred) > 0 && !m.flushQueued {
		m.flushQueued = true
		cmds = append(cmds, func() tea.Msg { return flushDeferredMsg{} })
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes a key event to the composition session or the host input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return nil, true
	}

	if m.composing {
		m.handleComposingKey(msg)
		return nil, false
	}

	switch msg.Type {
	case tea.KeyEsc:
		return nil, true
	case tea.KeyCtrlG:
		m.beginComposition()
		return nil, false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.HandleKeyDown(0)
	return cmd, false
}

// handleComposingKey feeds a key into the simulated IME session. The host
// input never sees these keys; only composition events reach the store.
func (m *Model) handleComposingKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyCtrlG, tea.KeyEnter:
		m.commitComposition()
	case tea.KeyEsc:
		m.cancelComposition()
	case tea.KeyBackspace:
		if m.composeBuf != "" {
			runes := []rune(m.composeBuf)
			m.composeBuf = string(runes[:len(runes)-1])
			m.applyComposition()
		}
	case tea.KeySpace:
		m.composeBuf += " "
		m.applyComposition()
	case tea.KeyRunes:
		m.composeBuf += string(msg.Runes)
		m.applyComposition()
	default:
		// Platforms report swallowed keystrokes with a sentinel code; the
		// store must ignore them.
		m.store.HandleKeyDown(selection.KeyCodeComposing)
	}
}

// beginComposition opens a simulated IME session at the current caret.
func (m *Model) beginComposition() {
	m.composing = true
	m.composeBuf = ""
	m.composeAt = m.input.Position()
	m.committed = m.input.Value()
	m.rawHost.setAnchor(runesToBytes(m.committed, m.composeAt))
	m.store.SetComposition("")
	m.broker.Publish(pubsub.CompositionStarted, "")
	log.Debug(log.CatUI, "composition session opened", "at", m.composeAt)
}

// applyComposition splices the uncommitted text into the host value, the way
// a real IME distorts the underlying input mid-composition.
func (m *Model) applyComposition() {
	at := runesToBytes(m.committed, m.composeAt)
	m.input.SetValue(m.committed[:at] + m.composeBuf + m.committed[at:])
	m.input.SetCursor(m.composeAt + len([]rune(m.composeBuf)))
	m.store.SetComposition(m.composeBuf)
}

// commitComposition ends the session keeping the composed text; the host
// caret stays after it, and the store resynchronizes to raw values.
func (m *Model) commitComposition() {
	m.composing = false
	m.committed = ""
	m.rawHost.clearAnchor()
	m.store.EndComposition()
	m.broker.Publish(pubsub.CompositionEnded, m.composeBuf)
	log.Debug(log.CatUI, "composition committed", "text", m.composeBuf)
}

// cancelComposition ends the session discarding the composed text.
func (m *Model) cancelComposition() {
	m.rawHost.clearAnchor()
	m.input.SetValue(m.committed)
	m.input.SetCursor(m.composeAt)
	m.composing = false
	m.committed = ""
	m.store.EndComposition()
	m.broker.Publish(pubsub.CompositionEnded, "")
}

// handleMouse repositions the caret from a click on the input zone. The
// selection re-read is deferred one tick via the forwarding adapter.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	z := zone.Get(zoneInput)
	if z == nil || !z.InBounds(msg) {
		return
	}
	x, _ := z.Pos(msg)
	col := x - lipgloss.Width(m.input.Prompt)
	if col < 0 {
		col = 0
	}
	at := offsetForColumn(m.input.Value(), col)
	m.host.SetSelection(at, at)
}

// reloadConfig recompiles the matcher set from disk after a watcher event.
func (m *Model) reloadConfig() {
	cfg, err := config.LoadFile(m.configPath)
	if err != nil {
		m.lastEvent = "config reload failed: " + err.Error()
		log.ErrorErr(log.CatConfig, "config reload failed", err)
		return
	}
	matchers, err := config.CompileMatchers(cfg.Matchers)
	if err != nil {
		m.lastEvent = "config reload failed: " + err.Error()
		log.ErrorErr(log.CatConfig, "matcher compile failed", err)
		return
	}
	m.cfg = cfg
	m.matchers = matchers
	m.renderer.Invalidate()
	m.lastEvent = "config reloaded"
	log.Info(log.CatConfig, "matcher set reloaded", "count", len(matchers))
}

// View implements tea.Model.
func (m *Model) View() string {
	inputPane := styles.InputPaneStyle.Render(zone.Mark(zoneInput, m.input.View()))
	backdrop := styles.BackdropPaneStyle.Render(
		m.renderer.Render(m.input.Value(), m.matchers))

	sections := []string{inputPane, backdrop}
	if m.cfg.UI.ShowStatusBar {
		sections = append(sections, m.statusView())
	}
	sections = append(sections, styles.HelpStyle.Render(
		"ctrl+g compose/commit · esc cancel/quit · click to move caret · ctrl+c quit"))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// statusView shows the logical snapshot next to the host's raw report, which
// is where composition compensation becomes visible.
func (m *Model) statusView() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(styles.StatusLabelStyle.Render("logical "))
	b.WriteString(styles.StatusValueStyle.Render(formatSnapshot(snap)))

	rawStart, rawEnd, ok := m.host.Selection()
	b.WriteString(styles.StatusLabelStyle.Render("  raw "))
	if ok {
		b.WriteString(styles.StatusValueStyle.Render(fmt.Sprintf("[%d,%d]", rawStart, rawEnd)))
	} else {
		b.WriteString(styles.StatusValueStyle.Render("[-,-]"))
	}

	caret := overlay.CaretAt(m.input.Value(), snap.End, m.renderer.Width(), m.input.Focused() && snap.Valid)
	if caret.Focused {
		b.WriteString(styles.StatusLabelStyle.Render("  caret "))
		b.WriteString(styles.StatusValueStyle.Render(fmt.Sprintf("%d:%d", caret.Row, caret.Col)))
	}

	if m.composing {
		b.WriteString("  ")
		b.WriteString(styles.ComposingStyle.Render(fmt.Sprintf("composing %q", m.composeBuf)))
	}

	if m.lastEvent != "" {
		b.WriteString(styles.StatusLabelStyle.Render("  " + m.lastEvent))
	}

	return b.String()
}

func formatSnapshot(snap *selection.Snapshot) string {
	if snap == nil || !snap.Valid {
		return "[-,-]"
	}
	return fmt.Sprintf("[%d,%d]", snap.Start, snap.End)
}

// offsetForColumn maps a display column to the byte offset of the grapheme
// cluster occupying it, clamping to the end of the text.
func offsetForColumn(text string, col int) int {
	return overlay.OffsetAtColumn(text, col)
}
