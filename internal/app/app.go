// Package app contains the root simulator model.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/pagedeck/internal/automation"
	"github.com/zjrosen/pagedeck/internal/button"
	"github.com/zjrosen/pagedeck/internal/config"
	"github.com/zjrosen/pagedeck/internal/display"
	"github.com/zjrosen/pagedeck/internal/keys"
	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/pubsub"
	"github.com/zjrosen/pagedeck/internal/selector"
	"github.com/zjrosen/pagedeck/internal/ui/logpanel"
	"github.com/zjrosen/pagedeck/internal/ui/styles"
	"github.com/zjrosen/pagedeck/internal/ui/toaster"
	"github.com/zjrosen/pagedeck/internal/watcher"
)

// Zone ids for clickable regions.
const (
	zonePrev       = "btn-prev"
	zoneNext       = "btn-next"
	zonePagePrefix = "page-"
)

const historySize = 6

// Services are the collaborators the simulator drives. Manager, Selector and
// Screen are required; the rest are optional.
type Services struct {
	Manager    *pagemanager.Manager
	Selector   *selector.Selector
	Screen     *display.Screen
	NextButton *button.Button
	PrevButton *button.Button
	Runner     *automation.Runner
	Loader     *automation.Loader
	Content    display.ContentRenderer
	Config     config.Config
	ConfigPath string
}

// scriptsChangedMsg is sent when the scripts directory settles after a change.
type scriptsChangedMsg struct{}

// scriptDoneMsg reports the end of a script started from the simulator.
type scriptDoneMsg struct {
	id  string
	err error
}

// Model is the root application state.
type Model struct {
	svc  Services
	keys keys.KeyMap
	help help.Model

	display  display.Model
	toaster  toaster.Model
	logPanel logpanel.Model

	width    int
	height   int
	cursor   int
	showHelp bool
	pressed  string // zone id of the button pressed last, highlighted once
	history  []pagemanager.Transition

	ctx                context.Context
	cancel             context.CancelFunc
	transitionListener *pubsub.ContinuousListener[pagemanager.Transition]
	selectorListener   *pubsub.ContinuousListener[selector.Snapshot]
	logListenCmd       tea.Cmd

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}
}

// New creates the simulator model. The manager must already be set up or be
// set up before the program starts.
func New(svc Services) Model {
	ctx, cancel := context.WithCancel(context.Background())

	d := svc.Config.Display
	var opts []display.ModelOption
	if svc.Content != nil {
		opts = append(opts, display.WithContentRenderer(svc.Content))
	}

	m := Model{
		svc:                svc,
		keys:               keys.DefaultKeyMap(),
		help:               help.New(),
		display:            display.NewModel(svc.Screen, d.Width, d.Height, d.FrameRate, opts...),
		toaster:            toaster.New(),
		logPanel:           logpanel.New(),
		ctx:                ctx,
		cancel:             cancel,
		transitionListener: pubsub.NewContinuousListener[pagemanager.Transition](ctx, svc.Manager),
		selectorListener:   pubsub.NewContinuousListener[selector.Snapshot](ctx, svc.Selector, pubsub.StateEvent),
	}
	m.cursor = max(svc.Selector.Index(), 0)
	m.logListenCmd = m.logPanel.StartListening()
	if svc.Config.UI.ShowLog {
		m.logPanel.Toggle()
	}

	// Hot reload is best effort; the simulator works without it.
	if svc.Loader != nil && svc.Loader.Dir() != "" {
		if info, err := os.Stat(svc.Loader.Dir()); err == nil && info.IsDir() {
			w, err := watcher.New(watcher.DefaultConfig(svc.Loader.Dir()))
			if err == nil {
				ch, err := w.Start()
				if err == nil {
					m.watcherHandle = w
					m.watcherCh = ch
				} else {
					_ = w.Stop()
					log.Warn(log.CatWatcher, "Failed to watch scripts", "dir", svc.Loader.Dir(), "error", err)
				}
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.display.Init(),
		m.transitionListener.Listen(),
		m.selectorListener.Listen(),
		m.logListenCmd,
	}
	if m.watcherCh != nil {
		cmds = append(cmds, waitForScripts(m.watcherCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logPanel.SetSize(msg.Width, msg.Height)
		return m, nil

	case display.LoadedMsg, display.FrameMsg:
		var cmd tea.Cmd
		m.display, cmd = m.display.Update(msg)
		return m, cmd

	case pubsub.Event[pagemanager.Transition]:
		m.history = append(m.history, msg.Payload)
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
		return m, m.transitionListener.Listen()

	case pubsub.Event[selector.Snapshot]:
		if i := indexOf(msg.Payload.Options, msg.Payload.State); i >= 0 {
			m.cursor = i
		}
		return m, m.selectorListener.Listen()

	case log.LogEvent:
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		return m, cmd

	case scriptsChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reloadScripts()
		return m, tea.Batch(cmd, waitForScripts(m.watcherCh))

	case scriptDoneMsg:
		if msg.err != nil {
			return m.toast(fmt.Sprintf("Script %s: %v", msg.id, msg.err), toaster.StyleError)
		}
		return m.toast("Ran script "+msg.id, toaster.StyleSuccess)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logpanel.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.logPanel.Visible() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.logPanel, cmd = m.logPanel.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.pressed = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.press(zoneNext)

	case key.Matches(msg, m.keys.Prev):
		return m.press(zonePrev)

	case key.Matches(msg, m.keys.Up):
		if n := len(m.svc.Selector.Options()); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.svc.Selector.Options()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectOption(m.cursor)

	case key.Matches(msg, m.keys.Pin):
		return m.pinDefault()

	case key.Matches(msg, m.keys.RunScript):
		n, _ := strconv.Atoi(msg.String())
		return m.runScript(n - 1)

	case key.Matches(msg, m.keys.Log):
		m.logPanel.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch {
	case inZone(zonePrev, msg):
		return m.press(zonePrev)
	case inZone(zoneNext, msg):
		return m.press(zoneNext)
	}
	for i := range m.svc.Selector.Options() {
		if inZone(pageZone(i), msg) {
			m.cursor = i
			return m.selectOption(i)
		}
	}
	return m, nil
}

// press fires the momentary button behind a zone. Without a configured
// button the manager is driven directly.
func (m Model) press(id string) (tea.Model, tea.Cmd) {
	m.pressed = id
	btn, fallback := m.svc.NextButton, m.svc.Manager.Next
	if id == zonePrev {
		btn, fallback = m.svc.PrevButton, m.svc.Manager.Previous
	}
	if btn != nil {
		btn.Press(m.ctx)
	} else {
		fallback(m.ctx)
	}
	return m, nil
}

func (m Model) selectOption(i int) (tea.Model, tea.Cmd) {
	options := m.svc.Selector.Options()
	if i < 0 || i >= len(options) {
		return m, nil
	}
	if err := m.svc.Selector.Control(m.ctx, options[i]); err != nil {
		return m.toast(err.Error(), toaster.StyleWarn)
	}
	return m, nil
}

func (m Model) pinDefault() (tea.Model, tea.Cmd) {
	entry, ok := m.svc.Manager.Current()
	if !ok {
		return m.toast("No active page", toaster.StyleWarn)
	}
	if m.svc.ConfigPath == "" {
		return m.toast("No config file to save to", toaster.StyleWarn)
	}
	if err := config.SaveDefaultPage(m.svc.ConfigPath, entry.Label); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save default page", err)
		return m.toast("Failed to save default page", toaster.StyleError)
	}
	return m.toast("Default page set to "+entry.Label, toaster.StyleSuccess)
}

func (m Model) runScript(i int) (tea.Model, tea.Cmd) {
	if m.svc.Runner == nil {
		return m, nil
	}
	ids := m.svc.Runner.IDs()
	if i < 0 || i >= len(ids) {
		return m.toast(fmt.Sprintf("No script #%d", i+1), toaster.StyleWarn)
	}
	id := ids[i]

	args := automation.Args{}
	if options := m.svc.Selector.Options(); m.cursor < len(options) {
		args["page"] = options[m.cursor]
	}
	runner, ctx := m.svc.Runner, m.ctx
	return m, func() tea.Msg {
		return scriptDoneMsg{id: id, err: runner.Run(ctx, id, args)}
	}
}

func (m Model) reloadScripts() (Model, tea.Cmd) {
	if m.svc.Loader == nil {
		return m, nil
	}
	if err := m.svc.Loader.Load(); err != nil {
		log.ErrorErr(log.CatScript, "Script reload failed", err, "dir", m.svc.Loader.Dir())
		style := toaster.StyleError
		if errors.Is(err, pagemanager.ErrInvalidConfig) {
			style = toaster.StyleWarn
		}
		m.toaster = m.toaster.Show("Scripts not reloaded: "+err.Error(), style)
		return m, m.toaster.ScheduleDismiss(toaster.DefaultTimeout)
	}
	log.Info(log.CatScript, "Scripts reloaded", "count", len(m.svc.Runner.IDs()))
	m.toaster = m.toaster.Show("Scripts reloaded", toaster.StyleInfo)
	return m, m.toaster.ScheduleDismiss(toaster.DefaultTimeout)
}

func (m Model) toast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	m.toaster = m.toaster.Show(message, style)
	return m, m.toaster.ScheduleDismiss(toaster.DefaultTimeout)
}

// View implements tea.Model.
func (m Model) View() string {
	screen := m.renderScreen()
	side := lipgloss.JoinVertical(lipgloss.Left, m.renderPages(), m.renderHistory())
	body := lipgloss.JoinHorizontal(lipgloss.Top, screen, " ", side)

	view := lipgloss.JoinVertical(lipgloss.Left, body, m.renderButtons(), m.help.View(m.keys))

	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = lipgloss.Width(view), lipgloss.Height(view)
	}
	view = m.toaster.Overlay(view, width, height)
	view = m.logPanel.Overlay(view)
	return zone.Scan(view)
}

func (m Model) renderScreen() string {
	title := m.svc.Selector.Name()
	if entry, ok := m.svc.Manager.Current(); ok {
		if p, ok := entry.Page.(*display.Page); ok && p.Title() != "" {
			title = p.Title()
		}
	}
	status := styles.SecondaryStyle.Render(truncate.StringWithTail(title, uint(max(m.display.Width(), 1)), "…"))
	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		styles.DisplayStyle.Render(m.display.View()),
	)
}

func (m Model) renderPages() string {
	snap := m.svc.Selector.Snapshot()
	var lines []string
	for i, opt := range snap.Options {
		prefix := "  "
		if i == m.cursor {
			prefix = styles.SelectionIndicatorStyle.Render("> ")
		}
		label := opt
		if opt == snap.State {
			label = lipgloss.NewStyle().Bold(true).Render(opt + " ●")
		}
		lines = append(lines, zone.Mark(pageZone(i), prefix+label))
	}
	if len(snap.Options) == 0 {
		lines = append(lines, styles.MutedStyle.Render("no pages"))
	}
	return panel(snap.Name, lines, true)
}

func (m Model) renderHistory() string {
	var lines []string
	for i := len(m.history) - 1; i >= 0; i-- {
		tr := m.history[i]
		lines = append(lines, fmt.Sprintf("%-8s %s %s %s",
			tr.Kind, tr.Label,
			styles.MutedStyle.Render(tr.Animation.String()),
			styles.MutedStyle.Render(tr.Duration.Round(time.Millisecond).String())))
	}
	if len(m.history) == 0 {
		lines = append(lines, styles.MutedStyle.Render("none yet"))
	}
	return panel("Transitions", lines, false)
}

// panel frames lines with one column of padding, wide enough for the title
// and the longest line.
func panel(title string, lines []string, active bool) string {
	width := lipgloss.Width(title) + 6
	for i, line := range lines {
		lines[i] = " " + line
		width = max(width, lipgloss.Width(line)+4)
	}
	return styles.TitledPanel(strings.Join(lines, "\n"), title, width, active)
}

func (m Model) renderButtons() string {
	render := func(id, label string) string {
		style := styles.ButtonStyle
		if m.pressed == id {
			style = styles.ButtonPressedStyle
		}
		return zone.Mark(id, style.Render(label))
	}
	prev, next := "◀ Prev", "Next ▶"
	if m.svc.PrevButton != nil {
		prev = "◀ " + m.svc.PrevButton.Name()
	}
	if m.svc.NextButton != nil {
		next = m.svc.NextButton.Name() + " ▶"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, render(zonePrev, prev), " ", render(zoneNext, next))
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logPanel.StopListening()
	m.cancel()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

func waitForScripts(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return scriptsChangedMsg{}
	}
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func pageZone(i int) string {
	return zonePagePrefix + strconv.Itoa(i)
}

func indexOf(options []string, s string) int {
	for i, o := range options {
		if o == s {
			return i
		}
	}
	return -1
}
