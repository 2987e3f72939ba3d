package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/session"
)

const (
	title    = "Pop Mix"
	subtitle = "Playlist creator for Lollypop"

	maxNotifications = 3
)

// PlaylistCreator persists a named playlist. Satisfied by [repositories.PlaylistStore].
type PlaylistCreator interface {
	CreatePlaylist(ctx context.Context, name string, uris []string) (models.CreateResult, error)
}

// focus is the region receiving key presses.
type focus int

const (
	focusSearch focus = iota
	focusList
	focusName
	focusCount
)

type notification struct {
	id       int
	severity session.Severity
	text     string
}

// Options tunes a [Model].
type Options struct {
	BulkLimit     int           // zero uses [session.DefaultBulkLimit]
	NotifyTimeout time.Duration // zero keeps notifications until dismissed
	Logger        *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	state    session.State
	store    PlaylistCreator
	logger   *log.Logger
	ttl      time.Duration
	focus    focus
	width    int
	height   int
	search   textinput.Model
	name     textinput.Model
	tracks   list.Model
	selected viewport.Model
	notes    []notification
	nextNote int
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model over the loaded catalog.
func NewModel(ctx context.Context, tracks []models.Track, store PlaylistCreator, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		ctx:    ctx,
		state:  session.New(tracks, opts.BulkLimit),
		store:  store,
		logger: logger,
		ttl:    opts.NotifyTimeout,
		help:   help.New(),
		keys:   newKeyMap(),
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search"
	m.search.Prompt = "/ "

	m.name = textinput.New()
	m.name.Placeholder = "Playlist name"
	m.name.Prompt = "+ "
	m.name.CharLimit = 256

	m.tracks = list.New(toListItems(m.state.Filtered()), trackDelegate{selected: m.isSelected}, 0, 0)
	m.tracks.SetShowTitle(false)
	m.tracks.SetShowStatusBar(false)
	m.tracks.SetShowHelp(false)
	m.tracks.SetFilteringEnabled(false)
	m.tracks.KeyMap.Quit.SetEnabled(false)
	m.tracks.KeyMap.ForceQuit.SetEnabled(false)
	m.tracks.KeyMap.ShowFullHelp.SetEnabled(false)
	m.tracks.KeyMap.CloseFullHelp.SetEnabled(false)

	m.selected = viewport.New(0, 0)

	m.resize(80, 24)
	m.setFocus(focusSearch)
	m.refresh()
	return m
}

func (m *Model) isSelected(id int64) bool { return m.state.IsSelected(id) }

// Init focuses the search input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgPlaylistCreated:
			out := msg.data.(createOutcome)
			if out.err != nil {
				m.logger.Error("playlist creation failed", "name", out.result.Requested, "error", out.err)
				return m, m.dispatch(session.CreateFailed{Err: out.err})
			}
			m.logger.Info("playlist created", "id", out.result.ID, "name", out.result.Name, "tracks", out.result.Tracks)
			return m, m.dispatch(session.PlaylistCreated{Result: out.result})
		case MsgNotificationExpired:
			m.expire(msg.data.(int))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusName:
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.selectAll):
		return m, m.dispatch(session.SelectAll{})
	case key.Matches(msg, m.keys.deselectAll):
		return m, m.dispatch(session.DeselectAll{})
	case key.Matches(msg, m.keys.create):
		return m, m.dispatch(session.Submit{Name: m.name.Value()})
	case key.Matches(msg, m.keys.dismiss):
		if n := len(m.notes); n > 0 {
			m.notes = m.notes[:n-1]
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.state.Query() {
			return m, tea.Batch(cmd, m.dispatch(session.SearchChanged{Query: m.search.Value()}))
		}
	case focusList:
		if key.Matches(msg, m.keys.toggle) {
			if it, ok := m.tracks.SelectedItem().(trackItem); ok {
				return m, m.dispatch(session.Toggle{ID: it.item.ID})
			}
			return m, nil
		}
		m.tracks, cmd = m.tracks.Update(msg)
	case focusName:
		if key.Matches(msg, m.keys.submit) {
			return m, m.dispatch(session.Submit{Name: m.name.Value()})
		}
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

// dispatch runs e through the session reducer and carries out the resulting commands.
func (m *Model) dispatch(e session.Event) tea.Cmd {
	query := m.state.Query()

	var commands []session.Command
	m.state, commands = session.Reduce(m.state, e)

	var cmds []tea.Cmd
	for _, c := range commands {
		switch c := c.(type) {
		case session.Notify:
			cmds = append(cmds, m.notify(c.Severity, c.Message))
		case session.Persist:
			cmds = append(cmds, m.persist(c.Name, c.URIs))
		case session.Reset:
			m.search.Reset()
			m.name.Reset()
		}
	}

	if m.state.Query() != query {
		m.tracks.ResetSelected()
	}
	m.refresh()
	return tea.Batch(cmds...)
}

func (m *Model) persist(name string, uris []string) tea.Cmd {
	m.logger.Debug("creating playlist", "name", name, "tracks", len(uris))
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		result, err := store.CreatePlaylist(ctx, name, uris)
		if result.Requested == "" {
			result.Requested = name
		}
		return playlistCreatedMsg(result, err)
	}
}

func (m *Model) notify(severity session.Severity, text string) tea.Cmd {
	m.nextNote++
	id := m.nextNote
	m.notes = append(m.notes, notification{id: id, severity: severity, text: text})
	if len(m.notes) > maxNotifications {
		m.notes = m.notes[len(m.notes)-maxNotifications:]
	}

	if m.ttl <= 0 {
		return nil
	}
	return tea.Tick(m.ttl, func(time.Time) tea.Msg { return notificationExpiredMsg(id) })
}

func (m *Model) expire(id int) {
	for i, n := range m.notes {
		if n.id == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return
		}
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.search.Blur()
	m.name.Blur()
	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusName:
		return m.name.Focus()
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	pane := max((width-4)/2, 10)
	rows := max(height-14, 3)

	m.tracks.SetSize(pane-2, rows)
	m.selected.Width = pane - 2
	m.selected.Height = rows
	m.search.Width = max(width-40, 10)
	m.name.Width = max(width-20, 10)
	m.help.Width = width
}

// refresh syncs the list and selection panel with the session state.
func (m *Model) refresh() {
	m.tracks.SetItems(toListItems(m.state.Filtered()))

	items := m.state.SelectedItems()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = truncate(item.Label, m.selected.Width)
	}
	m.selected.SetContent(strings.Join(lines, "\n"))
}

// View renders the header, inputs, panes, notifications and help.
func (m *Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		styles.title.Render(title), "  ", styles.subtitle.Render(subtitle))

	searchRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.box(m.focus == focusSearch).Render(m.search.View()),
		styles.button.Render("Select All ^a"),
		styles.button.Render("Deselect All ^d"),
	)

	all := fmt.Sprintf("All Songs (%d/%d)", len(m.state.Filtered()), len(m.state.Items()))
	chosen := fmt.Sprintf("Selected Songs (%d)", m.state.SelectedCount())
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.box(m.focus == focusList).Render(styles.title.Render(all)+"\n"+m.tracks.View()),
		styles.box(false).Render(styles.title.Render(chosen)+"\n"+m.selected.View()),
	)

	create := "Create ^s"
	if m.state.Creating() {
		create = "Creating…"
	}
	nameRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.box(m.focus == focusName).Render(m.name.View()),
		styles.button.Render(create),
	)

	sections := []string{header, searchRow, panes, nameRow}
	for _, n := range m.notes {
		sections = append(sections, styles.severity(n.severity).Render(n.text))
	}
	sections = append(sections, m.help.ShortHelpView(m.keys.contextual(m.focus)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
