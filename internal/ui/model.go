// Package ui is the interactive terminal front end of wlankeys.
//
// All netsh work happens inside tea.Cmds so the Update loop never blocks on a
// subprocess.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"wlankeys/internal/export"
	"wlankeys/internal/netsh"
	"wlankeys/internal/profile"
)

// Loader produces the profile list on a worker goroutine.
type Loader interface {
	Start(ctx context.Context) <-chan profile.Result
}

// Deps are the collaborators of the model.
type Deps struct {
	Loader  Loader
	Deleter profile.Deleter
	Logger  log.Logger

	// ExportDir is where the export prompt points by default.
	ExportDir string
	// ExportFormat picks the default file extension.
	ExportFormat export.Format

	Mask          rune
	ShowPasswords bool
	Version       string

	// Clipboard and Now default to the system clipboard and time.Now.
	Clipboard func(string) error
	Now       func() time.Time
}

type mode int

const (
	modeBrowse mode = iota
	modeConfirmDelete
	modeConfirmDeleteAll
	modeConfirmDeleteAllFinal
	modeExport
	modeAbout
)

type (
	loadedMsg struct {
		profiles []profile.Profile
		err      error
	}
	deletedMsg struct {
		count int
		all   bool
		err   error
	}
	exportedMsg struct {
		path  string
		count int
		err   error
	}
	copiedMsg struct {
		name string
		err  error
	}
)

// Model is the bubbletea model of the profile browser.
type Model struct {
	ctx    context.Context
	deps   Deps
	logger log.Logger

	table   table.Model
	spinner spinner.Model
	input   textinput.Model

	profiles []profile.Profile
	marked   map[string]bool
	pending  []string
	reveal   bool
	busy     bool
	mode     mode

	status string
	errMsg string
	height int
}

var columns = []table.Column{
	{Title: " ", Width: 1},
	{Title: "Network Name (SSID)", Width: 28},
	{Title: "Password", Width: 24},
	{Title: "Security Type", Width: 16},
	{Title: "Connection Type", Width: 15},
}

// New builds the model. ctx bounds every netsh call started from the UI.
func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = log.NewNopLogger()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ExportFormat == "" {
		deps.ExportFormat = export.CSV
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Line

	in := textinput.New()
	in.Prompt = "Save as: "
	in.CharLimit = 260
	in.Width = 60

	return Model{
		ctx:     ctx,
		deps:    deps,
		logger:  deps.Logger,
		table:   t,
		spinner: sp,
		input:   in,
		marked:  map[string]bool{},
		reveal:  deps.ShowPasswords,
		busy:    true,
		status:  "Loading WiFi profiles...",
	}
}

func (m Model) Init() tea.Cmd {
	return m.startLoad()
}

func (m *Model) startLoad() tea.Cmd {
	m.busy = true
	m.errMsg = ""
	m.status = "Loading WiFi profiles..."
	loader, ctx := m.deps.Loader, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res := <-loader.Start(ctx)
		return loadedMsg{profiles: res.Profiles, err: res.Err}
	})
}

func (m *Model) startDelete(names []string, all bool) tea.Cmd {
	m.busy = true
	m.errMsg = ""
	if all {
		m.status = "Deleting all WiFi profiles..."
	} else {
		m.status = "Deleting selected profiles..."
	}
	d, ctx := m.deps.Deleter, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		err := profile.DeleteAll(ctx, d, names)
		return deletedMsg{count: len(names), all: all, err: err}
	})
}

func (m Model) exportCmd(path string) tea.Cmd {
	ps := append([]profile.Profile(nil), m.profiles...)
	now := m.deps.Now()
	return func() tea.Msg {
		err := export.WriteFile(path, export.FormatFromPath(path), ps, now)
		return exportedMsg{path: path, count: len(ps), err: err}
	}
}

func (m Model) copyCmd(p profile.Profile) tea.Cmd {
	write := m.deps.Clipboard
	return func() tea.Msg {
		return copiedMsg{name: p.SSID, err: write(p.Password)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if h := msg.Height - 9; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			level.Error(m.logger).Log("msg", "loading profiles failed", "err", msg.err)
			m.errMsg = fmt.Sprintf("Error loading WiFi profiles: %v", msg.err)
			m.status = "Error loading profiles"
			return m, nil
		}
		m.setProfiles(msg.profiles)
		m.status = fmt.Sprintf("Loaded %d WiFi profiles", len(m.profiles))
		return m, nil

	case deletedMsg:
		m.busy = false
		cmd := m.startLoad()
		switch {
		case msg.err != nil:
			level.Error(m.logger).Log("msg", "deleting profiles failed", "err", msg.err)
			m.errMsg = msg.err.Error()
		case msg.all:
			m.status = "All WiFi profiles have been deleted successfully."
		default:
			m.status = fmt.Sprintf("Deleted %d profile(s)", msg.count)
		}
		return m, cmd

	case exportedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Error exporting profiles: %v", msg.err)
			return m, nil
		}
		level.Info(m.logger).Log("msg", "exported profiles", "path", msg.path, "count", msg.count)
		m.status = fmt.Sprintf("Exported %d profiles to %s", msg.count, msg.path)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Unable to copy password: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Copied password of %q to the clipboard", msg.name)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeExport {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeAbout:
		m.mode = modeBrowse
		return m, nil

	case modeExport:
		switch key {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			m.mode = modeBrowse
			m.input.Blur()
			if path == "" {
				return m, nil
			}
			return m, m.exportCmd(path)
		case "esc":
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeConfirmDelete:
		m.mode = modeBrowse
		if key == "y" || key == "Y" {
			names := m.pending
			m.pending = nil
			return m, m.startDelete(names, false)
		}
		m.pending = nil
		return m, nil

	case modeConfirmDeleteAll:
		if key == "y" || key == "Y" {
			m.mode = modeConfirmDeleteAllFinal
			return m, nil
		}
		m.mode = modeBrowse
		return m, nil

	case modeConfirmDeleteAllFinal:
		m.mode = modeBrowse
		if key == "y" || key == "Y" {
			return m, m.startDelete(profile.Names(m.profiles), true)
		}
		return m, nil
	}

	// Everything except navigation waits for the running job.
	if m.busy {
		switch key {
		case "q":
			return m, tea.Quit
		case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.errMsg = ""
	switch key {
	case "q":
		return m, tea.Quit

	case "f5", "r":
		return m, m.startLoad()

	case "ctrl+p", "p":
		m.reveal = !m.reveal
		m.refreshRows()
		return m, nil

	case "ctrl+e", "e":
		if len(m.profiles) == 0 {
			m.status = "No WiFi profiles to export."
			return m, nil
		}
		name := export.DefaultFileName(m.deps.Now()) + "." + string(m.deps.ExportFormat)
		if m.deps.ExportDir != "" {
			name = filepath.Join(m.deps.ExportDir, name)
		}
		m.input.SetValue(name)
		m.input.CursorEnd()
		m.mode = modeExport
		return m, m.input.Focus()

	case " ":
		if p, ok := m.current(); ok {
			if m.marked[p.SSID] {
				delete(m.marked, p.SSID)
			} else {
				m.marked[p.SSID] = true
			}
			m.refreshRows()
		}
		return m, nil

	case "delete", "x":
		m.pending = m.selection()
		if len(m.pending) == 0 {
			m.status = "Please select a WiFi profile to delete."
			return m, nil
		}
		m.mode = modeConfirmDelete
		return m, nil

	case "D":
		if len(m.profiles) == 0 {
			m.status = "No WiFi profiles to delete."
			return m, nil
		}
		m.mode = modeConfirmDeleteAll
		return m, nil

	case "c":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		if p.Password == netsh.NotAvailable {
			m.status = fmt.Sprintf("No stored password for %q", p.SSID)
			return m, nil
		}
		return m, m.copyCmd(p)

	case "?":
		m.mode = modeAbout
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setProfiles(ps []profile.Profile) {
	m.profiles = ps
	present := make(map[string]bool, len(ps))
	for _, p := range ps {
		present[p.SSID] = true
	}
	for name := range m.marked {
		if !present[name] {
			delete(m.marked, name)
		}
	}
	m.refreshRows()
	if c := m.table.Cursor(); c >= len(ps) {
		m.table.SetCursor(max(len(ps)-1, 0))
	}
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.profiles))
	for _, p := range m.profiles {
		mark := " "
		if m.marked[p.SSID] {
			mark = "*"
		}
		rows = append(rows, table.Row{
			mark,
			p.SSID,
			p.DisplayPassword(m.reveal, m.deps.Mask),
			p.Security,
			p.ConnectionType,
		})
	}
	m.table.SetRows(rows)
}

func (m Model) current() (profile.Profile, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.profiles) {
		return profile.Profile{}, false
	}
	return m.profiles[i], true
}

// selection returns the marked profiles in list order, or the one under the
// cursor when nothing is marked.
func (m Model) selection() []string {
	var names []string
	for _, p := range m.profiles {
		if m.marked[p.SSID] {
			names = append(names, p.SSID)
		}
	}
	if len(names) > 0 {
		return names
	}
	if p, ok := m.current(); ok {
		return []string{p.SSID}
	}
	return nil
}
