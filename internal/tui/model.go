// Package tui is a terminal front-end for the tier editor.
//
// Three text inputs hold the tier texts; below them each tier is a column of
// rendered nodes. Moving the cursor and pressing space or enter clicks the
// node, so the two-click connection flow works the same as on the web page.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"geofilemaker/internal/codec"
	"geofilemaker/internal/domain"
	"geofilemaker/internal/editor"
	"geofilemaker/internal/service"
)

// boardFocus is the focus index of the node columns; 0..2 are the inputs
const boardFocus = int(domain.TierCount)

var placeholders = [domain.TierCount]string{
	"DENMARK, NORWAY",
	"DK1, DK2, NO1",
	"DK1_A, DK2_A",
}

// eventMsg carries one service event into the update loop
type eventMsg service.Event

// Model is the bubbletea model of one editor session
type Model struct {
	svc     *service.EditorService
	events  chan service.Event
	genPath string

	inputs [domain.TierCount]textinput.Model
	focus  int
	col    domain.Tier
	rows   [domain.TierCount]int
	state  editor.View

	help   help.Model
	keys   keyMap
	width  int
	height int
	err    error
}

// New creates a model bound to svc. genPath is where ctrl+g writes files;
// empty means the service work directory.
func New(svc *service.EditorService, genPath string) Model {
	m := Model{
		svc:     svc,
		events:  make(chan service.Event, 16),
		genPath: genPath,
		help:    help.New(),
		keys:    keys,
	}
	m.state = svc.State()

	for _, t := range domain.Tiers {
		ti := textinput.New()
		ti.Placeholder = placeholders[t]
		ti.CharLimit = 4096
		ti.Width = 60
		ti.SetValue(m.state.Tiers[t].Text)
		m.inputs[t] = ti
	}
	m.inputs[0].Focus()

	svc.Events().Subscribe(m.events)
	return m
}

// Close stops event delivery to the model; call it once
func (m Model) Close() {
	m.svc.Events().Unsubscribe(m.events)
	close(m.events)
}

func waitForEvent(ch <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForEvent(m.events),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		if msg.Type == service.EventStateUpdated {
			m.refresh()
		}
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.setFocus((m.focus + 1) % (boardFocus + 1))
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.setFocus((m.focus + boardFocus) % (boardFocus + 1))
			return m, nil

		case key.Matches(msg, m.keys.Generate):
			m.generate()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.state = m.svc.Reset()
			for t := range m.inputs {
				m.inputs[t].SetValue("")
			}
			m.rows = [domain.TierCount]int{}
			m.err = nil
			return m, nil
		}

		if m.focus == boardFocus {
			return m.updateBoard(msg)
		}
	}

	if m.focus < boardFocus {
		t := domain.Tier(m.focus)
		before := m.inputs[t].Value()
		var cmd tea.Cmd
		m.inputs[t], cmd = m.inputs[t].Update(msg)
		cmds = append(cmds, cmd)

		if after := m.inputs[t].Value(); after != before {
			view, err := m.svc.SetTierText(t, after)
			if err != nil {
				m.err = err
			} else {
				m.err = nil
				m.state = view
				m.clampRows()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		if m.col > domain.TierCountry {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if next, ok := m.col.Next(); ok {
			m.col = next
		}

	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.rows[m.col] < len(m.state.Tiers[m.col].Nodes)-1 {
			m.rows[m.col]++
		}

	case key.Matches(msg, m.keys.Click):
		m.click()
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	for t := range m.inputs {
		if t == focus {
			m.inputs[t].Focus()
		} else {
			m.inputs[t].Blur()
		}
	}
}

func (m *Model) click() {
	nodes := m.state.Tiers[m.col].Nodes
	if len(nodes) == 0 {
		return
	}
	ref := nodes[m.rows[m.col]].Ref
	_, view, err := m.svc.Click(ref.Tier, ref.ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.state = view
	m.clampRows()
}

func (m *Model) generate() {
	if _, err := m.svc.Generate(context.Background(), m.genPath); err != nil {
		m.err = fmt.Errorf("generate: %w", err)
		return
	}
	m.err = nil
}

func (m *Model) refresh() {
	m.state = m.svc.State()
	m.clampRows()
}

func (m *Model) clampRows() {
	for _, t := range domain.Tiers {
		n := len(m.state.Tiers[t].Nodes)
		if m.rows[t] >= n {
			m.rows[t] = n - 1
		}
		if m.rows[t] < 0 {
			m.rows[t] = 0
		}
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Geographic set editor"))
	s.WriteString("\n")

	var body strings.Builder
	for _, t := range domain.Tiers {
		label := inputLabelStyle
		if m.focus == int(t) {
			label = focusedLabelStyle
		}
		body.WriteString(label.Render(t.String()))
		body.WriteString(m.inputs[t].View())
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(m.renderBoard())
	body.WriteString("\n")
	body.WriteString(m.renderLinks())
	body.WriteString("\n")
	body.WriteString(m.renderStatus())
	body.WriteString("\n\n")
	body.WriteString(m.renderDocument())

	s.WriteString(contentStyle.Render(body.String()))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m Model) renderBoard() string {
	columns := make([]string, 0, domain.TierCount)
	for _, t := range domain.Tiers {
		var col strings.Builder
		col.WriteString(headerStyle.Render(t.String()))
		for i, n := range m.state.Tiers[t].Nodes {
			col.WriteString("\n")
			style := nodeStyle
			switch {
			case n.Armed:
				style = armedStyle
			case m.focus == boardFocus && t == m.col && i == m.rows[t]:
				style = cursorStyle
			}
			col.WriteString(style.Render(string(n.Ref.ID)))
		}

		box := columnStyle
		if m.focus == boardFocus && t == m.col {
			box = activeColumnStyle
		}
		columns = append(columns, box.Render(col.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderLinks() string {
	if len(m.state.Links) == 0 {
		return infoStyle.Render("no links")
	}
	lines := make([]string, len(m.state.Links))
	for i, l := range m.state.Links {
		lines[i] = linkStyle.Render(fmt.Sprintf("%s → %s", l.From.ID, l.To.ID))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("✗ " + m.err.Error())
	}
	st := m.state.Status
	switch st.Level {
	case editor.StatusError:
		return errorStyle.Render("✗ " + st.Message)
	case editor.StatusSuccess:
		return successStyle.Render("✓ " + st.Message)
	}
	if st.Message == "" {
		return ""
	}
	return infoStyle.Render(st.Message)
}

func (m Model) renderDocument() string {
	out, err := codec.Canonical(m.state.Document)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return documentStyle.Render(strings.TrimRight(out, "\n"))
}

// Run starts the terminal UI and blocks until the user quits or ctx ends
func Run(ctx context.Context, svc *service.EditorService, genPath string) error {
	m := New(svc, genPath)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
