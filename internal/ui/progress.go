// Package ui renders verification progress as a Bubble Tea program.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sikort/internal/verify"
)

type progressModel struct {
	title   string
	events  <-chan verify.Event
	spinner spinner.Model
	prog    progress.Model
	items   []planItem
	index   map[string]int
	width   int
	done    bool
}

type planItem struct {
	path   string
	status verify.Status
	note   string
}

type eventMsg verify.Event
type doneMsg struct{}

// NewProgressModel returns a model that follows events until the channel
// is closed.
func NewProgressModel(title string, plans []string, events <-chan verify.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]planItem, 0, len(plans))
	index := make(map[string]int, len(plans))
	for i, p := range plans {
		items = append(items, planItem{path: p, status: verify.StatusQueued})
		index[p] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(verify.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		label := styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status))
		line := "  " + label + " " + truncate(item.path, nameWidth)
		if item.note != "" {
			line += "  " + item.note
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev verify.Event) tea.Cmd {
	idx, ok := m.index[ev.Plan]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	if ev.Status.Done() {
		m.items[idx].note = fmt.Sprintf("%.2fms", float64(ev.Elapsed.Microseconds())/1000)
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if item.status.Done() {
			n++
		}
	}
	return n
}

func styleStatus(status verify.Status) lipgloss.Style {
	switch status {
	case verify.StatusPassed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case verify.StatusFailed, verify.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case verify.StatusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
