// Package historyui provides the Bubble Tea browser for saved poems.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/muse/internal/model"
	"github.com/verte-zerg/muse/internal/stats"
)

const dateLayout = "2006-01-02 15:04"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	poemStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Store loads and deletes saved poems.
type Store interface {
	ListPoems(ctx context.Context, cfg model.HistoryConfig) ([]model.PoemRecord, error)
	DeletePoem(ctx context.Context, id string) error
}

// Model implements the Bubble Tea history UI.
type Model struct {
	store Store
	cfg   model.HistoryConfig

	poems  []model.PoemRecord
	errMsg string

	table  table.Model
	poem   viewport.Model
	width  int
	height int

	filterMode bool
	filter     textinput.Model
}

// NewModel constructs a history UI model.
func NewModel(st Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		table: table.New(
			table.WithColumns(columnsFor(80)),
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
		),
		poem:   viewport.New(0, 0),
		filter: newFilterInput(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.filterMode = true
			m.filter.SetValue(m.cfg.Poet)
			m.filter.CursorEnd()
			return m, m.filter.Focus()
		case "x", "delete":
			m.deleteSelected()
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			m.showSelected()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			m.showSelected()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.poem, cmd = m.poem.Update(msg)
			return m, cmd
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.showSelected()
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	tableHeight, poemHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, 1)
	var body string
	if len(m.poems) == 0 {
		body = fitLines("No poems found.", m.width, tableHeight+poemHeight)
	} else {
		list := fitLines(tableMutedStyle.Render(m.table.View()), m.width, tableHeight)
		text := fitLines(poemStyle.Render(m.poem.View()), m.width, poemHeight)
		body = list + "\n" + text
	}
	footer := fitLines(m.renderFooter(), m.width, 1)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.cfg.Poet = strings.TrimSpace(m.filter.Value())
		m.filterMode = false
		m.filter.Blur()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	poems, err := m.store.ListPoems(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.poems = nil
		m.table.SetRows(nil)
		return
	}
	m.errMsg = ""
	// Newest first in the browser.
	m.poems = make([]model.PoemRecord, len(poems))
	for i, p := range poems {
		m.poems[len(poems)-1-i] = p
	}
	m.table.SetRows(buildRows(m.poems))
	m.table.GotoTop()
	m.showSelected()
}

func (m *Model) deleteSelected() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.poems) {
		return
	}
	if err := m.store.DeletePoem(context.Background(), m.poems[idx].ID); err != nil {
		m.errMsg = fmt.Sprintf("failed to delete poem: %v", err)
		return
	}
	m.refresh()
	if idx >= len(m.poems) {
		idx = len(m.poems) - 1
	}
	if idx > 0 {
		m.table.SetCursor(idx)
		m.showSelected()
	}
}

func (m *Model) showSelected() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.poems) {
		m.poem.SetContent("")
		return
	}
	p := m.poems[idx]
	meta := fmt.Sprintf("%s · %s", p.Poet, p.CreatedAt.Local().Format(dateLayout))
	if len(p.Devices) > 0 {
		meta += " · " + strings.Join(p.Devices, ", ")
	}
	m.poem.SetContent(headerStyle.Render(meta) + "\n\n" + p.Text)
	m.poem.GotoTop()
}

func (m *Model) layoutHeights() (tableHeight, poemHeight int) {
	body := maxInt(2, m.height-2)
	tableHeight = maxInt(1, body/2)
	poemHeight = maxInt(1, body-tableHeight)
	return tableHeight, poemHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	tableHeight, poemHeight := m.layoutHeights()
	m.table.SetColumns(columnsFor(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(tableHeight)
	frameW, frameH := poemStyle.GetFrameSize()
	m.poem.Width = maxInt(1, m.width-frameW)
	m.poem.Height = maxInt(1, poemHeight-frameH)
	m.filter.Width = maxInt(10, m.width-lipgloss.Width(m.filter.Prompt)-2)
	m.showSelected()
}

func (m *Model) renderHeader() string {
	if m.filterMode {
		return m.filter.View()
	}
	poet := m.cfg.Poet
	if poet == "" {
		poet = "any"
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("History: poet=%s  last=%s  poems=%d", poet, last, len(m.poems))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	if m.filterMode {
		return headerStyle.Render("enter: apply  esc: cancel  empty: all poets")
	}
	return headerStyle.Render("Select: up/down  Scroll: pgup/pgdn  Poet: /  Delete: x  Quit: q")
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Poet: "
	input.Placeholder = "all poets"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func columnsFor(width int) []table.Column {
	date := len(dateLayout)
	poet := 20
	devices := 24
	rest := maxInt(12, width-date-poet-devices-4)
	return []table.Column{
		{Title: "Date", Width: date},
		{Title: "Poet", Width: poet},
		{Title: "Devices", Width: devices},
		{Title: "First Line", Width: rest},
	}
}

func buildRows(poems []model.PoemRecord) []table.Row {
	rows := make([]table.Row, 0, len(poems))
	for _, p := range poems {
		devices := strings.Join(p.Devices, ",")
		if devices == "" {
			devices = "-"
		}
		rows = append(rows, table.Row{
			p.CreatedAt.Local().Format(dateLayout),
			p.Poet,
			devices,
			stats.FirstLine(p.Text),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#C89A3A")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
