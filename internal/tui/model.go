// Package tui provides the Bubble Tea poem viewer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/devices"
	"github.com/verte-zerg/muse/internal/generator"
	"github.com/verte-zerg/muse/internal/model"
	"github.com/verte-zerg/muse/internal/poem"
)

// Saver persists poems.
type Saver interface {
	SavePoem(ctx context.Context, rec model.PoemRecord) (model.PoemRecord, error)
}

// Model implements the Bubble Tea poem viewer.
type Model struct {
	config model.Config
	saver  Saver
	table  *corpus.Table
	set    devices.Set

	// seeds draws the seed of every poem after the first, so each saved
	// poem replays from its own seed.
	seeds *rand.Rand
	seed  int64

	width  int
	height int

	// lines holds the generated verse before devices, so toggling a device
	// reshapes the same poem instead of drawing a new one.
	lines  []string
	text   string
	err    error
	status string
	saved  bool
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	verseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	rhymeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a poem viewer and generates the first poem from
// cfg.Seed. saver may be nil, in which case saving is reported as
// unavailable.
func NewModel(cfg model.Config, saver Saver, table *corpus.Table) *Model {
	m := &Model{
		config: cfg,
		saver:  saver,
		table:  table,
		set:    devices.Parse(cfg.Devices),
		seeds:  rand.New(rand.NewSource(cfg.Seed)),
		seed:   cfg.Seed,
	}
	m.generate()
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
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", " ", "enter":
			m.regenerate()
			return m, nil
		case "s":
			m.save()
			return m, nil
		case "1", "2", "3", "4":
			m.toggle(int(msg.Runes[0] - '1'))
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render(m.config.Poet)
	var content string
	if m.err != nil {
		content = errorStyle.Render(m.errorText())
	} else {
		width := 0
		if m.width > 0 {
			width = maxInt(1, int(float64(m.width)*0.70))
		}
		content = renderPoem(strings.Split(m.text, "\n"), width)
	}
	body := title + "\n\n" + content
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

// Text returns the poem currently shown.
func (m *Model) Text() string {
	return m.text
}

func (m *Model) regenerate() {
	m.seed = m.nextSeed()
	m.generate()
}

func (m *Model) generate() {
	composer := poem.NewComposer(generator.NewSeeded(m.seed))
	m.lines, m.err = composer.Lines(m.table, m.config.Lines)
	m.saved = false
	m.status = ""
	m.apply()
}

// nextSeed never returns 0, which would mean "pick one" on replay.
func (m *Model) nextSeed() int64 {
	for {
		if seed := m.seeds.Int63(); seed != 0 {
			return seed
		}
	}
}

// Seed returns the seed that reproduces the poem currently shown.
func (m *Model) Seed() int64 {
	return m.seed
}

func (m *Model) apply() {
	if m.err != nil {
		m.text = ""
		return
	}
	m.text = devices.Apply(m.lines, m.set)
}

func (m *Model) toggle(idx int) {
	if idx < 0 || idx >= len(devices.Order) {
		return
	}
	m.set.Toggle(devices.Order[idx])
	m.saved = false
	m.status = ""
	m.apply()
}

func (m *Model) save() {
	if m.err != nil || m.text == "" {
		return
	}
	if m.saved {
		return
	}
	if m.saver == nil {
		m.status = "history unavailable"
		return
	}
	_, err := m.saver.SavePoem(context.Background(), model.PoemRecord{
		Poet:       m.config.Poet,
		CorpusPath: m.config.CorpusPath,
		Text:       m.text,
		Devices:    m.set.Names(),
		Lines:      m.config.Lines,
		Depth:      m.config.Depth,
		Seed:       m.seed,
	})
	if err != nil {
		logErrf("failed to save poem: %v\n", err)
		m.status = "save failed"
		return
	}
	m.saved = true
	m.status = "saved"
}

func (m *Model) errorText() string {
	switch {
	case errors.Is(m.err, poem.ErrEmptyModel):
		return fmt.Sprintf("No transitions in %s. Try a larger corpus or a smaller depth.", m.config.CorpusPath)
	case errors.Is(m.err, poem.ErrNoLines):
		return "Every generated line was too short. Press r to try again."
	default:
		return m.err.Error()
	}
}

func (m *Model) renderFooter() string {
	segments := make([]string, 0, len(devices.Order)+2)
	for i, name := range devices.Order {
		label := fmt.Sprintf("%d %s", i+1, name)
		if m.set.Has(name) {
			segments = append(segments, activeStyle.Render("["+label+"]"))
		} else {
			segments = append(segments, footerStyle.Render(" "+label+" "))
		}
	}
	help := "r new  s save  q quit"
	if m.status != "" {
		help = m.status + "  " + help
	}
	segments = append(segments, footerStyle.Render(help))
	return strings.Join(segments, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
