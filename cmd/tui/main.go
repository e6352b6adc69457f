package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-triage/pkg/config"
	"github.com/dd0wney/cluso-triage/pkg/logging"
	"github.com/dd0wney/cluso-triage/pkg/metrics"
	"github.com/dd0wney/cluso-triage/pkg/patient"
	"github.com/dd0wney/cluso-triage/pkg/report"
	"github.com/dd0wney/cluso-triage/pkg/triage"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Next key.Binding
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next round"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	sim        *triage.Simulation
	result     *triage.Result
	worsened   int
	table      table.Model
	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(sim *triage.Simulation) model {
	columns := make([]table.Column, len(report.Columns))
	widths := []int{6, 9, 10, 10, 9, 22}
	for i, title := range report.Columns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	m := model{
		sim:   sim,
		table: t,
		help:  help.New(),
		keys:  keys,
	}
	m.apply(sim.Run())
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 18; h > 5 {
			m.table.SetHeight(h)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			result, worsened, err := m.sim.Step()
			m.worsened = worsened
			m.apply(result, err)
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// apply shows a pipeline outcome. A failed round keeps the previous table.
func (m *model) apply(result *triage.Result, err error) {
	if err != nil {
		m.message = fmt.Sprintf("Round %d failed: %v", m.sim.Round(), err)
		m.messageErr = true
		return
	}

	m.result = result
	rows := make([]table.Row, len(result.Assessments))
	for i, a := range result.Assessments {
		rows[i] = table.Row(report.Row(a))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()

	m.message = fmt.Sprintf("Ordered %d patients in %s", len(result.Assessments), result.Duration)
	m.messageErr = false
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("🏥 Cluso Triage - Ward Dashboard"))
	s.WriteString("\n")

	if m.result != nil {
		s.WriteString(contentStyle.Render(
			lipgloss.JoinHorizontal(lipgloss.Top, m.renderStats(), m.renderNext()),
		))
		s.WriteString("\n")
		s.WriteString(contentStyle.Render(m.table.View()))
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderStats() string {
	r := m.result
	drug, anxiety := r.Flagged()
	return statsBoxStyle.Render(fmt.Sprintf(`📊 Round %d
Patients:    %d
Edges:       %d
Isolated:    %d
Clusters:    %d (largest %d, density %.2f)
Worsened:    %d

⚡ PageRank
Iterations:  %d
Converged:   %v

🚩 Flags
Drug-seeker: %d
Anxiety:     %d`,
		r.Round,
		len(r.Assessments),
		r.Graph.EdgeCount,
		r.Graph.IsolatedNodes,
		r.Clusters,
		r.Largest,
		r.Cohesion,
		m.worsened,
		r.Iterations,
		r.Converged,
		drug,
		anxiety,
	))
}

func (m model) renderNext() string {
	if len(m.result.Assessments) == 0 {
		return statsBoxStyle.Render("No patients waiting")
	}
	return statsBoxStyle.Render("🎯 Next up\n\n" + report.Line(m.result.Assessments[0]) + "\n\n" + report.Central(m.result))
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// The alternate screen owns the terminal; keep stderr to errors.
	logger := logging.NewJSONLogger(os.Stderr, logging.ErrorLevel)
	reg := metrics.DefaultRegistry()

	if *metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(*metricsAddr, reg.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	pipeline := triage.NewPipeline(triage.Options{
		PageRank: cfg.PageRankOptions(),
		Workers:  cfg.Workers,
		Logger:   logger,
		Metrics:  reg,
	})
	gen := patient.NewGenerator(cfg.Seed).WithPolicy(cfg.UpdatePolicy())
	sim := triage.NewSimulation(pipeline, gen, cfg.Patients)

	p := tea.NewProgram(initialModel(sim), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
