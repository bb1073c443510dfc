package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/terrasim/internal/eco"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives an interactive single-bottle session. Each tick
// integrates one interval; keeper interventions apply between ticks so
// the run stays deterministic between inputs.
type Model struct {
	integ   *eco.Integrator
	eval    *eco.Evaluator
	initial eco.State
	st      eco.State
	verdict eco.Verdict
	dayCap  int

	running bool
	done    bool

	o2History    []float64
	plantHistory []float64
	toxHistory   []float64
	messages     []string
	showHelp     bool
}

// NewModel builds an interactive session from a validated initial
// state.
func NewModel(params eco.Params, thr eco.Thresholds, initial eco.State, dayCap int) Model {
	return Model{
		integ:        eco.NewIntegrator(params),
		eval:         eco.NewEvaluator(thr),
		initial:      initial,
		st:           initial,
		dayCap:       dayCap,
		running:      true,
		o2History:    make([]float64, 0, historyCapacity),
		plantHistory: make([]float64, 0, historyCapacity),
		toxHistory:   make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/8, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "o":
			m.intervene("opened the bottle", func(s *eco.State) bool {
				eco.OpenBottle(s)
				return true
			})
		case "c":
			m.intervene("moved closer to the window", func(s *eco.State) bool {
				return eco.MoveCloser(s)
			})
		case "f":
			m.intervene("moved away from the window", func(s *eco.State) bool {
				return eco.MoveFarther(s)
			})
		case "p":
			m.intervene("planted another cutting", func(s *eco.State) bool {
				return eco.AddPlant(s)
			})
		case "w":
			m.intervene("added a liter of water", func(s *eco.State) bool {
				return eco.AddWater(s)
			})
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) intervene(note string, apply func(*eco.State) bool) {
	if m.done {
		return
	}
	if apply(&m.st) {
		m.log("day %d: %s", m.st.Day, note)
	}
}

func (m *Model) log(format string, args ...any) {
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
	if len(m.messages) > 4 {
		m.messages = m.messages[1:]
	}
}

func (m *Model) step() {
	m.integ.Step(&m.st)
	m.verdict = m.eval.Evaluate(&m.st)

	m.record(&m.o2History, m.st.O2)
	m.record(&m.plantHistory, m.st.PlantBiomass)
	m.record(&m.toxHistory, m.st.Toxicity)

	if m.verdict.Status == eco.StatusCollapsed {
		m.done = true
		m.running = false
		m.log("collapsed: %s", m.verdict.Cause)
		return
	}
	if m.st.Day > m.dayCap {
		m.done = true
		m.running = false
		m.log("survived all %d days", m.dayCap)
	}
}

func (m *Model) record(hist *[]float64, v float64) {
	*hist = append(*hist, v)
	if len(*hist) > historyCapacity {
		*hist = (*hist)[1:]
	}
}

func (m *Model) reset() {
	m.st = m.initial
	m.integ = eco.NewIntegrator(m.integ.Params())
	m.eval = eco.NewEvaluator(m.eval.Thresholds())
	m.verdict = eco.Verdict{}
	m.running = true
	m.done = false
	m.o2History = m.o2History[:0]
	m.plantHistory = m.plantHistory[:0]
	m.toxHistory = m.toxHistory[:0]
	m.messages = m.messages[:0]
}

func (m Model) statusLine() string {
	switch m.verdict.Status {
	case eco.StatusCollapsed:
		return statusCollapsed.Render(fmt.Sprintf("COLLAPSED (%s)", m.verdict.Cause))
	case eco.StatusWarning:
		return statusWarning.Render(fmt.Sprintf("WARNING (%s)", m.verdict.Cause))
	default:
		if m.done {
			return statusStable.Render("SURVIVED")
		}
		if !m.running {
			return statusWarning.Render("PAUSED")
		}
		return statusStable.Render("STABLE")
	}
}

func (m Model) View() string {
	var left strings.Builder
	if len(m.o2History) > 1 {
		chart := asciigraph.Plot(m.o2History,
			asciigraph.Height(10), asciigraph.Width(58),
			asciigraph.Caption("oxygen fraction"))
		left.WriteString(graphStyle.Render(chart) + "\n")
	}
	left.WriteString(labelStyle.Render("plants") + SparklineChart(m.plantHistory, 40) + "\n")
	left.WriteString(labelStyle.Render("toxicity") + SparklineChart(m.toxHistory, 40) + "\n")

	var s strings.Builder
	s.WriteString(headerStyle.Render("TERRARIUM") + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	s.WriteString(labelStyle.Render("day") + valueStyle.Render(fmt.Sprintf("%d / %d (%s)", min(m.st.Day, m.dayCap), m.dayCap, m.st.Phase)) + "\n")
	s.WriteString(labelStyle.Render("oxygen") + ProgressBar(m.st.O2/0.3, 18) + valueStyle.Render(fmt.Sprintf(" %4.1f%%", m.st.O2*100)) + "\n")
	s.WriteString(labelStyle.Render("co2") + valueStyle.Render(fmt.Sprintf("%.2f%%", m.st.CO2*100)) + "\n")
	s.WriteString(labelStyle.Render("plants") + ProgressBar(m.st.PlantBiomass/m.integ.Params().PlantCapacity, 18) + valueStyle.Render(fmt.Sprintf(" %5.1f", m.st.PlantBiomass)) + "\n")
	s.WriteString(labelStyle.Render("microbes") + valueStyle.Render(fmt.Sprintf("%.0f", m.st.Microbes)) + "\n")
	s.WriteString(labelStyle.Render("worms") + valueStyle.Render(fmt.Sprintf("%.1f", m.st.Worms)) + "\n")
	s.WriteString(labelStyle.Render("shrimp") + valueStyle.Render(fmt.Sprintf("%.1f", m.st.Shrimp)) + "\n")
	s.WriteString(labelStyle.Render("soil n") + valueStyle.Render(fmt.Sprintf("%.2f", m.st.SoilNitrogen)) + "\n")
	s.WriteString(labelStyle.Render("ph") + valueStyle.Render(fmt.Sprintf("%.2f", m.st.PH)) + "\n")
	s.WriteString(labelStyle.Render("water") + valueStyle.Render(fmt.Sprintf("%.1f L", m.st.Water)) + "\n")
	s.WriteString(labelStyle.Render("temp") + valueStyle.Render(fmt.Sprintf("%.1f°C", m.st.Temperature)) + "\n")
	s.WriteString(labelStyle.Render("toxicity") + valueStyle.Render(fmt.Sprintf("%.2f", m.st.Toxicity)) + "\n")

	if len(m.messages) > 0 {
		s.WriteString("\n")
		for _, msg := range m.messages {
			s.WriteString(helpStyle.Render(msg) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit ?:Help\nO:Open C/F:Move P:Plant W:Water"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), panelStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset the bottle         ║
║  Q        - Quit                     ║
║  O        - Open bottle (fresh air)  ║
║  C        - Move closer to window    ║
║  F        - Move away from window    ║
║  P        - Add a plant              ║
║  W        - Add a liter of water     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}
