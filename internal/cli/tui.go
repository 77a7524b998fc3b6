package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

var (
	watchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	watchHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	minWatchDelay = 5 * time.Millisecond
	maxWatchDelay = 2 * time.Second
	maxPairsShown = 6
)

// =============================================================================
// WatchModel - step-by-step solver viewer
// =============================================================================

// stepMsg asks the model to advance the solver by one candidate. gen ties the
// message to the tick chain that scheduled it.
type stepMsg struct{ gen int }

// WatchModel drives a started solver one candidate per tick and shows the
// latest candidate and its collisions.
type WatchModel struct {
	Title string
	Apps  []variant.Application

	Solver *solver.Solver
	State  solver.State
	Err    error
	Paused bool
	Delay  time.Duration

	// last is written by the solver's observer during Step.
	last *solver.Progress

	// gen is bumped on every pause toggle; ticks from an older chain are
	// dropped so only one chain runs.
	gen int
}

// NewWatchModel returns a viewer for s. s must have been created with
// WatchObserver(last) and started.
func NewWatchModel(title string, apps []variant.Application, s *solver.Solver, last *solver.Progress, delay time.Duration) WatchModel {
	return WatchModel{
		Title:  title,
		Apps:   apps,
		Solver: s,
		State:  s.State(),
		Delay:  delay,
		last:   last,
	}
}

// WatchObserver returns a solver observer that records the latest report
// into last.
func WatchObserver(last *solver.Progress) solver.Observer {
	return func(p solver.Progress) { *last = p }
}

func (m WatchModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.Delay, func(time.Time) tea.Msg { return stepMsg{gen: gen} })
}

func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) step() WatchModel {
	m.State, m.Err = m.Solver.Step()
	return m
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if msg.gen != m.gen || m.Paused || m.State.Done() {
			return m, nil
		}
		m = m.step()
		if m.State.Done() {
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Solver.Stop()
			m = m.step()
			return m, tea.Quit
		case " ", "p":
			if m.State.Done() {
				return m, nil
			}
			m.Paused = !m.Paused
			m.gen++
			if !m.Paused {
				return m, m.tick()
			}
		case "n", "right":
			if m.Paused && !m.State.Done() {
				m = m.step()
			}
		case "+", "f":
			m.Delay = max(m.Delay/2, minWatchDelay)
		case "-", "s":
			m.Delay = min(m.Delay*2, maxWatchDelay)
		}
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(m.stateLabel())
	b.WriteString("\n\n")

	for _, a := range m.Apps {
		b.WriteString(StyleDim.Render("  " + a.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var body strings.Builder
	p := m.last
	fmt.Fprintf(&body, "%s %s\n", styleKey.Render("examined"), StyleNumber.Render(fmt.Sprint(m.Solver.Examined())))
	if skipped := m.Solver.Skipped(); skipped > 0 {
		fmt.Fprintf(&body, "%s %s\n", styleKey.Render("skipped"), StyleWarning.Render(fmt.Sprint(skipped)))
	}
	if p != nil && p.Candidate != nil {
		fmt.Fprintf(&body, "%s %s\n", styleKey.Render("candidate"), StyleValue.Render(fmt.Sprintf("#%d %v", p.Index, p.Candidate)))
		fmt.Fprintf(&body, "%s %s\n", styleKey.Render("distance"), StyleValue.Render(fmt.Sprintf("%.2f", p.Distance)))
		collisions := StyleSuccess.Render("none")
		if p.Collisions.HasCollisions {
			collisions = StyleError.Render(fmt.Sprint(p.Collisions.Count))
		}
		fmt.Fprintf(&body, "%s %s", styleKey.Render("collisions"), collisions)
		for i, pair := range p.Collisions.Pairs {
			if i == maxPairsShown {
				fmt.Fprintf(&body, "\n  %s", StyleDim.Render(fmt.Sprintf("… %d more", len(p.Collisions.Pairs)-i)))
				break
			}
			fmt.Fprintf(&body, "\n  %s", StyleError.Render(pair.String()))
		}
	} else {
		body.WriteString(StyleDim.Render("waiting for the first candidate"))
	}
	b.WriteString(watchBoxStyle.Render(body.String()))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(StyleError.Render(m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(watchHelpStyle.Render(fmt.Sprintf("space pause  n step  +/- speed (%s)  q quit", m.Delay)))
	return b.String()
}

func (m WatchModel) stateLabel() string {
	switch {
	case m.State == solver.Solved:
		return StyleSuccess.Render(iconSuccess + " solved")
	case m.State == solver.Failed:
		return StyleError.Render(iconError + " failed")
	case m.State.Done():
		return StyleWarning.Render(m.State.String())
	case m.Paused:
		return StyleWarning.Render("paused")
	default:
		return styleIconSpinner.Render(m.State.String())
	}
}
