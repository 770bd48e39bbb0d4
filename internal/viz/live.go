package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/isinglab/internal/sim"
)

type recordMsg sim.Record

type doneMsg struct{ err error }

// Model is the bubbletea model for a live sweep. Records arrive over a
// channel fed by the simulator goroutine.
type Model struct {
	graphDesc string
	total     int
	records   []sim.Record
	ch        <-chan sim.Record
	done      <-chan error
	finished  bool
	err       error
	cancel    context.CancelFunc
}

func (m Model) Init() tea.Cmd {
	return m.waitForRecord()
}

func (m Model) waitForRecord() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-m.ch
		if !ok {
			return doneMsg{err: <-m.done}
		}
		return recordMsg(r)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case recordMsg:
		m.records = append(m.records, sim.Record(msg))
		return m, m.waitForRecord()
	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("isinglab: %s (%d/%d temperatures)", m.graphDesc, len(m.records), m.total)))
	b.WriteString("\n")

	if len(m.records) > 1 {
		mags := make([]float64, len(m.records))
		for i, r := range m.records {
			mags[i] = r.AbsMagnetization
		}
		graph := asciigraph.Plot(mags,
			asciigraph.Height(12),
			asciigraph.Width(64),
			asciigraph.Caption("|M| per temperature"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if len(m.records) > 0 {
		last := m.records[len(m.records)-1]
		stats := strings.Join([]string{
			labelStyle.Render("temperature") + valueStyle.Render(fmt.Sprintf("%.4f", last.Temperature)),
			labelStyle.Render("energy/node") + valueStyle.Render(fmt.Sprintf("%.4f", last.Energy)),
			labelStyle.Render("|M|") + valueStyle.Render(fmt.Sprintf("%.4f", last.AbsMagnetization)),
			labelStyle.Render("mean spin") + valueStyle.Render(fmt.Sprintf("%.4f", last.MeanSpin)),
		}, "\n")
		b.WriteString(statsStyle.Render(stats))
		b.WriteString("\n")
	}

	if m.finished {
		if m.err != nil {
			b.WriteString(doneStyle.Render(fmt.Sprintf("failed: %v", m.err)))
		} else {
			b.WriteString(doneStyle.Render("sweep complete"))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

// RunLive executes the schedule sequentially and renders records as they
// arrive. Blocks until the sweep finishes or the user quits.
func RunLive(s *sim.Simulator, graphDesc string, temps []float64, cfg sim.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan sim.Record)
	done := make(chan error, 1)

	go func() {
		err := s.RunWithCallback(ctx, temps, cfg, func(r sim.Record) bool {
			select {
			case ch <- r:
				return true
			case <-ctx.Done():
				return false
			}
		})
		done <- err
		close(ch)
	}()

	m := Model{
		graphDesc: graphDesc,
		total:     len(temps),
		ch:        ch,
		done:      done,
		cancel:    cancel,
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
