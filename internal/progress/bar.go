package progress

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// updateMsg carries a completion update into the bar model.
type updateMsg struct {
	done  int
	total int
}

// doneMsg tells the bar to quit once the run finishes.
type doneMsg struct{}

// barModel renders a live progress bar for a Monte Carlo run.
type barModel struct {
	bar   progress.Model
	done  int
	total int
}

func newBarModel() barModel {
	return barModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 20
		return m, nil
	}
	return m, nil
}

func (m barModel) View() string {
	if m.total == 0 {
		return m.bar.ViewAs(0)
	}
	pct := float64(m.done) / float64(m.total)
	return fmt.Sprintf("%s %d/%d\n", m.bar.ViewAs(pct), m.done, m.total)
}

// Bar is a live terminal progress reporter backed by a bubbletea
// program. Use NewBar, run the simulation, then Wait.
type Bar struct {
	program *tea.Program
}

// NewBar starts the bar's terminal program in the background.
func NewBar() *Bar {
	b := &Bar{program: tea.NewProgram(newBarModel())}
	go b.program.Run()
	return b
}

// Progress forwards a completion update to the bar.
func (b *Bar) Progress(done, total int) {
	b.program.Send(updateMsg{done: done, total: total})
}

// Wait stops the bar and blocks until the terminal is restored.
func (b *Bar) Wait() {
	b.program.Send(doneMsg{})
	b.program.Wait()
}
