// Package tui replays a stored detector wall in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavesim/internal/render"
	"github.com/san-kum/wavesim/internal/storage"
	"github.com/san-kum/wavesim/internal/wave"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	graphHeight   = 14
)

type tickMsg time.Time

// Viewer is a bubbletea model stepping through the wall series of a run.
type Viewer struct {
	meta   storage.RunMetadata
	ys     []float64
	wall   [][]float64
	avg    [][]float64
	peak   float64
	step   int
	paused bool
	quit   bool
	delay  time.Duration
	width  int
	height int
}

func NewViewer(meta storage.RunMetadata, wall *storage.Wall) *Viewer {
	steps := wall.Steps()
	fps := render.WallFPS(steps)
	return &Viewer{
		meta:   meta,
		ys:     wall.Ys,
		wall:   wall.Values,
		avg:    wave.CumulativeAverage(wall.Values, steps),
		peak:   wave.Peak(wall.Values),
		delay:  time.Second / time.Duration(fps),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Run blocks until the user quits.
func Run(meta storage.RunMetadata, wall *storage.Wall) error {
	if wall.Steps() == 0 {
		return fmt.Errorf("tui: run %s has no wall data", meta.ID)
	}
	_, err := tea.NewProgram(NewViewer(meta, wall), tea.WithAltScreen()).Run()
	return err
}

func (v *Viewer) Step() int    { return v.step }
func (v *Viewer) Paused() bool { return v.paused }

func (v *Viewer) tick() tea.Cmd {
	return tea.Tick(v.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (v *Viewer) Init() tea.Cmd { return v.tick() }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		return v, nil
	case tickMsg:
		if v.quit {
			return v, nil
		}
		if !v.paused {
			v.advance(1)
		}
		return v, v.tick()
	}
	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		v.quit = true
		return v, tea.Quit
	case " ":
		v.paused = !v.paused
	case "left", "h":
		v.paused = true
		v.advance(-1)
	case "right", "l":
		v.paused = true
		v.advance(1)
	case "r":
		v.step = 0
		v.paused = false
	}
	return v, nil
}

// advance moves the step counter, wrapping at both ends.
func (v *Viewer) advance(n int) {
	steps := len(v.wall)
	if steps == 0 {
		return
	}
	v.step = ((v.step+n)%steps + steps) % steps
}

func (v *Viewer) View() string {
	if v.quit || len(v.wall) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  %s", v.meta.Scenario, v.meta.ID)))
	b.WriteString("\n")

	graphWidth := max(20, v.width-20)
	graph := asciigraph.PlotMany(
		[][]float64{v.wall[v.step], v.avg[v.step]},
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.LowerBound(-0.2),
		asciigraph.UpperBound(v.peak+0.2),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Orange),
		asciigraph.Caption("Intensity over Time"),
	)
	b.WriteString(graphStyle.Render(graph))
	b.WriteString("\n")

	status := statusRunning.Render("PLAYING")
	if v.paused {
		status = statusPaused.Render("PAUSED")
	}
	rows := []string{
		v.row("status", status),
		v.row("step", fmt.Sprintf("%d / %d", v.step+1, len(v.wall))),
		v.row("wall", fmt.Sprintf("y ∈ [%.2f, %.2f]", v.ys[0], v.ys[len(v.ys)-1])),
		v.row("peak", fmt.Sprintf("%.4f", v.peak)),
	}
	if s, ok := v.meta.Metrics["fringe_spacing"]; ok && s > 0 {
		rows = append(rows, v.row("fringes", fmt.Sprintf("%.3f", s)))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · ←/→ step · r restart · q quit"))
	return b.String()
}

func (v *Viewer) row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
