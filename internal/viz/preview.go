package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/statanim/internal/scene"
)

const (
	previewCols  = 72
	previewRows  = 20
	sidebarWidth = 34
	// minTick keeps autoplay moving through instant steps such as removals.
	minTick = 150 * time.Millisecond
)

// TickMsg advances autoplay. Run identifies the play session that scheduled
// it; ticks left over from an earlier session are dropped.
type TickMsg struct {
	Time time.Time
	Run  int
}

// Previewer steps through the frames of a timeline. Step -1 is the empty
// screen before the first step has played.
type Previewer struct {
	timeline *scene.Timeline
	frames   []scene.Frame
	view     Viewport
	theme    int
	styles   Styles
	step     int
	playing  bool
	run      int
	spin     int
	speed    float64
}

// NewPreviewer validates tl and prepares a previewer positioned before its
// first step.
func NewPreviewer(tl *scene.Timeline, theme string) (Previewer, error) {
	frames, err := tl.Frames()
	if err != nil {
		return Previewer{}, err
	}
	idx := 0
	for i, t := range Themes {
		if t.Name == theme {
			idx = i
		}
	}
	return Previewer{
		timeline: tl,
		frames:   frames,
		view:     NewViewport(previewCols, previewRows),
		theme:    idx,
		styles:   Themes[idx].Styles(),
		step:     -1,
		speed:    1,
	}, nil
}

// Step is the index of the last played step, or -1.
func (m Previewer) Step() int { return m.step }

func (m Previewer) Playing() bool { return m.playing }

func (m Previewer) Init() tea.Cmd {
	return nil
}

func (m Previewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "n":
			m.playing = false
			m.next()
		case "left", "h", "p":
			m.playing = false
			if m.step >= 0 {
				m.step--
			}
		case "g", "home":
			m.playing = false
			m.step = -1
		case "G", "end":
			m.playing = false
			m.step = len(m.frames) - 1
		case "+", "=":
			m.speed = min(m.speed*2, 8)
		case "-":
			m.speed = max(m.speed/2, 0.25)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = Themes[m.theme].Styles()
		case " ":
			m.playing = !m.playing
			if m.playing {
				m.run++
				if m.step >= len(m.frames)-1 {
					m.step = -1
				}
				return m, m.tick()
			}
		}
	case TickMsg:
		if !m.playing || msg.Run != m.run {
			return m, nil
		}
		m.spin++
		if !m.next() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Previewer) next() bool {
	if m.step >= len(m.frames)-1 {
		return false
	}
	m.step++
	return true
}

// tick waits for the running time of the step about to play.
func (m Previewer) tick() tea.Cmd {
	d := minTick
	if n := m.step + 1; n < len(m.frames) {
		run := m.frames[n].End - m.frames[n].Start
		if wait := time.Duration(run / m.speed * float64(time.Second)); wait > d {
			d = wait
		}
	}
	run := m.run
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg{Time: t, Run: run} })
}

// Canvas renders the current frame.
func (m Previewer) Canvas() *Canvas {
	if m.step < 0 || m.step >= len(m.frames) {
		return NewCanvas(m.view.Cols, m.view.Rows)
	}
	return m.view.Render(m.timeline.Shapes(m.frames[m.step]))
}

func (m Previewer) View() string {
	s := m.styles
	picture := s.Canvas.Render(strings.TrimRight(m.Canvas().String(), "\n"))

	var b strings.Builder
	b.WriteString(GradientText(m.timeline.Name, Themes[m.theme].Primary, Themes[m.theme].Secondary) + "\n\n")

	status := s.Paused.Render("PAUSED")
	if m.playing {
		status = s.Playing.Render(Spinner(m.spin) + " PLAYING")
	}
	m.row(&b, "status", status)
	m.row(&b, "step", fmt.Sprintf("%d / %d", m.step+1, len(m.frames)))

	clock, total := 0.0, m.timeline.Duration()
	if m.step >= 0 {
		f := m.frames[m.step]
		clock = f.End
		m.row(&b, "kind", m.timeline.Steps[f.Step].Kind())
		m.row(&b, "on screen", fmt.Sprintf("%d", len(f.Visible)))
	}
	m.row(&b, "time", fmt.Sprintf("%.1fs / %.1fs", clock, total))
	m.row(&b, "speed", fmt.Sprintf("%gx", m.speed))
	progress := 0.0
	if total > 0 {
		progress = clock / total
	}
	b.WriteString("\n" + ProgressBar(progress, sidebarWidth-4, s.Value) + "\n")

	if m.step >= 0 {
		b.WriteString("\n" + Separator(sidebarWidth-4, s.Label) + "\n")
		for _, a := range m.timeline.Steps[m.frames[m.step].Step].Animations {
			b.WriteString(s.Label.Render(a.Op.String()) + " " + m.name(a.Target))
			if a.Into != 0 {
				b.WriteString(" → " + m.name(a.Into))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + s.Subtle.Render("←/→ step  space play  +/- speed\ng/G ends  t theme  q quit"))
	sidebar := s.Panel.Width(sidebarWidth).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, picture, "  ", sidebar)
}

func (m Previewer) row(b *strings.Builder, label, value string) {
	b.WriteString(m.styles.Label.Width(11).Render(label) + m.styles.Value.Render(value) + "\n")
}

func (m Previewer) name(id scene.ID) string {
	if e, ok := m.timeline.Entity(id); ok {
		return e.Name
	}
	return fmt.Sprintf("#%d", id)
}
