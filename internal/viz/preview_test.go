package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/scene"
)

func newPreviewer(t *testing.T) Previewer {
	t.Helper()
	tl, err := scene.Regression(config.DefaultConfig())
	if err != nil {
		t.Fatalf("Regression: %v", err)
	}
	p, err := NewPreviewer(tl, "chalk")
	if err != nil {
		t.Fatalf("NewPreviewer: %v", err)
	}
	return p
}

func press(m Previewer, msg tea.KeyMsg) Previewer {
	next, _ := m.Update(msg)
	return next.(Previewer)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewerStepping(t *testing.T) {
	m := newPreviewer(t)
	if m.Step() != -1 {
		t.Fatalf("initial step = %d, want -1", m.Step())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, runes("n"))
	if m.Step() != 1 {
		t.Errorf("after two steps = %d, want 1", m.Step())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Step() != 0 {
		t.Errorf("after back = %d, want 0", m.Step())
	}

	m = press(m, runes("G"))
	last := len(m.frames) - 1
	if m.Step() != last {
		t.Errorf("G = %d, want %d", m.Step(), last)
	}
	m = press(m, runes("l"))
	if m.Step() != last {
		t.Errorf("stepped past the end: %d", m.Step())
	}

	m = press(m, runes("g"))
	m = press(m, runes("h"))
	if m.Step() != -1 {
		t.Errorf("stepped before the start: %d", m.Step())
	}
}

func TestPreviewerAutoplay(t *testing.T) {
	m := newPreviewer(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Previewer)
	if !m.Playing() || cmd == nil {
		t.Fatal("space did not start autoplay")
	}

	for i := 0; i <= len(m.frames); i++ {
		next, _ = m.Update(TickMsg{Run: m.run})
		m = next.(Previewer)
	}
	if m.Playing() {
		t.Error("autoplay still running past the last step")
	}
	if m.Step() != len(m.frames)-1 {
		t.Errorf("autoplay stopped at %d", m.Step())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Step() != -1 || !m.Playing() {
		t.Error("replay did not rewind to the start")
	}
}

func TestPreviewerDropsStaleTicks(t *testing.T) {
	m := newPreviewer(t)
	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	stale := TickMsg{Run: m.run}

	// pause and resume before the first tick arrives
	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Playing() {
		t.Fatal("autoplay not resumed")
	}

	next, cmd := m.Update(stale)
	m = next.(Previewer)
	if m.Step() != -1 || cmd != nil {
		t.Errorf("stale tick advanced to step %d", m.Step())
	}

	next, cmd = m.Update(TickMsg{Run: m.run})
	m = next.(Previewer)
	if m.Step() != 0 || cmd == nil {
		t.Errorf("current tick: step %d, want 0 with another tick scheduled", m.Step())
	}
}

func TestPreviewerView(t *testing.T) {
	m := newPreviewer(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	out := m.View()
	for _, want := range []string{"status", "1 / ", "create", "data"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreviewerQuit(t *testing.T) {
	m := newPreviewer(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
