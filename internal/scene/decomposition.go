package scene

import (
	"github.com/san-kum/statanim/internal/geometry"
)

// Layer is a named group entering the frame as one entity.
type Layer struct {
	Name   string
	Shapes geometry.Group
	// Write animates the layer as handwriting instead of stroke creation.
	Write bool
	// Transient layers leave together with the phase that introduced them.
	Transient bool
}

func (l Layer) enter(id ID) Animation {
	if l.Write {
		return Write(id)
	}
	return Create(id)
}

// Exit says what happens to a phase's lines once it is over.
type Exit int

const (
	// ExitKeep leaves everything on screen.
	ExitKeep Exit = iota
	// ExitRemove drops the deviation lines without animating.
	ExitRemove
	// ExitFadeOut fades the lines, the transient intro layers and the formula.
	ExitFadeOut
)

// Phase shows one sum of squares: optional reference layers, a formula and
// the deviation lines it measures.
type Phase struct {
	Name      string
	Intro     []Layer
	IntroHold float64
	Formula   Layer
	// FormulaFirst writes the formula before drawing the lines.
	FormulaFirst bool
	Lines        geometry.Group
	// Stagger > 0 draws each line as its own step of that length.
	Stagger float64
	Hold    float64
	Exit    Exit
}

// Decomposition is the shared shape of the regression and ANOVA
// presentations: a setup frame followed by one phase per sum of squares.
type Decomposition struct {
	Name      string
	RunTime   float64
	Setup     []Layer
	SetupHold float64
	Phases    []Phase
	FinalHold float64
}

// Timeline scripts the presentation.
func (d Decomposition) Timeline() (*Timeline, error) {
	s := NewScript(d.Name, d.RunTime)

	s.Play(s.enterLayers(d.Setup)...)
	s.Wait(d.SetupHold)

	for _, ph := range d.Phases {
		var transient []ID
		if len(ph.Intro) > 0 {
			anims := make([]Animation, len(ph.Intro))
			for i, l := range ph.Intro {
				id := s.Add(l.Name, l.Shapes)
				anims[i] = l.enter(id)
				if l.Transient {
					transient = append(transient, id)
				}
			}
			s.Play(anims...)
			s.Wait(ph.IntroHold)
		}

		formula := s.Add(ph.Formula.Name, ph.Formula.Shapes)
		writeFormula := func() { s.Play(ph.Formula.enter(formula)) }

		if ph.FormulaFirst {
			writeFormula()
		}
		var lines []ID
		if ph.Stagger > 0 {
			lines = s.AddEach(ph.Name, ph.Lines)
			for _, id := range lines {
				s.PlayFor(ph.Stagger, Create(id))
			}
		} else {
			lines = []ID{s.Add(ph.Name, ph.Lines)}
			s.Play(Create(lines[0]))
		}
		if !ph.FormulaFirst {
			writeFormula()
		}
		s.Wait(ph.Hold)

		switch ph.Exit {
		case ExitRemove:
			s.Remove(lines...)
		case ExitFadeOut:
			gone := append(append(lines, transient...), formula)
			s.Play(each(FadeOut, gone...)...)
		}
	}

	s.Wait(d.FinalHold)
	return s.Timeline()
}

func (s *Script) enterLayers(layers []Layer) []Animation {
	anims := make([]Animation, len(layers))
	for i, l := range layers {
		anims[i] = l.enter(s.Add(l.Name, l.Shapes))
	}
	return anims
}
