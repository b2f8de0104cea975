package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/statanim/internal/geometry"
)

// Sequencing errors wrapped by SequenceError.
var (
	ErrUnknownEntity    = errors.New("scene: unknown entity")
	ErrForwardReference = errors.New("scene: entity referenced before it is registered")
	ErrAlreadyVisible   = errors.New("scene: entity already visible")
	ErrNotVisible       = errors.New("scene: entity not visible")
	ErrEmptyStep        = errors.New("scene: step has no animations")
)

// ID identifies an entity within one timeline. The zero ID means none.
type ID int

type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpFadeIn
	OpTransform
	OpReplace
	OpFadeOut
	OpRemove
)

var opNames = [...]string{"create", "write", "fade_in", "transform", "replace", "fade_out", "remove"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Op) UnmarshalText(b []byte) error {
	for i, name := range opNames {
		if name == string(b) {
			*o = Op(i)
			return nil
		}
	}
	return fmt.Errorf("scene: unknown op %q", b)
}

func (o Op) Appears() bool { return o == OpCreate || o == OpWrite || o == OpFadeIn }
func (o Op) Disappears() bool { return o == OpFadeOut || o == OpRemove }
func (o Op) Transforms() bool { return o == OpTransform || o == OpReplace }

// Animation applies one operation to one entity. Into names the shape a
// transform morphs the target into.
type Animation struct {
	Op     Op `json:"op" yaml:"op"`
	Target ID `json:"target" yaml:"target"`
	Into   ID `json:"into,omitempty" yaml:"into,omitempty"`
}

func Create(id ID) Animation { return Animation{Op: OpCreate, Target: id} }
func Write(id ID) Animation { return Animation{Op: OpWrite, Target: id} }
func FadeIn(id ID) Animation { return Animation{Op: OpFadeIn, Target: id} }
func FadeOut(id ID) Animation { return Animation{Op: OpFadeOut, Target: id} }
func Remove(id ID) Animation { return Animation{Op: OpRemove, Target: id} }

// Transform morphs src into the shape of dst; src stays on screen.
func Transform(src, dst ID) Animation { return Animation{Op: OpTransform, Target: src, Into: dst} }

// Replace morphs src into dst; afterwards dst is on screen and src is not.
func Replace(src, dst ID) Animation { return Animation{Op: OpReplace, Target: src, Into: dst} }

// Step is one entry of the timeline. With animations it plays them in
// parallel over RunTime seconds; without, it holds for RunTime seconds.
// A clearing step removes everything from the frame.
type Step struct {
	Animations []Animation `json:"animations,omitempty" yaml:"animations,omitempty"`
	RunTime    float64     `json:"run_time" yaml:"run_time"`
	Clear      bool        `json:"clear,omitempty" yaml:"clear,omitempty"`
}

func (s Step) Kind() string {
	switch {
	case s.Clear:
		return "clear"
	case len(s.Animations) == 0:
		return "hold"
	default:
		return "play"
	}
}

// Entity is a named group of primitives. Since is the index of the first step
// allowed to reference it.
type Entity struct {
	ID     ID             `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Shapes geometry.Group `json:"shapes" yaml:"shapes"`
	Since  int            `json:"since" yaml:"since"`
}

type Timeline struct {
	Name     string   `json:"name" yaml:"name"`
	Entities []Entity `json:"entities" yaml:"entities"`
	Steps    []Step   `json:"steps" yaml:"steps"`
}

// SequenceError reports the step and entity that broke the ordering rules.
type SequenceError struct {
	Step    int
	Entity  ID
	Name    string
	Wrapped error
}

func (e *SequenceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("step %d: entity %d (%s): %v", e.Step, e.Entity, e.Name, e.Wrapped)
	}
	return fmt.Sprintf("step %d: entity %d: %v", e.Step, e.Entity, e.Wrapped)
}

func (e *SequenceError) Unwrap() error {
	return e.Wrapped
}

func (t *Timeline) Entity(id ID) (Entity, bool) {
	if id < 1 || int(id) > len(t.Entities) {
		return Entity{}, false
	}
	return t.Entities[id-1], true
}

// Lookup finds an entity by name.
func (t *Timeline) Lookup(name string) (Entity, bool) {
	for _, e := range t.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Duration is the total running time in seconds.
func (t *Timeline) Duration() float64 {
	total := 0.0
	for _, s := range t.Steps {
		total += s.RunTime
	}
	return total
}

// Shown is an entity on screen. As is the entity whose shapes it currently
// displays; it differs from Entity after a Transform.
type Shown struct {
	Entity ID `json:"entity"`
	As     ID `json:"as"`
}

// Frame is the state of the screen once a step has finished.
type Frame struct {
	Step    int     `json:"step"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Visible []Shown `json:"visible"`
}

// Shapes resolves the primitives visible in f.
func (t *Timeline) Shapes(f Frame) geometry.Group {
	var g geometry.Group
	for _, s := range f.Visible {
		if e, ok := t.Entity(s.As); ok {
			g = append(g, e.Shapes...)
		}
	}
	return g
}

// Validate replays the timeline and returns the first ordering violation.
func (t *Timeline) Validate() error {
	_, err := t.Frames()
	return err
}

// Frames replays the timeline and returns the screen state after each step.
func (t *Timeline) Frames() ([]Frame, error) {
	st := newStage()
	frames := make([]Frame, 0, len(t.Steps))
	clock := 0.0
	for i, step := range t.Steps {
		if err := t.apply(st, i, step); err != nil {
			return frames, err
		}
		frames = append(frames, Frame{
			Step:    i,
			Start:   clock,
			End:     clock + step.RunTime,
			Visible: st.snapshot(),
		})
		clock += step.RunTime
	}
	return frames, nil
}

func (t *Timeline) check(i int, id ID) error {
	e, ok := t.Entity(id)
	if !ok {
		return &SequenceError{Step: i, Entity: id, Wrapped: ErrUnknownEntity}
	}
	if e.Since > i {
		return &SequenceError{Step: i, Entity: id, Name: e.Name, Wrapped: ErrForwardReference}
	}
	return nil
}

func (t *Timeline) fail(i int, id ID, err error) error {
	e, _ := t.Entity(id)
	return &SequenceError{Step: i, Entity: id, Name: e.Name, Wrapped: err}
}

func (t *Timeline) apply(st *stage, i int, step Step) error {
	if step.Clear {
		st.clear()
		return nil
	}
	entered := map[ID]bool{}
	for _, a := range step.Animations {
		if err := t.check(i, a.Target); err != nil {
			return err
		}
		switch {
		case a.Op.Appears():
			if st.visible(a.Target) {
				return t.fail(i, a.Target, ErrAlreadyVisible)
			}
			st.show(a.Target)
			entered[a.Target] = true
		case a.Op.Disappears():
			if !st.visible(a.Target) {
				return t.fail(i, a.Target, ErrNotVisible)
			}
			st.hide(a.Target)
		case a.Op.Transforms():
			if err := t.check(i, a.Into); err != nil {
				return err
			}
			if !st.visible(a.Target) {
				return t.fail(i, a.Target, ErrNotVisible)
			}
			if st.visible(a.Into) && !(a.Op == OpReplace && entered[a.Into]) {
				return t.fail(i, a.Into, ErrAlreadyVisible)
			}
			if a.Op == OpTransform {
				st.morph(a.Target, a.Into)
				continue
			}
			st.hide(a.Target)
			if !st.visible(a.Into) {
				st.show(a.Into)
				entered[a.Into] = true
			}
		default:
			return t.fail(i, a.Target, fmt.Errorf("scene: unsupported op %v", a.Op))
		}
	}
	return nil
}

// stage tracks what is on screen, in order of appearance.
type stage struct {
	order []ID
	as    map[ID]ID
}

func newStage() *stage {
	return &stage{as: make(map[ID]ID)}
}

func (s *stage) visible(id ID) bool {
	_, ok := s.as[id]
	return ok
}

func (s *stage) show(id ID) {
	s.as[id] = id
	s.order = append(s.order, id)
}

func (s *stage) morph(id, into ID) {
	s.as[id] = into
}

func (s *stage) hide(id ID) {
	delete(s.as, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *stage) clear() {
	s.order = s.order[:0]
	s.as = make(map[ID]ID)
}

func (s *stage) snapshot() []Shown {
	out := make([]Shown, len(s.order))
	for i, id := range s.order {
		out[i] = Shown{Entity: id, As: s.as[id]}
	}
	return out
}
