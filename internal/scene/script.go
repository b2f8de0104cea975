package scene

import (
	"fmt"

	"github.com/san-kum/statanim/internal/geometry"
)

// DefaultRunTime is the length of a play step when none is given.
const DefaultRunTime = 1.0

// Script builds a Timeline one step at a time.
type Script struct {
	tl      Timeline
	runTime float64
	err     error
}

func NewScript(name string, runTime float64) *Script {
	if runTime <= 0 {
		runTime = DefaultRunTime
	}
	return &Script{tl: Timeline{Name: name}, runTime: runTime}
}

// Add registers shapes as a new entity usable from the next step on.
func (s *Script) Add(name string, shapes geometry.Group) ID {
	id := ID(len(s.tl.Entities) + 1)
	s.tl.Entities = append(s.tl.Entities, Entity{
		ID:     id,
		Name:   name,
		Shapes: shapes,
		Since:  len(s.tl.Steps),
	})
	return id
}

// AddEach registers every primitive of g as its own entity, named name[i].
func (s *Script) AddEach(name string, g geometry.Group) []ID {
	ids := make([]ID, len(g))
	for i, p := range g {
		ids[i] = s.Add(indexed(name, i), geometry.Group{p})
	}
	return ids
}

// Play appends a step running anims in parallel for the default run time.
func (s *Script) Play(anims ...Animation) *Script {
	return s.PlayFor(s.runTime, anims...)
}

// PlayFor appends a step running anims in parallel for runTime seconds.
func (s *Script) PlayFor(runTime float64, anims ...Animation) *Script {
	if len(anims) == 0 {
		if s.err == nil {
			s.err = &SequenceError{Step: len(s.tl.Steps), Wrapped: ErrEmptyStep}
		}
		return s
	}
	s.tl.Steps = append(s.tl.Steps, Step{Animations: anims, RunTime: runTime})
	return s
}

// Wait holds the current frame for d seconds.
func (s *Script) Wait(d float64) *Script {
	if d > 0 {
		s.tl.Steps = append(s.tl.Steps, Step{RunTime: d})
	}
	return s
}

// Remove drops entities from the frame without animating.
func (s *Script) Remove(ids ...ID) *Script {
	anims := make([]Animation, len(ids))
	for i, id := range ids {
		anims[i] = Remove(id)
	}
	return s.PlayFor(0, anims...)
}

// Clear empties the frame.
func (s *Script) Clear() *Script {
	s.tl.Steps = append(s.tl.Steps, Step{Clear: true})
	return s
}

// Timeline returns the validated timeline.
func (s *Script) Timeline() (*Timeline, error) {
	if s.err != nil {
		return nil, s.err
	}
	tl := s.tl
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

// each applies op to every id.
func each(op func(ID) Animation, ids ...ID) []Animation {
	anims := make([]Animation, len(ids))
	for i, id := range ids {
		anims[i] = op(id)
	}
	return anims
}

func indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
