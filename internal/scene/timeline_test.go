package scene_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/scene"
)

func dot(x, y float64) geometry.Group {
	return geometry.Group{geometry.Dot(geometry.Vec2{X: x, Y: y}, geometry.Blue)}
}

var _ = Describe("Timeline", func() {
	var s *scene.Script

	BeforeEach(func() {
		s = scene.NewScript("test", 0)
	})

	It("replays appear, transform and disappear steps", func() {
		a := s.Add("a", dot(0, 0))
		b := s.Add("b", dot(1, 1))
		s.Play(scene.Create(a))
		s.Wait(2)
		s.Play(scene.Transform(a, b))
		s.Play(scene.FadeOut(a))

		tl, err := s.Timeline()
		Expect(err).NotTo(HaveOccurred())
		Expect(tl.Duration()).To(BeNumerically("~", 5, 1e-12))

		frames, err := tl.Frames()
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(4))
		Expect(frames[0].Visible).To(Equal([]scene.Shown{{Entity: a, As: a}}))
		Expect(frames[1].Start).To(BeNumerically("~", 1, 1e-12))
		Expect(frames[1].End).To(BeNumerically("~", 3, 1e-12))
		Expect(frames[2].Visible).To(Equal([]scene.Shown{{Entity: a, As: b}}))
		Expect(tl.Shapes(frames[2])[0].Points[0]).To(Equal(geometry.Vec2{X: 1, Y: 1}))
		Expect(frames[3].Visible).To(BeEmpty())
	})

	It("swaps source for target on replace", func() {
		a := s.Add("a", dot(0, 0))
		b := s.Add("b", dot(0, 1))
		c := s.Add("c", dot(0, 2))
		s.Play(scene.Create(a), scene.Create(b))
		s.Play(scene.Replace(a, c), scene.Replace(b, c))

		tl, err := s.Timeline()
		Expect(err).NotTo(HaveOccurred())
		frames, _ := tl.Frames()
		Expect(frames[1].Visible).To(Equal([]scene.Shown{{Entity: c, As: c}}))
	})

	It("clears the frame", func() {
		a := s.Add("a", dot(0, 0))
		s.Play(scene.Create(a))
		s.Clear()
		s.Play(scene.FadeIn(a))

		tl, err := s.Timeline()
		Expect(err).NotTo(HaveOccurred())
		Expect(tl.Steps[1].Kind()).To(Equal("clear"))
		Expect(tl.Steps[0].Kind()).To(Equal("play"))
	})

	It("removes without consuming time", func() {
		a := s.Add("a", dot(0, 0))
		s.Play(scene.Create(a))
		s.Remove(a)

		tl, err := s.Timeline()
		Expect(err).NotTo(HaveOccurred())
		Expect(tl.Steps[1].RunTime).To(BeZero())
		Expect(tl.Duration()).To(BeNumerically("~", scene.DefaultRunTime, 1e-12))
	})

	DescribeTable("rejects out of order scripts",
		func(build func(s *scene.Script), want error) {
			build(s)
			_, err := s.Timeline()
			Expect(err).To(MatchError(want))

			var seqErr *scene.SequenceError
			Expect(err).To(BeAssignableToTypeOf(seqErr))
		},
		Entry("appearing twice", func(s *scene.Script) {
			a := s.Add("a", dot(0, 0))
			s.Play(scene.Create(a))
			s.Play(scene.Write(a))
		}, scene.ErrAlreadyVisible),
		Entry("fading out something hidden", func(s *scene.Script) {
			a := s.Add("a", dot(0, 0))
			s.Play(scene.FadeOut(a))
		}, scene.ErrNotVisible),
		Entry("transforming something hidden", func(s *scene.Script) {
			a := s.Add("a", dot(0, 0))
			b := s.Add("b", dot(0, 0))
			s.Play(scene.Transform(a, b))
		}, scene.ErrNotVisible),
		Entry("transforming into something visible", func(s *scene.Script) {
			a := s.Add("a", dot(0, 0))
			b := s.Add("b", dot(0, 0))
			s.Play(scene.Create(a), scene.Create(b))
			s.Play(scene.Transform(a, b))
		}, scene.ErrAlreadyVisible),
		Entry("an unknown entity", func(s *scene.Script) {
			s.Play(scene.Create(scene.ID(7)))
		}, scene.ErrUnknownEntity),
		Entry("an empty play step", func(s *scene.Script) {
			s.Play()
		}, scene.ErrEmptyStep),
	)

	It("rejects references to entities registered later", func() {
		tl := &scene.Timeline{
			Name: "forward",
			Entities: []scene.Entity{
				{ID: 1, Name: "early", Shapes: dot(0, 0), Since: 0},
				{ID: 2, Name: "late", Shapes: dot(1, 1), Since: 1},
			},
			Steps: []scene.Step{
				{Animations: []scene.Animation{scene.Create(1), scene.Create(2)}, RunTime: 1},
			},
		}

		err := tl.Validate()
		Expect(err).To(MatchError(scene.ErrForwardReference))
		Expect(err.Error()).To(ContainSubstring("late"))
	})

	It("survives a JSON round trip", func() {
		a := s.Add("a", dot(0, 0))
		b := s.Add("b", dot(1, 0))
		s.Play(scene.Create(a))
		s.Play(scene.Replace(a, b))
		tl, err := s.Timeline()
		Expect(err).NotTo(HaveOccurred())

		data, err := json.Marshal(tl)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"op":"replace"`))

		var back scene.Timeline
		Expect(json.Unmarshal(data, &back)).To(Succeed())
		Expect(back.Validate()).To(Succeed())
		Expect(back.Steps).To(Equal(tl.Steps))
	})
})
