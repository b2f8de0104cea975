package storage

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/scene"
)

func build(t *testing.T, name string) *scene.Timeline {
	t.Helper()
	tl, err := scene.NewRegistry().Build(name, config.DefaultConfig())
	if err != nil {
		t.Fatalf("build %s: %v", name, err)
	}
	return tl
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tl := build(t, "regression")
	runID, err := st.Save(tl, Options{
		Preset:   "fitted",
		SVGWidth: 800,
		GIF:      true,
		GIFCols:  40,
		GIFRows:  12,
		Summary:  map[string]float64{"ss_total": 5.8, "f": math.NaN()},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "regression_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "regression" || meta.Preset != "fitted" {
		t.Errorf("got scene %q preset %q", meta.Scene, meta.Preset)
	}
	if meta.Steps != len(tl.Steps) || meta.Frames != len(tl.Steps) {
		t.Errorf("steps %d frames %d, want %d", meta.Steps, meta.Frames, len(tl.Steps))
	}
	if meta.Summary["ss_total"] != 5.8 {
		t.Errorf("ss_total = %v, want 5.8", meta.Summary["ss_total"])
	}
	if _, ok := meta.Summary["f"]; ok {
		t.Error("non-finite summary value stored")
	}

	for _, name := range []string{"frames/step_000.svg", "preview.gif", "timeline.json"} {
		if _, err := os.Stat(filepath.Join(st.baseDir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		t.Fatalf("load steps failed: %v", err)
	}
	if len(steps) != len(tl.Steps) {
		t.Fatalf("expected %d steps, got %d", len(tl.Steps), len(steps))
	}
	if steps[0].Kind != "play" || !strings.Contains(steps[0].Ops, "create:data") {
		t.Errorf("first step = %+v", steps[0])
	}
	if last := steps[len(steps)-1]; math.Abs(last.Start+last.RunTime-tl.Duration()) > 1e-3 {
		t.Errorf("steps end at %v, want %v", last.Start+last.RunTime, tl.Duration())
	}

	doc, err := st.LoadTimeline(runID)
	if err != nil {
		t.Fatalf("load timeline failed: %v", err)
	}
	if len(doc.Timeline.Entities) != len(tl.Entities) {
		t.Errorf("expected %d entities, got %d", len(tl.Entities), len(doc.Timeline.Entities))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, name := range []string{"anova", "fstat"} {
		if _, err := st.Save(build(t, name), Options{}); err != nil {
			t.Fatalf("save %s failed: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Scene != "anova" || runs[1].Scene != "fstat" {
		t.Errorf("runs out of order: %s, %s", runs[0].Scene, runs[1].Scene)
	}
	if runs[0].Frames != 0 {
		t.Errorf("frames written without SVGWidth: %d", runs[0].Frames)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreRejectsInvalidTimeline(t *testing.T) {
	st := New(t.TempDir())
	tl := &scene.Timeline{
		Name:  "broken",
		Steps: []scene.Step{{Animations: []scene.Animation{scene.FadeOut(1)}, RunTime: 1}},
	}
	if _, err := st.Save(tl, Options{}); err == nil {
		t.Fatal("expected error for invalid timeline")
	}
	runs, _ := st.List()
	if len(runs) != 0 {
		t.Errorf("invalid timeline was stored")
	}
}

func TestStoreSaveFailureLeavesNoRunDir(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	tl := &scene.Timeline{
		Name: "nan",
		Entities: []scene.Entity{{
			ID:     1,
			Name:   "line",
			Shapes: geometry.Group{geometry.Segment(geometry.Vec2{X: 2, Y: math.NaN()}, geometry.Vec2{X: 2, Y: 1}, geometry.White)},
		}},
		Steps: []scene.Step{{Animations: []scene.Animation{scene.Create(1)}, RunTime: 1}},
	}
	if _, err := st.Save(tl, Options{}); err == nil {
		t.Fatal("expected error encoding a NaN coordinate")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("partial run left behind: %v", entries)
	}
}
