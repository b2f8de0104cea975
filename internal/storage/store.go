package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/export"
	"github.com/san-kum/statanim/internal/scene"
	log "github.com/sirupsen/logrus"
)

const (
	metadataFile = "metadata.json"
	timelineFile = "timeline.json"
	stepsFile    = "steps.csv"
	framesDir    = "frames"
	gifFile      = "preview.gif"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "init store")
}

// Options select the optional artefacts of a render.
type Options struct {
	Preset string
	// SVGWidth is the pixel width of frames/step_NNN.svg; 0 skips them.
	SVGWidth int
	// GIF writes preview.gif at GIFCols x GIFRows Braille cells.
	GIF              bool
	GIFCols, GIFRows int
	// Summary values are stored in the metadata; non-finite ones are dropped.
	Summary map[string]float64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Entities  int                `json:"entities"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Summary   map[string]float64 `json:"summary,omitempty"`
}

// StepRecord is one row of steps.csv.
type StepRecord struct {
	Index   int
	Start   float64
	RunTime float64
	Kind    string
	Ops     string
}

// Save validates tl and writes it to a new run directory.
func (s *Store) Save(tl *scene.Timeline, opts Options) (_ string, err error) {
	doc, err := export.NewDocument(tl, opts.Preset)
	if err != nil {
		return "", err
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", tl.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run dir")
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Scene:     tl.Name,
		Preset:    opts.Preset,
		Timestamp: now,
		Steps:     len(tl.Steps),
		Entities:  len(tl.Entities),
		Duration:  doc.Duration,
		Summary:   finite(opts.Summary),
	}

	if err := writeFile(filepath.Join(runDir, timelineFile), func(f *os.File) error {
		return export.WriteJSON(f, doc)
	}); err != nil {
		return "", err
	}
	if err := s.writeSteps(filepath.Join(runDir, stepsFile), tl, doc.Frames); err != nil {
		return "", err
	}

	if opts.SVGWidth > 0 {
		dir := filepath.Join(runDir, framesDir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(err, "create frames dir")
		}
		for _, f := range doc.Frames {
			svg := export.FrameToSVG(tl.Shapes(f), opts.SVGWidth)
			path := filepath.Join(dir, fmt.Sprintf("step_%03d.svg", f.Step))
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				return "", errors.Wrapf(err, "write frame %d", f.Step)
			}
			meta.Frames++
		}
	}

	if opts.GIF {
		if err := writeFile(filepath.Join(runDir, gifFile), func(f *os.File) error {
			return export.WriteGIF(f, tl, opts.GIFCols, opts.GIFRows)
		}); err != nil {
			return "", err
		}
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"run":    runID,
		"steps":  meta.Steps,
		"frames": meta.Frames,
	}).Debug("render stored")
	return runID, nil
}

func (s *Store) writeSteps(path string, tl *scene.Timeline, frames []scene.Frame) error {
	return writeFile(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write([]string{"step", "start", "run_time", "kind", "ops"}); err != nil {
			return err
		}
		for _, fr := range frames {
			step := tl.Steps[fr.Step]
			row := []string{
				strconv.Itoa(fr.Step),
				strconv.FormatFloat(fr.Start, 'f', 3, 64),
				strconv.FormatFloat(step.RunTime, 'f', 3, 64),
				step.Kind(),
				describe(tl, step),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// describe lists the animations of a step as op:name pairs.
func describe(tl *scene.Timeline, step scene.Step) string {
	name := func(id scene.ID) string {
		if e, ok := tl.Entity(id); ok {
			return e.Name
		}
		return strconv.Itoa(int(id))
	}
	parts := make([]string, 0, len(step.Animations))
	for _, a := range step.Animations {
		p := a.Op.String() + ":" + name(a.Target)
		if a.Into != 0 {
			p += ">" + name(a.Into)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "list runs")
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			log.WithField("run", entry.Name()).WithError(err).Debug("skipping run")
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, errors.Wrapf(err, "load run %s", runID)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode run %s", runID)
	}
	return &meta, nil
}

// LoadTimeline reads back the stored timeline document.
func (s *Store) LoadTimeline(runID string) (export.Document, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, timelineFile))
	if err != nil {
		return export.Document{}, errors.Wrapf(err, "load timeline %s", runID)
	}
	defer f.Close()
	return export.ReadJSON(f)
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, errors.Wrapf(err, "load steps %s", runID)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse steps %s", runID)
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "parse steps %s", runID)
		}
		start, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse steps %s", runID)
		}
		run, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse steps %s", runID)
		}
		steps = append(steps, StepRecord{Index: idx, Start: start, RunTime: run, Kind: record[3], Ops: record[4]})
	}
	return steps, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", filepath.Base(path))
	}
	if err := fn(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", filepath.Base(path))
	}
	return errors.Wrapf(f.Close(), "close %s", filepath.Base(path))
}

func finite(m map[string]float64) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
