package export

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/scene"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("export: unknown format %q", s)
}

// Document is a timeline together with its replayed frames.
type Document struct {
	Scene    string          `json:"scene" yaml:"scene"`
	Preset   string          `json:"preset,omitempty" yaml:"preset,omitempty"`
	Duration float64         `json:"duration" yaml:"duration"`
	Timeline *scene.Timeline `json:"timeline" yaml:"timeline"`
	Frames   []scene.Frame   `json:"frames" yaml:"frames"`
}

// NewDocument replays tl; an invalid timeline is rejected.
func NewDocument(tl *scene.Timeline, preset string) (Document, error) {
	frames, err := tl.Frames()
	if err != nil {
		return Document{}, errors.Wrapf(err, "export %s", tl.Name)
	}
	return Document{
		Scene:    tl.Name,
		Preset:   preset,
		Duration: tl.Duration(),
		Timeline: tl,
		Frames:   frames,
	}, nil
}

func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	}
	return errors.Errorf("export: unknown format %q", f)
}

func WriteJSON(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(doc), "encode json")
}

func WriteYAML(w io.Writer, doc Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(encoder.Close(), "encode yaml")
}

// ReadJSON decodes a document written by WriteJSON and checks that its
// timeline still replays.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(err, "decode json")
	}
	if doc.Timeline == nil {
		return Document{}, errors.New("decode json: missing timeline")
	}
	if err := doc.Timeline.Validate(); err != nil {
		return Document{}, errors.Wrap(err, "decode json")
	}
	return doc, nil
}
