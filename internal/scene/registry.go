package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/statanim/internal/config"
	log "github.com/sirupsen/logrus"
)

// ErrUnknownScene is returned for names that are not registered.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Builder scripts a presentation from a configuration.
type Builder func(cfg *config.Config) (*Timeline, error)

type Registry struct {
	builders map[string]Builder
	about    map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		builders: make(map[string]Builder),
		about:    make(map[string]string),
	}
	r.Register("regression", "regression sum-of-squares decomposition", Regression)
	r.Register("fstat", "derivation of the F statistic", FStatistic)
	r.Register("anova", "one-way ANOVA decomposition", ANOVA)
	return r
}

func (r *Registry) Register(name, about string, b Builder) {
	r.builders[name] = b
	r.about[name] = about
}

func (r *Registry) Describe(name string) string {
	return r.about[name]
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build scripts the named scene.
func (r *Registry) Build(name string, cfg *config.Config) (*Timeline, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tl, err := b(cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	log.WithFields(log.Fields{
		"scene":    name,
		"entities": len(tl.Entities),
		"steps":    len(tl.Steps),
		"duration": tl.Duration(),
	}).Debug("timeline built")
	return tl, nil
}
