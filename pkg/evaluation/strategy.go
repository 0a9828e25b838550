package evaluation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/scheduling/pkg/model"
)

var ErrUnknownStrategy = errors.New("unknown evaluation strategy")

// Strategy scores a collection of sections; higher is better. Every strategy returns 0 for an empty collection
type Strategy interface {
	Evaluate(sections []*model.Section) float64
	Name() string
}

const (
	Simple   = "simple"
	Weighted = "weighted"
	MaxMin   = "maxmin"
	Harmonic = "harmonic"
)

var strategies = map[string]func() Strategy{
	Simple:   NewSimpleMean,
	Weighted: NewMinutesWeighted,
	MaxMin:   NewMaxMinAverage,
	Harmonic: NewHarmonicMean,
}

// ByName resolves one of "simple", "weighted", "maxmin" or "harmonic" (case-insensitive)
func ByName(name string) (Strategy, error) {
	constructor, ok := strategies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return constructor(), nil
}

// Names lists the names accepted by ByName
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
