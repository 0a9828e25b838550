package evaluation

import (
	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
)

type simpleMean struct{}

func NewSimpleMean() Strategy {
	return &simpleMean{}
}

func (strategy *simpleMean) Evaluate(sections []*model.Section) float64 {
	if len(sections) == 0 {
		return 0
	}
	return lo.SumBy(sections, rating) / float64(len(sections))
}

func (strategy *simpleMean) Name() string { return "Simple mean" }

// minutesWeighted weighs every rating by the weekly minutes of its section
type minutesWeighted struct{}

func NewMinutesWeighted() Strategy {
	return &minutesWeighted{}
}

func (strategy *minutesWeighted) Evaluate(sections []*model.Section) float64 {
	weightedSum, totalMinutes := 0.0, 0
	for _, section := range sections {
		minutes := section.TotalMinutes()
		weightedSum += section.Rating() * float64(minutes)
		totalMinutes += minutes
	}

	if totalMinutes == 0 {
		return 0
	}
	return weightedSum / float64(totalMinutes)
}

func (strategy *minutesWeighted) Name() string { return "Minutes weighted" }

type maxMinAverage struct{}

func NewMaxMinAverage() Strategy {
	return &maxMinAverage{}
}

func (strategy *maxMinAverage) Evaluate(sections []*model.Section) float64 {
	if len(sections) == 0 {
		return 0
	}
	ratings := lo.Map(sections, func(section *model.Section, _ int) float64 { return section.Rating() })
	return (lo.Min(ratings) + lo.Max(ratings)) / 2
}

func (strategy *maxMinAverage) Name() string { return "Max-min average" }

// harmonicMean computes n / Σ(1/rating). A zero rating makes the sum infinite and therefore the score 0
type harmonicMean struct{}

func NewHarmonicMean() Strategy {
	return &harmonicMean{}
}

func (strategy *harmonicMean) Evaluate(sections []*model.Section) float64 {
	if len(sections) == 0 {
		return 0
	}
	inverseSum := lo.SumBy(sections, func(section *model.Section) float64 { return 1 / section.Rating() })
	return float64(len(sections)) / inverseSum
}

func (strategy *harmonicMean) Name() string { return "Harmonic mean" }

func rating(section *model.Section) float64 {
	return section.Rating()
}
