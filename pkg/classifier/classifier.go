// Package classifier turns one window of sensor readings into a Line.
package classifier

import (
	"math"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Params tunes the classification of a window.
type Params struct {
	// Multiplier is accepted for compatibility with existing tuning files.
	// It does not take part in classification.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`

	// Bias is subtracted from every raw sample.
	Bias float64 `yaml:"bias" mapstructure:"bias"`

	// Threshold is the magnitude a local extremum must exceed to count.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// DefaultParams are the values the installation was tuned with.
func DefaultParams() Params {
	return Params{Multiplier: 1, Bias: 500, Threshold: 10}
}

// Classify returns Yang when the window has more local maxima than local minima,
// and Yin otherwise (ties and windows shorter than three samples included).
func Classify(samples []int, p Params) domain.Line {
	maxima, minima := Extrema(samples, p)
	if maxima > minima {
		return domain.Yang
	}
	return domain.Yin
}

// Extrema counts the local maxima and minima of the bias-normalized samples.
//
// A point is a maximum when it is above both neighbours and above Threshold,
// and a minimum when it is below both neighbours and its magnitude is above Threshold.
func Extrema(samples []int, p Params) (maxima, minima int) {
	if len(samples) < 3 {
		return 0, 0
	}

	n := make([]float64, len(samples))
	for i, s := range samples {
		n[i] = float64(s) - p.Bias
	}

	for i := 1; i < len(n)-1; i++ {
		prev, cur, next := n[i-1], n[i], n[i+1]
		if cur > prev && cur > next && cur > p.Threshold {
			maxima++
		}
		if cur < prev && cur < next && math.Abs(cur) > p.Threshold {
			minima++
		}
	}
	return maxima, minima
}
