// Package risk converts raw transaction attributes into a bounded risk value.
// Scoring is a fixed additive rule set: it holds no state and performs no I/O.
package risk

import (
	"math"
	"strings"
)

const (
	highAmountThreshold = 10000.0

	weightHighAmount      = 0.4
	weightUnknownLocation = 0.3
	weightUnknownDevice   = 0.3

	maxScore = 1.0
)

// Band is a coarse classification of a risk score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"

	mediumFloor = 0.3
	highFloor   = 0.7
)

// Policy is the rule table applied by Score.
type Policy struct {
	HighAmountThreshold float64
	HighAmountWeight    float64

	TrustedLocations      map[string]struct{}
	UnknownLocationWeight float64

	TrustedDevices      map[string]struct{}
	UnknownDeviceWeight float64
}

// DefaultPolicy is the production rule set.
var DefaultPolicy = Policy{
	HighAmountThreshold:   highAmountThreshold,
	HighAmountWeight:      weightHighAmount,
	TrustedLocations:      set("vizag", "hyderabad"),
	UnknownLocationWeight: weightUnknownLocation,
	TrustedDevices:        set("mobile", "laptop"),
	UnknownDeviceWeight:   weightUnknownDevice,
}

// Scorer is satisfied by Policy; the ledger depends on this instead of the
// concrete rule table.
type Scorer interface {
	Score(amount float64, location, device string) float64
}

// Score applies DefaultPolicy.
func Score(amount float64, location, device string) float64 {
	return DefaultPolicy.Score(amount, location, device)
}

// Score sums the weights of the triggered indicators, rounds to two decimals
// (half away from zero) and caps the result at 1.0. It never fails.
func (p Policy) Score(amount float64, location, device string) float64 {
	var sum float64

	if amount > p.HighAmountThreshold {
		sum += p.HighAmountWeight
	}
	if !p.trusted(p.TrustedLocations, location) {
		sum += p.UnknownLocationWeight
	}
	if !p.trusted(p.TrustedDevices, device) {
		sum += p.UnknownDeviceWeight
	}

	return math.Min(round2(sum), maxScore)
}

// Level classifies a score into a band.
func Level(score float64) Band {
	switch {
	case score >= highFloor:
		return BandHigh
	case score >= mediumFloor:
		return BandMedium
	default:
		return BandLow
	}
}

func (p Policy) trusted(values map[string]struct{}, v string) bool {
	_, ok := values[normalize(v)]
	return ok
}

// normalize folds case only; padded values do not match a trusted entry.
func normalize(v string) string {
	return strings.ToLower(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[normalize(v)] = struct{}{}
	}
	return m
}
