package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Examples(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		location string
		device   string
		want     float64
	}{
		{name: "all indicators", amount: 15000, location: "Mumbai", device: "tablet", want: 1.0},
		{name: "trusted, case-insensitive", amount: 500, location: "Vizag", device: "mobile", want: 0.0},
		{name: "high amount only", amount: 10001, location: "Hyderabad", device: "laptop", want: 0.4},
		{name: "threshold is exclusive", amount: 10000, location: "vizag", device: "laptop", want: 0.0},
		{name: "unknown location", amount: 10, location: "Chennai", device: "LAPTOP", want: 0.3},
		{name: "unknown device", amount: 10, location: "HYDERABAD", device: "smart-tv", want: 0.3},
		{name: "location and device", amount: 10, location: "Delhi", device: "kiosk", want: 0.6},
		{name: "amount and location", amount: 20000, location: "Delhi", device: "mobile", want: 0.7},
		{name: "surrounding whitespace is untrusted", amount: 1, location: "  vizag ", device: " Mobile", want: 0.6},
		{name: "padded location", amount: 500, location: " vizag ", device: "mobile", want: 0.3},
		{name: "padded device", amount: 500, location: "vizag", device: "mobile\t", want: 0.3},
		{name: "empty strings are untrusted", amount: 0, location: "", device: "", want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.amount, tt.location, tt.device))
		})
	}
}

func TestScore_BoundedAndDeterministic(t *testing.T) {
	amounts := []float64{0, 0.01, 9999.99, 10000, 10000.01, 1e9, math.MaxFloat64}
	locations := []string{"vizag", "Hyderabad", "Mumbai", "", "VIZAG"}
	devices := []string{"mobile", "Laptop", "tablet", "", "MOBILE"}

	for _, a := range amounts {
		for _, l := range locations {
			for _, d := range devices {
				first := Score(a, l, d)
				assert.GreaterOrEqual(t, first, 0.0)
				assert.LessOrEqual(t, first, 1.0)
				for i := 0; i < 3; i++ {
					assert.Equal(t, first, Score(a, l, d))
				}
			}
		}
	}
}

func TestScore_CapsAtOne(t *testing.T) {
	p := DefaultPolicy
	p.HighAmountWeight = 0.9

	assert.Equal(t, 1.0, p.Score(50000, "Mumbai", "tablet"))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, BandLow, Level(0))
	assert.Equal(t, BandMedium, Level(0.3))
	assert.Equal(t, BandMedium, Level(0.6))
	assert.Equal(t, BandHigh, Level(0.7))
	assert.Equal(t, BandHigh, Level(1.0))
}

func FuzzScore(f *testing.F) {
	f.Add(15000.0, "Mumbai", "tablet")
	f.Add(500.0, "Vizag", "mobile")
	f.Fuzz(func(t *testing.T, amount float64, location, device string) {
		got := Score(amount, location, device)
		if got < 0 || got > 1 {
			t.Fatalf("score %v out of range", got)
		}
		if got != Score(amount, location, device) {
			t.Fatalf("score not deterministic")
		}
	})
}
