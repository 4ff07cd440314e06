package config

import "github.com/coreyshuman/Constellation/internal/constellation"

func builtinPresets() map[string]map[string]any {
	return map[string]map[string]any{
		"default": {
			constellation.KeyPointDensity:         30,
			constellation.KeyMaxLineLength:        60,
			constellation.KeyRepelDistanceRange:   []float64{0, 20},
			constellation.KeyRepelForceRange:      []float64{0.1, 0},
			constellation.KeyAttractDistanceRange: []float64{15, 30},
			constellation.KeyAttractForceRange:    []float64{0, 0.001},
			constellation.KeyBackgroundColor:      "black",
			constellation.KeyPointColor:           "teal",
			constellation.KeyLineColor:            "lightblue",
		},
		"web": {
			constellation.KeyPointDensity:         15,
			constellation.KeyMaxLineLength:        120,
			constellation.KeyRepelDistanceRange:   []float64{0, 40},
			constellation.KeyRepelForceRange:      []float64{0.05, 0},
			constellation.KeyAttractDistanceRange: []float64{40, 110},
			constellation.KeyAttractForceRange:    []float64{0, 0.002},
			constellation.KeyBackgroundColor:      "#0b0c1a",
			constellation.KeyPointColor:           "white",
			constellation.KeyLineColor:            "#6fa8dc",
		},
		"swarm": {
			constellation.KeyPointDensity:         60,
			constellation.KeyMaxLineLength:        40,
			constellation.KeyRepelDistanceRange:   []float64{0, 10},
			constellation.KeyRepelForceRange:      []float64{0.2, 0},
			constellation.KeyAttractDistanceRange: []float64{10, 40},
			constellation.KeyAttractForceRange:    []float64{0.003, 0},
			constellation.KeyBackgroundColor:      "black",
			constellation.KeyPointColor:           "gold",
			constellation.KeyLineColor:            "orange",
		},
		"clumps": {
			constellation.KeyPointDensity:         40,
			constellation.KeyMaxLineLength:        30,
			constellation.KeyRepelDistanceRange:   []float64{0, 6},
			constellation.KeyRepelForceRange:      []float64{0.08, 0},
			constellation.KeyAttractDistanceRange: []float64{6, 80},
			constellation.KeyAttractForceRange:    []float64{0.004, 0.0005},
			constellation.KeyBackgroundColor:      "#100010",
			constellation.KeyPointColor:           "pink",
			constellation.KeyLineColor:            "purple",
		},
	}
}
