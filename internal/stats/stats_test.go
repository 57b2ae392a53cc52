package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5.0}, 5.0},
		{"multiple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"all_same", []float64{7, 7, 7}, 7.0},
		{"negative", []float64{-2, 0, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Mean(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestMaxMin(t *testing.T) {
	tests := []struct {
		name      string
		input     []float64
		expectMax float64
		expectMin float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3.5}, 3.5, 3.5},
		{"mixed", []float64{0.8, 0.95, 0.7}, 0.95, 0.7},
		{"negative", []float64{-3, -1, -2}, -1, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Max(tt.input); !approxEqual(got, tt.expectMax) {
				t.Errorf("Max(%v) = %f, want %f", tt.input, got, tt.expectMax)
			}
			if got := Min(tt.input); !approxEqual(got, tt.expectMin) {
				t.Errorf("Min(%v) = %f, want %f", tt.input, got, tt.expectMin)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5.0}, 0},
		{"uniform", []float64{3, 3, 3}, 0},
		{"simple", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 4.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variance(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Variance(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		x, y   []float64
		expect float64
	}{
		{"perfect_positive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1.0},
		{"perfect_negative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1.0},
		{"zero_variance_x", []float64{5, 5, 5}, []float64{1, 2, 3}, 0},
		{"zero_variance_y", []float64{1, 2, 3}, []float64{5, 5, 5}, 0},
		{"too_short", []float64{1}, []float64{2}, 0},
		{"length_mismatch", []float64{1, 2, 3}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.x, tt.y)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Pearson(%v, %v) = %f, want %f", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		input  float64
		expect float64
	}{
		{0.12345, 0.123},
		{0.9999, 1.0},
		{-0.4567, -0.457},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		if got := Round3(tt.input); !approxEqual(got, tt.expect) {
			t.Errorf("Round3(%f) = %f, want %f", tt.input, got, tt.expect)
		}
	}
}
