package stats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, whole int
		expected    int
	}{
		{"ZeroWhole", 5, 0, 0},
		{"Half", 1, 2, 50},
		{"RoundsUp", 2, 3, 67},
		{"RoundsDown", 1, 3, 33},
		{"HalfRoundsAway", 1, 8, 13}, // 12.5
		{"Over", 12, 10, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.whole); got != tt.expected {
				t.Errorf("Percent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSharePercent(t *testing.T) {
	if got := SharePercent(decimal.NewFromInt(1), decimal.Zero); got != 0 {
		t.Errorf("Expected 0 for zero whole, got %v", got)
	}
	if got := SharePercent(decimal.NewFromInt(1), decimal.NewFromInt(3)); got != 33.33 {
		t.Errorf("Expected 33.33, got %v", got)
	}
}

func TestCalculateMedianDiscrete(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected float64
	}{
		{"Empty", []int{}, 0},
		{"SingleItem", []int{5}, 5},
		{"OddCount", []int{1, 3, 2, 4, 5}, 3},
		{"EvenCount", []int{1, 2, 3, 4}, 2.5},
		{"Unsorted", []int{10, 2, 8, 4, 6}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateMedianDiscrete(tt.values); got != tt.expected {
				t.Errorf("CalculateMedianDiscrete() = %v, want %v", got, tt.expected)
			}
		})
	}
}
