package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredWins(t *testing.T) {
	tests := []struct {
		bestOf int
		want   int
	}{
		{1, 1},
		{3, 2},
		{5, 3},
		{7, 4},
		{9, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiredWins(tt.bestOf), "bestOf=%d", tt.bestOf)
	}
}

func TestValidateSeries(t *testing.T) {
	tests := []struct {
		name    string
		winners []string
		bestOf  int
		want    bool
	}{
		{"empty series is a legal start", nil, 3, true},
		{"partial bo3", []string{"A"}, 3, true},
		{"decided bo3", []string{"A", "B", "A"}, 3, true},
		{"sweep bo3", []string{"A", "A"}, 3, true},
		{"map after decided", []string{"A", "A", "B"}, 3, false},
		{"third side", []string{"A", "B", "C"}, 3, false},
		{"more maps than bestOf", []string{"A", "B", "A", "B"}, 3, false},
		{"zero bestOf", nil, 0, false},
		{"undecided bo9", []string{"A", "A", "A", "A", "B"}, 9, true},
		{"sweep bo9", []string{"A", "A", "A", "A", "A"}, 9, true},
		{"full bo9", []string{"A", "B", "A", "B", "A", "B", "A", "B", "A"}, 9, true},
		{"bo9 decided then extra map", []string{"A", "A", "A", "A", "A", "B"}, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSeries(tt.winners, tt.bestOf))
		})
	}
}

func TestSeriesDecided(t *testing.T) {
	tests := []struct {
		name    string
		winners []string
		bestOf  int
		want    bool
	}{
		{"empty", nil, 3, false},
		{"one win of two", []string{"A"}, 3, false},
		{"split", []string{"A", "B"}, 3, false},
		{"decided bo3", []string{"A", "B", "A"}, 3, true},
		{"sweep bo3", []string{"B", "B"}, 3, true},
		{"four of five in bo9", []string{"A", "A", "A", "A"}, 9, false},
		{"five of five in bo9", []string{"A", "A", "A", "A", "A"}, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeriesDecided(tt.winners, tt.bestOf))
		})
	}
}

func TestValidateSeriesWorksWithSides(t *testing.T) {
	type side string
	winners := []side{"ALPHA", "BRAVO", "ALPHA"}
	assert.True(t, ValidateSeries(winners, 3))
	assert.True(t, SeriesDecided(winners, 3))
}
