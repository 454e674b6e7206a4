package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlacements(t *testing.T) {
	tests := []struct {
		spec string
		want []int
	}{
		{"1", []int{1}},
		{"1,2,3", []int{1, 2, 3}},
		{"1-3", []int{1, 2, 3}},
		{"1-2,4", []int{1, 2, 4}},
		{"3,1,2", []int{1, 2, 3}},
		{"1,1,2", []int{1, 2}},
		{" 1 , 2 ", []int{1, 2}},
		{"-1", []int{-1}},
		{"-1,-2", []int{-2, -1}},
		{"10-12", []int{10, 11, 12}},
		{"1-1", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParsePlacements(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlacementsErrors(t *testing.T) {
	specs := []string{
		"",
		"  ",
		"abc",
		"1,",
		",1",
		"0",
		"3-1",
		"-1-3",
		"1--3",
		"1-",
		"1.5",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := ParsePlacements(spec)
			assert.Error(t, err)
		})
	}
}
