package brackets

import (
	"testing"

	"github.com/Dosada05/league-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(errs []ProgressionError) []ProgressionErrorKind {
	result := make([]ProgressionErrorKind, len(errs))
	for i, e := range errs {
		result[i] = e.Kind
	}
	return result
}

func findError(t *testing.T, errs []ProgressionError, kind ProgressionErrorKind) ProgressionError {
	t.Helper()
	for _, e := range errs {
		if e.Kind == kind {
			return e
		}
	}
	t.Fatalf("expected error %s, got %v", kind, kinds(errs))
	return ProgressionError{}
}

func TestValidateProgressionSuccess(t *testing.T) {
	specs := []BracketSpec{
		{
			Name:     "Groups",
			Type:     models.BracketRoundRobin,
			Settings: BracketSettings{TeamsPerGroup: 4, GroupCount: 2},
		},
		{
			Name:    "Playoffs",
			Type:    models.BracketSingleElimination,
			Sources: []SourceSpec{{BracketIdx: 0, Placements: "1-2"}},
		},
	}

	resolved, errs := ValidateProgression(specs)
	require.Empty(t, errs)
	require.Len(t, resolved, 2)

	assert.Empty(t, resolved[0].Sources)
	require.Len(t, resolved[1].Sources, 1)
	assert.Equal(t, 0, resolved[1].Sources[0].BracketIdx)
	assert.Equal(t, []int{1, 2}, resolved[1].Sources[0].Placements)
}

func TestValidateProgressionSingleBracket(t *testing.T) {
	resolved, errs := ValidateProgression([]BracketSpec{
		{Name: "Main", Type: models.BracketDoubleElimination},
	})
	require.Empty(t, errs)
	require.Len(t, resolved, 1)
}

func TestValidateProgressionEmptyName(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "", Type: models.BracketSingleElimination},
	})
	e := findError(t, errs, ErrEmptyBracketName)
	assert.Equal(t, []int{0}, e.BracketIdxs)
}

func TestValidateProgressionDuplicateName(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Main", Type: models.BracketRoundRobin},
		{Name: "Main", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1"}}},
	})
	e := findError(t, errs, ErrDuplicateBracketName)
	assert.Equal(t, []int{0, 1}, e.BracketIdxs)
}

func TestValidateProgressionParseError(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
		{Name: "Playoffs", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "abc"}}},
	})
	e := findError(t, errs, ErrPlacementsParse)
	assert.Equal(t, []int{1}, e.BracketIdxs)
}

func TestValidateProgressionSourceIndexOutOfRange(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Playoffs", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 5, Placements: "1"}}},
	})
	findError(t, errs, ErrPlacementsParse)
}

func TestValidateProgressionSamePlacementTwoTargets(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
		{Name: "Upper", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1"}}},
		{Name: "Lower", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1"}}},
	})
	e := findError(t, errs, ErrSamePlacementTwoTargets)
	assert.Equal(t, []int{0, 1, 2}, e.BracketIdxs)
}

func TestValidateProgressionSamePlacementTwiceFromOneTarget(t *testing.T) {
	// the same placement claimed twice by a single destination
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
		{Name: "Playoffs", Type: models.BracketSingleElimination, Sources: []SourceSpec{
			{BracketIdx: 0, Placements: "1"},
			{BracketIdx: 0, Placements: "1"},
		}},
	})
	e := findError(t, errs, ErrSamePlacementTwoTargets)
	assert.Equal(t, []int{0, 1}, e.BracketIdxs)
}

func TestValidateProgressionGapInPlacements(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
		{Name: "Playoffs", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1,3"}}},
	})
	e := findError(t, errs, ErrGapInPlacements)
	assert.Equal(t, []int{0}, e.BracketIdxs)
}

func TestValidateProgressionTooManyPlacements(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin, Settings: BracketSettings{TeamsPerGroup: 2}},
		{Name: "Playoffs", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1-3"}}},
	})
	e := findError(t, errs, ErrTooManyPlacements)
	assert.Equal(t, []int{0}, e.BracketIdxs)
}

func TestValidateProgressionNegativeFromNonElimination(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
		{Name: "Losers", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "-1"}}},
	})
	e := findError(t, errs, ErrNegativeProgression)
	assert.Equal(t, []int{0}, e.BracketIdxs)
}

func TestValidateProgressionNegativeFromElimination(t *testing.T) {
	specs := []BracketSpec{
		{Name: "Upper", Type: models.BracketSingleElimination},
		{Name: "Redemption", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "-1"}}},
	}
	resolved, errs := ValidateProgression(specs)
	require.Empty(t, errs)
	require.Len(t, resolved, 2)
}

func TestValidateProgressionCycle(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "A", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 1, Placements: "1"}}},
		{Name: "B", Type: models.BracketSingleElimination, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1"}}},
	})
	e := findError(t, errs, ErrCircularProgression)
	assert.Equal(t, []int{0, 1}, e.BracketIdxs)
}

func TestValidateProgressionNotResolvingWinner(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "Groups", Type: models.BracketRoundRobin},
	})
	e := findError(t, errs, ErrNotResolvingWinner)
	assert.Equal(t, []int{0}, e.BracketIdxs)
}

func TestValidateProgressionCollectsAllErrors(t *testing.T) {
	_, errs := ValidateProgression([]BracketSpec{
		{Name: "", Type: models.BracketRoundRobin},
		{Name: "Playoffs", Type: models.BracketSwiss, Sources: []SourceSpec{{BracketIdx: 0, Placements: "1,3"}}},
	})

	got := kinds(errs)
	assert.Contains(t, got, ErrEmptyBracketName)
	assert.Contains(t, got, ErrGapInPlacements)
	assert.Contains(t, got, ErrNotResolvingWinner)
}
