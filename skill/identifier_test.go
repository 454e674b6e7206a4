package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamKey(t *testing.T) {
	assert.Equal(t, "1-2-3-4", TeamKey([]int{1, 2, 3, 4}))
	assert.Equal(t, "1-2-3-4", TeamKey([]int{4, 1, 3, 2}), "key must not depend on roster order")
	assert.Equal(t, "7-19-23-101", TeamKey([]int{101, 23, 7, 19}))
}

func TestTeamKeyDoesNotMutateInput(t *testing.T) {
	ids := []int{4, 1, 3, 2}
	TeamKey(ids)
	assert.Equal(t, []int{4, 1, 3, 2}, ids)
}

func TestTeamKeyPanicsOnWrongRosterSize(t *testing.T) {
	assert.Panics(t, func() { TeamKey([]int{1, 2, 3}) })
	assert.Panics(t, func() { TeamKey([]int{1, 2, 3, 4, 5}) })
	assert.Panics(t, func() { TeamKey(nil) })
}
