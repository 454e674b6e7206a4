package matchmaking

import (
	"testing"

	"github.com/Dosada05/league-platform/models"
	"github.com/stretchr/testify/assert"
)

func TestResolvePairing(t *testing.T) {
	tests := []struct {
		name          string
		a, b          GroupHead
		wantSurviving int
		wantOther     int
		wantStrip     bool
	}{
		{
			name:          "larger first group survives and strips",
			a:             GroupHead{ID: 1, MemberCount: 3},
			b:             GroupHead{ID: 2, MemberCount: 1},
			wantSurviving: 1,
			wantOther:     2,
			wantStrip:     true,
		},
		{
			name:          "larger second group survives and strips",
			a:             GroupHead{ID: 1, MemberCount: 1},
			b:             GroupHead{ID: 2, MemberCount: 3},
			wantSurviving: 2,
			wantOther:     1,
			wantStrip:     true,
		},
		{
			name:          "equal sizes keep both captains, first wins",
			a:             GroupHead{ID: 7, MemberCount: 2},
			b:             GroupHead{ID: 9, MemberCount: 2},
			wantSurviving: 7,
			wantOther:     9,
			wantStrip:     false,
		},
		{
			name:          "two solos",
			a:             GroupHead{ID: 4, MemberCount: 1},
			b:             GroupHead{ID: 5, MemberCount: 1},
			wantSurviving: 4,
			wantOther:     5,
			wantStrip:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePairing(tt.a, tt.b)
			assert.Equal(t, tt.wantSurviving, got.SurvivingID)
			assert.Equal(t, tt.wantOther, got.OtherID)
			assert.Equal(t, tt.wantStrip, got.StripCaptainFromOther)
		})
	}
}

func TestCanAcceptMerge(t *testing.T) {
	tests := []struct {
		name      string
		ownType   models.GroupType
		ownSize   int
		otherSize int
		want      bool
	}{
		{"solo joins solo twin", models.GroupTypeTwin, 1, 1, true},
		{"full twin rejects", models.GroupTypeTwin, 2, 1, false},
		{"twin rejects pair", models.GroupTypeTwin, 1, 2, false},
		{"quad takes three", models.GroupTypeQuad, 1, 3, true},
		{"quad pair takes pair", models.GroupTypeQuad, 2, 2, true},
		{"quad overflow", models.GroupTypeQuad, 2, 3, false},
		{"full quad rejects solo", models.GroupTypeQuad, 4, 1, false},
		{"versus behaves like quad", models.GroupTypeVersus, 3, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAcceptMerge(tt.ownType, tt.ownSize, tt.otherSize))
		})
	}
}
