// Package matchmaking contains the pure rules for merging looking groups.
package matchmaking

import "github.com/Dosada05/league-platform/models"

// GroupHead is the slice of group state the pairing rules need.
type GroupHead struct {
	ID          int
	MemberCount int
}

// PairingResolution describes the outcome of merging two groups.
type PairingResolution struct {
	SurvivingID int
	OtherID     int
	// StripCaptainFromOther is set when the other group is absorbed into a
	// strictly larger one: the survivor already has a captain, so the
	// absorbed group's captain loses the role. Equal-sized merges keep
	// both captains.
	StripCaptainFromOther bool
}

// ResolvePairing decides which of two groups survives a merge. The group
// with more members survives; on a tie the first argument wins, so callers
// must pass groups in a stable order (e.g. by creation time).
func ResolvePairing(a, b GroupHead) PairingResolution {
	if b.MemberCount > a.MemberCount {
		return PairingResolution{
			SurvivingID:           b.ID,
			OtherID:               a.ID,
			StripCaptainFromOther: true,
		}
	}

	return PairingResolution{
		SurvivingID:           a.ID,
		OtherID:               b.ID,
		StripCaptainFromOther: a.MemberCount != b.MemberCount,
	}
}

// CanAcceptMerge reports whether a group of otherSize members fits into a
// group of ownSize members without exceeding the roster size of ownType.
func CanAcceptMerge(ownType models.GroupType, ownSize, otherSize int) bool {
	return otherSize <= ownType.MaxSize()-ownSize
}
