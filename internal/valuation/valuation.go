// Package valuation derives the draft economy numbers: the point cost of a
// tier and the winrate percentage. Both are pure and total.
package valuation

import (
	"math"

	"league-draft-bot/internal/domain"
)

const (
	// MinPointValue is also the fallback for unknown tiers.
	MinPointValue = 8
	MaxPointValue = 50
)

var pointTable = map[domain.Tier]int{
	domain.TierIron:        8,
	domain.TierBronze:      8,
	domain.TierSilver:      15,
	domain.TierGold:        15,
	domain.TierPlatinum:    25,
	domain.TierEmerald:     25,
	domain.TierDiamond:     35,
	domain.TierMaster:      50,
	domain.TierGrandmaster: 50,
	domain.TierChallenger:  50,
	domain.TierUnranked:    8,
}

// PointValue maps a tier to its draft cost. Anything outside the known
// ladder, including the empty string, prices at the floor.
func PointValue(tier domain.Tier) int {
	if v, ok := pointTable[tier]; ok {
		return v
	}
	return MinPointValue
}

// Winrate returns the rounded win percentage, 0 when no games were played.
func Winrate(wins, losses int) int {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}
