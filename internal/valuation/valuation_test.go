package valuation

import (
	"testing"

	"league-draft-bot/internal/domain"
)

func TestPointValue_Table(t *testing.T) {
	cases := []struct {
		tier domain.Tier
		want int
	}{
		{domain.TierIron, 8},
		{domain.TierBronze, 8},
		{domain.TierSilver, 15},
		{domain.TierGold, 15},
		{domain.TierPlatinum, 25},
		{domain.TierEmerald, 25},
		{domain.TierDiamond, 35},
		{domain.TierMaster, 50},
		{domain.TierGrandmaster, 50},
		{domain.TierChallenger, 50},
		{domain.TierUnranked, 8},
	}
	for _, c := range cases {
		got := PointValue(c.tier)
		if got != c.want {
			t.Errorf("PointValue(%s) = %d, want %d", c.tier, got, c.want)
		}
		if got < MinPointValue || got > MaxPointValue {
			t.Errorf("PointValue(%s) = %d, outside [%d, %d]", c.tier, got, MinPointValue, MaxPointValue)
		}
	}
}

func TestPointValue_UnknownTierFloors(t *testing.T) {
	if got := PointValue(""); got != MinPointValue {
		t.Errorf("PointValue(\"\") = %d, want %d", got, MinPointValue)
	}
	if got := PointValue("WOOD"); got != MinPointValue {
		t.Errorf("PointValue(WOOD) = %d, want %d", got, MinPointValue)
	}
}

func TestWinrate(t *testing.T) {
	cases := []struct {
		wins, losses, want int
	}{
		{0, 0, 0},
		{7, 3, 70},
		{1, 2, 33},
		{2, 1, 67}, // rounds up
		{1, 0, 100},
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := Winrate(c.wins, c.losses); got != c.want {
			t.Errorf("Winrate(%d, %d) = %d, want %d", c.wins, c.losses, got, c.want)
		}
	}
}
