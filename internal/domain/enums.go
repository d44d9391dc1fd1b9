package domain

// Tier is a ranked-ladder bracket. The zero-ish sentinel is TierUnranked.
type Tier string

const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
	TierUnranked    Tier = "UNRANKED"
)

// Role is a draft position. Lanes() excludes RoleFill, which is only a
// stored fallback and never produced by inference.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
	RoleFill    Role = "FILL"
)

// Lanes returns the five concrete lanes in priority order. The order is
// load-bearing: role inference breaks ties by it and the market keys its
// buckets by it.
func Lanes() []Role {
	return []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}
}

// MarketRoles returns every role a market bucket can be keyed by.
func MarketRoles() []Role {
	return append(Lanes(), RoleFill)
}

// ValidRole reports whether r is one of the six recognized role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport, RoleFill:
		return true
	}
	return false
}

type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
	Drafted     Availability = "DRAFTED"
)

type SanctionType string

const (
	SanctionWarning    SanctionType = "WARNING"
	SanctionSuspension SanctionType = "SUSPENSION"
	SanctionFine       SanctionType = "FINE"
)

// ValidSanctionType reports whether t is a recognized sanction type.
func ValidSanctionType(t SanctionType) bool {
	switch t {
	case SanctionWarning, SanctionSuspension, SanctionFine:
		return true
	}
	return false
}
