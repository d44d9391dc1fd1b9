package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	// RoleSampleSize is how many recent matches feed the role vote.
	RoleSampleSize = 10
	// MatchFetchDelay paces per-match detail fetches against the Riot
	// rate limit. Cooperative backoff, not a correctness requirement.
	MatchFetchDelay = 100 * time.Millisecond
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
	LastSyncDelay   = 10 * time.Second
)
