// Package roles infers a player's preferred lane from recent match history.
package roles

import (
	"context"
	"fmt"
	"time"

	"league-draft-bot/internal/api"
	"league-draft-bot/internal/constants"
	"league-draft-bot/internal/domain"

	"github.com/rs/zerolog"
)

// MatchSource is the slice of the Riot client the engine needs.
type MatchSource interface {
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*api.Match, error)
}

// positionToRole maps Riot's teamPosition values to draft lanes.
var positionToRole = map[string]domain.Role{
	"TOP":     domain.RoleTop,
	"JUNGLE":  domain.RoleJungle,
	"MIDDLE":  domain.RoleMid,
	"BOTTOM":  domain.RoleADC,
	"UTILITY": domain.RoleSupport,
}

type Engine struct {
	source     MatchSource
	logger     zerolog.Logger
	fetchDelay time.Duration
}

func NewEngine(source MatchSource, logger zerolog.Logger) *Engine {
	return &Engine{source: source, logger: logger, fetchDelay: constants.MatchFetchDelay}
}

// WithFetchDelay overrides the pacing between per-match detail fetches.
func (e *Engine) WithFetchDelay(d time.Duration) *Engine {
	e.fetchDelay = d
	return e
}

// InferPreferred samples up to sample recent matches and majority-votes the
// lane. A failed match-id listing aborts the whole inference; a failed
// detail fetch only abstains. Ties resolve to the first lane in priority
// order, so zero valid samples yields TOP. FILL is never produced here.
func (e *Engine) InferPreferred(ctx context.Context, puuid string, sample int) (domain.Role, error) {
	matchIDs, err := e.source.GetMatchIDs(ctx, puuid, sample)
	if err != nil {
		return "", fmt.Errorf("failed to list matches for %s: %w", puuid, err)
	}

	votes := make(map[domain.Role]int, len(domain.Lanes()))
	for _, lane := range domain.Lanes() {
		votes[lane] = 0
	}

	for i, matchID := range matchIDs {
		if i > 0 && e.fetchDelay > 0 {
			time.Sleep(e.fetchDelay)
		}

		match, err := e.source.GetMatch(ctx, matchID)
		if err != nil {
			e.logger.Warn().Err(err).Str("match_id", matchID).Str("puuid", puuid).
				Msg("match detail fetch failed, skipping vote")
			continue
		}

		role, ok := e.voteFor(match, puuid)
		if !ok {
			continue
		}
		votes[role]++
	}

	best := e.tally(votes)
	e.logger.Debug().Str("puuid", puuid).Int("samples", len(matchIDs)).
		Str("role", string(best)).Msg("preferred role inferred")
	return best, nil
}

func (e *Engine) voteFor(match *api.Match, puuid string) (domain.Role, bool) {
	for _, p := range match.Info.Participants {
		if p.PUUID != puuid {
			continue
		}
		role, ok := positionToRole[p.TeamPosition]
		return role, ok
	}
	return "", false
}

// tally picks the lane with the most votes, first-listed lane winning ties.
func (e *Engine) tally(votes map[domain.Role]int) domain.Role {
	lanes := domain.Lanes()
	best := lanes[0]
	for _, lane := range lanes[1:] {
		if votes[lane] > votes[best] {
			best = lane
		}
	}
	return best
}
