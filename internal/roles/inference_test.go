package roles_test

import (
	"context"
	"errors"
	"testing"

	"league-draft-bot/internal/api"
	"league-draft-bot/internal/domain"
	"league-draft-bot/internal/roles"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const puuid = "player-puuid"

type fakeSource struct {
	ids        []string
	idsErr     error
	positions  map[string]string // matchID -> teamPosition
	failDetail map[string]bool
	fetched    int
}

func (f *fakeSource) GetMatchIDs(_ context.Context, _ string, count int) ([]string, error) {
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	if count < len(f.ids) {
		return f.ids[:count], nil
	}
	return f.ids, nil
}

func (f *fakeSource) GetMatch(_ context.Context, matchID string) (*api.Match, error) {
	f.fetched++
	if f.failDetail[matchID] {
		return nil, errors.New("rate limited")
	}
	return &api.Match{Info: api.MatchInfo{Participants: []api.Participant{
		{PUUID: "someone-else", TeamPosition: "TOP"},
		{PUUID: puuid, TeamPosition: f.positions[matchID]},
	}}}, nil
}

func sourceWithPositions(positions ...string) *fakeSource {
	f := &fakeSource{positions: map[string]string{}, failDetail: map[string]bool{}}
	for i, pos := range positions {
		id := string(rune('a' + i))
		f.ids = append(f.ids, id)
		f.positions[id] = pos
	}
	return f
}

func newEngine(src roles.MatchSource) *roles.Engine {
	return roles.NewEngine(src, zerolog.Nop()).WithFetchDelay(0)
}

func TestInferPreferred_MajorityWins(t *testing.T) {
	// TOP:2 JUNGLE:5 MID:1 ADC:1 SUPPORT:1
	src := sourceWithPositions(
		"TOP", "TOP",
		"JUNGLE", "JUNGLE", "JUNGLE", "JUNGLE", "JUNGLE",
		"MIDDLE", "BOTTOM", "UTILITY",
	)

	role, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJungle, role)
	assert.Equal(t, 10, src.fetched)
}

func TestInferPreferred_SingleDetailFailureAbstains(t *testing.T) {
	// SUPPORT:4 JUNGLE:2 MID:2 TOP:1 ADC:1
	src := sourceWithPositions(
		"UTILITY", "UTILITY", "UTILITY", "UTILITY",
		"JUNGLE", "JUNGLE",
		"MIDDLE", "MIDDLE",
		"TOP", "BOTTOM",
	)
	src.failDetail["a"] = true // drops one SUPPORT vote; SUPPORT still leads 3-2

	role, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupport, role)
	assert.Equal(t, 10, src.fetched, "a failed fetch must not stop the sweep")
}

func TestInferPreferred_ListFailurePropagates(t *testing.T) {
	src := &fakeSource{idsErr: domain.ErrUpstream}

	_, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestInferPreferred_TieBreaksByLaneOrder(t *testing.T) {
	src := sourceWithPositions("UTILITY", "JUNGLE")

	role, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJungle, role, "JUNGLE precedes SUPPORT in lane order")
}

func TestInferPreferred_UnassignedPositionsSkipped(t *testing.T) {
	src := sourceWithPositions("", "INVALID", "MIDDLE")

	role, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMid, role)
}

func TestInferPreferred_NoSamplesYieldsFirstLane(t *testing.T) {
	src := &fakeSource{}

	role, err := newEngine(src).InferPreferred(context.Background(), puuid, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTop, role)
}

func TestInferPreferred_RespectsSampleSize(t *testing.T) {
	src := sourceWithPositions("TOP", "TOP", "TOP", "JUNGLE", "JUNGLE")

	_, err := newEngine(src).InferPreferred(context.Background(), puuid, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, src.fetched)
}
