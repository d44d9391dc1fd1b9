package service_test

import (
	"context"
	"testing"

	"league-draft-bot/internal/domain"
	"league-draft-bot/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarketStore struct {
	players []domain.Player
}

func (s *fakeMarketStore) ListAvailable(_ context.Context) ([]domain.Player, error) {
	return s.players, nil
}

func marketPlayer(discordID string, role domain.Role, points int) domain.Player {
	return domain.Player{
		DiscordID:    discordID,
		GameName:     discordID,
		Role:         role,
		PointValue:   points,
		Availability: domain.Available,
	}
}

func TestBuildMarket_PartitionsAndSorts(t *testing.T) {
	store := &fakeMarketStore{players: []domain.Player{
		marketPlayer("top-cheap", domain.RoleTop, 8),
		marketPlayer("top-rich", domain.RoleTop, 50),
		marketPlayer("top-mid", domain.RoleTop, 25),
		marketPlayer("jungle-1", domain.RoleJungle, 15),
		marketPlayer("fill-1", domain.RoleFill, 35),
	}}
	svc := service.NewMarketService(store, zerolog.Nop())

	market, err := svc.BuildMarket(context.Background())
	require.NoError(t, err)

	assert.Len(t, market, 6, "one bucket per role, FILL included")

	total := 0
	for _, entries := range market {
		total += len(entries)
		for i := 1; i < len(entries); i++ {
			assert.GreaterOrEqual(t, entries[i-1].PointValue, entries[i].PointValue,
				"bucket must be sorted by point value descending")
		}
	}
	assert.Equal(t, len(store.players), total, "no player may be dropped")

	top := market[domain.RoleTop]
	require.Len(t, top, 3)
	assert.Equal(t, "top-rich", top[0].DiscordID)
	assert.Equal(t, "top-mid", top[1].DiscordID)
	assert.Equal(t, "top-cheap", top[2].DiscordID)
}

func TestBuildMarket_UnknownRoleFallsBackToFill(t *testing.T) {
	store := &fakeMarketStore{players: []domain.Player{
		marketPlayer("weird", "COACH", 25),
	}}
	svc := service.NewMarketService(store, zerolog.Nop())

	market, err := svc.BuildMarket(context.Background())
	require.NoError(t, err)

	require.Len(t, market[domain.RoleFill], 1)
	assert.Equal(t, "weird", market[domain.RoleFill][0].DiscordID)
}

func TestBuildMarket_EmptyPopulation(t *testing.T) {
	svc := service.NewMarketService(&fakeMarketStore{}, zerolog.Nop())

	market, err := svc.BuildMarket(context.Background())
	require.NoError(t, err)

	assert.Len(t, market, 6)
	for role, entries := range market {
		assert.Empty(t, entries, "bucket %s", role)
	}
}

func TestListByRole(t *testing.T) {
	store := &fakeMarketStore{players: []domain.Player{
		marketPlayer("top-1", domain.RoleTop, 15),
		marketPlayer("top-2", domain.RoleTop, 35),
		marketPlayer("mid-1", domain.RoleMid, 50),
	}}
	svc := service.NewMarketService(store, zerolog.Nop())

	entries, err := svc.ListByRole(context.Background(), domain.RoleTop)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "top-2", entries[0].DiscordID)
	assert.Equal(t, "top-1", entries[1].DiscordID)
	for _, e := range entries {
		assert.Equal(t, domain.RoleTop, e.Role)
	}
}

func TestListByRole_InvalidRole(t *testing.T) {
	svc := service.NewMarketService(&fakeMarketStore{}, zerolog.Nop())

	_, err := svc.ListByRole(context.Background(), "INVALID")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestListByPriceRange(t *testing.T) {
	store := &fakeMarketStore{players: []domain.Player{
		marketPlayer("cheap", domain.RoleTop, 8),
		marketPlayer("mid", domain.RoleMid, 25),
		marketPlayer("rich", domain.RoleADC, 50),
	}}
	svc := service.NewMarketService(store, zerolog.Nop())

	entries, err := svc.ListByPriceRange(context.Background(), 8, 25)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "mid", entries[0].DiscordID, "bounds are inclusive, sorted descending")
	assert.Equal(t, "cheap", entries[1].DiscordID)
}

func TestListByPriceRange_InvertedBoundsAreEmptyNotError(t *testing.T) {
	store := &fakeMarketStore{players: []domain.Player{
		marketPlayer("mid", domain.RoleMid, 15),
	}}
	svc := service.NewMarketService(store, zerolog.Nop())

	entries, err := svc.ListByPriceRange(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
