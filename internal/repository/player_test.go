package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"league-draft-bot/internal/database"
	"league-draft-bot/internal/domain"
	"league-draft-bot/internal/repository"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zerolog.Nop()))
	return db
}

func testPlayer(discordID string) *domain.Player {
	return &domain.Player{
		DiscordID:    discordID,
		RiotID:       discordID + "#TAG",
		GameName:     discordID,
		TagLine:      "TAG",
		PUUID:        "puuid-" + discordID,
		Tier:         domain.TierGold,
		Rank:         "II",
		LeaguePoints: 42,
		PointValue:   15,
		Role:         domain.RoleMid,
		Wins:         7,
		Losses:       3,
		GamesPlayed:  10,
		Winrate:      70,
		Availability: domain.Available,
	}
}

func TestPlayerRepository_CreateAndGet(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlayer("alice")))

	got, err := repo.GetByDiscordID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice#TAG", got.RiotID)
	assert.Equal(t, domain.TierGold, got.Tier)
	assert.Equal(t, 15, got.PointValue)
	assert.Equal(t, domain.RoleMid, got.Role)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestPlayerRepository_GetMissing(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())

	_, err := repo.GetByDiscordID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlayerRepository_DuplicateCreateConflicts(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlayer("alice")))

	dup := testPlayer("alice")
	dup.RiotID = "other#TAG"
	dup.PUUID = "other-puuid"
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrConflict)

	samePuuid := testPlayer("bob")
	samePuuid.PUUID = "puuid-alice"
	assert.ErrorIs(t, repo.Create(ctx, samePuuid), domain.ErrConflict)
}

func TestPlayerRepository_UpdateRank(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlayer("alice")))

	p := testPlayer("alice")
	p.Tier = domain.TierDiamond
	p.Rank = "IV"
	p.PointValue = 35
	p.Wins = 30
	p.Losses = 20
	p.GamesPlayed = 50
	p.Winrate = 60
	require.NoError(t, repo.UpdateRank(ctx, p))

	got, err := repo.GetByDiscordID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TierDiamond, got.Tier)
	assert.Equal(t, 35, got.PointValue)
	assert.Equal(t, 60, got.Winrate)
	assert.Equal(t, domain.RoleMid, got.Role, "role untouched by rank update")

	assert.ErrorIs(t, repo.UpdateRank(ctx, testPlayer("ghost")), domain.ErrNotFound)
}

func TestPlayerRepository_ListAvailable(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlayer("alice")))
	require.NoError(t, repo.Create(ctx, testPlayer("bob")))
	require.NoError(t, repo.SetAvailability(ctx, "bob", domain.Drafted))

	players, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "alice", players[0].DiscordID)
}

func TestPlayerRepository_Setters(t *testing.T) {
	repo := repository.NewPlayerRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlayer("alice")))

	require.NoError(t, repo.SetCaptain(ctx, "alice", true))
	require.NoError(t, repo.SetKDA(ctx, "alice", 3.4))

	got, err := repo.GetByDiscordID(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.IsCaptain)
	assert.Equal(t, 3.4, got.KDAAverage)

	assert.ErrorIs(t, repo.SetCaptain(ctx, "ghost", true), domain.ErrNotFound)
	assert.ErrorIs(t, repo.SetAvailability(ctx, "ghost", domain.Available), domain.ErrNotFound)
}

func TestSanctionRepository_AppendBumpsCounters(t *testing.T) {
	db := testDB(t)
	players := repository.NewPlayerRepository(db, zerolog.Nop())
	sanctions := repository.NewSanctionRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, players.Create(ctx, testPlayer("alice")))

	require.NoError(t, sanctions.Append(ctx, &domain.Sanction{
		DiscordID: "alice", Type: domain.SanctionWarning, Reason: "flaming", IssuedBy: "admin",
	}))
	require.NoError(t, sanctions.Append(ctx, &domain.Sanction{
		DiscordID: "alice", Type: domain.SanctionSuspension, Reason: "no-show", IssuedBy: "admin",
	}))
	require.NoError(t, sanctions.Append(ctx, &domain.Sanction{
		DiscordID: "alice", Type: domain.SanctionFine, Reason: "late", IssuedBy: "admin",
	}))

	got, err := players.GetByDiscordID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Warnings)
	assert.Equal(t, 1, got.Suspensions, "a FINE bumps no counter")

	history, err := sanctions.ListByDiscordID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, s := range history {
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.IssuedAt.IsZero())
	}
}
