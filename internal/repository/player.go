package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"league-draft-bot/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const playerColumns = `discord_id, riot_id, game_name, tag_line, puuid, summoner_id, account_id,
	tier, rank, league_points, point_value, preferred_role,
	wins, losses, games_played, winrate, kda_average,
	warnings, suspensions, availability, is_captain,
	last_synced_at, created_at, updated_at`

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: db, logger: logger}
}

func (r *PlayerRepository) GetByDiscordID(ctx context.Context, discordID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE discord_id = ?`, discordID)

	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: discord id %s", domain.ErrNotFound, discordID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", discordID, err)
	}
	return player, nil
}

// Create inserts a brand-new player. A duplicate discord id, riot id or
// puuid surfaces as domain.ErrConflict; the unique indexes are the real
// guard against concurrent registration.
func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.LastSyncedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (
			discord_id, riot_id, game_name, tag_line, puuid, summoner_id, account_id,
			tier, rank, league_points, point_value, preferred_role,
			wins, losses, games_played, winrate, kda_average,
			warnings, suspensions, availability, is_captain,
			last_synced_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.DiscordID, p.RiotID, p.GameName, p.TagLine, p.PUUID, p.SummonerID, p.AccountID,
		string(p.Tier), p.Rank, p.LeaguePoints, p.PointValue, string(p.Role),
		p.Wins, p.Losses, p.GamesPlayed, p.Winrate, p.KDAAverage,
		p.Warnings, p.Suspensions, string(p.Availability), p.IsCaptain,
		p.LastSyncedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", domain.ErrConflict, p.DiscordID)
		}
		return fmt.Errorf("failed to create player %s: %w", p.DiscordID, err)
	}
	return nil
}

// UpdateRank persists the rank-derived fields recomputed by a refresh.
func (r *PlayerRepository) UpdateRank(ctx context.Context, p *domain.Player) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players SET
			tier = ?, rank = ?, league_points = ?, point_value = ?,
			wins = ?, losses = ?, games_played = ?, winrate = ?,
			updated_at = ?
		WHERE discord_id = ?`,
		string(p.Tier), p.Rank, p.LeaguePoints, p.PointValue,
		p.Wins, p.Losses, p.GamesPlayed, p.Winrate,
		time.Now(), p.DiscordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rank for %s: %w", p.DiscordID, err)
	}
	return r.requireRow(res, p.DiscordID)
}

// ListAvailable returns every AVAILABLE player, in storage order. The
// market layer owns partitioning and sorting.
func (r *PlayerRepository) ListAvailable(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE availability = ?`, string(domain.Available))
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *PlayerRepository) SetAvailability(ctx context.Context, discordID string, availability domain.Availability) error {
	return r.setField(ctx, discordID, "availability", string(availability))
}

func (r *PlayerRepository) SetCaptain(ctx context.Context, discordID string, isCaptain bool) error {
	return r.setField(ctx, discordID, "is_captain", isCaptain)
}

func (r *PlayerRepository) SetKDA(ctx context.Context, discordID string, kda float64) error {
	return r.setField(ctx, discordID, "kda_average", kda)
}

func (r *PlayerRepository) setField(ctx context.Context, discordID, column string, value any) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE players SET %s = ?, updated_at = ? WHERE discord_id = ?`, column),
		value, time.Now(), discordID)
	if err != nil {
		return fmt.Errorf("failed to set %s for %s: %w", column, discordID, err)
	}
	return r.requireRow(res, discordID)
}

func (r *PlayerRepository) SetLastSyncedAt(discordID string, syncedAt time.Time) error {
	r.logger.Debug().
		Str("discord_id", discordID).
		Time("last_synced_at", syncedAt).
		Msg("setting last synced at")

	_, err := r.db.ExecContext(context.Background(),
		`UPDATE players SET last_synced_at = ?, updated_at = ? WHERE discord_id = ?`,
		syncedAt, time.Now(), discordID)
	if err != nil {
		r.logger.Error().Err(err).Str("discord_id", discordID).Msg("failed to set last synced at")
		return err
	}
	return nil
}

func (r *PlayerRepository) requireRow(res sql.Result, discordID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: discord id %s", domain.ErrNotFound, discordID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var p domain.Player
	var tier, role, availability string
	err := row.Scan(
		&p.DiscordID, &p.RiotID, &p.GameName, &p.TagLine, &p.PUUID, &p.SummonerID, &p.AccountID,
		&tier, &p.Rank, &p.LeaguePoints, &p.PointValue, &role,
		&p.Wins, &p.Losses, &p.GamesPlayed, &p.Winrate, &p.KDAAverage,
		&p.Warnings, &p.Suspensions, &availability, &p.IsCaptain,
		&p.LastSyncedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tier = domain.Tier(tier)
	p.Role = domain.Role(role)
	p.Availability = domain.Availability(availability)
	return &p, nil
}
