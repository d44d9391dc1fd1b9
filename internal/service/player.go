package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"league-draft-bot/internal/api"
	"league-draft-bot/internal/constants"
	"league-draft-bot/internal/domain"
	"league-draft-bot/internal/valuation"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const soloQueue = "RANKED_SOLO_5x5"

// PlayerStore is the slice of the player repository the service needs.
type PlayerStore interface {
	GetByDiscordID(ctx context.Context, discordID string) (*domain.Player, error)
	Create(ctx context.Context, p *domain.Player) error
	UpdateRank(ctx context.Context, p *domain.Player) error
	SetAvailability(ctx context.Context, discordID string, availability domain.Availability) error
	SetCaptain(ctx context.Context, discordID string, isCaptain bool) error
	SetKDA(ctx context.Context, discordID string, kda float64) error
	SetLastSyncedAt(discordID string, syncedAt time.Time) error
}

type SanctionStore interface {
	Append(ctx context.Context, s *domain.Sanction) error
	ListByDiscordID(ctx context.Context, discordID string) ([]domain.Sanction, error)
}

// AccountProvider resolves Riot identities and ranked standing.
type AccountProvider interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*api.Account, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (*api.Summoner, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]api.LeagueEntry, error)
}

type RoleInferrer interface {
	InferPreferred(ctx context.Context, puuid string, sample int) (domain.Role, error)
}

type PlayerService struct {
	riot      AccountProvider
	roles     RoleInferrer
	players   PlayerStore
	sanctions SanctionStore
	logger    zerolog.Logger
}

func NewPlayerService(riot AccountProvider, roles RoleInferrer, players PlayerStore, sanctions SanctionStore, logger zerolog.Logger) *PlayerService {
	return &PlayerService{riot: riot, roles: roles, players: players, sanctions: sanctions, logger: logger}
}

// Register links a Discord identity to a Riot account and persists the new
// player in a single insert. Nothing is written until every lookup and
// derivation has succeeded.
func (s *PlayerService) Register(ctx context.Context, discordID, riotID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("discord_id", discordID).Str("riot_id", riotID).Msg("registering player")

	if _, err := s.players.GetByDiscordID(ctx, discordID); err == nil {
		return nil, fmt.Errorf("%w: discord id %s", domain.ErrConflict, discordID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	gameName, tagLine, err := splitRiotID(riotID)
	if err != nil {
		return nil, err
	}

	account, err := s.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		s.logger.Error().Err(err).Str("riot_id", riotID).Msg("failed to resolve riot account")
		return nil, err
	}

	summoner, err := s.riot.GetSummonerByPUUID(ctx, account.PUUID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.PUUID).Msg("failed to resolve summoner")
		return nil, err
	}

	ranked, err := s.fetchSoloQueue(ctx, account.PUUID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.InferPreferred(ctx, account.PUUID, constants.RoleSampleSize)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.PUUID).Msg("failed to infer preferred role")
		return nil, err
	}

	player := &domain.Player{
		DiscordID:    discordID,
		RiotID:       gameName + "#" + tagLine,
		GameName:     gameName,
		TagLine:      tagLine,
		PUUID:        account.PUUID,
		SummonerID:   summoner.ID,
		AccountID:    summoner.AccountID,
		Role:         role,
		Availability: domain.Available,
	}
	applyRanked(player, ranked)

	if err := s.players.Create(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("discord_id", discordID).Msg("failed to create player")
		return nil, err
	}

	s.logger.Info().
		Str("discord_id", discordID).
		Str("tier", string(player.Tier)).
		Int("point_value", player.PointValue).
		Str("role", string(player.Role)).
		Msg("player registered")
	return player, nil
}

// RefreshRank re-resolves ranked standing from the stored PUUID and
// recomputes every rank-derived field. The preferred role is never touched.
func (s *PlayerService) RefreshRank(ctx context.Context, discordID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.players.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("discord_id", discordID).Str("puuid", player.PUUID).Msg("refreshing rank")

	if _, err := s.riot.GetSummonerByPUUID(ctx, player.PUUID); err != nil {
		s.logger.Error().Err(err).Str("puuid", player.PUUID).Msg("failed to resolve summoner")
		return nil, err
	}

	ranked, err := s.fetchSoloQueue(ctx, player.PUUID)
	if err != nil {
		return nil, err
	}

	applyRanked(player, ranked)

	if err := s.players.UpdateRank(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("discord_id", discordID).Msg("failed to persist refreshed rank")
		return nil, err
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		time.Sleep(constants.LastSyncDelay)
		return s.players.SetLastSyncedAt(discordID, time.Now())
	})
	go func() {
		if err := g.Wait(); err != nil {
			s.logger.Warn().Err(err).Str("discord_id", discordID).Msg("failed to stamp last sync")
		}
	}()

	s.logger.Info().
		Str("discord_id", discordID).
		Str("tier", string(player.Tier)).
		Int("point_value", player.PointValue).
		Msg("rank refreshed")
	return player, nil
}

// Profile assembles the read-only player card, sanction history included.
func (s *PlayerService) Profile(ctx context.Context, discordID string) (*domain.ProfileView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.players.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	history, err := s.sanctions.ListByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	return &domain.ProfileView{
		DiscordID:      player.DiscordID,
		RiotID:         player.RiotID,
		GameName:       player.GameName,
		Tier:           player.Tier,
		Rank:           player.Rank,
		LeaguePoints:   player.LeaguePoints,
		FullRank:       player.FullRank(),
		PointValue:     player.PointValue,
		Role:           player.Role,
		Wins:           player.Wins,
		Losses:         player.Losses,
		GamesPlayed:    player.GamesPlayed,
		Winrate:        player.Winrate,
		KDAAverage:     player.KDAAverage,
		Warnings:       player.Warnings,
		Suspensions:    player.Suspensions,
		TotalSanctions: player.Warnings + player.Suspensions,
		History:        history,
		Availability:   player.Availability,
		IsCaptain:      player.IsCaptain,
	}, nil
}

// SetAvailability moves a player onto or off the market.
func (s *PlayerService) SetAvailability(ctx context.Context, discordID string, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	availability := domain.Unavailable
	if available {
		availability = domain.Available
	}

	if err := s.players.SetAvailability(ctx, discordID, availability); err != nil {
		return err
	}
	s.logger.Info().Str("discord_id", discordID).Str("availability", string(availability)).Msg("availability updated")
	return nil
}

func (s *PlayerService) IsAvailable(ctx context.Context, discordID string) (bool, error) {
	player, err := s.players.GetByDiscordID(ctx, discordID)
	if err != nil {
		return false, err
	}
	return player.Availability == domain.Available, nil
}

func (s *PlayerService) SetCaptain(ctx context.Context, discordID string, isCaptain bool) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.players.SetCaptain(ctx, discordID, isCaptain); err != nil {
		return err
	}
	s.logger.Info().Str("discord_id", discordID).Bool("is_captain", isCaptain).Msg("captain flag updated")
	return nil
}

func (s *PlayerService) IsCaptain(ctx context.Context, discordID string) (bool, error) {
	player, err := s.players.GetByDiscordID(ctx, discordID)
	if err != nil {
		return false, err
	}
	return player.IsCaptain, nil
}

// AddSanction appends a judiciary record. WARNING and SUSPENSION bump their
// counters; a FINE only goes on record.
func (s *PlayerService) AddSanction(ctx context.Context, discordID string, sanctionType domain.SanctionType, reason, issuedBy string) (*domain.Sanction, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !domain.ValidSanctionType(sanctionType) {
		return nil, fmt.Errorf("%w: unknown sanction type %q", domain.ErrInvalidArgument, sanctionType)
	}

	if _, err := s.players.GetByDiscordID(ctx, discordID); err != nil {
		return nil, err
	}

	sanction := &domain.Sanction{
		DiscordID: discordID,
		Type:      sanctionType,
		Reason:    reason,
		IssuedBy:  issuedBy,
	}
	if err := s.sanctions.Append(ctx, sanction); err != nil {
		s.logger.Error().Err(err).Str("discord_id", discordID).Msg("failed to append sanction")
		return nil, err
	}

	s.logger.Info().
		Str("discord_id", discordID).
		Str("type", string(sanctionType)).
		Str("issued_by", issuedBy).
		Msg("sanction issued")
	return sanction, nil
}

// UpdateKDA stores the externally computed KDA average.
func (s *PlayerService) UpdateKDA(ctx context.Context, discordID string, kda float64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.players.SetKDA(ctx, discordID, kda)
}

func (s *PlayerService) fetchSoloQueue(ctx context.Context, puuid string) (api.LeagueEntry, error) {
	entries, err := s.riot.GetLeagueEntries(ctx, puuid)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch ranked entries")
		return api.LeagueEntry{}, err
	}
	for _, entry := range entries {
		if entry.QueueType == soloQueue {
			return entry, nil
		}
	}
	// No solo-queue entry means the player is simply unranked.
	return api.LeagueEntry{Tier: string(domain.TierUnranked)}, nil
}

// applyRanked recomputes every rank-derived field from a league entry.
// pointValue is always a function of tier, winrate of wins and losses.
func applyRanked(p *domain.Player, entry api.LeagueEntry) {
	tier := domain.Tier(entry.Tier)
	if tier == "" {
		tier = domain.TierUnranked
	}
	p.Tier = tier
	p.Rank = entry.Rank
	p.LeaguePoints = entry.LeaguePoints
	p.PointValue = valuation.PointValue(tier)
	p.Wins = entry.Wins
	p.Losses = entry.Losses
	p.GamesPlayed = entry.Wins + entry.Losses
	p.Winrate = valuation.Winrate(entry.Wins, entry.Losses)
}

func splitRiotID(riotID string) (string, string, error) {
	gameName, tagLine, found := strings.Cut(riotID, "#")
	if !found || gameName == "" || tagLine == "" {
		return "", "", fmt.Errorf("%w: riot id must look like GameName#TAG, got %q", domain.ErrInvalidArgument, riotID)
	}
	return gameName, tagLine, nil
}
