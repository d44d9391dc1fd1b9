package service

import (
	"context"
	"fmt"
	"sort"

	"league-draft-bot/internal/constants"
	"league-draft-bot/internal/domain"

	"github.com/rs/zerolog"
)

// MarketStore is the read side of the player repository the market needs.
type MarketStore interface {
	ListAvailable(ctx context.Context) ([]domain.Player, error)
}

type MarketService struct {
	players MarketStore
	logger  zerolog.Logger
}

func NewMarketService(players MarketStore, logger zerolog.Logger) *MarketService {
	return &MarketService{players: players, logger: logger}
}

// BuildMarket partitions every AVAILABLE player into the six role buckets
// and sorts each bucket by point value, most expensive first. A stored role
// outside the five lanes lands in FILL; no player is ever dropped.
func (s *MarketService) BuildMarket(ctx context.Context) (map[domain.Role][]domain.MarketEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	market := make(map[domain.Role][]domain.MarketEntry, len(domain.MarketRoles()))
	for _, role := range domain.MarketRoles() {
		market[role] = []domain.MarketEntry{}
	}

	for i := range players {
		bucket := players[i].Role
		if _, ok := market[bucket]; !ok {
			bucket = domain.RoleFill
		}
		market[bucket] = append(market[bucket], toMarketEntry(&players[i]))
	}

	for role := range market {
		sortByPointValue(market[role])
	}

	s.logger.Debug().Int("players", len(players)).Msg("market built")
	return market, nil
}

// ListByRole returns the AVAILABLE players on one role, priciest first.
func (s *MarketService) ListByRole(ctx context.Context, role domain.Role) ([]domain.MarketEntry, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, role)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	entries := []domain.MarketEntry{}
	for i := range players {
		if players[i].Role != role {
			continue
		}
		entries = append(entries, toMarketEntry(&players[i]))
	}
	sortByPointValue(entries)
	return entries, nil
}

// ListByPriceRange returns the AVAILABLE players priced inside [min, max],
// priciest first. An inverted range is not an error, just empty.
func (s *MarketService) ListByPriceRange(ctx context.Context, min, max int) ([]domain.MarketEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	entries := []domain.MarketEntry{}
	for i := range players {
		if players[i].PointValue < min || players[i].PointValue > max {
			continue
		}
		entries = append(entries, toMarketEntry(&players[i]))
	}
	sortByPointValue(entries)
	return entries, nil
}

func sortByPointValue(entries []domain.MarketEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PointValue > entries[j].PointValue
	})
}

func toMarketEntry(p *domain.Player) domain.MarketEntry {
	return domain.MarketEntry{
		DiscordID:  p.DiscordID,
		GameName:   p.GameName,
		Tier:       p.Tier,
		Rank:       p.Rank,
		FullRank:   p.FullRank(),
		PointValue: p.PointValue,
		Role:       p.Role,
		Winrate:    p.Winrate,
		KDAAverage: p.KDAAverage,
	}
}
