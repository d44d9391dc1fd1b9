// Package server exposes the draft operations over a small JSON API. It is
// thin plumbing: decode, delegate, map the error kind to a status code.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"league-draft-bot/internal/domain"
	"league-draft-bot/internal/service"

	"github.com/rs/zerolog"
)

type DraftServer struct {
	playerSvc *service.PlayerService
	marketSvc *service.MarketService
	logger    zerolog.Logger
}

func NewDraftServer(playerSvc *service.PlayerService, marketSvc *service.MarketService, logger zerolog.Logger) *DraftServer {
	return &DraftServer{playerSvc: playerSvc, marketSvc: marketSvc, logger: logger}
}

func (s *DraftServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/players", s.handleRegister)
	mux.HandleFunc("POST /api/v1/players/{discordID}/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/v1/players/{discordID}/profile", s.handleProfile)
	mux.HandleFunc("PUT /api/v1/players/{discordID}/availability", s.handleAvailability)
	mux.HandleFunc("PUT /api/v1/players/{discordID}/captain", s.handleCaptain)
	mux.HandleFunc("PUT /api/v1/players/{discordID}/kda", s.handleKDA)
	mux.HandleFunc("POST /api/v1/players/{discordID}/sanctions", s.handleSanction)
	mux.HandleFunc("GET /api/v1/market", s.handleMarket)
	mux.HandleFunc("GET /api/v1/market/roles/{role}", s.handleMarketByRole)
	mux.HandleFunc("GET /api/v1/market/price", s.handleMarketByPrice)
}

type registerRequest struct {
	DiscordID string `json:"discord_id"`
	RiotID    string `json:"riot_id"`
}

func (s *DraftServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	player, err := s.playerSvc.Register(r.Context(), req.DiscordID, req.RiotID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, playerResponse(player))
}

func (s *DraftServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	player, err := s.playerSvc.RefreshRank(r.Context(), r.PathValue("discordID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, playerResponse(player))
}

func (s *DraftServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.playerSvc.Profile(r.Context(), r.PathValue("discordID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *DraftServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	if err := s.playerSvc.SetAvailability(r.Context(), r.PathValue("discordID"), req.Available); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *DraftServer) handleCaptain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Captain bool `json:"captain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	if err := s.playerSvc.SetCaptain(r.Context(), r.PathValue("discordID"), req.Captain); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *DraftServer) handleKDA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KDA float64 `json:"kda"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	if err := s.playerSvc.UpdateKDA(r.Context(), r.PathValue("discordID"), req.KDA); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sanctionRequest struct {
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	IssuedBy string `json:"issued_by"`
}

func (s *DraftServer) handleSanction(w http.ResponseWriter, r *http.Request) {
	var req sanctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	sanction, err := s.playerSvc.AddSanction(r.Context(), r.PathValue("discordID"),
		domain.SanctionType(req.Type), req.Reason, req.IssuedBy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sanction)
}

func (s *DraftServer) handleMarket(w http.ResponseWriter, r *http.Request) {
	market, err := s.marketSvc.BuildMarket(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, market)
}

func (s *DraftServer) handleMarketByRole(w http.ResponseWriter, r *http.Request) {
	entries, err := s.marketSvc.ListByRole(r.Context(), domain.Role(r.PathValue("role")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *DraftServer) handleMarketByPrice(w http.ResponseWriter, r *http.Request) {
	min, err := strconv.Atoi(r.URL.Query().Get("min"))
	if err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	max, err := strconv.Atoi(r.URL.Query().Get("max"))
	if err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	entries, err := s.marketSvc.ListByPriceRange(r.Context(), min, max)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

type playerPayload struct {
	DiscordID    string  `json:"discord_id"`
	RiotID       string  `json:"riot_id"`
	GameName     string  `json:"game_name"`
	Tier         string  `json:"tier"`
	Rank         string  `json:"rank"`
	LeaguePoints int     `json:"league_points"`
	FullRank     string  `json:"full_rank"`
	PointValue   int     `json:"point_value"`
	Role         string  `json:"preferred_role"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	GamesPlayed  int     `json:"games_played"`
	Winrate      int     `json:"winrate"`
	KDAAverage   float64 `json:"kda_average"`
	Availability string  `json:"availability"`
	IsCaptain    bool    `json:"is_captain"`
}

func playerResponse(p *domain.Player) playerPayload {
	return playerPayload{
		DiscordID:    p.DiscordID,
		RiotID:       p.RiotID,
		GameName:     p.GameName,
		Tier:         string(p.Tier),
		Rank:         p.Rank,
		LeaguePoints: p.LeaguePoints,
		FullRank:     p.FullRank(),
		PointValue:   p.PointValue,
		Role:         string(p.Role),
		Wins:         p.Wins,
		Losses:       p.Losses,
		GamesPlayed:  p.GamesPlayed,
		Winrate:      p.Winrate,
		KDAAverage:   p.KDAAverage,
		Availability: string(p.Availability),
		IsCaptain:    p.IsCaptain,
	}
}

func (s *DraftServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *DraftServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
