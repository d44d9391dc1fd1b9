package domain

import (
	"time"
)

type Player struct {
	DiscordID    string
	RiotID       string // "GameName#TAG"
	GameName     string
	TagLine      string
	PUUID        string
	SummonerID   string
	AccountID    string
	Tier         Tier
	Rank         string // division label, e.g. "II"; empty when unranked
	LeaguePoints int
	PointValue   int
	Role         Role
	Wins         int
	Losses       int
	GamesPlayed  int
	Winrate      int // percent, 0-100
	KDAAverage   float64
	Warnings     int
	Suspensions  int
	Availability Availability
	IsCaptain    bool
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullRank renders the display rank, e.g. "GOLD II" or "UNRANKED".
func (p *Player) FullRank() string {
	if p.Rank == "" {
		return string(p.Tier)
	}
	return string(p.Tier) + " " + p.Rank
}

type Sanction struct {
	ID        string       `json:"id"` // nanoid
	DiscordID string       `json:"discord_id"`
	Type      SanctionType `json:"type"`
	Reason    string       `json:"reason"`
	IssuedBy  string       `json:"issued_by"`
	IssuedAt  time.Time    `json:"issued_at"`
}

// ProfileView is the read-only projection served to the chat layer.
type ProfileView struct {
	DiscordID      string       `json:"discord_id"`
	RiotID         string       `json:"riot_id"`
	GameName       string       `json:"game_name"`
	Tier           Tier         `json:"tier"`
	Rank           string       `json:"rank"`
	LeaguePoints   int          `json:"league_points"`
	FullRank       string       `json:"full_rank"`
	PointValue     int          `json:"point_value"`
	Role           Role         `json:"preferred_role"`
	Wins           int          `json:"wins"`
	Losses         int          `json:"losses"`
	GamesPlayed    int          `json:"games_played"`
	Winrate        int          `json:"winrate"`
	KDAAverage     float64      `json:"kda_average"`
	Warnings       int          `json:"warnings"`
	Suspensions    int          `json:"suspensions"`
	TotalSanctions int          `json:"total_sanctions"`
	History        []Sanction   `json:"history"`
	Availability   Availability `json:"availability"`
	IsCaptain      bool         `json:"is_captain"`
}

// MarketEntry is one row of the draft market.
type MarketEntry struct {
	DiscordID  string  `json:"discord_id"`
	GameName   string  `json:"game_name"`
	Tier       Tier    `json:"tier"`
	Rank       string  `json:"rank"`
	FullRank   string  `json:"full_rank"`
	PointValue int     `json:"point_value"`
	Role       Role    `json:"preferred_role"`
	Winrate    int     `json:"winrate"`
	KDAAverage float64 `json:"kda_average"`
}
