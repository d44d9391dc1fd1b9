package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"league-draft-bot/internal/config"
	"league-draft-bot/internal/domain"

	"github.com/valyala/fasthttp"
)

// platformRouting maps a regional routing value to its platform host.
var platformRouting = map[string]string{
	"europe":   "euw1",
	"americas": "na1",
	"asia":     "kr",
}

type RiotClient struct {
	apiKey      string
	regionHost  string
	platform    string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo mirrors the X-App-Rate-Limit headers Riot returns on every
// response. Informational only; pacing lives in the role inference loop.
type RateLimitInfo struct {
	AppLimit   string    `json:"app_limit"`
	AppCount   string    `json:"app_count"`
	RetryAfter int       `json:"retry_after"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	platform, ok := platformRouting[cfg.RiotRegion]
	if !ok {
		platform = "euw1"
	}
	return &RiotClient{
		apiKey:     cfg.RiotAPIKey,
		regionHost: fmt.Sprintf("https://%s.api.riotgames.com", cfg.RiotRegion),
		platform:   platform,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RiotClient) platformHost() string {
	return fmt.Sprintf("https://%s.api.riotgames.com", c.platform)
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-App-Rate-Limit")); limit != "" {
		c.rateLimit.AppLimit = limit
	}
	if count := string(resp.Header.Peek("X-App-Rate-Limit-Count")); count != "" {
		c.rateLimit.AppCount = count
	}
	if retry := string(resp.Header.Peek("Retry-After")); retry != "" {
		if val, err := strconv.Atoi(retry); err == nil {
			c.rateLimit.RetryAfter = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetAccountByRiotID resolves a Riot ID to an account. A 404 is reported as
// domain.ErrNotFound; every other failure is an upstream error.
func (c *RiotClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionHost, url.PathEscape(gameName), url.PathEscape(tagLine))
	account, err := doRequest[Account](ctx, c, u)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == fasthttp.StatusNotFound {
			return nil, fmt.Errorf("%w: riot account %s#%s", domain.ErrNotFound, gameName, tagLine)
		}
		return nil, fmt.Errorf("%w: account lookup: %v", domain.ErrUpstream, err)
	}
	return account, nil
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformHost(), puuid)
	summoner, err := doRequest[Summoner](ctx, c, u)
	if err != nil {
		return nil, fmt.Errorf("%w: summoner lookup: %v", domain.ErrUpstream, err)
	}
	return summoner, nil
}

func (c *RiotClient) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformHost(), puuid)
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, fmt.Errorf("%w: league entries: %v", domain.ErrUpstream, err)
	}
	return *entries, nil
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d", c.regionHost, puuid, count)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, fmt.Errorf("%w: match ids: %v", domain.ErrUpstream, err)
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionHost, matchID)
	match, err := doRequest[Match](ctx, c, u)
	if err != nil {
		return nil, fmt.Errorf("%w: match %s: %v", domain.ErrUpstream, matchID, err)
	}
	return match, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error: %d", e.code)
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &statusError{code: resp.StatusCode()}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type Match struct {
	Info MatchInfo `json:"info"`
}

type MatchInfo struct {
	GameMode     string        `json:"gameMode"`
	GameDuration int64         `json:"gameDuration"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	PUUID        string `json:"puuid"`
	TeamPosition string `json:"teamPosition"` // TOP/JUNGLE/MIDDLE/BOTTOM/UTILITY, empty or INVALID when unassigned
}
