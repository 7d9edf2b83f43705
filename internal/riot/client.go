// Package riot is a small client for the Riot account-v1 and match-v5 APIs.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// DefaultBaseURL is the regional routing host for account and match data.
const DefaultBaseURL = "https://americas.api.riotgames.com"

const (
	defaultTimeout    = 15 * time.Second
	defaultBatchSize  = 15
	defaultBatchDelay = 1100 * time.Millisecond
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lolwrapped_riot_requests_total",
	Help: "Riot API requests by endpoint and outcome",
}, []string{"endpoint", "outcome"})

// Config configures a Client. Zero values take the defaults.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration // per request
	BatchSize  int           // concurrent requests per FetchMatches batch
	BatchDelay time.Duration // pause between batches; negative disables
	Logger     *zap.Logger
}

// Client talks to the Riot API with a single key.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// NewClient returns a client, or ErrNoAPIKey when cfg has no key.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	} else if cfg.BatchDelay == 0 {
		cfg.BatchDelay = defaultBatchDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  cfg.Logger,
	}, nil
}

// Account is the account-v1 response.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// matchResponse is the match-v5 detail envelope.
type matchResponse struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		GameMode           string                    `json:"gameMode"`
		QueueID            int                       `json:"queueId"`
		GameStartTimestamp int64                     `json:"gameStartTimestamp"`
		GameDuration       int                       `json:"gameDuration"`
		Participants       []model.ParticipantRecord `json:"participants"`
	} `json:"info"`
}

func (r *matchResponse) record() model.MatchRecord {
	return model.MatchRecord{
		MatchID:             r.Metadata.MatchID,
		GameMode:            r.Info.GameMode,
		QueueID:             r.Info.QueueID,
		GameStartTimestamp:  r.Info.GameStartTimestamp,
		GameDurationSeconds: r.Info.GameDuration,
		Participants:        r.Info.Participants,
	}
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Riot-Token", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyTransport(endpoint, err)
		requestsTotal.WithLabelValues(endpoint, outcome(err, 0)).Inc()
		return err
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, outcome(nil, resp.StatusCode)).Inc()
	c.log.Debug("riot request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: endpoint, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return classifyTransport(endpoint+": decode", err)
	}
	return nil
}

func outcome(err error, status int) string {
	switch {
	case IsTimeout(err):
		return "timeout"
	case err != nil:
		return "error"
	default:
		return strconv.Itoa(status)
	}
}

// GetAccountByRiotID resolves gameName#tagLine to an account.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))
	var a Account
	if err := c.get(ctx, "get account", path, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetMatchIDs returns up to count of the player's most recent match ids,
// newest first.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d", url.PathEscape(puuid), count)
	var ids []string
	if err := c.get(ctx, "get match ids", path, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMatch returns one match's detail.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*model.MatchRecord, error) {
	var r matchResponse
	if err := c.get(ctx, "get match", "/lol/match/v5/matches/"+url.PathEscape(matchID), &r); err != nil {
		return nil, err
	}
	rec := r.record()
	if rec.MatchID == "" {
		rec.MatchID = matchID
	}
	return &rec, nil
}
