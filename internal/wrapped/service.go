// Package wrapped ties the Riot client, the match cache, and the engine
// together into the two user-facing operations: a recap and a narrative.
package wrapped

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/EmmanuelCobian/league-wrapped/internal/aggregator"
	"github.com/EmmanuelCobian/league-wrapped/internal/model"
	"github.com/EmmanuelCobian/league-wrapped/internal/narrative"
	"github.com/EmmanuelCobian/league-wrapped/internal/riot"
	"github.com/EmmanuelCobian/league-wrapped/internal/storage"
)

// DefaultMatchCount is how many recent matches a recap covers.
const DefaultMatchCount = 20

var (
	// ErrMissingGameName and ErrMissingTagLine reject an incomplete Riot ID.
	ErrMissingGameName = errors.New("game name required")
	ErrMissingTagLine  = errors.New("tag line required")
)

var (
	matchLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lolwrapped_match_cache_lookups_total",
		Help: "Match lookups by cache result",
	}, []string{"result"})

	generateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lolwrapped_generate_duration_seconds",
		Help:    "Time to build one recap, including upstream fetches",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
	})
)

// Upstream is the subset of the Riot client the service needs.
type Upstream interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	FetchMatches(ctx context.Context, ids []string) ([]model.MatchRecord, error)
}

// Cache stores raw upstream records between runs.
type Cache interface {
	UpsertAccount(a storage.Account) error
	GetMatches(ids []string) (map[string]model.MatchRecord, error)
	UpsertMatches(puuid string, matches []model.MatchRecord) error
}

// Deps configures a Service. Upstream may be nil when no Riot key is
// configured; Generate then fails with riot.ErrNoAPIKey. Cache may be nil.
type Deps struct {
	Upstream   Upstream
	Cache      Cache
	Lore       narrative.LoreSource
	Enhancer   narrative.Enhancer
	Logger     *zap.Logger
	MatchCount int
	Location   *time.Location
}

// Service builds recaps and narratives.
type Service struct {
	upstream   Upstream
	cache      Cache
	lore       narrative.LoreSource
	enhancer   narrative.Enhancer
	log        *zap.Logger
	matchCount int
	loc        *time.Location
}

// NewService fills unset dependencies with inert defaults.
func NewService(d Deps) *Service {
	s := &Service{
		upstream:   d.Upstream,
		cache:      d.Cache,
		lore:       d.Lore,
		enhancer:   d.Enhancer,
		log:        d.Logger,
		matchCount: d.MatchCount,
		loc:        d.Location,
	}
	if s.enhancer == nil {
		s.enhancer = narrative.Passthrough{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.matchCount <= 0 {
		s.matchCount = DefaultMatchCount
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// Result is one generated recap.
type Result struct {
	GameName string
	TagLine  string
	PUUID    string
	Wrapped  model.WrappedResult

	Fetched int // matches pulled from the Riot API
	Cached  int // matches served from the cache
}

// Generate resolves gameName#tagLine and builds the recap over the
// player's most recent matches.
func (s *Service) Generate(ctx context.Context, gameName, tagLine string) (*Result, error) {
	start := time.Now()
	defer func() { generateDuration.Observe(time.Since(start).Seconds()) }()

	res, matches, err := s.collect(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	res.Wrapped = aggregator.GenerateSummaryIn(matches, res.PUUID, s.loc)
	s.log.Info("recap generated",
		zap.String("player", res.GameName+"#"+res.TagLine),
		zap.Int("games", res.Wrapped.Overall.Games()),
		zap.Int("fetched", res.Fetched),
		zap.Int("cached", res.Cached),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// Sync refreshes the cache for gameName#tagLine without computing a recap.
func (s *Service) Sync(ctx context.Context, gameName, tagLine string) (*Result, error) {
	res, _, err := s.collect(ctx, gameName, tagLine)
	return res, err
}

func (s *Service) collect(ctx context.Context, gameName, tagLine string) (*Result, []model.MatchRecord, error) {
	gameName, tagLine = strings.TrimSpace(gameName), strings.TrimSpace(tagLine)
	if gameName == "" {
		return nil, nil, ErrMissingGameName
	}
	if tagLine == "" {
		return nil, nil, ErrMissingTagLine
	}
	if s.upstream == nil {
		return nil, nil, riot.ErrNoAPIKey
	}

	acct, err := s.upstream.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s#%s: %w", gameName, tagLine, err)
	}
	res := &Result{GameName: acct.GameName, TagLine: acct.TagLine, PUUID: acct.PUUID}
	if res.GameName == "" {
		res.GameName = gameName
	}
	if res.TagLine == "" {
		res.TagLine = tagLine
	}
	if s.cache != nil {
		if err := s.cache.UpsertAccount(storage.Account{PUUID: acct.PUUID, GameName: res.GameName, TagLine: res.TagLine}); err != nil {
			s.log.Warn("cache account failed", zap.String("puuid", acct.PUUID), zap.Error(err))
		}
	}

	ids, err := s.upstream.GetMatchIDs(ctx, acct.PUUID, s.matchCount)
	if err != nil {
		return nil, nil, fmt.Errorf("list matches: %w", err)
	}

	cached := s.cachedMatches(ids)
	var missing []string
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}
	matchLookups.WithLabelValues("hit").Add(float64(len(ids) - len(missing)))
	matchLookups.WithLabelValues("miss").Add(float64(len(missing)))

	fetched, err := s.upstream.FetchMatches(ctx, missing)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch matches: %w", err)
	}
	if s.cache != nil && len(fetched) > 0 {
		if err := s.cache.UpsertMatches(acct.PUUID, fetched); err != nil {
			s.log.Warn("cache matches failed", zap.Int("count", len(fetched)), zap.Error(err))
		}
	}
	for _, m := range fetched {
		cached[m.MatchID] = m
	}

	// Keep the upstream newest-first order.
	matches := make([]model.MatchRecord, 0, len(ids))
	for _, id := range ids {
		if m, ok := cached[id]; ok {
			matches = append(matches, m)
		}
	}
	res.Fetched = len(fetched)
	res.Cached = len(ids) - len(missing)
	return res, matches, nil
}

// cachedMatches never fails: a broken cache degrades to a full fetch.
func (s *Service) cachedMatches(ids []string) map[string]model.MatchRecord {
	if s.cache == nil || len(ids) == 0 {
		return make(map[string]model.MatchRecord, len(ids))
	}
	got, err := s.cache.GetMatches(ids)
	if err != nil {
		s.log.Warn("cache read failed", zap.Error(err))
		return make(map[string]model.MatchRecord, len(ids))
	}
	return got
}

// NarrativeResult is a region-flavored player description.
type NarrativeResult struct {
	Output string
	Region string
}

// Narrative classifies the scores into a region and playstyle, looks up
// lore for topChamp, and returns the composed (and, when configured,
// model-enhanced) description. Lore failures fall back to the template.
func (s *Service) Narrative(ctx context.Context, scores model.PlaystyleScores, topChamp string) (*NarrativeResult, error) {
	region := aggregator.ClassifyRegion(scores)
	playstyle := aggregator.DescribeAggression(scores.Aggression)

	var lore *narrative.Lore
	if s.lore != nil && topChamp != "" && topChamp != model.NotAvailable {
		l, err := s.lore.Lookup(ctx, topChamp)
		if err != nil {
			s.log.Warn("champion lore lookup failed", zap.String("champion", topChamp), zap.Error(err))
		} else {
			lore = l
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := narrative.Compose(playstyle, region, lore, topChamp)
	return &NarrativeResult{
		Output: s.enhancer.Enhance(ctx, text, region),
		Region: region,
	}, nil
}
