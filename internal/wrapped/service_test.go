package wrapped

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
	"github.com/EmmanuelCobian/league-wrapped/internal/narrative"
	"github.com/EmmanuelCobian/league-wrapped/internal/riot"
	"github.com/EmmanuelCobian/league-wrapped/internal/storage"
)

const puuid = "puuid-1"

type fakeUpstream struct {
	account    *riot.Account
	accountErr error
	ids        []string
	idsErr     error
	matches    map[string]model.MatchRecord
	fetchErr   error

	gotCount int
	fetched  []string
}

func (f *fakeUpstream) GetAccountByRiotID(_ context.Context, gameName, tagLine string) (*riot.Account, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeUpstream) GetMatchIDs(_ context.Context, _ string, count int) ([]string, error) {
	f.gotCount = count
	return f.ids, f.idsErr
}

func (f *fakeUpstream) FetchMatches(_ context.Context, ids []string) ([]model.MatchRecord, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.fetched = append(f.fetched, ids...)
	out := make([]model.MatchRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.matches[id])
	}
	return out, nil
}

type fakeCache struct {
	accounts []storage.Account
	matches  map[string]model.MatchRecord
	readErr  error
	writeErr error
}

func (c *fakeCache) UpsertAccount(a storage.Account) error {
	c.accounts = append(c.accounts, a)
	return c.writeErr
}

func (c *fakeCache) GetMatches(ids []string) (map[string]model.MatchRecord, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	out := make(map[string]model.MatchRecord)
	for _, id := range ids {
		if m, ok := c.matches[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (c *fakeCache) UpsertMatches(_ string, matches []model.MatchRecord) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	if c.matches == nil {
		c.matches = make(map[string]model.MatchRecord)
	}
	for _, m := range matches {
		c.matches[m.MatchID] = m
	}
	return nil
}

func match(id string, champ string, win bool) model.MatchRecord {
	return model.MatchRecord{
		MatchID:             id,
		GameMode:            "CLASSIC",
		QueueID:             420,
		GameStartTimestamp:  time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC).UnixMilli(),
		GameDurationSeconds: 1800,
		Participants: []model.ParticipantRecord{
			{PUUID: puuid, ChampionName: champ, Win: win, Kills: 5, TeamPosition: "MIDDLE"},
			{PUUID: "other", ChampionName: "Zed", Win: !win},
		},
	}
}

func newUpstream(n int) *fakeUpstream {
	f := &fakeUpstream{
		account: &riot.Account{PUUID: puuid, GameName: "Faker", TagLine: "KR1"},
		matches: make(map[string]model.MatchRecord),
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("KR_%d", i)
		f.ids = append(f.ids, id)
		f.matches[id] = match(id, "Ahri", i%2 == 0)
	}
	return f
}

func TestGenerate_FetchesAndCaches(t *testing.T) {
	up := newUpstream(4)
	cache := &fakeCache{}
	svc := NewService(Deps{Upstream: up, Cache: cache, Location: time.UTC})

	res, err := svc.Generate(context.Background(), "  faker ", "kr1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.GameName != "Faker" || res.TagLine != "KR1" || res.PUUID != puuid {
		t.Errorf("identity = %+v", res)
	}
	if res.Fetched != 4 || res.Cached != 0 {
		t.Errorf("fetched/cached = %d/%d, want 4/0", res.Fetched, res.Cached)
	}
	if up.gotCount != DefaultMatchCount {
		t.Errorf("match count = %d, want %d", up.gotCount, DefaultMatchCount)
	}
	if got := res.Wrapped.Overall; got.Wins != 2 || got.Losses != 2 {
		t.Errorf("overall = %+v", got)
	}
	if len(cache.accounts) != 1 || cache.accounts[0].PUUID != puuid {
		t.Errorf("cached accounts = %+v", cache.accounts)
	}
	if len(cache.matches) != 4 {
		t.Errorf("cached matches = %d, want 4", len(cache.matches))
	}

	// A second run only fetches what the cache lacks.
	up.ids = append([]string{"KR_new"}, up.ids...)
	up.matches["KR_new"] = match("KR_new", "Lux", true)
	up.fetched = nil
	res, err = svc.Generate(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("Generate again: %v", err)
	}
	if strings.Join(up.fetched, ",") != "KR_new" {
		t.Errorf("refetched %v, want only KR_new", up.fetched)
	}
	if res.Fetched != 1 || res.Cached != 4 || res.Wrapped.Overall.Games() != 5 {
		t.Errorf("second run = fetched %d cached %d games %d", res.Fetched, res.Cached, res.Wrapped.Overall.Games())
	}
}

func TestGenerate_NoCache(t *testing.T) {
	svc := NewService(Deps{Upstream: newUpstream(3), MatchCount: 3})
	res, err := svc.Generate(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Wrapped.Overall.Games() != 3 {
		t.Errorf("games = %d, want 3", res.Wrapped.Overall.Games())
	}
}

func TestGenerate_CacheFailuresDegrade(t *testing.T) {
	cache := &fakeCache{readErr: errors.New("disk"), writeErr: errors.New("disk")}
	svc := NewService(Deps{Upstream: newUpstream(2), Cache: cache})
	res, err := svc.Generate(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Fetched != 2 || res.Wrapped.Overall.Games() != 2 {
		t.Errorf("result = %+v", res)
	}
}

func TestGenerate_NoMatches(t *testing.T) {
	up := newUpstream(0)
	svc := NewService(Deps{Upstream: up})
	res, err := svc.Generate(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Wrapped.Summary.TopChamp != model.NotAvailable {
		t.Errorf("TopChamp = %q, want N/A", res.Wrapped.Summary.TopChamp)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		gameName   string
		tagLine    string
		upstream   func() Upstream
		wantStatus int
	}{
		{"missing name", " ", "KR1", func() Upstream { return newUpstream(1) }, http.StatusBadRequest},
		{"missing tag", "Faker", "", func() Upstream { return newUpstream(1) }, http.StatusBadRequest},
		{"no api key", "Faker", "KR1", func() Upstream { return nil }, http.StatusInternalServerError},
		{"account not found", "Faker", "KR1", func() Upstream {
			u := newUpstream(1)
			u.accountErr = &riot.StatusError{Op: "get account", StatusCode: http.StatusNotFound}
			return u
		}, http.StatusNotFound},
		{"ids forbidden", "Faker", "KR1", func() Upstream {
			u := newUpstream(1)
			u.idsErr = &riot.StatusError{Op: "get match ids", StatusCode: http.StatusForbidden}
			return u
		}, http.StatusForbidden},
		{"fetch rate limited", "Faker", "KR1", func() Upstream {
			u := newUpstream(1)
			u.fetchErr = &riot.StatusError{Op: "get match", StatusCode: http.StatusTooManyRequests}
			return u
		}, http.StatusTooManyRequests},
		{"fetch timeout", "Faker", "KR1", func() Upstream {
			u := newUpstream(1)
			u.fetchErr = fmt.Errorf("get match: %w", riot.ErrTimeout)
			return u
		}, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(Deps{Upstream: tt.upstream()})
			_, err := svc.Generate(context.Background(), tt.gameName, tt.tagLine)
			if err == nil {
				t.Fatal("expected error")
			}
			if status, _ := UserMessage(err); status != tt.wantStatus {
				t.Errorf("status = %d, want %d (err %v)", status, tt.wantStatus, err)
			}
		})
	}
}

func TestGenerate_NoUpstream(t *testing.T) {
	svc := NewService(Deps{})
	if _, err := svc.Generate(context.Background(), "a", "b"); !errors.Is(err, riot.ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
		prefix string
	}{
		{ErrMissingGameName, 400, "League of Legends in game name"},
		{ErrMissingTagLine, 400, "League of Legends tag line"},
		{riot.ErrNoAPIKey, 500, "Server configuration error"},
		{riot.ErrTimeout, 504, "Request timeout"},
		{&riot.StatusError{StatusCode: 404}, 404, "Summoner not found"},
		{&riot.StatusError{StatusCode: 401}, 403, "API key error"},
		{&riot.StatusError{StatusCode: 403}, 403, "API key error"},
		{&riot.StatusError{StatusCode: 429}, 429, "Rate limit exceeded"},
		{&riot.StatusError{StatusCode: 500}, 500, "Failed to generate Wrapped"},
		{errors.New("boom"), 500, "Failed to generate Wrapped"},
	}
	for _, tt := range tests {
		status, msg := UserMessage(fmt.Errorf("wrapped: %w", tt.err))
		if status != tt.status || !strings.HasPrefix(msg, tt.prefix) {
			t.Errorf("UserMessage(%v) = %d %q, want %d %q...", tt.err, status, msg, tt.status, tt.prefix)
		}
	}
}

type fakeLore struct {
	lore   *narrative.Lore
	err    error
	lookup string
}

func (f *fakeLore) Lookup(_ context.Context, champion string) (*narrative.Lore, error) {
	f.lookup = champion
	return f.lore, f.err
}

type recordingEnhancer struct{ region string }

func (e *recordingEnhancer) Enhance(_ context.Context, text, region string) string {
	e.region = region
	return "enhanced: " + text
}

func TestNarrative(t *testing.T) {
	lore := &fakeLore{lore: &narrative.Lore{Name: "Darius", Blurb: "Hand of Noxus."}}
	enh := &recordingEnhancer{}
	svc := NewService(Deps{Lore: lore, Enhancer: enh})

	scores := model.PlaystyleScores{Aggression: 80, Teamwork: 40, Consistency: 50}
	res, err := svc.Narrative(context.Background(), scores, "Darius")
	if err != nil {
		t.Fatalf("Narrative: %v", err)
	}
	if res.Region != "Noxus" || enh.region != "Noxus" {
		t.Errorf("region = %q / enhancer saw %q, want Noxus", res.Region, enh.region)
	}
	if lore.lookup != "Darius" {
		t.Errorf("lore lookup = %q", lore.lookup)
	}
	if !strings.HasPrefix(res.Output, "enhanced: ") || !strings.Contains(res.Output, "aggressive") {
		t.Errorf("output = %q", res.Output)
	}
	if !strings.Contains(res.Output, "Hand of Noxus.") {
		t.Errorf("output missing blurb: %q", res.Output)
	}
}

func TestNarrative_LoreFailureFallsBack(t *testing.T) {
	svc := NewService(Deps{Lore: &fakeLore{err: errors.New("cdn down")}})
	res, err := svc.Narrative(context.Background(), model.PlaystyleScores{Aggression: 10}, "Ahri")
	if err != nil {
		t.Fatalf("Narrative: %v", err)
	}
	if res.Output == "" || !strings.Contains(res.Output, "passive") {
		t.Errorf("output = %q", res.Output)
	}
}

func TestNarrative_SkipsLoreWithoutChampion(t *testing.T) {
	lore := &fakeLore{}
	svc := NewService(Deps{Lore: lore})
	if _, err := svc.Narrative(context.Background(), model.PlaystyleScores{}, model.NotAvailable); err != nil {
		t.Fatalf("Narrative: %v", err)
	}
	if lore.lookup != "" {
		t.Errorf("looked up %q for a missing champion", lore.lookup)
	}
}

func TestNarrative_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(Deps{})
	if _, err := svc.Narrative(ctx, model.PlaystyleScores{}, "Ahri"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
