package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
	"github.com/EmmanuelCobian/league-wrapped/internal/riot"
	"github.com/EmmanuelCobian/league-wrapped/internal/wrapped"
)

type MockService struct {
	GenerateFunc  func(ctx context.Context, gameName, tagLine string) (*wrapped.Result, error)
	NarrativeFunc func(ctx context.Context, scores model.PlaystyleScores, topChamp string) (*wrapped.NarrativeResult, error)
}

func (m *MockService) Generate(ctx context.Context, gameName, tagLine string) (*wrapped.Result, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, gameName, tagLine)
	}
	return &wrapped.Result{GameName: gameName, TagLine: tagLine, Wrapped: model.EmptyResult()}, nil
}

func (m *MockService) Narrative(ctx context.Context, scores model.PlaystyleScores, topChamp string) (*wrapped.NarrativeResult, error) {
	if m.NarrativeFunc != nil {
		return m.NarrativeFunc(ctx, scores, topChamp)
	}
	return &wrapped.NarrativeResult{Output: "text", Region: "Ionia"}, nil
}

func newTestRouter(svc Service) http.Handler {
	return NewRouter(Config{Service: svc, Logger: zap.NewNop()})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestGenerateWrapped_Success(t *testing.T) {
	svc := &MockService{
		GenerateFunc: func(_ context.Context, gameName, tagLine string) (*wrapped.Result, error) {
			res := model.EmptyResult()
			res.Overall.Wins = 3
			res.Summary.TopChamp = "Ahri"
			return &wrapped.Result{GameName: "Faker", TagLine: "KR1", Wrapped: res}, nil
		},
	}
	w, out := do(t, newTestRouter(svc), "POST", "/api/wrapped", `{"gameName":"faker","tagLine":"kr1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if out["success"] != true {
		t.Errorf("success = %v", out["success"])
	}
	data, ok := out["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %T", out["data"])
	}
	if data["gameName"] != "Faker" {
		t.Errorf("gameName = %v", data["gameName"])
	}
	for _, key := range []string{"overall", "mechanical", "timePref", "roleStats", "summary"} {
		if _, ok := data[key]; !ok {
			t.Errorf("data missing %q section", key)
		}
	}
	overall := data["overall"].(map[string]any)
	if overall["wins"] != float64(3) {
		t.Errorf("overall.wins = %v", overall["wins"])
	}
}

func TestGenerateWrapped_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad json", `{`, nil, http.StatusBadRequest, "Invalid request body"},
		{"missing name", `{"tagLine":"KR1"}`, wrapped.ErrMissingGameName, http.StatusBadRequest, "League of Legends in game name required"},
		{"missing tag", `{"gameName":"x"}`, wrapped.ErrMissingTagLine, http.StatusBadRequest, "League of Legends tag line required"},
		{"not found", `{"gameName":"x","tagLine":"y"}`, &riot.StatusError{StatusCode: 404}, http.StatusNotFound, "Summoner not found. Check your spelling and tag line!"},
		{"forbidden", `{"gameName":"x","tagLine":"y"}`, &riot.StatusError{StatusCode: 403}, http.StatusForbidden, "API key error. The server's Riot API key may be invalid or expired."},
		{"rate limited", `{"gameName":"x","tagLine":"y"}`, &riot.StatusError{StatusCode: 429}, http.StatusTooManyRequests, "Rate limit exceeded. Please wait a moment and try again."},
		{"timeout", `{"gameName":"x","tagLine":"y"}`, fmt.Errorf("get match: %w", riot.ErrTimeout), http.StatusGatewayTimeout, "Request timeout. Riot API is taking too long to respond. Please try again."},
		{"no key", `{"gameName":"x","tagLine":"y"}`, riot.ErrNoAPIKey, http.StatusInternalServerError, "Server configuration error. API key not set."},
		{"other", `{"gameName":"x","tagLine":"y"}`, errors.New("boom"), http.StatusInternalServerError, "Failed to generate Wrapped. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{
				GenerateFunc: func(context.Context, string, string) (*wrapped.Result, error) {
					return nil, tt.err
				},
			}
			w, out := do(t, newTestRouter(svc), "POST", "/api/wrapped", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if out["success"] != false || out["error"] != tt.wantMsg {
				t.Errorf("body = %v, want error %q", out, tt.wantMsg)
			}
		})
	}
}

func TestGenerateNarrative(t *testing.T) {
	var gotScores model.PlaystyleScores
	var gotChamp string
	svc := &MockService{
		NarrativeFunc: func(_ context.Context, scores model.PlaystyleScores, topChamp string) (*wrapped.NarrativeResult, error) {
			gotScores, gotChamp = scores, topChamp
			return &wrapped.NarrativeResult{Output: "From the iron fortresses...", Region: "Noxus"}, nil
		},
	}
	body := `{"stats":{"scores":{"aggression":80,"teamwork":40,"consistency":55},"topChamp":"Darius"},"topChamp":"Garen"}`
	w, out := do(t, newTestRouter(svc), "POST", "/api/narrative", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if gotScores.Aggression != 80 || gotScores.Consistency != 55 {
		t.Errorf("scores = %+v", gotScores)
	}
	if gotChamp != "Darius" {
		t.Errorf("topChamp = %q, want stats.topChamp", gotChamp)
	}
	if out["success"] != true || out["region"] != "Noxus" || out["output"] != "From the iron fortresses..." {
		t.Errorf("body = %v", out)
	}
}

func TestGenerateNarrative_TopLevelChampFallback(t *testing.T) {
	var gotChamp string
	svc := &MockService{
		NarrativeFunc: func(_ context.Context, _ model.PlaystyleScores, topChamp string) (*wrapped.NarrativeResult, error) {
			gotChamp = topChamp
			return &wrapped.NarrativeResult{}, nil
		},
	}
	do(t, newTestRouter(svc), "POST", "/api/narrative", `{"stats":{"scores":{}},"topChamp":"Garen"}`)
	if gotChamp != "Garen" {
		t.Errorf("topChamp = %q, want Garen", gotChamp)
	}
}

func TestGenerateNarrative_Failure(t *testing.T) {
	svc := &MockService{
		NarrativeFunc: func(context.Context, model.PlaystyleScores, string) (*wrapped.NarrativeResult, error) {
			return nil, context.Canceled
		},
	}
	w, out := do(t, newTestRouter(svc), "POST", "/api/narrative", `{"stats":{}}`)
	if w.Code != http.StatusInternalServerError || out["error"] != "Failed to enhance text" {
		t.Errorf("status %d body %v", w.Code, out)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(&MockService{})

	w, out := do(t, h, "GET", "/health", "")
	if w.Code != http.StatusOK || out["status"] != "ok" {
		t.Errorf("health = %d %v", w.Code, out)
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "lolwrapped_http_request_duration_seconds") {
		t.Error("metrics output missing request histogram")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/wrapped", nil)
	w := httptest.NewRecorder()
	newTestRouter(&MockService{}).ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(Config{Service: &MockService{}, AllowedOrigins: []string{"https://wrapped.example"}})
	req := httptest.NewRequest("OPTIONS", "/api/wrapped", nil)
	req.Header.Set("Origin", "https://wrapped.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://wrapped.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
