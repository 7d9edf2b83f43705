// Package server exposes the recap and narrative operations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
	"github.com/EmmanuelCobian/league-wrapped/internal/wrapped"
)

// MaxBodySize limits the size of request bodies to 64KB
const MaxBodySize = 64 << 10

// Service is what the handlers need from wrapped.Service.
type Service interface {
	Generate(ctx context.Context, gameName, tagLine string) (*wrapped.Result, error)
	Narrative(ctx context.Context, scores model.PlaystyleScores, topChamp string) (*wrapped.NarrativeResult, error)
}

type Config struct {
	Service        Service
	Logger         *zap.Logger
	AllowedOrigins []string
}

type Handler struct {
	svc    Service
	logger *zap.SugaredLogger
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: cfg.Service, logger: logger.Sugar()}
}

type wrappedRequest struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// wrappedData flattens the recap sections next to the player's name.
type wrappedData struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	model.WrappedResult
}

// GenerateWrapped handles POST /api/wrapped.
func (h *Handler) GenerateWrapped(w http.ResponseWriter, r *http.Request) {
	var req wrappedRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Generate(r.Context(), req.GameName, req.TagLine)
	if err != nil {
		status, msg := wrapped.UserMessage(err)
		if status >= http.StatusInternalServerError {
			h.logger.Errorw("generate wrapped failed", "gameName", req.GameName, "tagLine", req.TagLine, "error", err)
		} else {
			h.logger.Infow("generate wrapped rejected", "status", status, "error", err)
		}
		h.errorResponse(w, status, msg)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data": wrappedData{
			GameName:      res.GameName,
			TagLine:       res.TagLine,
			WrappedResult: res.Wrapped,
		},
	})
}

type narrativeRequest struct {
	Stats struct {
		Scores   model.PlaystyleScores `json:"scores"`
		TopChamp string                `json:"topChamp"`
	} `json:"stats"`
	TopChamp string `json:"topChamp"`
}

// GenerateNarrative handles POST /api/narrative.
func (h *Handler) GenerateNarrative(w http.ResponseWriter, r *http.Request) {
	var req narrativeRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	champ := req.Stats.TopChamp
	if champ == "" {
		champ = req.TopChamp
	}

	res, err := h.svc.Narrative(r.Context(), req.Stats.Scores, champ)
	if err != nil {
		h.logger.Errorw("generate narrative failed", "topChamp", champ, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to enhance text")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"output":  res.Output,
		"region":  res.Region,
	})
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnw("encode response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}
