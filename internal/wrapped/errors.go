package wrapped

import (
	"errors"
	"net/http"

	"github.com/EmmanuelCobian/league-wrapped/internal/riot"
)

// UserMessage maps a Generate failure to an HTTP status and a message safe
// to show the player.
func UserMessage(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingGameName):
		return http.StatusBadRequest, "League of Legends in game name required"
	case errors.Is(err, ErrMissingTagLine):
		return http.StatusBadRequest, "League of Legends tag line required"
	case errors.Is(err, riot.ErrNoAPIKey):
		return http.StatusInternalServerError, "Server configuration error. API key not set."
	case riot.IsTimeout(err):
		return http.StatusGatewayTimeout, "Request timeout. Riot API is taking too long to respond. Please try again."
	case riot.IsNotFound(err):
		return http.StatusNotFound, "Summoner not found. Check your spelling and tag line!"
	case riot.IsForbidden(err):
		return http.StatusForbidden, "API key error. The server's Riot API key may be invalid or expired."
	case riot.IsRateLimited(err):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please wait a moment and try again."
	default:
		return http.StatusInternalServerError, "Failed to generate Wrapped. Please try again."
	}
}
