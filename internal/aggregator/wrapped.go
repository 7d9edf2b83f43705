package aggregator

import (
	"time"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// GenerateSummary builds the recap for playerID using the local time zone for
// hour-of-day bucketing.
func GenerateSummary(matches []model.MatchRecord, playerID string) model.WrappedResult {
	return GenerateSummaryIn(matches, playerID, time.Local)
}

// GenerateSummaryIn builds the recap, bucketing start hours in loc. Matches
// without the player are ignored; an empty batch yields EmptyResult.
func GenerateSummaryIn(matches []model.MatchRecord, playerID string, loc *time.Location) model.WrappedResult {
	games := Extract(matches, playerID)

	overall := Overall(games)
	var topChamp string
	if len(overall.TopChamps) > 0 {
		topChamp = overall.TopChamps[0].Name
	}

	return model.WrappedResult{
		Overall:        overall,
		Mechanical:     Mechanical(games),
		TimePreference: TimePreference(games, loc),
		RoleStats:      RoleStats(games, topChamp),
		Summary:        Summary(games, overall.TopChamps),
	}
}
