package aggregator

import (
	"math"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// RoleStats folds solo kills, challenge KDA and lane outcomes, then scores
// the playstyle. topChamp comes from Overall and is "" with no games.
func RoleStats(games []model.PlayerGame, topChamp string) model.RoleStats {
	out := model.RoleStats{TopChamp: topChamp}

	var kda float64
	for i := range games {
		g := &games[i]
		out.SoloKills += g.Challenges.SoloKills
		kda += g.Challenges.KDA

		if IsTraditionalLaning(g) {
			out.LaningGames++
			if JudgeLane(g).Won {
				out.LaneWins++
			}
		}
	}
	out.AvgKDA = roundTo(avg(kda, len(games)), 2)

	s := Scores(games)
	out.Scores = model.PlaystyleScores{
		Aggression:  roundTo(s.Aggression, 2),
		Teamwork:    roundTo(s.Teamwork, 2),
		Consistency: roundTo(s.Consistency, 2),
	}
	if len(games) > 0 {
		out.Archetype = ClassifyArchetype(out.Scores)
		out.Region = ClassifyRegion(out.Scores)
	}
	return out
}

// ---- Summary ----

const (
	invalidPosition = "Invalid"
	bestRoleGames   = 3
)

var roleDisplayNames = map[string]string{
	"TOP":     "Top",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "Mid",
	"BOTTOM":  "ADC",
	"UTILITY": "Support",
}

// RoleDisplayName maps a position key to its display name. Unknown keys pass
// through unchanged.
func RoleDisplayName(position string) string {
	if name, ok := roleDisplayNames[position]; ok {
		return name
	}
	return position
}

type roleTally struct {
	games, wins int
}

// Summary totals play time, distinct champions and per-role win rates.
// Roles are visited in the order they first appear in games, so on an exact
// win-rate tie the earlier role keeps best-role.
func Summary(games []model.PlayerGame, top []model.ChampionCount) model.SummaryStats {
	var seconds float64
	champs := make(map[string]struct{})
	tallies := make(map[string]*roleTally)
	var order []string

	for i := range games {
		g := &games[i]
		seconds += float64(g.PlaySeconds())
		champs[g.Champion] = struct{}{}

		if g.Position == invalidPosition {
			continue
		}
		t, ok := tallies[g.Position]
		if !ok {
			t = &roleTally{}
			tallies[g.Position] = t
			order = append(order, g.Position)
		}
		t.games++
		if g.Win {
			t.wins++
		}
	}

	out := model.SummaryStats{
		TopChamp:      model.NotAvailable,
		TopChamps:     top,
		MinutesPlayed: int(math.Floor(seconds / 60)),
		BestRole:      model.NotAvailable,
		ChampsPlayed:  len(champs),
		Roles:         make([]model.RoleBreakdown, 0, len(order)),
	}
	if out.TopChamps == nil {
		out.TopChamps = []model.ChampionCount{}
	}
	if len(top) > 0 && top[0].Name != "" {
		out.TopChamp = top[0].Name
	}

	var bestRate float64
	for _, pos := range order {
		t := tallies[pos]
		rate := winRate(t.wins, t.games)
		out.Roles = append(out.Roles, model.RoleBreakdown{
			Role:    RoleDisplayName(pos),
			Games:   t.games,
			Wins:    t.wins,
			Winrate: roundTo(rate, 1),
		})
		if t.games >= bestRoleGames && rate > bestRate {
			bestRate = rate
			out.BestRole = RoleDisplayName(pos)
		}
	}
	out.BestRoleWinrate = roundTo(bestRate, 1)
	return out
}
