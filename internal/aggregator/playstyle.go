package aggregator

import (
	"math"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

const scoreCap = 100.0

// Scores computes aggression, teamwork and consistency in [0, 100]. An empty
// batch scores zero on all three.
func Scores(games []model.PlayerGame) model.PlaystyleScores {
	if len(games) == 0 {
		return model.PlaystyleScores{}
	}
	return model.PlaystyleScores{
		Aggression:  aggression(games),
		Teamwork:    teamwork(games),
		Consistency: consistency(games),
	}
}

func aggression(games []model.PlayerGame) float64 {
	var total float64
	for i := range games {
		g := &games[i]
		if g.Kills > 10 {
			total += 10
		}
		if g.Deaths > 7 {
			total += 15
		}
		if g.Challenges.SoloKills > 2 {
			total += 20
		}
	}
	return clampScore(avg(total, len(games)))
}

func teamwork(games []model.PlayerGame) float64 {
	var total float64
	for i := range games {
		g := &games[i]
		if g.Challenges.KillParticipation > 0.65 {
			total += 20
		}
		if float64(g.Assists)/float64(max(g.Kills, 1)) > 1.5 {
			total += 20
		}
		if g.Challenges.VisionScorePerMinute > 1.5 {
			total += 20
		}
	}
	return clampScore(avg(total, len(games)))
}

// consistency is 100 minus 20x the population standard deviation of KDA.
func consistency(games []model.PlayerGame) float64 {
	kdas := make([]float64, len(games))
	var sum float64
	for i := range games {
		kdas[i] = games[i].KDARatio()
		sum += kdas[i]
	}
	mean := sum / float64(len(kdas))

	var sq float64
	for _, k := range kdas {
		sq += (k - mean) * (k - mean)
	}
	stdDev := math.Sqrt(sq / float64(len(kdas)))
	return clampScore(scoreCap - stdDev*20)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(scoreCap, v)
}

// ---- Classifiers ----

// Region labels reachable from ClassifyRegion. The narrative flavor table
// knows more regions than these four.
const (
	RegionNoxus    = "Noxus"
	RegionPiltover = "Piltover"
	RegionZaun     = "Zaun"
	RegionIonia    = "Ionia"
)

// ClassifyRegion maps scores to a Runeterra region, first rule wins.
func ClassifyRegion(s model.PlaystyleScores) string {
	switch {
	case s.Aggression > 50 && s.Teamwork > 30 && s.Consistency > 40:
		return RegionNoxus
	case s.Aggression < 50 && s.Teamwork > 40 && s.Consistency >= 50:
		return RegionPiltover
	case s.Aggression > 50 && s.Teamwork < 30 && s.Consistency > 40:
		return RegionZaun
	default:
		return RegionIonia
	}
}

var (
	ArchetypeLimitTester = model.Archetype{
		Name:        "The Limit Tester",
		Description: "You live for the outplay. High risk, high reward is your motto.",
	}
	ArchetypeUnsungHero = model.Archetype{
		Name:        "The Unsung Hero",
		Description: "You'd rather set up your team than take the glory. True support energy.",
	}
	ArchetypeCoinflip = model.Archetype{
		Name:        "The Coinflip Player",
		Description: "Will you hard carry or hard int? Even you don't know until the game loads.",
	}
	ArchetypeBalanced = model.Archetype{
		Name:        "The Balanced Player",
		Description: "You do a bit of everything. Jack of all trades, master of... well, we'll see.",
	}
)

// ClassifyArchetype maps scores to a playstyle archetype, first rule wins.
func ClassifyArchetype(s model.PlaystyleScores) model.Archetype {
	switch {
	case s.Aggression > 75 && s.Consistency < 40:
		return ArchetypeLimitTester
	case s.Teamwork > 80 && s.Aggression < 50:
		return ArchetypeUnsungHero
	case math.Abs(s.Consistency-50) < 15 && s.Aggression > 60:
		return ArchetypeCoinflip
	default:
		return ArchetypeBalanced
	}
}

// DescribeAggression returns the one-word playstyle used in narratives.
func DescribeAggression(aggression float64) string {
	switch {
	case aggression < 25:
		return "passive"
	case aggression < 50:
		return "smart"
	default:
		return "aggressive"
	}
}
