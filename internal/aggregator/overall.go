package aggregator

import (
	"sort"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

const topChampLimit = 3

// Overall folds win/loss, kills, assists and champion frequency.
func Overall(games []model.PlayerGame) model.OverallStats {
	var out model.OverallStats
	counts := make(map[string]int)
	var order []string // first-encountered champion order

	for i := range games {
		g := &games[i]
		if g.Win {
			out.Wins++
		} else {
			out.Losses++
		}
		out.Kills += g.Kills
		out.Assists += g.Assists

		if _, seen := counts[g.Champion]; !seen {
			order = append(order, g.Champion)
		}
		counts[g.Champion]++
	}

	out.TopChamps = topChamps(order, counts)
	out.LongestWinStreak, out.LongestLossStreak = streaks(games)
	return out
}

func topChamps(order []string, counts map[string]int) []model.ChampionCount {
	ranked := make([]model.ChampionCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, model.ChampionCount{Name: name, Games: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Games > ranked[j].Games
	})
	if len(ranked) > topChampLimit {
		ranked = ranked[:topChampLimit]
	}
	return ranked
}

// streaks returns the longest run of wins and of losses, with games ordered
// by start time.
func streaks(games []model.PlayerGame) (longestWin, longestLoss int) {
	sorted := make([]model.PlayerGame, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var curWin, curLoss int
	for _, g := range sorted {
		if g.Win {
			curWin++
			curLoss = 0
			longestWin = max(longestWin, curWin)
		} else {
			curLoss++
			curWin = 0
			longestLoss = max(longestLoss, curLoss)
		}
	}
	return longestWin, longestLoss
}

// Mechanical averages objective, tower, CS and skillshot counts per game.
func Mechanical(games []model.PlayerGame) model.MechanicalStats {
	var objectives, towers, cs, hit, dodged int
	for i := range games {
		g := &games[i]
		ch := &g.Challenges

		cs += g.TotalCS()
		towers += g.TurretTakedowns
		hit += ch.SkillshotsHit
		dodged += ch.SkillshotsDodged

		objectives += g.TurretTakedowns +
			ch.TurretPlatesTaken +
			ch.SoloTurretsLateGame +
			ch.TurretsTakenWithHerald +
			ch.DragonTakedowns +
			ch.BaronTakedowns +
			ch.RiftHeraldTakedowns +
			g.InhibitorTakedowns
	}

	n := len(games)
	return model.MechanicalStats{
		AvgObjectivesHelpedWith: roundTo(avg(float64(objectives), n), 2),
		AvgTowersTaken:          roundTo(avg(float64(towers), n), 2),
		AvgCS:                   roundTo(avg(float64(cs), n), 2),
		AvgSkillshotsHit:        roundTo(avg(float64(hit), n), 2),
		AvgSkillshotsDodged:     roundTo(avg(float64(dodged), n), 2),
	}
}
