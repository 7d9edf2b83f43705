package aggregator

import (
	"sort"
	"time"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

type timeBlock struct {
	name       string
	start, end int // local hours; start > end wraps past midnight
}

// Checked in order; the first block containing the hour takes the game.
var timeBlocks = []timeBlock{
	{"Early Morning", 5, 9},
	{"Morning", 9, 12},
	{"Afternoon", 12, 17},
	{"Evening", 17, 22},
	{"Late Night", 22, 24},
	{"Night Owl", 0, 5},
}

func (b timeBlock) contains(hour int) bool {
	if b.start < b.end {
		return hour >= b.start && hour < b.end
	}
	return hour >= b.start || hour < b.end
}

const (
	activeBlockGames = 3 // games for a block to count as active
	allDayBlocks     = 4 // active blocks needed for playsAllDay
	bestBlockGames   = 5 // games for a block to compete on win rate
	bestHourGames    = 3
)

// TimePreference buckets games by local start hour in loc.
func TimePreference(games []model.PlayerGame, loc *time.Location) model.TimePreference {
	if loc == nil {
		loc = time.Local
	}

	blockGames := make([]int, len(timeBlocks))
	blockWins := make([]int, len(timeBlocks))
	for i := range games {
		hour := games[i].Start.In(loc).Hour()
		for b, tb := range timeBlocks {
			if tb.contains(hour) {
				blockGames[b]++
				if games[i].Win {
					blockWins[b]++
				}
				break
			}
		}
	}

	breakdown := make([]model.TimeBlockStats, 0, len(timeBlocks))
	for b, tb := range timeBlocks {
		if blockGames[b] == 0 {
			continue
		}
		breakdown = append(breakdown, model.TimeBlockStats{
			Name:    tb.name,
			Games:   blockGames[b],
			Wins:    blockWins[b],
			Winrate: roundTo(winRate(blockWins[b], blockGames[b]), 1),
		})
	}

	out := model.TimePreference{
		TimeSlot:       model.NotAvailable,
		BlockBreakdown: breakdown,
		Hourly:         hourlyPerformance(games, loc),
	}

	switch {
	case len(breakdown) == 0:
		return out
	case len(breakdown) == 1:
		out.TimeSlot = breakdown[0].Name
		out.Winrate = breakdown[0].Winrate
		return out
	}

	active := 0
	for _, b := range breakdown {
		if b.Games >= activeBlockGames {
			active++
		}
	}

	if active < allDayBlocks {
		dom := mostGames(breakdown)
		out.TimeSlot = dom.Name
		out.Winrate = dom.Winrate
		return out
	}

	out.PlaysAllDay = true
	best, ok := bestByWinrate(breakdown)
	if !ok {
		best = mostGames(breakdown)
	}
	out.TimeSlot = best.Name
	out.Winrate = best.Winrate

	sorted := make([]model.TimeBlockStats, len(breakdown))
	copy(sorted, breakdown)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Winrate > sorted[j].Winrate
	})
	out.BlockBreakdown = sorted
	return out
}

// mostGames returns the block with the most games; ties keep block order.
func mostGames(blocks []model.TimeBlockStats) model.TimeBlockStats {
	best := blocks[0]
	for _, b := range blocks[1:] {
		if b.Games > best.Games {
			best = b
		}
	}
	return best
}

// bestByWinrate picks the highest win rate among blocks with enough games,
// preferring more games on a tie.
func bestByWinrate(blocks []model.TimeBlockStats) (model.TimeBlockStats, bool) {
	var best model.TimeBlockStats
	found := false
	for _, b := range blocks {
		if b.Games < bestBlockGames {
			continue
		}
		if !found || b.Winrate > best.Winrate || (b.Winrate == best.Winrate && b.Games > best.Games) {
			best = b
			found = true
		}
	}
	return best, found
}

// hourlyPerformance finds the single start hour with the best win rate
// (minimum games apply) and labels it. Ties go to the earlier hour.
func hourlyPerformance(games []model.PlayerGame, loc *time.Location) model.HourlyPerformance {
	var hourGames, hourWins [24]int
	for i := range games {
		h := games[i].Start.In(loc).Hour()
		hourGames[h]++
		if games[i].Win {
			hourWins[h]++
		}
	}

	bestHour := -1
	var bestRate float64
	for h := 0; h < 24; h++ {
		if hourGames[h] < bestHourGames {
			continue
		}
		rate := winRate(hourWins[h], hourGames[h])
		if bestHour < 0 || rate > bestRate {
			bestHour, bestRate = h, rate
		}
	}

	if bestHour < 0 {
		return model.HourlyPerformance{Category: "Not Enough Data", TimeRange: model.NotAvailable}
	}
	return model.HourlyPerformance{
		Category:    hourCategory(bestHour),
		BestHour:    bestHour,
		BestWinrate: roundTo(bestRate, 1),
		TimeRange:   hourRange(bestHour),
	}
}

func hourCategory(h int) string {
	switch {
	case h >= 22 || h <= 4:
		return "Night Owl"
	case h <= 11:
		return "Early Bird"
	case h <= 17:
		return "Afternoon Warrior"
	default:
		return "Evening Gamer"
	}
}

func hourRange(h int) string {
	switch {
	case h >= 22 || h <= 2:
		return "10 PM - 2 AM"
	case h <= 5:
		return "3 AM - 5 AM"
	case h <= 11:
		return "6 AM - 11 AM"
	case h <= 17:
		return "12 PM - 5 PM"
	default:
		return "6 PM - 9 PM"
	}
}
