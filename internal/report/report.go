// Package report renders a recap as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

var (
	cTitle   = color.New(color.FgCyan, color.Bold)
	cSection = color.New(color.FgYellow, color.Bold)
	cMuted   = color.New(color.Faint)
	cGood    = color.New(color.FgGreen)
	cBad     = color.New(color.FgRed)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintWrapped writes every recap section for player.
func PrintWrapped(w io.Writer, player string, r model.WrappedResult) {
	cTitle.Fprintf(w, "\n%s — League Wrapped\n", player)
	if r.Overall.Games() == 0 {
		cMuted.Fprintln(w, "No games found for this player.")
		return
	}

	PrintOverall(w, r.Overall)
	PrintMechanical(w, r.Mechanical)
	PrintTimePreference(w, r.TimePreference)
	PrintRoleStats(w, r.RoleStats)
	PrintSummary(w, r.Summary)
}

// PrintOverall prints the record, streaks and most-played champions.
func PrintOverall(w io.Writer, o model.OverallStats) {
	cSection.Fprintln(w, "\nOverall")
	record := fmt.Sprintf("%dW %dL", o.Wins, o.Losses)
	rate := fmt.Sprintf("%.1f%%", o.WinRate())
	if o.WinRate() >= 50 {
		rate = cGood.Sprint(rate)
	} else {
		rate = cBad.Sprint(rate)
	}
	fmt.Fprintf(w, "Record: %s (%s)  |  Kills: %d  |  Assists: %d  |  Streaks: %dW / %dL\n",
		record, rate, o.Kills, o.Assists, o.LongestWinStreak, o.LongestLossStreak)

	if len(o.TopChamps) == 0 {
		return
	}
	table := newTable(w)
	table.Header("#", "CHAMPION", "GAMES")
	for i, c := range o.TopChamps {
		table.Append(strconv.Itoa(i+1), c.Name, strconv.Itoa(c.Games))
	}
	table.Render()
}

// PrintMechanical prints per-game averages.
func PrintMechanical(w io.Writer, m model.MechanicalStats) {
	cSection.Fprintln(w, "\nMechanics (per game)")
	table := newTable(w)
	table.Header("CS", "OBJECTIVES", "TOWERS", "SKILLSHOTS_HIT", "SKILLSHOTS_DODGED")
	table.Append(
		fmt.Sprintf("%.1f", m.AvgCS),
		fmt.Sprintf("%.2f", m.AvgObjectivesHelpedWith),
		fmt.Sprintf("%.2f", m.AvgTowersTaken),
		fmt.Sprintf("%.1f", m.AvgSkillshotsHit),
		fmt.Sprintf("%.1f", m.AvgSkillshotsDodged),
	)
	table.Render()
}

// PrintTimePreference prints the dominant time slot and the block breakdown.
func PrintTimePreference(w io.Writer, t model.TimePreference) {
	cSection.Fprintln(w, "\nWhen you play")
	if t.PlaysAllDay {
		fmt.Fprintf(w, "You play all day. Best block: %s (%.1f%% win rate)\n", t.TimeSlot, t.Winrate)
	} else {
		fmt.Fprintf(w, "Favourite block: %s (%.1f%% win rate)\n", t.TimeSlot, t.Winrate)
	}
	if t.Hourly.TimeRange != model.NotAvailable {
		fmt.Fprintf(w, "Best hour: %s, %s (%.1f%%)\n", t.Hourly.TimeRange, t.Hourly.Category, t.Hourly.BestWinrate)
	}

	if len(t.BlockBreakdown) == 0 {
		return
	}
	table := newTable(w)
	table.Header("BLOCK", "GAMES", "WINS", "WIN%")
	for _, b := range t.BlockBreakdown {
		table.Append(b.Name, strconv.Itoa(b.Games), strconv.Itoa(b.Wins), fmt.Sprintf("%.1f", b.Winrate))
	}
	table.Render()
}

// PrintRoleStats prints laning results, playstyle scores and the archetype.
func PrintRoleStats(w io.Writer, r model.RoleStats) {
	cSection.Fprintln(w, "\nPlaystyle")
	lane := "—"
	if r.LaningGames > 0 {
		lane = fmt.Sprintf("%d/%d (%.0f%%)", r.LaneWins, r.LaningGames, r.LaneWinRate())
	}
	table := newTable(w)
	table.Header("SOLO_KILLS", "AVG_KDA", "LANES_WON", "AGGRESSION", "TEAMWORK", "CONSISTENCY")
	table.Append(
		strconv.Itoa(r.SoloKills),
		fmt.Sprintf("%.2f", r.AvgKDA),
		lane,
		fmt.Sprintf("%.0f", r.Scores.Aggression),
		fmt.Sprintf("%.0f", r.Scores.Teamwork),
		fmt.Sprintf("%.0f", r.Scores.Consistency),
	)
	table.Render()
	if r.Archetype.Name != "" {
		fmt.Fprintf(w, "%s of %s: %s\n", r.Archetype.Name, r.Region, r.Archetype.Description)
	}
}

// PrintSummary prints time played and the per-role breakdown.
func PrintSummary(w io.Writer, s model.SummaryStats) {
	cSection.Fprintln(w, "\nSummary")
	fmt.Fprintf(w, "Main: %s  |  Champions played: %d  |  Minutes played: %d\n",
		s.TopChamp, s.ChampsPlayed, s.MinutesPlayed)
	if s.BestRole != model.NotAvailable {
		fmt.Fprintf(w, "Best role: %s (%.1f%% win rate)\n", s.BestRole, s.BestRoleWinrate)
	}

	if len(s.Roles) == 0 {
		return
	}
	table := newTable(w)
	table.Header("ROLE", "GAMES", "WINS", "WIN%")
	for _, r := range s.Roles {
		table.Append(r.Role, strconv.Itoa(r.Games), strconv.Itoa(r.Wins), fmt.Sprintf("%.1f", r.Winrate))
	}
	table.Render()
}

// PrintNarrative prints a region description with its heading.
func PrintNarrative(w io.Writer, region, text string) {
	cSection.Fprintf(w, "\n%s\n", strings.ToUpper(region))
	fmt.Fprintln(w, text)
}
