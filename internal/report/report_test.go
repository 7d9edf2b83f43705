package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

func init() {
	color.NoColor = true
}

func sampleResult() model.WrappedResult {
	r := model.EmptyResult()
	r.Overall = model.OverallStats{
		Wins: 3, Losses: 1, Kills: 30, Assists: 22,
		TopChamps:        []model.ChampionCount{{Name: "Ahri", Games: 3}, {Name: "Lux", Games: 1}},
		LongestWinStreak: 2, LongestLossStreak: 1,
	}
	r.Mechanical.AvgCS = 181.4
	r.TimePreference = model.TimePreference{
		TimeSlot: "Evening (6pm-10pm)",
		Winrate:  75,
		BlockBreakdown: []model.TimeBlockStats{
			{Name: "Evening (6pm-10pm)", Games: 4, Wins: 3, Winrate: 75},
		},
		Hourly: model.HourlyPerformance{Category: "Night Owl", BestHour: 21, BestWinrate: 100, TimeRange: "9PM-10PM"},
	}
	r.RoleStats = model.RoleStats{
		TopChamp: "Ahri", SoloKills: 5, AvgKDA: 4.5, LaneWins: 2, LaningGames: 4,
		Scores:    model.PlaystyleScores{Aggression: 70, Teamwork: 45, Consistency: 60},
		Archetype: model.Archetype{Name: "The Balanced Player", Description: "Jack of all trades."},
		Region:    "Noxus",
	}
	r.Summary = model.SummaryStats{
		TopChamp: "Ahri", MinutesPlayed: 120, BestRole: "Mid", BestRoleWinrate: 75, ChampsPlayed: 2,
		Roles: []model.RoleBreakdown{{Role: "Mid", Games: 4, Wins: 3, Winrate: 75}},
	}
	return r
}

func TestPrintWrapped(t *testing.T) {
	var buf bytes.Buffer
	PrintWrapped(&buf, "Faker#KR1", sampleResult())
	out := buf.String()

	checks := []string{
		"Faker#KR1",
		"3W 1L (75.0%)",
		"Ahri",
		"181.4",
		"Evening (6pm-10pm)",
		"9PM-10PM",
		"2/4 (50%)",
		"The Balanced Player of Noxus",
		"Best role: Mid (75.0% win rate)",
		"Minutes played: 120",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintWrapped_NoGames(t *testing.T) {
	var buf bytes.Buffer
	PrintWrapped(&buf, "Nobody#NA1", model.EmptyResult())
	out := buf.String()
	if !strings.Contains(out, "No games found") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Mechanics") {
		t.Error("empty recap should not print sections")
	}
}

func TestPrintNarrative(t *testing.T) {
	var buf bytes.Buffer
	PrintNarrative(&buf, "Ionia", "A calm player.")
	if got := buf.String(); !strings.Contains(got, "IONIA") || !strings.Contains(got, "A calm player.") {
		t.Errorf("output = %q", got)
	}
}
