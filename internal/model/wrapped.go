package model

import (
	"encoding/json"
	"fmt"
)

// NotAvailable is the label used when a categorical stat has no data.
const NotAvailable = "N/A"

// WrappedResult is the full season recap for one player. It is built once
// from a match batch and never mutated afterwards.
type WrappedResult struct {
	Overall        OverallStats    `json:"overall"`
	Mechanical     MechanicalStats `json:"mechanical"`
	TimePreference TimePreference  `json:"timePref"`
	RoleStats      RoleStats       `json:"roleStats"`
	Summary        SummaryStats    `json:"summary"`
}

// EmptyResult returns the placeholder shown before data arrives. It is the
// same value the engine produces for an empty batch.
func EmptyResult() WrappedResult {
	return WrappedResult{
		Overall: OverallStats{TopChamps: []ChampionCount{}},
		TimePreference: TimePreference{
			TimeSlot:       NotAvailable,
			BlockBreakdown: []TimeBlockStats{},
			Hourly:         HourlyPerformance{Category: "Not Enough Data", TimeRange: NotAvailable},
		},
		RoleStats: RoleStats{
			Archetype: Archetype{},
		},
		Summary: SummaryStats{
			TopChamp:  NotAvailable,
			TopChamps: []ChampionCount{},
			BestRole:  NotAvailable,
			Roles:     []RoleBreakdown{},
		},
	}
}

// ChampionCount is a (champion, games played) pair. It encodes as a
// two-element JSON array: ["Ahri", 3].
type ChampionCount struct {
	Name  string
	Games int
}

func (c ChampionCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Name, c.Games})
}

func (c *ChampionCount) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("champion count: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Name); err != nil {
		return fmt.Errorf("champion count name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Games); err != nil {
		return fmt.Errorf("champion count games: %w", err)
	}
	return nil
}

type OverallStats struct {
	Wins      int             `json:"wins"`
	Losses    int             `json:"losses"`
	Kills     int             `json:"kills"`
	Assists   int             `json:"assists"`
	TopChamps []ChampionCount `json:"topChamps"`

	LongestWinStreak  int `json:"longestWinStreak"`
	LongestLossStreak int `json:"longestLossStreak"`
}

// Games returns wins plus losses.
func (o *OverallStats) Games() int {
	return o.Wins + o.Losses
}

// WinRate returns the win percentage, or 0 with no games.
func (o *OverallStats) WinRate() float64 {
	if o.Games() == 0 {
		return 0
	}
	return float64(o.Wins) / float64(o.Games()) * 100
}

type MechanicalStats struct {
	AvgObjectivesHelpedWith float64 `json:"avgObjectivesHelpedWith"`
	AvgTowersTaken          float64 `json:"avgTowersTaken"`
	AvgCS                   float64 `json:"avgCS"`
	AvgSkillshotsHit        float64 `json:"avgSkillshotsHit"`
	AvgSkillshotsDodged     float64 `json:"avgSkillshotsDodged"`
}

// TimeBlockStats is one hour-of-day block with at least one game.
type TimeBlockStats struct {
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Winrate float64 `json:"winrate"`
}

// HourlyPerformance is the best single start hour (min 3 games) and its category.
type HourlyPerformance struct {
	Category    string  `json:"category"`
	BestHour    int     `json:"bestHour"`
	BestWinrate float64 `json:"bestWinrate"`
	TimeRange   string  `json:"timeRange"`
}

type TimePreference struct {
	PlaysAllDay    bool              `json:"playsAllDay"`
	TimeSlot       string            `json:"timeSlot"`
	Winrate        float64           `json:"winrate"`
	BlockBreakdown []TimeBlockStats  `json:"blockBreakdown"`
	Hourly         HourlyPerformance `json:"hourly"`
}

// PlaystyleScores are the three 0–100 heuristic scores.
type PlaystyleScores struct {
	Aggression  float64 `json:"aggression"`
	Teamwork    float64 `json:"teamwork"`
	Consistency float64 `json:"consistency"`
}

// Archetype is a fixed playstyle label with its description.
type Archetype struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoleStats struct {
	TopChamp    string          `json:"topChamp"`
	SoloKills   int             `json:"soloKills"`
	AvgKDA      float64         `json:"avgKDA"`
	LaneWins    int             `json:"laneWins"`
	LaningGames int             `json:"laningGames"`
	Scores      PlaystyleScores `json:"scores"`
	Archetype   Archetype       `json:"archetype"`
	Region      string          `json:"region"`
}

// LaneWinRate returns lane wins over laning games as a percentage.
func (r *RoleStats) LaneWinRate() float64 {
	if r.LaningGames == 0 {
		return 0
	}
	return float64(r.LaneWins) / float64(r.LaningGames) * 100
}

// RoleBreakdown is the record for one role key, in display form.
type RoleBreakdown struct {
	Role    string  `json:"role"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Winrate float64 `json:"winrate"`
}

type SummaryStats struct {
	TopChamp        string          `json:"topChamp"`
	TopChamps       []ChampionCount `json:"topChamps"`
	MinutesPlayed   int             `json:"minutesPlayed"`
	BestRole        string          `json:"bestRole"`
	BestRoleWinrate float64         `json:"bestRoleWinrate"`
	ChampsPlayed    int             `json:"champsPlayed"`
	Roles           []RoleBreakdown `json:"roles"`
}
