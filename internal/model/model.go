// Package model holds the match records consumed by the engine and the
// recap sections it produces.
package model

import "time"

// Role is a lane assignment. Unrecognized or missing positions map to RoleUnknown.
type Role int

const (
	RoleUnknown Role = iota
	RoleTop
	RoleJungle
	RoleMiddle
	RoleBottom
	RoleUtility
)

// ParseRole maps a Riot teamPosition string to a Role.
func ParseRole(s string) Role {
	switch s {
	case "TOP":
		return RoleTop
	case "JUNGLE":
		return RoleJungle
	case "MIDDLE":
		return RoleMiddle
	case "BOTTOM":
		return RoleBottom
	case "UTILITY":
		return RoleUtility
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleTop:
		return "TOP"
	case RoleJungle:
		return "JUNGLE"
	case RoleMiddle:
		return "MIDDLE"
	case RoleBottom:
		return "BOTTOM"
	case RoleUtility:
		return "UTILITY"
	default:
		return "UNKNOWN"
	}
}

// ---- Upstream records (match-v5 shape) ----

// MatchRecord is one match as returned by the match-v5 detail endpoint,
// flattened to the fields the engine reads.
type MatchRecord struct {
	MatchID             string              `json:"matchId"`
	GameMode            string              `json:"gameMode"`
	QueueID             int                 `json:"queueId"`
	GameStartTimestamp  int64               `json:"gameStartTimestamp"` // epoch ms
	GameDurationSeconds int                 `json:"gameDuration"`
	Participants        []ParticipantRecord `json:"participants"`
}

// StartTime returns the match start instant.
func (m *MatchRecord) StartTime() time.Time {
	return time.UnixMilli(m.GameStartTimestamp)
}

// ParticipantRecord is one player's line in a match. Optional upstream
// fields are pointers; everything else decodes to zero when absent.
type ParticipantRecord struct {
	PUUID        string `json:"puuid"`
	ChampionName string `json:"championName"`
	Win          bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	TurretKills        int `json:"turretKills"`
	TurretTakedowns    int `json:"turretTakedowns"`
	InhibitorTakedowns int `json:"inhibitorTakedowns"`

	WardsPlaced   int `json:"wardsPlaced"`
	WardTakedowns int `json:"wardTakedowns"`

	TimeCCingOthers  int `json:"timeCCingOthers"`
	TotalTimeCCDealt int `json:"totalTimeCCDealt"`

	TeamPosition       string `json:"teamPosition"`       // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY, "" or "Invalid"
	IndividualPosition string `json:"individualPosition"` // used when teamPosition is empty

	TimePlayed *int        `json:"timePlayed,omitempty"` // seconds
	Challenges *Challenges `json:"challenges,omitempty"`
}

// Challenges carries the derived per-game metrics. Every field is optional.
type Challenges struct {
	SoloKills                 *int     `json:"soloKills,omitempty"`
	KDA                       *float64 `json:"kda,omitempty"`
	SkillshotsHit             *int     `json:"skillshotsHit,omitempty"`
	SkillshotsDodged          *int     `json:"skillshotsDodged,omitempty"`
	KillParticipation         *float64 `json:"killParticipation,omitempty"`
	VisionScorePerMinute      *float64 `json:"visionScorePerMinute,omitempty"`
	VisionScoreAdvantageLane  *float64 `json:"visionScoreAdvantageLaneOpponent,omitempty"`
	MaxCsAdvantageOnLane      *float64 `json:"maxCsAdvantageOnLaneOpponent,omitempty"`
	TurretPlatesTaken         *int     `json:"turretPlatesTaken,omitempty"`
	SoloTurretsLateGame       *int     `json:"soloTurretsLateGame,omitempty"`
	TurretsTakenWithHerald    *int     `json:"turretsTakenWithRiftHerald,omitempty"`
	DragonTakedowns           *int     `json:"dragonTakedowns,omitempty"`
	BaronTakedowns            *int     `json:"baronTakedowns,omitempty"`
	RiftHeraldTakedowns       *int     `json:"riftHeraldTakedowns,omitempty"`
	JunglerKillsEarlyJungle   *int     `json:"junglerKillsEarlyJungle,omitempty"`
	EpicKillsNearEnemyJungler *int     `json:"epicMonsterKillsNearEnemyJungler,omitempty"`
	TakedownsNearDamagedEpic  *int     `json:"junglerTakedownsNearDamagedEpicMonster,omitempty"`
	TakedownsFirst25Minutes   *int     `json:"takedownsFirst25Minutes,omitempty"`
	FasterSupportQuest        *float64 `json:"fasterSupportQuestCompletion,omitempty"`
	EarlyLaningGoldExpAdv     *float64 `json:"earlyLaningPhaseGoldExpAdvantage,omitempty"`
}

// ---- Normalized per-player view ----

// ChallengeStats is Challenges with every absent value resolved to zero.
type ChallengeStats struct {
	SoloKills                 int
	KDA                       float64
	SkillshotsHit             int
	SkillshotsDodged          int
	KillParticipation         float64
	VisionScorePerMinute      float64
	VisionScoreAdvantageLane  float64
	MaxCsAdvantageOnLane      float64
	TurretPlatesTaken         int
	SoloTurretsLateGame       int
	TurretsTakenWithHerald    int
	DragonTakedowns           int
	BaronTakedowns            int
	RiftHeraldTakedowns       int
	JunglerKillsEarlyJungle   int
	EpicKillsNearEnemyJungler int
	TakedownsNearDamagedEpic  int
	TakedownsFirst25Minutes   int
	FasterSupportQuest        float64
	EarlyLaningGoldExpAdv     float64
}

// PlayerGame is the target player's record in one match, together with the
// match fields the aggregators need. Built once by aggregator.Extract.
type PlayerGame struct {
	MatchID      string
	GameMode     string
	QueueID      int
	Start        time.Time
	GameDuration int // seconds

	Champion string
	Win      bool

	Kills, Deaths, Assists int
	LaneMinions            int
	NeutralMinions         int
	TurretKills            int
	TurretTakedowns        int
	InhibitorTakedowns     int
	WardsPlaced            int
	WardTakedowns          int
	TimeCCingOthers        int
	TotalTimeCCDealt       int

	// Position is the raw role key used for summary accounting:
	// teamPosition, else individualPosition, else "UNKNOWN".
	Position string
	Role     Role

	TimePlayed int // seconds; 0 when the upstream record had none

	Challenges ChallengeStats
}

// PlaySeconds returns per-player time played, falling back to match duration.
func (g *PlayerGame) PlaySeconds() int {
	if g.TimePlayed > 0 {
		return g.TimePlayed
	}
	return g.GameDuration
}

// TotalCS is lane plus neutral minions.
func (g *PlayerGame) TotalCS() int {
	return g.LaneMinions + g.NeutralMinions
}

// KDARatio returns the challenge KDA, or (kills+assists)/max(deaths,1) when
// the challenge value is zero or absent.
func (g *PlayerGame) KDARatio() float64 {
	if g.Challenges.KDA != 0 {
		return g.Challenges.KDA
	}
	deaths := g.Deaths
	if deaths == 0 {
		deaths = 1
	}
	return float64(g.Kills+g.Assists) / float64(deaths)
}
