package aggregator

import (
	"math"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

const (
	classicMode = "CLASSIC"

	laneMaxScore = 4.0
	laneWinRatio = 0.5

	// Per-player play time assumed by the CS/min check when none is reported.
	defaultPlaySeconds = 1800
)

// Normal draft, ranked solo/duo, normal blind, ranked flex, quickplay.
var laningQueues = map[int]bool{
	400: true,
	420: true,
	430: true,
	440: true,
	490: true,
}

// IsTraditionalLaning reports whether a game counts for lane judgement.
func IsTraditionalLaning(g *model.PlayerGame) bool {
	return g.GameMode == classicMode || laningQueues[g.QueueID]
}

// Rubric names the scoring table used for a lane verdict.
type Rubric string

const (
	RubricJungle   Rubric = "jungle"
	RubricSupport  Rubric = "support"
	RubricStandard Rubric = "standard"
)

// LaneVerdict is the outcome of judging one game's lane phase.
type LaneVerdict struct {
	Rubric Rubric
	Score  float64 // clamped to [0, 4]
	Won    bool
}

// JudgeLane scores the player's lane phase with the rubric for their role.
// Top, mid, bottom and unassigned positions use the standard rubric.
func JudgeLane(g *model.PlayerGame) LaneVerdict {
	var (
		rubric Rubric
		score  float64
	)
	switch g.Role {
	case model.RoleJungle:
		rubric, score = RubricJungle, jungleScore(g)
	case model.RoleUtility:
		rubric, score = RubricSupport, supportScore(g)
	case model.RoleTop, model.RoleMiddle, model.RoleBottom, model.RoleUnknown:
		rubric, score = RubricStandard, standardScore(g)
	}

	score = math.Max(0, math.Min(laneMaxScore, score))
	return LaneVerdict{
		Rubric: rubric,
		Score:  score,
		Won:    score/laneMaxScore >= laneWinRatio,
	}
}

func jungleScore(g *model.PlayerGame) float64 {
	ch := &g.Challenges
	var score float64

	// Early jungle kills.
	switch early := ch.JunglerKillsEarlyJungle; {
	case early >= 2:
		score += 1
	case early == 1:
		score += 0.5
	}

	// Epic monsters taken near the enemy jungler. The second case never
	// fires for integer counts; it is kept so the table reads as published.
	switch near := ch.EpicKillsNearEnemyJungler; {
	case near >= 1:
		score += 2
	case near > 0:
		score += 1
	}

	// Takedowns near a damaged epic monster.
	switch epic := ch.TakedownsNearDamagedEpic; {
	case epic >= 2:
		score += 3
	case epic == 1:
		score += 1.5
	}

	// Early impact.
	switch early := ch.TakedownsFirst25Minutes; {
	case early >= 5:
		score += 4
	case early >= 3:
		score += 2
	case g.Kills+g.Assists >= 3:
		score += 1
	}
	return score
}

func supportScore(g *model.PlayerGame) float64 {
	ch := &g.Challenges
	var score float64

	switch vision := ch.VisionScoreAdvantageLane; {
	case vision > 0.2:
		score += 1
	case vision > 0:
		score += 0.5
	}

	switch cc := max(g.TimeCCingOthers, g.TotalTimeCCDealt); {
	case cc >= 60:
		score += 2
	case cc >= 40:
		score += 1
	case cc >= 20:
		score += 0.5
	}

	// No quest data scores as neutral, not as a loss.
	if ch.FasterSupportQuest > 0 {
		score += 3
	} else {
		score += 1.5
	}

	switch wards := float64(g.WardTakedowns) + float64(g.WardsPlaced)*0.1; {
	case wards >= 20:
		score += 4
	case wards >= 15:
		score += 2
	case wards >= 10:
		score += 1
	}
	return score
}

func standardScore(g *model.PlayerGame) float64 {
	ch := &g.Challenges
	var score float64

	switch adv := ch.MaxCsAdvantageOnLane; {
	case adv >= 30:
		score += 1
	case adv >= 20:
		score += 0.75
	case adv >= 10:
		score += 0.5
	case adv >= 0:
		score += 0.25
	}

	switch turrets := g.TurretKills*2 + ch.TurretPlatesTaken; {
	case turrets >= 4:
		score += 2
	case turrets >= 2:
		score += 1
	case turrets >= 1:
		score += 0.5
	}

	played := g.TimePlayed
	if played <= 0 {
		played = defaultPlaySeconds
	}
	switch csPerMin := float64(g.LaneMinions) / (float64(played) / 60); {
	case csPerMin >= 8:
		score += 3
	case csPerMin >= 7:
		score += 2
	case csPerMin >= 6:
		score += 1
	case csPerMin >= 5:
		score += 0.5
	}

	switch {
	case ch.SoloKills >= 2:
		score += 4
	case ch.SoloKills >= 1:
		score += 3
	case ch.EarlyLaningGoldExpAdv > 500:
		score += 2.5
	case g.Kills > g.Deaths:
		score += 2
	case g.Kills == g.Deaths && g.Deaths <= 1:
		score += 1
	}
	return score
}
