// Package aggregator folds a player's match records into the season recap.
// Everything here is pure: no I/O, no shared state between reducers.
package aggregator

import (
	"math"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// FindParticipant returns the participant whose puuid matches, or false if the
// player is not in the match.
func FindParticipant(m *model.MatchRecord, puuid string) (*model.ParticipantRecord, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Participants {
		if m.Participants[i].PUUID == puuid {
			return &m.Participants[i], true
		}
	}
	return nil, false
}

// Extract locates the player in every match and normalizes the record.
// Matches without the player are skipped. Order follows the input.
func Extract(matches []model.MatchRecord, puuid string) []model.PlayerGame {
	games := make([]model.PlayerGame, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		p, ok := FindParticipant(m, puuid)
		if !ok {
			continue
		}
		games = append(games, normalize(m, p))
	}
	return games
}

func normalize(m *model.MatchRecord, p *model.ParticipantRecord) model.PlayerGame {
	g := model.PlayerGame{
		MatchID:      m.MatchID,
		GameMode:     m.GameMode,
		QueueID:      m.QueueID,
		Start:        m.StartTime(),
		GameDuration: m.GameDurationSeconds,

		Champion: p.ChampionName,
		Win:      p.Win,

		Kills:              p.Kills,
		Deaths:             p.Deaths,
		Assists:            p.Assists,
		LaneMinions:        p.TotalMinionsKilled,
		NeutralMinions:     p.NeutralMinionsKilled,
		TurretKills:        p.TurretKills,
		TurretTakedowns:    p.TurretTakedowns,
		InhibitorTakedowns: p.InhibitorTakedowns,
		WardsPlaced:        p.WardsPlaced,
		WardTakedowns:      p.WardTakedowns,
		TimeCCingOthers:    p.TimeCCingOthers,
		TotalTimeCCDealt:   p.TotalTimeCCDealt,

		Role: model.ParseRole(p.TeamPosition),
	}

	switch {
	case p.TeamPosition != "":
		g.Position = p.TeamPosition
	case p.IndividualPosition != "":
		g.Position = p.IndividualPosition
	default:
		g.Position = "UNKNOWN"
	}

	if p.TimePlayed != nil {
		g.TimePlayed = *p.TimePlayed
	}
	if p.Challenges != nil {
		g.Challenges = resolveChallenges(p.Challenges)
	}
	return g
}

func resolveChallenges(c *model.Challenges) model.ChallengeStats {
	return model.ChallengeStats{
		SoloKills:                 intOr0(c.SoloKills),
		KDA:                       floatOr0(c.KDA),
		SkillshotsHit:             intOr0(c.SkillshotsHit),
		SkillshotsDodged:          intOr0(c.SkillshotsDodged),
		KillParticipation:         floatOr0(c.KillParticipation),
		VisionScorePerMinute:      floatOr0(c.VisionScorePerMinute),
		VisionScoreAdvantageLane:  floatOr0(c.VisionScoreAdvantageLane),
		MaxCsAdvantageOnLane:      floatOr0(c.MaxCsAdvantageOnLane),
		TurretPlatesTaken:         intOr0(c.TurretPlatesTaken),
		SoloTurretsLateGame:       intOr0(c.SoloTurretsLateGame),
		TurretsTakenWithHerald:    intOr0(c.TurretsTakenWithHerald),
		DragonTakedowns:           intOr0(c.DragonTakedowns),
		BaronTakedowns:            intOr0(c.BaronTakedowns),
		RiftHeraldTakedowns:       intOr0(c.RiftHeraldTakedowns),
		JunglerKillsEarlyJungle:   intOr0(c.JunglerKillsEarlyJungle),
		EpicKillsNearEnemyJungler: intOr0(c.EpicKillsNearEnemyJungler),
		TakedownsNearDamagedEpic:  intOr0(c.TakedownsNearDamagedEpic),
		TakedownsFirst25Minutes:   intOr0(c.TakedownsFirst25Minutes),
		FasterSupportQuest:        floatOr0(c.FasterSupportQuest),
		EarlyLaningGoldExpAdv:     floatOr0(c.EarlyLaningGoldExpAdv),
	}
}

func intOr0(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// floatOr0 also maps NaN to zero so a bad upstream value cannot leak out.
func floatOr0(p *float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return *p
}

// roundTo rounds half-up at the given number of decimal places.
func roundTo(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Floor(v*f+0.5) / f
}

// avg divides total by n, or returns 0 when n is zero.
func avg(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func winRate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games) * 100
}
