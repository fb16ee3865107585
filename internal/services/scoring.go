package services

import "never-have-i-ever-backend/internal/models"

// Point values for a scored round.
const (
	BasePoints          = 10 // minority answer base
	MinorityBonus       = 2
	ParticipationPoints = 2 // majority or tie answer

	FastBonus       = 3 // answered in under 5s
	MediumBonus     = 1 // answered in 5-15s
	FastThreshold   = 5.0
	MediumThreshold = 15.0
)

// SpeedBonus maps a response time in seconds to its bonus tier. The
// boundaries are inclusive on the slow side: exactly 5s earns the medium
// bonus and exactly 15s still earns it.
func SpeedBonus(responseTimeSeconds float64) int {
	switch {
	case responseTimeSeconds < FastThreshold:
		return FastBonus
	case responseTimeSeconds <= MediumThreshold:
		return MediumBonus
	default:
		return 0
	}
}

// AnswerScore is the per-answer breakdown of a scored round.
type AnswerScore struct {
	UserID       string  `json:"userId"`
	Answer       bool    `json:"answer"`
	ResponseTime float64 `json:"responseTime"`
	SpeedBonus   int     `json:"speedBonus"`
	InMinority   bool    `json:"inMinority"`
	Points       int     `json:"points"`
	Streak       int     `json:"streak"`
}

// RoundStats aggregates answer timing for a completed round.
type RoundStats struct {
	FastestAnswer       float64 `json:"fastestAnswer"`
	AverageResponseTime float64 `json:"averageResponseTime"`
	TotalSpeedBonuses   int     `json:"totalSpeedBonuses"`
}

// RoundResult is the full outcome of scoring one round.
type RoundResult struct {
	YesCount    int            `json:"yesCount"`
	NoCount     int            `json:"noCount"`
	Answers     []AnswerScore  `json:"answers"`
	PointDeltas map[string]int `json:"-"`
	Streaks     map[string]int `json:"-"`
	Stats       RoundStats     `json:"roundStats"`
}

// ScoreRound computes point deltas and streak outcomes for one completed
// round. A player is in the minority when strictly fewer than half of the
// room answered the way they did; an exact yes/no tie puts nobody in the
// minority. Minority answers earn base + minority bonus + speed bonus and
// keep their streak; everyone else earns participation + speed bonus and has
// their streak reset. The function is pure: same inputs, same result.
func ScoreRound(players []models.PlayerEntry, answers []models.AnswerRecord) RoundResult {
	result := RoundResult{
		PointDeltas: make(map[string]int, len(answers)),
		Streaks:     make(map[string]int, len(answers)),
	}

	for _, a := range answers {
		if a.Answer {
			result.YesCount++
		} else {
			result.NoCount++
		}
	}

	playerCount := len(players)
	half := float64(playerCount) / 2

	streaks := make(map[string]int, playerCount)
	for _, p := range players {
		streaks[p.UserID] = p.AnswerStreak
	}

	totalTime := 0.0
	for i, a := range answers {
		inMinority := (float64(result.YesCount) < half && a.Answer) ||
			(float64(result.YesCount) > half && !a.Answer)

		bonus := SpeedBonus(a.ResponseTimeSeconds)
		points := ParticipationPoints + bonus
		newStreak := 0
		if inMinority {
			points = BasePoints + MinorityBonus + bonus
			newStreak = streaks[a.UserID]
		}

		result.Answers = append(result.Answers, AnswerScore{
			UserID:       a.UserID,
			Answer:       a.Answer,
			ResponseTime: a.ResponseTimeSeconds,
			SpeedBonus:   bonus,
			InMinority:   inMinority,
			Points:       points,
			Streak:       newStreak,
		})
		result.PointDeltas[a.UserID] = points
		result.Streaks[a.UserID] = newStreak

		result.Stats.TotalSpeedBonuses += bonus
		totalTime += a.ResponseTimeSeconds
		if i == 0 || a.ResponseTimeSeconds < result.Stats.FastestAnswer {
			result.Stats.FastestAnswer = a.ResponseTimeSeconds
		}
	}

	if len(answers) > 0 {
		result.Stats.AverageResponseTime = totalTime / float64(len(answers))
	}

	return result
}
