package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"never-have-i-ever-backend/internal/models"
)

func players(ids ...string) []models.PlayerEntry {
	out := make([]models.PlayerEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.NewPlayerEntry(id, true))
	}
	return out
}

func answer(userID string, yes bool, seconds float64) models.AnswerRecord {
	return models.AnswerRecord{
		UserID:              userID,
		QuestionID:          "q1",
		Answer:              yes,
		Round:               1,
		ResponseTimeSeconds: seconds,
	}
}

func TestSpeedBonus(t *testing.T) {
	t.Run("under five seconds earns the fast bonus", func(t *testing.T) {
		assert.Equal(t, FastBonus, SpeedBonus(0))
		assert.Equal(t, FastBonus, SpeedBonus(3))
		assert.Equal(t, FastBonus, SpeedBonus(4.99))
	})

	t.Run("five through fifteen seconds inclusive earns the medium bonus", func(t *testing.T) {
		assert.Equal(t, MediumBonus, SpeedBonus(5.0))
		assert.Equal(t, MediumBonus, SpeedBonus(10))
		assert.Equal(t, MediumBonus, SpeedBonus(15.0))
	})

	t.Run("beyond fifteen seconds earns nothing", func(t *testing.T) {
		assert.Equal(t, 0, SpeedBonus(15.01))
		assert.Equal(t, 0, SpeedBonus(60))
	})
}

func TestScoreRound_MinorityDetection(t *testing.T) {
	t.Run("single yes among three is the minority", func(t *testing.T) {
		ps := players("p1", "p2", "p3")
		result := ScoreRound(ps, []models.AnswerRecord{
			answer("p1", true, 20),
			answer("p2", false, 20),
			answer("p3", false, 20),
		})

		assert.Equal(t, 1, result.YesCount)
		assert.Equal(t, 2, result.NoCount)
		assert.Equal(t, BasePoints+MinorityBonus, result.PointDeltas["p1"])
		assert.Equal(t, ParticipationPoints, result.PointDeltas["p2"])
		assert.Equal(t, ParticipationPoints, result.PointDeltas["p3"])
	})

	t.Run("exact tie puts nobody in the minority", func(t *testing.T) {
		ps := players("p1", "p2", "p3", "p4")
		result := ScoreRound(ps, []models.AnswerRecord{
			answer("p1", true, 20),
			answer("p2", true, 20),
			answer("p3", false, 20),
			answer("p4", false, 20),
		})

		for _, id := range []string{"p1", "p2", "p3", "p4"} {
			assert.Equal(t, ParticipationPoints, result.PointDeltas[id], "player %s", id)
			assert.Equal(t, 0, result.Streaks[id], "player %s streak", id)
		}
	})

	t.Run("no minority earns more than the no majority", func(t *testing.T) {
		ps := players("p1", "p2", "p3", "p4", "p5")
		result := ScoreRound(ps, []models.AnswerRecord{
			answer("p1", true, 20),
			answer("p2", true, 20),
			answer("p3", true, 20),
			answer("p4", false, 20),
			answer("p5", false, 20),
		})

		assert.Equal(t, BasePoints+MinorityBonus, result.PointDeltas["p4"])
		assert.Equal(t, BasePoints+MinorityBonus, result.PointDeltas["p5"])
		assert.Equal(t, ParticipationPoints, result.PointDeltas["p1"])
	})
}

func TestScoreRound_SpeedBonusStacks(t *testing.T) {
	ps := players("p1", "p2", "p3")
	result := ScoreRound(ps, []models.AnswerRecord{
		answer("p1", true, 3),
		answer("p2", false, 7),
		answer("p3", false, 20),
	})

	// minority at 3s: 10 + 2 + 3
	assert.Equal(t, 15, result.PointDeltas["p1"])
	// majority at 7s: 2 + 1
	assert.Equal(t, 3, result.PointDeltas["p2"])
	// majority at 20s: 2 + 0
	assert.Equal(t, 2, result.PointDeltas["p3"])
}

func TestScoreRound_Streaks(t *testing.T) {
	ps := players("p1", "p2", "p3")
	// p1 answered this round with a running streak of 2; p2 with 1
	ps[0].AnswerStreak = 2
	ps[1].AnswerStreak = 1
	ps[2].AnswerStreak = 1

	result := ScoreRound(ps, []models.AnswerRecord{
		answer("p1", true, 20),
		answer("p2", false, 20),
		answer("p3", false, 20),
	})

	assert.Equal(t, 2, result.Streaks["p1"], "minority keeps its streak")
	assert.Equal(t, 0, result.Streaks["p2"], "majority resets")
	assert.Equal(t, 0, result.Streaks["p3"], "majority resets")
}

func TestScoreRound_Stats(t *testing.T) {
	ps := players("p1", "p2", "p3")
	result := ScoreRound(ps, []models.AnswerRecord{
		answer("p1", true, 2),
		answer("p2", false, 6),
		answer("p3", false, 16),
	})

	assert.InDelta(t, 2.0, result.Stats.FastestAnswer, 1e-9)
	assert.InDelta(t, 8.0, result.Stats.AverageResponseTime, 1e-9)
	assert.Equal(t, FastBonus+MediumBonus, result.Stats.TotalSpeedBonuses)
}

func TestScoreRound_Deterministic(t *testing.T) {
	ps := players("p1", "p2", "p3")
	answers := []models.AnswerRecord{
		answer("p1", true, 2),
		answer("p2", false, 6),
		answer("p3", false, 16),
	}

	first := ScoreRound(ps, answers)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ScoreRound(ps, answers))
	}
}
