package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"never-have-i-ever-backend/internal/models"
	"never-have-i-ever-backend/internal/services"
)

func submittedRound(t *testing.T) *services.SubmitResult {
	t.Helper()

	room := models.NewRoom("r", models.RoomPublic, "", "host1", 5, 2)
	require.NoError(t, room.AddPlayer("p2"))
	room.Status = models.StatusPlaying
	room.CurrentRound = 1
	room.CurrentQuestion = "q1"
	room.QuestionStartedAt = time.Now().Add(-12 * time.Second)

	record, err := room.RecordAnswer("host1", true, time.Now())
	require.NoError(t, err)

	return &services.SubmitResult{
		Room:       room,
		Answer:     *record,
		SpeedBonus: services.SpeedBonus(record.ResponseTimeSeconds),
	}
}

func TestSubmitAnswerResponse(t *testing.T) {
	result := submittedRound(t)

	payload := submitAnswerResponse(result)
	assert.Equal(t, true, payload["answered"])
	assert.Equal(t, services.MediumBonus, payload["speedBonus"])
	assert.Equal(t, false, payload["allAnswered"])

	responseTime, ok := payload["responseTime"].(float64)
	require.True(t, ok, "responseTime must be present")
	assert.InDelta(t, 12.0, responseTime, 1.0)
}

func TestPlayerAnsweredPayload(t *testing.T) {
	result := submittedRound(t)

	payload := playerAnsweredPayload("host1", result)
	assert.Equal(t, "host1", payload["userId"])
	assert.Equal(t, 1, payload["answeredCount"])
	assert.Equal(t, 2, payload["totalPlayers"])

	responseTime, ok := payload["responseTime"].(float64)
	require.True(t, ok, "responseTime must be present")
	assert.InDelta(t, 12.0, responseTime, 1.0)
}
