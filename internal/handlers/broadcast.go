package handlers

import (
	"github.com/sirupsen/logrus"

	"never-have-i-ever-backend/internal/models"
	"never-have-i-ever-backend/internal/services"
)

// Broadcaster turns session outcomes into realtime events. The HTTP endpoints
// and the WebSocket message handler both mutate rooms through the session
// controller, so they share this one event vocabulary.
type Broadcaster struct {
	hub      *services.Hub
	sessions *services.GameSessionController
	metrics  *services.Metrics
}

func NewBroadcaster(hub *services.Hub, sessions *services.GameSessionController, metrics *services.Metrics) *Broadcaster {
	return &Broadcaster{hub: hub, sessions: sessions, metrics: metrics}
}

func (b *Broadcaster) PlayerJoined(room *models.Room, userID string) {
	b.hub.BroadcastToRoom(room.ID, &models.WSMessage{
		Type:   models.EventPlayerJoined,
		RoomID: room.ID,
		Payload: map[string]any{
			"userId":  userID,
			"players": room.Players,
		},
	})
}

func (b *Broadcaster) PlayerLeft(roomID, userID string, result *services.LeaveResult) {
	if result.RoomClosed {
		b.hub.BroadcastToRoom(roomID, &models.WSMessage{
			Type:   models.EventRoomClosed,
			RoomID: roomID,
		})
		return
	}

	b.hub.BroadcastToRoom(roomID, &models.WSMessage{
		Type:   models.EventPlayerLeft,
		RoomID: roomID,
		Payload: map[string]any{
			"userId":  userID,
			"players": result.Room.Players,
			"hostId":  result.Room.HostID,
		},
	})

	if result.HostChanged {
		b.hub.BroadcastToRoom(roomID, &models.WSMessage{
			Type:   models.EventHostChanged,
			RoomID: roomID,
			Payload: map[string]any{
				"hostId": result.NewHostID,
			},
		})
	}
}

func (b *Broadcaster) GameStarted(room *models.Room) {
	b.metrics.IncrementGamesStarted()

	question, err := b.sessions.NextQuestionPayload(room)
	if err != nil {
		logrus.WithError(err).WithField("room_id", room.ID).Error("failed to load question for broadcast")
		return
	}

	b.hub.BroadcastToRoom(room.ID, &models.WSMessage{
		Type:   models.EventGameStarted,
		RoomID: room.ID,
		Payload: map[string]any{
			"round":             room.CurrentRound,
			"maxRounds":         room.MaxRounds,
			"question":          question,
			"questionStartedAt": room.QuestionStartedAt,
		},
	})
}

// PlayerAnswered announces the submission without revealing the answer. When
// the round is complete, the full result set follows.
func (b *Broadcaster) PlayerAnswered(roomID, userID string, result *services.SubmitResult) {
	b.metrics.IncrementAnswersSubmitted()

	b.hub.BroadcastToRoom(roomID, &models.WSMessage{
		Type:    models.EventPlayerAnswered,
		RoomID:  roomID,
		Payload: playerAnsweredPayload(userID, result),
	})

	if result.AllAnswered && result.Result != nil {
		b.hub.BroadcastToRoom(roomID, &models.WSMessage{
			Type:    models.EventAllPlayersAnswered,
			RoomID:  roomID,
			Payload: result.Result,
		})
	}
}

func playerAnsweredPayload(userID string, result *services.SubmitResult) map[string]any {
	return map[string]any{
		"userId":        userID,
		"responseTime":  result.Answer.ResponseTimeSeconds,
		"answeredCount": len(result.Room.CurrentRoundAnswers()),
		"totalPlayers":  len(result.Room.Players),
	}
}

func (b *Broadcaster) RoundAdvanced(roomID string, result *services.AdvanceResult) {
	if result.GameOver {
		b.metrics.IncrementGamesCompleted()
		b.hub.BroadcastToRoom(roomID, &models.WSMessage{
			Type:   models.EventGameEnded,
			RoomID: roomID,
			Payload: map[string]any{
				"winners": result.Winners,
				"players": result.Room.Players,
			},
		})
		b.hub.BroadcastToRoom(roomID, &models.WSMessage{
			Type:   models.EventLeaderboardUpdated,
			RoomID: roomID,
		})
		return
	}

	question, err := b.sessions.NextQuestionPayload(result.Room)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("failed to load question for broadcast")
		return
	}

	b.hub.BroadcastToRoom(roomID, &models.WSMessage{
		Type:   models.EventRoundStarted,
		RoomID: roomID,
		Payload: map[string]any{
			"round":             result.Room.CurrentRound,
			"maxRounds":         result.Room.MaxRounds,
			"question":          question,
			"questionStartedAt": result.Room.QuestionStartedAt,
			"players":           result.Room.Players,
		},
	})
}
