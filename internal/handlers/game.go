package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/security"
	"never-have-i-ever-backend/internal/services"
)

type GameHandlers struct {
	sessions    *services.GameSessionController
	broadcaster *Broadcaster
}

func NewGameHandlers(sessions *services.GameSessionController, broadcaster *Broadcaster) *GameHandlers {
	return &GameHandlers{sessions: sessions, broadcaster: broadcaster}
}

type startGameRequest struct {
	UserID string `json:"userId"`
}

func (h *GameHandlers) StartGame(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	var req startGameRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if err := security.ValidateID(req.UserID); err != nil {
		return badRequest(re, err.Error())
	}

	room, err := h.sessions.StartGame(roomID, req.UserID)
	if err != nil {
		return jsonError(re, err)
	}

	h.broadcaster.GameStarted(room)
	return re.JSON(http.StatusOK, room)
}

type submitAnswerRequest struct {
	UserID string `json:"userId"`
	Answer *bool  `json:"answer"`
}

// SubmitAnswer is the single write path for answers; the WebSocket message
// handler funnels into the same session call. Timing comes from the server
// clock, never from the request.
func (h *GameHandlers) SubmitAnswer(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	var req submitAnswerRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if err := security.ValidateID(req.UserID); err != nil {
		return badRequest(re, err.Error())
	}
	if req.Answer == nil {
		return badRequest(re, "answer is required")
	}

	result, err := h.sessions.SubmitAnswer(roomID, req.UserID, *req.Answer)
	if err != nil {
		return jsonError(re, err)
	}

	h.broadcaster.PlayerAnswered(roomID, req.UserID, result)
	return re.JSON(http.StatusOK, submitAnswerResponse(result))
}

func submitAnswerResponse(result *services.SubmitResult) map[string]any {
	return map[string]any{
		"answered":     true,
		"responseTime": result.Answer.ResponseTimeSeconds,
		"speedBonus":   result.SpeedBonus,
		"allAnswered":  result.AllAnswered,
	}
}

type nextRoundRequest struct {
	UserID string `json:"userId"`
}

func (h *GameHandlers) NextRound(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	var req nextRoundRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if err := security.ValidateID(req.UserID); err != nil {
		return badRequest(re, err.Error())
	}

	result, err := h.sessions.AdvanceRound(roomID, req.UserID)
	if err != nil {
		return jsonError(re, err)
	}

	h.broadcaster.RoundAdvanced(roomID, result)
	return re.JSON(http.StatusOK, map[string]any{
		"round":    result.Room.CurrentRound,
		"gameOver": result.GameOver,
		"result":   result.Result,
		"winners":  result.Winners,
	})
}
