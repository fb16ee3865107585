package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/security"
	"never-have-i-ever-backend/internal/services"
)

type UserHandlers struct {
	store *services.RoomStore
}

func NewUserHandlers(store *services.RoomStore) *UserHandlers {
	return &UserHandlers{store: store}
}

type createUserRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (h *UserHandlers) CreateUser(re *core.RequestEvent) error {
	var req createUserRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}

	name, err := security.ValidatePlayerName(req.Name)
	if err != nil {
		return badRequest(re, err.Error())
	}

	record, err := h.store.CreateUser(name, req.Avatar)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusCreated, userResponse(record))
}

func (h *UserHandlers) GetUser(re *core.RequestEvent) error {
	userID := re.Request.PathValue("id")
	if err := security.ValidateID(userID); err != nil {
		return badRequest(re, err.Error())
	}

	record, err := h.store.GetUser(userID)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, userResponse(record))
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (h *UserHandlers) UpdateUser(re *core.RequestEvent) error {
	userID := re.Request.PathValue("id")
	if err := security.ValidateID(userID); err != nil {
		return badRequest(re, err.Error())
	}

	var req updateUserRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if req.Name != "" {
		name, err := security.ValidatePlayerName(req.Name)
		if err != nil {
			return badRequest(re, err.Error())
		}
		req.Name = name
	}

	record, err := h.store.UpdateUser(userID, req.Name, req.Avatar)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, userResponse(record))
}

func userResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":          record.Id,
		"name":        record.GetString("name"),
		"avatar":      record.GetString("avatar"),
		"points":      record.GetInt("points"),
		"dailyPoints": record.GetInt("daily_points"),
		"gamesPlayed": record.GetInt("games_played"),
		"gamesWon":    record.GetInt("games_won"),
		"totalPoints": record.GetInt("total_points"),
	}
}
