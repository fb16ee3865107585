package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	qrcode "github.com/skip2/go-qrcode"

	"never-have-i-ever-backend/internal/config"
	"never-have-i-ever-backend/internal/models"
	"never-have-i-ever-backend/internal/security"
	"never-have-i-ever-backend/internal/services"
)

type RoomHandlers struct {
	sessions    *services.GameSessionController
	store       *services.RoomStore
	broadcaster *Broadcaster
	cfg         *config.Config
}

func NewRoomHandlers(sessions *services.GameSessionController, store *services.RoomStore, broadcaster *Broadcaster, cfg *config.Config) *RoomHandlers {
	return &RoomHandlers{
		sessions:    sessions,
		store:       store,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

type createRoomRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Passcode   string `json:"passcode"`
	HostID     string `json:"hostId"`
	MaxPlayers int    `json:"maxPlayers"`
	MaxRounds  int    `json:"maxRounds"`
}

func (h *RoomHandlers) CreateRoom(re *core.RequestEvent) error {
	var req createRoomRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}

	name, err := security.ValidateRoomName(req.Name)
	if err != nil {
		return badRequest(re, err.Error())
	}
	if err := security.ValidateID(req.HostID); err != nil {
		return badRequest(re, err.Error())
	}
	passcode := req.Passcode
	if models.RoomType(req.Type) == models.RoomPrivate {
		passcode, err = security.ValidatePasscode(req.Passcode)
		if err != nil {
			return badRequest(re, err.Error())
		}
	}

	room, err := h.sessions.CreateRoom(services.CreateRoomParams{
		Name:       name,
		Type:       models.RoomType(req.Type),
		Passcode:   passcode,
		HostID:     req.HostID,
		MaxPlayers: req.MaxPlayers,
		MaxRounds:  req.MaxRounds,
	})
	if err != nil {
		return jsonError(re, err)
	}

	return re.JSON(http.StatusCreated, room)
}

func (h *RoomHandlers) ListRooms(re *core.RequestEvent) error {
	roomType := re.Request.URL.Query().Get("type")
	status := re.Request.URL.Query().Get("status")

	rooms, err := h.store.ListRooms(roomType, status)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *RoomHandlers) GetRoom(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	room, err := h.store.GetRoom(roomID)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, room)
}

// GetRoomByPasscode resolves a private room for joining from an invite code.
func (h *RoomHandlers) GetRoomByPasscode(re *core.RequestEvent) error {
	passcode, err := security.ValidatePasscode(re.Request.PathValue("passcode"))
	if err != nil {
		return badRequest(re, err.Error())
	}

	room, err := h.store.FindRoomByPasscode(passcode)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, room)
}

// RoomQR renders an invite QR code pointing at the room's join page.
func (h *RoomHandlers) RoomQR(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}
	if _, err := h.store.GetRoom(roomID); err != nil {
		return jsonError(re, err)
	}

	png, err := qrcode.Encode(h.cfg.PublicURL+"/rooms/"+roomID, qrcode.Medium, 256)
	if err != nil {
		return jsonError(re, err)
	}

	re.Response.Header().Set("Content-Type", "image/png")
	re.Response.WriteHeader(http.StatusOK)
	_, err = re.Response.Write(png)
	return err
}

type joinRoomRequest struct {
	UserID   string `json:"userId"`
	Passcode string `json:"passcode"`
}

func (h *RoomHandlers) JoinRoom(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	var req joinRoomRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if err := security.ValidateID(req.UserID); err != nil {
		return badRequest(re, err.Error())
	}

	room, err := h.sessions.JoinRoom(roomID, req.UserID, req.Passcode)
	if err != nil {
		return jsonError(re, err)
	}

	h.broadcaster.PlayerJoined(room, req.UserID)
	return re.JSON(http.StatusOK, room)
}

type leaveRoomRequest struct {
	UserID string `json:"userId"`
}

func (h *RoomHandlers) LeaveRoom(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}

	var req leaveRoomRequest
	if err := re.BindBody(&req); err != nil {
		return badRequest(re, "invalid request body")
	}
	if err := security.ValidateID(req.UserID); err != nil {
		return badRequest(re, err.Error())
	}

	result, err := h.sessions.LeaveRoom(roomID, req.UserID)
	if err != nil {
		return jsonError(re, err)
	}

	h.broadcaster.PlayerLeft(roomID, req.UserID, result)
	return re.JSON(http.StatusOK, map[string]any{
		"roomClosed":  result.RoomClosed,
		"hostChanged": result.HostChanged,
		"hostId":      result.NewHostID,
	})
}
