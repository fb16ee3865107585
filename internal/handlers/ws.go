package handlers

import (
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"

	"never-have-i-ever-backend/internal/config"
	"never-have-i-ever-backend/internal/models"
	"never-have-i-ever-backend/internal/security"
	"never-have-i-ever-backend/internal/services"
)

type WSHandler struct {
	hub         *services.Hub
	sessions    *services.GameSessionController
	store       *services.RoomStore
	broadcaster *Broadcaster
	cfg         *config.Config
}

func NewWSHandler(hub *services.Hub, sessions *services.GameSessionController, store *services.RoomStore, broadcaster *Broadcaster, cfg *config.Config) *WSHandler {
	h := &WSHandler{
		hub:         hub,
		sessions:    sessions,
		store:       store,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
	hub.SetHandler(h.handleMessage)
	return h
}

// HandleWebSocket upgrades the connection and attaches it to the room's
// broadcast group. The userId query parameter identifies the player; the
// connection immediately receives a room-data snapshot so reconnecting
// clients can resync.
func (h *WSHandler) HandleWebSocket(re *core.RequestEvent) error {
	roomID := re.Request.PathValue("id")
	if err := security.ValidateID(roomID); err != nil {
		return badRequest(re, err.Error())
	}
	userID := re.Request.URL.Query().Get("userId")
	if userID != "" {
		if err := security.ValidateID(userID); err != nil {
			return badRequest(re, err.Error())
		}
	}

	room, err := h.store.GetRoom(roomID)
	if err != nil {
		return jsonError(re, err)
	}

	conn, err := websocket.Accept(re.Response, re.Request, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	client := services.NewClient(conn, h.hub, roomID, userID)
	h.hub.Register(client)
	client.Start()

	h.hub.SendToClient(client, &models.WSMessage{
		Type:    models.EventRoomData,
		RoomID:  roomID,
		Payload: room,
	})

	return nil
}

// handleMessage runs session operations for inbound realtime messages. Each
// message type funnels into the same session controller calls the HTTP
// endpoints use, so the rules are identical on both paths.
func (h *WSHandler) handleMessage(client *services.Client, msg *models.WSMessage) {
	roomID := client.RoomID()
	userID := client.UserID()
	if userID == "" {
		h.sendError(client, "connection is not identified")
		return
	}

	switch msg.Type {
	case models.MsgTypeJoinRoom:
		var payload struct {
			Passcode string `json:"passcode"`
		}
		decodePayload(msg.Payload, &payload)

		room, err := h.sessions.JoinRoom(roomID, userID, payload.Passcode)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.broadcaster.PlayerJoined(room, userID)

	case models.MsgTypeLeaveRoom:
		result, err := h.sessions.LeaveRoom(roomID, userID)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.broadcaster.PlayerLeft(roomID, userID, result)

	case models.MsgTypeStartGame:
		room, err := h.sessions.StartGame(roomID, userID)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.broadcaster.GameStarted(room)

	case models.MsgTypeSubmitAnswer:
		var payload struct {
			Answer *bool `json:"answer"`
		}
		decodePayload(msg.Payload, &payload)
		if payload.Answer == nil {
			h.sendError(client, "answer is required")
			return
		}

		result, err := h.sessions.SubmitAnswer(roomID, userID, *payload.Answer)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.broadcaster.PlayerAnswered(roomID, userID, result)

	case models.MsgTypeNextRound:
		result, err := h.sessions.AdvanceRound(roomID, userID)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.broadcaster.RoundAdvanced(roomID, result)

	default:
		logrus.WithFields(logrus.Fields{
			"room_id": roomID,
			"type":    msg.Type,
		}).Debug("unknown websocket message type")
		h.sendError(client, "unknown message type")
	}
}

func (h *WSHandler) sendError(client *services.Client, message string) {
	h.hub.SendToClient(client, &models.WSMessage{
		Type:    models.EventError,
		Payload: map[string]string{"message": message},
	})
}

// decodePayload remarshals the loosely typed payload into a concrete shape.
// Malformed payloads leave the target zeroed; the caller validates fields.
func decodePayload(payload interface{}, target interface{}) {
	if payload == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, target)
}
