package services

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"never-have-i-ever-backend/internal/config"
	"never-have-i-ever-backend/internal/models"
)

// MessageHandler processes one decoded client message. Handlers run on their
// own goroutine so a slow handler never stalls the hub loop.
type MessageHandler func(client *Client, msg *models.WSMessage)

// Hub fans realtime events out to every connection in a room. Membership
// changes and broadcasts all flow through the run loop, so the room map is
// only ever touched from one goroutine.
type Hub struct {
	rooms map[string]map[*Client]bool

	broadcast     chan *BroadcastMessage
	register      chan *Client
	unregister    chan *Client
	handleMessage chan *ClientMessage

	handler MessageHandler
	metrics *Metrics
	log     *logrus.Entry
}

type BroadcastMessage struct {
	RoomID  string
	Exclude *Client // optional: skip the originating connection
	Message *models.WSMessage
}

func NewHub(metrics *Metrics) *Hub {
	return &Hub{
		rooms:         make(map[string]map[*Client]bool),
		broadcast:     make(chan *BroadcastMessage, config.HubBroadcastBufferSize),
		register:      make(chan *Client, config.HubRegisterBufferSize),
		unregister:    make(chan *Client, config.HubRegisterBufferSize),
		handleMessage: make(chan *ClientMessage, config.HubMessageBufferSize),
		metrics:       metrics,
		log:           logrus.WithField("component", "hub"),
	}
}

// SetHandler wires the inbound message handler. Must be called before Run.
func (h *Hub) SetHandler(handler MessageHandler) {
	h.handler = handler
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastToRoom(msg)

		case cm := <-h.handleMessage:
			h.dispatchMessage(cm)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	if h.rooms[client.roomID] == nil {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true
	h.metrics.IncrementConnections()

	h.log.WithFields(logrus.Fields{
		"room_id": client.roomID,
		"user_id": client.userID,
		"in_room": len(h.rooms[client.roomID]),
	}).Debug("websocket registered")
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.rooms[client.roomID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.Close()
	h.metrics.DecrementConnections()

	if len(clients) == 0 {
		delete(h.rooms, client.roomID)
	}
}

func (h *Hub) broadcastToRoom(msg *BroadcastMessage) {
	clients := h.rooms[msg.RoomID]
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(msg.Message)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal broadcast")
		h.metrics.IncrementBroadcastErrors()
		return
	}

	for client := range clients {
		if client == msg.Exclude {
			continue
		}
		client.Send(data)
	}
}

func (h *Hub) dispatchMessage(cm *ClientMessage) {
	var msg models.WSMessage
	if err := json.Unmarshal(cm.Message, &msg); err != nil {
		h.SendToClient(cm.Client, &models.WSMessage{
			Type:    models.EventError,
			Payload: map[string]string{"message": "invalid message format"},
		})
		return
	}

	if h.handler != nil {
		go h.handler(cm.Client, &msg)
	}
}

// BroadcastToRoom queues an event for every connection in a room.
func (h *Hub) BroadcastToRoom(roomID string, message *models.WSMessage) {
	h.broadcast <- &BroadcastMessage{RoomID: roomID, Message: message}
}

// BroadcastToOthers queues an event for everyone in a room except one client.
func (h *Hub) BroadcastToOthers(roomID string, exclude *Client, message *models.WSMessage) {
	h.broadcast <- &BroadcastMessage{RoomID: roomID, Exclude: exclude, Message: message}
}

// SendToClient delivers an event to a single connection.
func (h *Hub) SendToClient(client *Client, message *models.WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal client message")
		return
	}
	client.Send(data)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
