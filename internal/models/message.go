package models

type WSMessage struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"roomId,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client → Server message types
const (
	MsgTypeJoinRoom     = "join-room"
	MsgTypeLeaveRoom    = "leave-room"
	MsgTypeStartGame    = "start-game"
	MsgTypeSubmitAnswer = "submit-answer"
	MsgTypeNextRound    = "next-round"
)

// Server → Client event types
const (
	EventRoomData           = "room-data" // initial state sync on connect
	EventPlayerJoined       = "player-joined"
	EventPlayerLeft         = "player-left"
	EventHostChanged        = "host-changed"
	EventRoomClosed         = "room-closed"
	EventGameStarted        = "game-started"
	EventPlayerAnswered     = "player-answered"
	EventAllPlayersAnswered = "all-players-answered"
	EventRoundStarted       = "round-started"
	EventGameEnded          = "game-ended"
	EventLeaderboardUpdated = "leaderboard-updated"
	EventError              = "error"
)
