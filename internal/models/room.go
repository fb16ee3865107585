package models

import "time"

type RoomStatus string

const (
	StatusWaiting   RoomStatus = "waiting"
	StatusPlaying   RoomStatus = "playing"
	StatusCompleted RoomStatus = "completed"
)

type RoomType string

const (
	RoomPublic  RoomType = "public"
	RoomPrivate RoomType = "private"
)

// Room size limits, matching the persisted schema constraints.
const (
	MinRoomPlayers = 2
	MaxRoomPlayers = 30
	MinRoomRounds  = 1
	MaxRoomRounds  = 20
)

// Room is the aggregate for one game instance. The whole struct is persisted
// as a single record; Players, Questions and Answers are JSON columns so the
// record always carries the complete session state.
type Room struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Type              RoomType       `json:"type"`
	Passcode          string         `json:"-"`
	HostID            string         `json:"hostId"`
	MaxPlayers        int            `json:"maxPlayers"`
	MaxRounds         int            `json:"maxRounds"`
	Status            RoomStatus     `json:"status"`
	CurrentRound      int            `json:"currentRound"`
	CurrentQuestion   string         `json:"currentQuestion,omitempty"`
	QuestionStartedAt time.Time      `json:"questionStartedAt,omitempty"`
	Players           []PlayerEntry  `json:"players"`
	Questions         []string       `json:"questions"`
	Answers           []AnswerRecord `json:"answers"`
}

// NewRoom creates a waiting room with the host already seated and ready.
func NewRoom(name string, roomType RoomType, passcode, hostID string, maxPlayers, maxRounds int) *Room {
	host := NewPlayerEntry(hostID, true)
	return &Room{
		Name:       name,
		Type:       roomType,
		Passcode:   passcode,
		HostID:     hostID,
		MaxPlayers: maxPlayers,
		MaxRounds:  maxRounds,
		Status:     StatusWaiting,
		Players:    []PlayerEntry{host},
	}
}

func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// Player returns a pointer into the Players slice, or nil when absent.
// Callers must not hold the pointer across appends.
func (r *Room) Player(userID string) *PlayerEntry {
	for i := range r.Players {
		if r.Players[i].UserID == userID {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *Room) HasPlayer(userID string) bool {
	return r.Player(userID) != nil
}

// AddPlayer seats a new player. It validates only membership and capacity;
// status checks belong to the session controller.
func (r *Room) AddPlayer(userID string) error {
	if r.HasPlayer(userID) {
		return ErrAlreadyInRoom
	}
	if r.IsFull() {
		return ErrRoomFull
	}
	r.Players = append(r.Players, NewPlayerEntry(userID, false))
	return nil
}

// RemovePlayer unseats a player, reassigning the host to the first remaining
// player in insertion order when the host leaves. It reports whether the host
// changed and whether the room is now empty (and should be destroyed).
func (r *Room) RemovePlayer(userID string) (hostChanged bool, empty bool, err error) {
	idx := -1
	for i := range r.Players {
		if r.Players[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, false, ErrNotInRoom
	}

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if len(r.Players) == 0 {
		return false, true, nil
	}
	if r.HostID == userID {
		r.HostID = r.Players[0].UserID
		return true, false, nil
	}
	return false, false, nil
}

// Winners returns every player holding the maximum score. Meaningful once the
// game is completed; ties are all reported.
func (r *Room) Winners() []PlayerEntry {
	if len(r.Players) == 0 {
		return nil
	}
	max := r.Players[0].Points
	for _, p := range r.Players[1:] {
		if p.Points > max {
			max = p.Points
		}
	}
	var winners []PlayerEntry
	for _, p := range r.Players {
		if p.Points == max {
			winners = append(winners, p)
		}
	}
	return winners
}
