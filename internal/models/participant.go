package models

// PlayerEntry is one player's seat in a room. Entries live inside the room
// record's players column and are unique by UserID.
type PlayerEntry struct {
	UserID       string `json:"userId"`
	Points       int    `json:"points"`
	IsReady      bool   `json:"isReady"`
	AnswerStreak int    `json:"answerStreak"`
}

func NewPlayerEntry(userID string, ready bool) PlayerEntry {
	return PlayerEntry{
		UserID:  userID,
		IsReady: ready,
	}
}
