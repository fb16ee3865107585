package models

import "errors"

// Game errors, grouped by how the HTTP layer reports them.
var (
	// Validation
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingPasscode    = errors.New("private rooms require a passcode")
	ErrNotEnoughQuestions = errors.New("question bank is too small for the requested rounds")

	// Not found
	ErrRoomNotFound     = errors.New("room not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")

	// State conflicts
	ErrRoomNotWaiting    = errors.New("room has already started")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrRoomFull          = errors.New("room is full")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players to start")
	ErrRoundIncomplete   = errors.New("all players must answer before advancing")

	// Authorization
	ErrNotHost         = errors.New("only the host can perform this action")
	ErrInvalidPasscode = errors.New("invalid passcode")

	// Duplicates
	ErrAlreadyInRoom   = errors.New("player is already in this room")
	ErrAlreadyAnswered = errors.New("player has already answered this question")

	// Membership
	ErrNotInRoom = errors.New("player is not in this room")
)
