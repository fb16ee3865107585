package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"never-have-i-ever-backend/internal/models"
)

// Defaults applied when a create request leaves the knobs at zero.
const (
	DefaultMaxPlayers = 10
	DefaultMaxRounds  = 10
)

// SessionStore is the persistence surface the session controller needs.
// *RoomStore satisfies it; tests swap in an in-memory implementation.
type SessionStore interface {
	CreateRoom(room *models.Room) error
	GetRoom(id string) (*models.Room, error)
	SaveRoom(room *models.Room) error
	DeleteRoom(id string) error
	FindRoomByPasscode(passcode string) (*models.Room, error)
	PickQuestions(n int) ([]string, error)
	GetQuestion(id string) (*models.Question, error)
	UserExists(id string) (bool, error)
	ApplyPointDeltas(deltas map[string]int) error
	RecordGameResult(playerIDs, winnerIDs []string) error
}

// GameSessionController owns every room mutation. All operations on an
// existing room run through the dispatcher, so per room they execute one at a
// time in arrival order; load, mutate and save happen inside the same op with
// no interleaving.
type GameSessionController struct {
	store      SessionStore
	dispatcher *Dispatcher
	log        *logrus.Entry
}

func NewGameSessionController(store SessionStore, dispatcher *Dispatcher) *GameSessionController {
	return &GameSessionController{
		store:      store,
		dispatcher: dispatcher,
		log:        logrus.WithField("component", "game_session"),
	}
}

// CreateRoomParams carries a create request after transport decoding.
type CreateRoomParams struct {
	Name       string
	Type       models.RoomType
	Passcode   string
	HostID     string
	MaxPlayers int
	MaxRounds  int
}

// CreateRoom validates the request, samples the question list up front and
// persists a new waiting room with the host seated. The room id does not
// exist until the record is saved, so this is the one operation that does not
// go through the dispatcher.
func (c *GameSessionController) CreateRoom(p CreateRoomParams) (*models.Room, error) {
	if p.Name == "" || p.HostID == "" {
		return nil, models.ErrMissingFields
	}
	if p.Type == "" {
		p.Type = models.RoomPublic
	}
	if p.Type == models.RoomPrivate && p.Passcode == "" {
		return nil, models.ErrMissingPasscode
	}
	if p.MaxPlayers == 0 {
		p.MaxPlayers = DefaultMaxPlayers
	}
	if p.MaxRounds == 0 {
		p.MaxRounds = DefaultMaxRounds
	}
	if p.MaxPlayers < models.MinRoomPlayers || p.MaxPlayers > models.MaxRoomPlayers ||
		p.MaxRounds < models.MinRoomRounds || p.MaxRounds > models.MaxRoomRounds {
		return nil, models.ErrMissingFields
	}

	if exists, err := c.store.UserExists(p.HostID); err != nil {
		return nil, err
	} else if !exists {
		return nil, models.ErrUserNotFound
	}

	questions, err := c.store.PickQuestions(p.MaxRounds)
	if err != nil {
		return nil, err
	}

	room := models.NewRoom(p.Name, p.Type, p.Passcode, p.HostID, p.MaxPlayers, p.MaxRounds)
	room.Questions = questions
	if err := c.store.CreateRoom(room); err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"room_id": room.ID,
		"host_id": p.HostID,
		"type":    p.Type,
		"rounds":  p.MaxRounds,
	}).Info("room created")

	return room, nil
}

// JoinRoom seats a player in a waiting room. Private rooms require the
// matching passcode; a player already seated is rejected rather than
// silently re-seated.
func (c *GameSessionController) JoinRoom(roomID, userID, passcode string) (*models.Room, error) {
	if exists, err := c.store.UserExists(userID); err != nil {
		return nil, err
	} else if !exists {
		return nil, models.ErrUserNotFound
	}

	var room *models.Room
	var opErr error
	c.dispatcher.Do(roomID, func() {
		room, opErr = c.store.GetRoom(roomID)
		if opErr != nil {
			return
		}
		if room.Type == models.RoomPrivate && room.Passcode != passcode {
			opErr = models.ErrInvalidPasscode
			return
		}
		if room.HasPlayer(userID) {
			opErr = models.ErrAlreadyInRoom
			return
		}
		if room.Status != models.StatusWaiting {
			opErr = models.ErrRoomNotWaiting
			return
		}
		if opErr = room.AddPlayer(userID); opErr != nil {
			return
		}
		opErr = c.store.SaveRoom(room)
	})
	if opErr != nil {
		return nil, opErr
	}
	return room, nil
}

// LeaveResult describes the side effects of a player leaving.
type LeaveResult struct {
	Room        *models.Room
	HostChanged bool
	NewHostID   string
	RoomClosed  bool
}

// LeaveRoom unseats a player. The host role falls to the longest-seated
// remaining player; an emptied room is deleted outright.
func (c *GameSessionController) LeaveRoom(roomID, userID string) (*LeaveResult, error) {
	var result *LeaveResult
	var opErr error
	c.dispatcher.Do(roomID, func() {
		var room *models.Room
		room, opErr = c.store.GetRoom(roomID)
		if opErr != nil {
			return
		}

		hostChanged, empty, err := room.RemovePlayer(userID)
		if err != nil {
			opErr = err
			return
		}

		if empty {
			if opErr = c.store.DeleteRoom(roomID); opErr != nil {
				return
			}
			result = &LeaveResult{Room: room, RoomClosed: true}
			c.log.WithField("room_id", roomID).Info("room closed, last player left")
			return
		}

		if opErr = c.store.SaveRoom(room); opErr != nil {
			return
		}
		result = &LeaveResult{Room: room, HostChanged: hostChanged}
		if hostChanged {
			result.NewHostID = room.HostID
			c.log.WithFields(logrus.Fields{
				"room_id":  roomID,
				"new_host": room.HostID,
			}).Info("host reassigned")
		}
	})
	if opErr != nil {
		return nil, opErr
	}
	return result, nil
}

// StartGame moves a waiting room into play: round one begins with the first
// sampled question and the answer clock starts now. Host only, two players
// minimum.
func (c *GameSessionController) StartGame(roomID, userID string) (*models.Room, error) {
	var room *models.Room
	var opErr error
	c.dispatcher.Do(roomID, func() {
		room, opErr = c.store.GetRoom(roomID)
		if opErr != nil {
			return
		}
		if room.HostID != userID {
			opErr = models.ErrNotHost
			return
		}
		if room.Status != models.StatusWaiting {
			opErr = models.ErrRoomNotWaiting
			return
		}
		if len(room.Players) < models.MinRoomPlayers {
			opErr = models.ErrNotEnoughPlayers
			return
		}

		room.Status = models.StatusPlaying
		room.CurrentRound = 1
		room.CurrentQuestion = room.Questions[0]
		room.QuestionStartedAt = time.Now()
		for i := range room.Players {
			room.Players[i].AnswerStreak = 0
		}
		opErr = c.store.SaveRoom(room)
	})
	if opErr != nil {
		return nil, opErr
	}

	c.log.WithFields(logrus.Fields{
		"room_id": roomID,
		"players": len(room.Players),
	}).Info("game started")

	return room, nil
}

// SubmitResult describes one accepted answer. When the answer completed the
// round, AllAnswered is set and Result carries the scoring preview computed
// from the now-frozen answer set; points are not applied until the host
// advances.
type SubmitResult struct {
	Room        *models.Room
	Answer      models.AnswerRecord
	SpeedBonus  int
	AllAnswered bool
	Result      *RoundResult
}

// SubmitAnswer records a player's answer for the current round. Response time
// is measured from the server-side question start to server receipt; anything
// the client claims about timing is ignored. Each player gets exactly one
// answer per round, and a repeat returns ErrAlreadyAnswered with nothing
// written.
func (c *GameSessionController) SubmitAnswer(roomID, userID string, answer bool) (*SubmitResult, error) {
	var result *SubmitResult
	var opErr error
	c.dispatcher.Do(roomID, func() {
		var room *models.Room
		room, opErr = c.store.GetRoom(roomID)
		if opErr != nil {
			return
		}
		if room.Status != models.StatusPlaying {
			opErr = models.ErrGameNotInProgress
			return
		}
		player := room.Player(userID)
		if player == nil {
			opErr = models.ErrNotInRoom
			return
		}

		record, err := room.RecordAnswer(userID, answer, time.Now())
		if err != nil {
			opErr = err
			return
		}
		player.AnswerStreak++

		result = &SubmitResult{
			Room:       room,
			Answer:     *record,
			SpeedBonus: SpeedBonus(record.ResponseTimeSeconds),
		}
		if room.IsRoundComplete(room.CurrentQuestion, room.CurrentRound) {
			result.AllAnswered = true
			scored := ScoreRound(room.Players, room.CurrentRoundAnswers())
			result.Result = &scored
		}

		opErr = c.store.SaveRoom(room)
	})
	if opErr != nil {
		return nil, opErr
	}
	return result, nil
}

// AdvanceResult describes the outcome of closing out a round.
type AdvanceResult struct {
	Room     *models.Room
	Result   RoundResult
	GameOver bool
	Winners  []models.PlayerEntry
}

// AdvanceRound scores and applies the finished round, then either starts the
// next one or completes the game. This is the only place points and streaks
// are written, so a round is never scored twice. Host only, and every seated
// player must have answered first.
func (c *GameSessionController) AdvanceRound(roomID, userID string) (*AdvanceResult, error) {
	var result *AdvanceResult
	var opErr error
	c.dispatcher.Do(roomID, func() {
		var room *models.Room
		room, opErr = c.store.GetRoom(roomID)
		if opErr != nil {
			return
		}
		if room.HostID != userID {
			opErr = models.ErrNotHost
			return
		}
		if room.Status != models.StatusPlaying {
			opErr = models.ErrGameNotInProgress
			return
		}
		if !room.IsRoundComplete(room.CurrentQuestion, room.CurrentRound) {
			opErr = models.ErrRoundIncomplete
			return
		}

		scored := ScoreRound(room.Players, room.CurrentRoundAnswers())
		for i := range room.Players {
			p := &room.Players[i]
			p.Points += scored.PointDeltas[p.UserID]
			if streak, ok := scored.Streaks[p.UserID]; ok {
				p.AnswerStreak = streak
			}
		}

		result = &AdvanceResult{Room: room, Result: scored}

		// The round counter always moves forward; completion is the counter
		// walking past the configured round count.
		room.CurrentRound++
		if room.CurrentRound > room.MaxRounds {
			room.Status = models.StatusCompleted
			room.CurrentQuestion = ""
			room.QuestionStartedAt = time.Time{}
			result.GameOver = true
			result.Winners = room.Winners()
		} else {
			room.CurrentQuestion = room.Questions[room.CurrentRound-1]
			room.QuestionStartedAt = time.Now()
		}

		if opErr = c.store.SaveRoom(room); opErr != nil {
			result = nil
			return
		}

		// Profile mirroring happens after the room is committed; the room
		// record stays the source of truth for in-game scores.
		if err := c.store.ApplyPointDeltas(scored.PointDeltas); err != nil {
			c.log.WithError(err).WithField("room_id", roomID).Warn("failed to mirror round points to profiles")
		}
		if result.GameOver {
			playerIDs := make([]string, 0, len(room.Players))
			for _, p := range room.Players {
				playerIDs = append(playerIDs, p.UserID)
			}
			winnerIDs := make([]string, 0, len(result.Winners))
			for _, w := range result.Winners {
				winnerIDs = append(winnerIDs, w.UserID)
			}
			if err := c.store.RecordGameResult(playerIDs, winnerIDs); err != nil {
				c.log.WithError(err).WithField("room_id", roomID).Warn("failed to record game result")
			}
		}
	})
	if opErr != nil {
		return nil, opErr
	}

	if result.GameOver {
		c.log.WithField("room_id", roomID).Info("game completed")
	}

	return result, nil
}

// NextQuestionPayload resolves the active question's payload for broadcast.
func (c *GameSessionController) NextQuestionPayload(room *models.Room) (*models.Question, error) {
	if room.CurrentQuestion == "" {
		return nil, models.ErrQuestionNotFound
	}
	return c.store.GetQuestion(room.CurrentQuestion)
}
