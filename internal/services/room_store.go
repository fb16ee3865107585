package services

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"never-have-i-ever-backend/internal/models"
)

// RoomStore persists room aggregates as single records in the rooms
// collection. Players, questions and answers are JSON columns, so a load
// returns the complete session state and a save overwrites it wholesale
// (last writer wins; the dispatcher guarantees there is only one writer).
type RoomStore struct {
	app core.App
}

func NewRoomStore(app core.App) *RoomStore {
	return &RoomStore{app: app}
}

// CreateRoom inserts a new room record and fills in the generated id.
func (s *RoomStore) CreateRoom(room *models.Room) error {
	collection, err := s.app.FindCollectionByNameOrId("rooms")
	if err != nil {
		return fmt.Errorf("failed to find rooms collection: %w", err)
	}

	record := core.NewRecord(collection)
	if err := applyRoom(record, room); err != nil {
		return err
	}
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("failed to save room record: %w", err)
	}

	room.ID = record.Id
	return nil
}

// GetRoom loads one room aggregate by id.
func (s *RoomStore) GetRoom(id string) (*models.Room, error) {
	record, err := s.app.FindRecordById("rooms", id)
	if err != nil {
		return nil, models.ErrRoomNotFound
	}
	return recordToRoom(record)
}

// SaveRoom overwrites the room record with the in-memory aggregate.
func (s *RoomStore) SaveRoom(room *models.Room) error {
	record, err := s.app.FindRecordById("rooms", room.ID)
	if err != nil {
		return models.ErrRoomNotFound
	}
	if err := applyRoom(record, room); err != nil {
		return err
	}
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("failed to save room record: %w", err)
	}
	return nil
}

// DeleteRoom removes the room record entirely.
func (s *RoomStore) DeleteRoom(id string) error {
	record, err := s.app.FindRecordById("rooms", id)
	if err != nil {
		return models.ErrRoomNotFound
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete room record: %w", err)
	}
	return nil
}

// ListRooms returns rooms, optionally narrowed by type and/or status.
// Passcodes are not part of the aggregate's JSON shape, so listings are safe
// to return as-is.
func (s *RoomStore) ListRooms(roomType, status string) ([]*models.Room, error) {
	filter := "id != ''"
	params := map[string]any{}
	if roomType != "" {
		filter += " && type = {:type}"
		params["type"] = roomType
	}
	if status != "" {
		filter += " && status = {:status}"
		params["status"] = status
	}

	records, err := s.app.FindRecordsByFilter("rooms", filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*models.Room, 0, len(records))
	for _, record := range records {
		room, err := recordToRoom(record)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// FindRoomByPasscode resolves a private room from its passcode.
func (s *RoomStore) FindRoomByPasscode(passcode string) (*models.Room, error) {
	records, err := s.app.FindRecordsByFilter(
		"rooms",
		"type = 'private' && passcode = {:passcode}",
		"",
		1,
		0,
		map[string]any{"passcode": passcode},
	)
	if err != nil || len(records) == 0 {
		return nil, models.ErrRoomNotFound
	}
	return recordToRoom(records[0])
}

// PickQuestions samples n distinct question ids for a new room and bumps
// their usage counters. Fails when the bank is smaller than n.
func (s *RoomStore) PickQuestions(n int) ([]string, error) {
	records, err := s.app.FindAllRecords("questions")
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	if len(records) < n {
		return nil, models.ErrNotEnoughQuestions
	}

	rand.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	ids := make([]string, 0, n)
	for _, record := range records[:n] {
		record.Set("usage_count", record.GetInt("usage_count")+1)
		if err := s.app.Save(record); err != nil {
			return nil, fmt.Errorf("failed to update question usage: %w", err)
		}
		ids = append(ids, record.Id)
	}
	return ids, nil
}

// GetQuestion loads one question's payload shape.
func (s *RoomStore) GetQuestion(id string) (*models.Question, error) {
	record, err := s.app.FindRecordById("questions", id)
	if err != nil {
		return nil, models.ErrQuestionNotFound
	}
	return &models.Question{
		ID:         record.Id,
		Text:       record.GetString("text"),
		Category:   record.GetString("category"),
		Difficulty: record.GetString("difficulty"),
	}, nil
}

// RandomQuestions returns up to count random questions, optionally filtered
// by category. Used by the public question sampling endpoint.
func (s *RoomStore) RandomQuestions(count int, category string) ([]models.Question, error) {
	var records []*core.Record
	var err error
	if category != "" {
		records, err = s.app.FindRecordsByFilter(
			"questions",
			"category = {:category}",
			"",
			0,
			0,
			map[string]any{"category": category},
		)
	} else {
		records, err = s.app.FindAllRecords("questions")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	rand.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	if count < len(records) {
		records = records[:count]
	}

	questions := make([]models.Question, 0, len(records))
	for _, record := range records {
		questions = append(questions, models.Question{
			ID:         record.Id,
			Text:       record.GetString("text"),
			Category:   record.GetString("category"),
			Difficulty: record.GetString("difficulty"),
		})
	}
	return questions, nil
}

// applyRoom writes the aggregate onto a record.
func applyRoom(record *core.Record, room *models.Room) error {
	record.Set("name", room.Name)
	record.Set("type", string(room.Type))
	record.Set("passcode", room.Passcode)
	record.Set("host_id", room.HostID)
	record.Set("max_players", room.MaxPlayers)
	record.Set("max_rounds", room.MaxRounds)
	record.Set("status", string(room.Status))
	record.Set("current_round", room.CurrentRound)
	record.Set("current_question", room.CurrentQuestion)
	if room.QuestionStartedAt.IsZero() {
		record.Set("question_started_at", "")
	} else {
		record.Set("question_started_at", room.QuestionStartedAt)
	}

	for column, value := range map[string]any{
		"players":   room.Players,
		"questions": room.Questions,
		"answers":   room.Answers,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", column, err)
		}
		record.Set(column, types.JSONRaw(data))
	}
	return nil
}

// recordToRoom reads the aggregate back out of a record.
func recordToRoom(record *core.Record) (*models.Room, error) {
	room := &models.Room{
		ID:              record.Id,
		Name:            record.GetString("name"),
		Type:            models.RoomType(record.GetString("type")),
		Passcode:        record.GetString("passcode"),
		HostID:          record.GetString("host_id"),
		MaxPlayers:      record.GetInt("max_players"),
		MaxRounds:       record.GetInt("max_rounds"),
		Status:          models.RoomStatus(record.GetString("status")),
		CurrentRound:    record.GetInt("current_round"),
		CurrentQuestion: record.GetString("current_question"),
	}
	room.QuestionStartedAt = record.GetDateTime("question_started_at").Time()

	for column, target := range map[string]any{
		"players":   &room.Players,
		"questions": &room.Questions,
		"answers":   &room.Answers,
	} {
		raw := record.GetString(column)
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s for room %s: %w", column, record.Id, err)
		}
	}
	return room, nil
}
