package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/models"
)

// StartingPoints is granted to every new profile.
const StartingPoints = 100

// CreateUser inserts a new profile record.
func (s *RoomStore) CreateUser(name, avatar string) (*core.Record, error) {
	collection, err := s.app.FindCollectionByNameOrId("users")
	if err != nil {
		return nil, fmt.Errorf("failed to find users collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", name)
	record.Set("avatar", avatar)
	record.Set("points", StartingPoints)
	record.Set("daily_points", 0)
	record.Set("games_played", 0)
	record.Set("games_won", 0)
	record.Set("total_points", 0)
	record.Set("last_points_reset", time.Now())

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return record, nil
}

// GetUser loads a profile record by id.
func (s *RoomStore) GetUser(id string) (*core.Record, error) {
	record, err := s.app.FindRecordById("users", id)
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	return record, nil
}

// UserExists reports whether a profile record exists.
func (s *RoomStore) UserExists(id string) (bool, error) {
	_, err := s.app.FindRecordById("users", id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// UpdateUser renames a profile and/or swaps its avatar. Empty values leave
// the current ones in place.
func (s *RoomStore) UpdateUser(id, name, avatar string) (*core.Record, error) {
	record, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		record.Set("name", name)
	}
	if avatar != "" {
		record.Set("avatar", avatar)
	}
	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return record, nil
}

// ApplyPointDeltas mirrors round scoring onto the players' profiles: current
// points, the daily counter and the lifetime total all move together. This
// runs after the room record is saved; a missing profile is skipped rather
// than failing the round.
func (s *RoomStore) ApplyPointDeltas(deltas map[string]int) error {
	for userID, delta := range deltas {
		record, err := s.app.FindRecordById("users", userID)
		if err != nil {
			continue
		}
		record.Set("points", record.GetInt("points")+delta)
		record.Set("daily_points", record.GetInt("daily_points")+delta)
		record.Set("total_points", record.GetInt("total_points")+delta)
		if err := s.app.Save(record); err != nil {
			return fmt.Errorf("failed to mirror points for user %s: %w", userID, err)
		}
	}
	return nil
}

// RecordGameResult bumps games_played for every participant and games_won
// for each winner once a game completes.
func (s *RoomStore) RecordGameResult(playerIDs, winnerIDs []string) error {
	won := make(map[string]bool, len(winnerIDs))
	for _, id := range winnerIDs {
		won[id] = true
	}

	for _, userID := range playerIDs {
		record, err := s.app.FindRecordById("users", userID)
		if err != nil {
			continue
		}
		record.Set("games_played", record.GetInt("games_played")+1)
		if won[userID] {
			record.Set("games_won", record.GetInt("games_won")+1)
		}
		if err := s.app.Save(record); err != nil {
			return fmt.Errorf("failed to record game result for user %s: %w", userID, err)
		}
	}
	return nil
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Points int    `json:"points"`
}

// Leaderboard returns the top profiles for a time frame: "day" ranks by
// daily_points, "week" by current points, "all" by lifetime total. Unknown
// frames fall back to the daily board, matching the request surface.
func (s *RoomStore) Leaderboard(timeFrame string, limit int) ([]LeaderboardEntry, error) {
	column := "daily_points"
	switch timeFrame {
	case "week":
		column = "points"
	case "all":
		column = "total_points"
	}

	records, err := s.app.FindRecordsByFilter(
		"users",
		column+" > 0",
		"-"+column,
		limit,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, LeaderboardEntry{
			UserID: record.Id,
			Name:   record.GetString("name"),
			Avatar: record.GetString("avatar"),
			Points: record.GetInt(column),
		})
	}
	return entries, nil
}

// ResetDailyPoints zeroes every profile's daily counter. Meant to be hit by
// a scheduler around midnight.
func (s *RoomStore) ResetDailyPoints() error {
	records, err := s.app.FindAllRecords("users")
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	now := time.Now()
	for _, record := range records {
		record.Set("daily_points", 0)
		record.Set("last_points_reset", now)
		if err := s.app.Save(record); err != nil {
			return fmt.Errorf("failed to reset daily points for user %s: %w", record.Id, err)
		}
	}
	return nil
}
