// Package seed loads the starter question bank. It runs from the initial
// migration and from the seed CLI command, and is idempotent: questions are
// keyed by text, so reapplying never duplicates.
package seed

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"
)

type seedQuestion struct {
	Text       string
	Category   string
	Difficulty string
}

var questions = []seedQuestion{
	{"Never have I ever stayed late at work to meet a deadline.", "work", "easy"},
	{"Never have I ever taken a work call in an unusual location.", "work", "medium"},
	{"Never have I ever organized a team lunch or coffee break.", "work", "easy"},
	{"Never have I ever surprised a coworker with a small appreciation gesture.", "work", "medium"},
	{"Never have I ever taken part in a virtual escape room or online trivia session.", "activities", "medium"},
	{"Never have I ever been part of a company-wide project that changed the way we work.", "work", "hard"},
	{"Never have I ever accidentally sent a message to the wrong person.", "general", "easy"},
	{"Never have I ever forgotten someone's name right after being introduced.", "social", "easy"},
	{"Never have I ever pretended to know a celebrity or public figure I saw in person.", "social", "medium"},
	{"Never have I ever taken a selfie in a museum or art gallery.", "activities", "easy"},
	{"Never have I ever accidentally liked an old post when browsing someone's social media.", "social", "easy"},
	{"Never have I ever pulled an all-nighter to finish a project.", "work", "medium"},
	{"Never have I ever forgotten an important birthday.", "social", "easy"},
	{"Never have I ever tried to learn a new language using an app.", "activities", "medium"},
	{"Never have I ever gone camping.", "activities", "easy"},
	{"Never have I ever traveled outside my country.", "travel", "medium"},
	{"Never have I ever cooked a meal from scratch.", "activities", "easy"},
	{"Never have I ever broken a bone.", "general", "medium"},
	{"Never have I ever gone on a blind date.", "social", "medium"},
	{"Never have I ever stayed in a fancy hotel.", "travel", "medium"},
}

// Apply inserts any starter questions not already present.
func Apply(app core.App) error {
	collection, err := app.FindCollectionByNameOrId("questions")
	if err != nil {
		return fmt.Errorf("failed to find questions collection: %w", err)
	}

	existing, err := app.FindAllRecords("questions")
	if err != nil {
		return fmt.Errorf("failed to load existing questions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, record := range existing {
		seen[record.GetString("text")] = true
	}

	added := 0
	for _, q := range questions {
		if seen[q.Text] {
			continue
		}
		record := core.NewRecord(collection)
		record.Set("text", q.Text)
		record.Set("category", q.Category)
		record.Set("difficulty", q.Difficulty)
		record.Set("usage_count", 0)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("failed to seed question: %w", err)
		}
		added++
	}

	if added > 0 {
		logrus.WithField("count", added).Info("seeded question bank")
	}
	return nil
}

// Count returns the size of the starter bank.
func Count() int {
	return len(questions)
}
