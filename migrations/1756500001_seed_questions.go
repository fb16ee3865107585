package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"

	"never-have-i-ever-backend/internal/seed"
)

func init() {
	m.Register(SeedQuestions, func(app core.App) error {
		// Down migration: the question bank is cheap to drop wholesale
		records, err := app.FindAllRecords("questions")
		if err != nil {
			return nil
		}
		for _, record := range records {
			if err := app.Delete(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedQuestions loads the starter question bank. Idempotent.
func SeedQuestions(app core.App) error {
	return seed.Apply(app)
}
