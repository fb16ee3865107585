package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(CreateInitialSchema, dropInitialSchema)
}

// CreateInitialSchema builds the users, questions and rooms collections.
// Exported so tests can apply the schema against a fresh test app.
func CreateInitialSchema(app core.App) error {
	// users collection
	users := core.NewBaseCollection("users")
	users.ListRule = nil
	users.ViewRule = nil
	users.CreateRule = nil
	users.UpdateRule = nil
	users.DeleteRule = nil

	users.Fields.Add(&core.TextField{
		Name:     "name",
		Required: true,
		Max:      50,
	})

	users.Fields.Add(&core.TextField{
		Name: "avatar",
		Max:  500,
	})

	users.Fields.Add(&core.NumberField{
		Name: "points",
	})

	users.Fields.Add(&core.NumberField{
		Name: "daily_points",
	})

	users.Fields.Add(&core.NumberField{
		Name: "games_played",
	})

	users.Fields.Add(&core.NumberField{
		Name: "games_won",
	})

	users.Fields.Add(&core.NumberField{
		Name: "total_points",
	})

	users.Fields.Add(&core.DateField{
		Name: "last_points_reset",
	})

	users.Fields.Add(&core.AutodateField{
		Name:     "created",
		OnCreate: true,
	})

	users.Fields.Add(&core.AutodateField{
		Name:     "updated",
		OnCreate: true,
		OnUpdate: true,
	})

	users.Indexes = []string{
		"CREATE INDEX idx_users_daily_points ON users(daily_points)",
		"CREATE INDEX idx_users_total_points ON users(total_points)",
	}

	if err := app.Save(users); err != nil {
		return err
	}

	// questions collection
	questions := core.NewBaseCollection("questions")
	questions.ListRule = nil
	questions.ViewRule = nil
	questions.CreateRule = nil
	questions.UpdateRule = nil
	questions.DeleteRule = nil

	questions.Fields.Add(&core.TextField{
		Name:     "text",
		Required: true,
		Max:      500,
	})

	questions.Fields.Add(&core.SelectField{
		Name:      "category",
		Required:  true,
		MaxSelect: 1,
		Values:    []string{"work", "social", "activities", "travel", "general"},
	})

	questions.Fields.Add(&core.SelectField{
		Name:      "difficulty",
		Required:  true,
		MaxSelect: 1,
		Values:    []string{"easy", "medium", "hard"},
	})

	questions.Fields.Add(&core.NumberField{
		Name: "usage_count",
	})

	questions.Indexes = []string{
		"CREATE UNIQUE INDEX idx_questions_text ON questions(text)",
		"CREATE INDEX idx_questions_category ON questions(category)",
	}

	if err := app.Save(questions); err != nil {
		return err
	}

	// rooms collection: one record per game, with the full session state in
	// JSON columns
	rooms := core.NewBaseCollection("rooms")
	rooms.ListRule = nil
	rooms.ViewRule = nil
	rooms.CreateRule = nil
	rooms.UpdateRule = nil
	rooms.DeleteRule = nil

	rooms.Fields.Add(&core.TextField{
		Name:     "name",
		Required: true,
		Max:      100,
	})

	rooms.Fields.Add(&core.SelectField{
		Name:      "type",
		Required:  true,
		MaxSelect: 1,
		Values:    []string{"public", "private"},
	})

	rooms.Fields.Add(&core.TextField{
		Name: "passcode",
		Max:  32,
	})

	rooms.Fields.Add(&core.TextField{
		Name:     "host_id",
		Required: true,
		Max:      36,
	})

	rooms.Fields.Add(&core.NumberField{
		Name:     "max_players",
		Required: true,
	})

	rooms.Fields.Add(&core.NumberField{
		Name:     "max_rounds",
		Required: true,
	})

	rooms.Fields.Add(&core.SelectField{
		Name:      "status",
		Required:  true,
		MaxSelect: 1,
		Values:    []string{"waiting", "playing", "completed"},
	})

	rooms.Fields.Add(&core.NumberField{
		Name: "current_round",
	})

	rooms.Fields.Add(&core.TextField{
		Name: "current_question",
		Max:  36,
	})

	rooms.Fields.Add(&core.DateField{
		Name: "question_started_at",
	})

	rooms.Fields.Add(&core.JSONField{
		Name:    "players",
		MaxSize: 51200,
	})

	rooms.Fields.Add(&core.JSONField{
		Name:    "questions",
		MaxSize: 10240,
	})

	rooms.Fields.Add(&core.JSONField{
		Name:    "answers",
		MaxSize: 512000,
	})

	rooms.Fields.Add(&core.AutodateField{
		Name:     "created",
		OnCreate: true,
	})

	rooms.Fields.Add(&core.AutodateField{
		Name:     "updated",
		OnCreate: true,
		OnUpdate: true,
	})

	rooms.Indexes = []string{
		"CREATE INDEX idx_rooms_status ON rooms(status)",
		"CREATE INDEX idx_rooms_type_status ON rooms(type, status)",
		"CREATE INDEX idx_rooms_passcode ON rooms(passcode)",
	}

	return app.Save(rooms)
}

func dropInitialSchema(app core.App) error {
	// Delete in reverse order
	for _, name := range []string{"rooms", "questions", "users"} {
		collection, err := app.FindCollectionByNameOrId(name)
		if err == nil && collection != nil {
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
	}
	return nil
}
