package models

import "time"

// AnswerRecord is one immutable answer fact. Records are appended to the
// room's answers column and never mutated or removed while the room lives.
type AnswerRecord struct {
	UserID              string    `json:"userId"`
	QuestionID          string    `json:"questionId"`
	Answer              bool      `json:"answer"`
	Round               int       `json:"round"`
	AnsweredAt          time.Time `json:"answeredAt"`
	ResponseTimeSeconds float64   `json:"responseTimeSeconds"`
}

// RecordAnswer appends an answer for the room's current question and round.
// It enforces the at-most-one-answer-per-player-per-round guarantee and
// returns ErrAlreadyAnswered on a repeat submission. Response time is
// measured from QuestionStartedAt; if the origin is missing the answer's own
// timestamp is used, yielding zero.
func (r *Room) RecordAnswer(userID string, answer bool, answeredAt time.Time) (*AnswerRecord, error) {
	for i := range r.Answers {
		a := &r.Answers[i]
		if a.UserID == userID && a.QuestionID == r.CurrentQuestion && a.Round == r.CurrentRound {
			return nil, ErrAlreadyAnswered
		}
	}

	start := r.QuestionStartedAt
	if start.IsZero() {
		start = answeredAt
	}
	responseTime := answeredAt.Sub(start).Seconds()
	if responseTime < 0 {
		responseTime = 0
	}

	r.Answers = append(r.Answers, AnswerRecord{
		UserID:              userID,
		QuestionID:          r.CurrentQuestion,
		Answer:              answer,
		Round:               r.CurrentRound,
		AnsweredAt:          answeredAt,
		ResponseTimeSeconds: responseTime,
	})

	return &r.Answers[len(r.Answers)-1], nil
}

// RoundAnswers returns the answers recorded for the given question and round,
// in submission order.
func (r *Room) RoundAnswers(questionID string, round int) []AnswerRecord {
	var out []AnswerRecord
	for _, a := range r.Answers {
		if a.QuestionID == questionID && a.Round == round {
			out = append(out, a)
		}
	}
	return out
}

// CurrentRoundAnswers returns the answers for the active question and round.
func (r *Room) CurrentRoundAnswers() []AnswerRecord {
	return r.RoundAnswers(r.CurrentQuestion, r.CurrentRound)
}

// IsRoundComplete reports whether every current player has answered the given
// question in the given round. A player who answered and then left still
// counts toward completion, hence >= rather than ==.
func (r *Room) IsRoundComplete(questionID string, round int) bool {
	return len(r.RoundAnswers(questionID, round)) >= len(r.Players)
}
