package models

import (
	"encoding/json"
	"time"
)

// QuestionResponse is a single answered survey question. The answer is kept as
// raw JSON because scale questions answer with a number while text and
// multiple-choice questions answer with a string.
type QuestionResponse struct {
	QuestionID   int             `json:"questionId"`
	QuestionText string          `json:"questionText"`
	Answer       json.RawMessage `json:"answer"`
}

// Question is one survey question produced by the recommendation gateway.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"` // "multiple-choice", "scale" or "text"
	Options  []string `json:"options,omitempty"`
	Category string   `json:"category"`
}

// Assessment is one survey-submission-and-analysis cycle for a user.
// Results stays null until the gateway analysis has completed; an older
// assessment is superseded the moment a newer one is created for the same user.
type Assessment struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId"`
	Responses   []QuestionResponse `json:"responses"`
	Results     json.RawMessage    `json:"results"` // null while unanalyzed
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Analyzed reports whether the gateway has populated results for this assessment.
func (a *Assessment) Analyzed() bool {
	return len(a.Results) > 0 && string(a.Results) != "null"
}
