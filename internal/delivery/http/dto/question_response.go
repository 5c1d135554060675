package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/repository"
)

type QuestionResponse struct {
	ID       uuid.UUID `json:"id"`
	JobID    uuid.UUID `json:"job_id"`
	Prompt   string    `json:"prompt"`
	Kind     string    `json:"kind"`
	Required bool      `json:"required"`
	MinValue *float64  `json:"min_value,omitempty"`
	MaxValue *float64  `json:"max_value,omitempty"`
}

func NewQuestionResponse(q repository.Question) QuestionResponse {
	return QuestionResponse{
		ID:       q.ID,
		JobID:    q.JobID,
		Prompt:   q.Prompt,
		Kind:     q.Kind,
		Required: q.Required,
		MinValue: q.MinValue,
		MaxValue: q.MaxValue,
	}
}

func NewQuestionListResponse(items []repository.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(items))
	for _, q := range items {
		out = append(out, NewQuestionResponse(q))
	}
	return out
}

type AnswerResponse struct {
	ID           uuid.UUID `json:"id"`
	QuestionID   uuid.UUID `json:"question_id"`
	TextValue    *string   `json:"text_value,omitempty"`
	NumericValue *float64  `json:"numeric_value,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAnswerListResponse(items []repository.Answer) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(items))
	for _, a := range items {
		out = append(out, AnswerResponse{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			TextValue:    a.TextValue,
			NumericValue: a.NumericValue,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out
}
