package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/job"
)

type JobResponse struct {
	ID                  uuid.UUID   `json:"id"`
	ProviderID          uuid.UUID   `json:"provider_id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Salary              *float64    `json:"salary,omitempty"`
	Type                string      `json:"type"`
	CityName            *string     `json:"city_name,omitempty"`
	ExpiryDate          *time.Time  `json:"expiry_date,omitempty"`
	Expired             bool        `json:"expired"`
	CoverLetterRequired bool        `json:"cover_letter_required"`
	QuestionRequired    bool        `json:"question_required"`
	CategoryIDs         []uuid.UUID `json:"category_ids"`
	SkillIDs            []uuid.UUID `json:"skill_ids"`
	CreatedAt           time.Time   `json:"created_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:                  p.ID,
		ProviderID:          p.ProviderID,
		Title:               p.Title,
		Description:         p.Description,
		Salary:              p.Salary,
		Type:                string(p.Type),
		CityName:            p.CityName,
		ExpiryDate:          p.ExpiryDate,
		Expired:             p.Expired(time.Now()),
		CoverLetterRequired: p.CoverLetterRequired,
		QuestionRequired:    p.QuestionRequired,
		CategoryIDs:         p.CategoryIDs,
		SkillIDs:            p.SkillIDs,
		CreatedAt:           p.CreatedAt,
	}
}

type RecommendationResponse struct {
	Job               JobResponse `json:"job"`
	MatchedSkillNames []string    `json:"matched_skill_names"`
}

func NewJobListResponse(items []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewJobResponse(p))
	}
	return out
}
