package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/cv"
)

type EducationResponse struct {
	ID        uuid.UUID  `json:"id"`
	School    string     `json:"school"`
	Degree    *string    `json:"degree,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Ongoing   bool       `json:"ongoing"`
}

type ExperienceResponse struct {
	ID          uuid.UUID  `json:"id"`
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Ongoing     bool       `json:"ongoing"`
}

type CVResponse struct {
	ID          uuid.UUID            `json:"id"`
	SeekerID    uuid.UUID            `json:"seeker_id"`
	SkillIDs    []uuid.UUID          `json:"skill_ids"`
	Educations  []EducationResponse  `json:"educations"`
	Experiences []ExperienceResponse `json:"experiences"`
	CoverLetter *string              `json:"cover_letter,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func NewCVResponse(c cv.CV) CVResponse {
	edus := make([]EducationResponse, 0, len(c.Educations))
	for _, e := range c.Educations {
		edus = append(edus, EducationResponse{
			ID:        e.ID,
			School:    e.School,
			Degree:    e.Degree,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Ongoing:   e.Ongoing,
		})
	}

	exps := make([]ExperienceResponse, 0, len(c.Experiences))
	for _, e := range c.Experiences {
		exps = append(exps, ExperienceResponse{
			ID:          e.ID,
			Company:     e.Company,
			Title:       e.Title,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Ongoing:     e.Ongoing,
		})
	}

	return CVResponse{
		ID:          c.ID,
		SeekerID:    c.SeekerID,
		SkillIDs:    c.SkillIDs,
		Educations:  edus,
		Experiences: exps,
		CoverLetter: c.CoverLetter,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCVListResponse(items []cv.CV) []CVResponse {
	out := make([]CVResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCVResponse(c))
	}
	return out
}
