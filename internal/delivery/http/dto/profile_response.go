package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/provider"
	"jobboard/internal/domain/seeker"
	ucprofile "jobboard/internal/usecase/profile"
)

type SeekerResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phonenumber *string   `json:"phonenumber,omitempty"`
	CityName    *string   `json:"city_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSeekerResponse(s seeker.Seeker) SeekerResponse {
	return SeekerResponse{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Phonenumber: s.Phonenumber,
		CityName:    s.CityName,
		CreatedAt:   s.CreatedAt,
	}
}

type SeekerInfoResponse struct {
	Profile      SeekerResponse        `json:"profile"`
	CVs          []CVResponse          `json:"cvs"`
	Applications []ApplicationResponse `json:"applications"`
	SavedJobs    []JobResponse         `json:"saved_jobs"`
}

func NewSeekerInfoResponse(info ucprofile.SeekerInfo) SeekerInfoResponse {
	return SeekerInfoResponse{
		Profile:      NewSeekerResponse(info.Profile),
		CVs:          NewCVListResponse(info.CVs),
		Applications: NewApplicationListResponse(info.Applications),
		SavedJobs:    NewJobListResponse(info.SavedJobs),
	}
}

type ProviderResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phonenumber *string   `json:"phonenumber,omitempty"`
	CityName    *string   `json:"city_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProviderResponse(p provider.Provider) ProviderResponse {
	return ProviderResponse{
		ID:          p.ID,
		CompanyName: p.CompanyName,
		Email:       p.Email,
		Phonenumber: p.Phonenumber,
		CityName:    p.CityName,
		CreatedAt:   p.CreatedAt,
	}
}
