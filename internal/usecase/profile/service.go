package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/cv"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/provider"
	"jobboard/internal/domain/seeker"
	"jobboard/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
	ErrInternal     = errors.New("internal error")
)

type UpdateSeekerInput struct {
	FirstName   string
	LastName    string
	Phonenumber *string
	CityID      *uuid.UUID
}

type UpdateProviderInput struct {
	CompanyName string
	Phonenumber *string
	CityID      *uuid.UUID
}

// SeekerInfo is the self-view a seeker's dashboard renders in one fetch:
// profile plus every owned collection.
type SeekerInfo struct {
	Profile      seeker.Seeker
	CVs          []cv.CV
	Applications []application.Application
	SavedJobs    []job.Posting
}

type ProfileUsecase interface {
	Seeker(ctx context.Context, id uuid.UUID) (seeker.Seeker, error)
	SeekerInfo(ctx context.Context, id uuid.UUID) (SeekerInfo, error)
	Provider(ctx context.Context, id uuid.UUID) (provider.Provider, error)
	UpdateSeeker(ctx context.Context, id uuid.UUID, in UpdateSeekerInput) (seeker.Seeker, error)
	UpdateProvider(ctx context.Context, id uuid.UUID, in UpdateProviderInput) (provider.Provider, error)
}

type Service struct {
	seekers      repository.SeekerRepository
	providers    repository.ProviderRepository
	cvs          repository.CVRepository
	applications repository.ApplicationRepository
	saved        repository.SavedItemRepository
	jobs         repository.JobRepository
}

func NewService(
	seekers repository.SeekerRepository,
	providers repository.ProviderRepository,
	cvs repository.CVRepository,
	applications repository.ApplicationRepository,
	saved repository.SavedItemRepository,
	jobs repository.JobRepository,
) *Service {
	return &Service{
		seekers:      seekers,
		providers:    providers,
		cvs:          cvs,
		applications: applications,
		saved:        saved,
		jobs:         jobs,
	}
}

func (s *Service) Seeker(ctx context.Context, id uuid.UUID) (seeker.Seeker, error) {
	sk, err := s.seekers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeekerNotFound) {
			return seeker.Seeker{}, ErrNotFound
		}
		return seeker.Seeker{}, ErrInternal
	}
	return sk, nil
}

func (s *Service) SeekerInfo(ctx context.Context, id uuid.UUID) (SeekerInfo, error) {
	sk, err := s.Seeker(ctx, id)
	if err != nil {
		return SeekerInfo{}, err
	}

	cvs, err := s.cvs.ListBySeeker(ctx, id)
	if err != nil {
		return SeekerInfo{}, ErrInternal
	}
	apps, err := s.applications.ListBySeeker(ctx, id)
	if err != nil {
		return SeekerInfo{}, ErrInternal
	}

	savedIDs, err := s.saved.SavedJobIDs(ctx, id)
	if err != nil {
		return SeekerInfo{}, ErrInternal
	}
	savedJobs := make([]job.Posting, 0, len(savedIDs))
	for _, jobID := range savedIDs {
		p, err := s.jobs.GetByID(ctx, jobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				// Saved row may outlive the posting; skip it.
				continue
			}
			return SeekerInfo{}, ErrInternal
		}
		savedJobs = append(savedJobs, p)
	}

	return SeekerInfo{
		Profile:      sk,
		CVs:          cvs,
		Applications: apps,
		SavedJobs:    savedJobs,
	}, nil
}

func (s *Service) Provider(ctx context.Context, id uuid.UUID) (provider.Provider, error) {
	pr, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return provider.Provider{}, ErrNotFound
		}
		return provider.Provider{}, ErrInternal
	}
	return pr, nil
}

func (s *Service) UpdateSeeker(ctx context.Context, id uuid.UUID, in UpdateSeekerInput) (seeker.Seeker, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return seeker.Seeker{}, ErrInvalidInput
	}

	existing, err := s.Seeker(ctx, id)
	if err != nil {
		return seeker.Seeker{}, err
	}

	existing.FirstName = first
	existing.LastName = last
	existing.Phonenumber = in.Phonenumber
	existing.CityID = in.CityID

	if err := s.seekers.Update(ctx, existing); err != nil {
		return seeker.Seeker{}, ErrInternal
	}
	return s.Seeker(ctx, id)
}

func (s *Service) UpdateProvider(ctx context.Context, id uuid.UUID, in UpdateProviderInput) (provider.Provider, error) {
	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		return provider.Provider{}, ErrInvalidInput
	}

	existing, err := s.Provider(ctx, id)
	if err != nil {
		return provider.Provider{}, err
	}

	existing.CompanyName = company
	existing.Phonenumber = in.Phonenumber
	existing.CityID = in.CityID

	if err := s.providers.Update(ctx, existing); err != nil {
		return provider.Provider{}, ErrInternal
	}
	return s.Provider(ctx, id)
}
