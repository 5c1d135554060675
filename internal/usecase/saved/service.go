package saved

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"jobboard/internal/domain/cv"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrCVNotFound  = errors.New("cv not found")
	ErrInternal    = errors.New("internal error")
)

// ToggleResult reports whether the call changed anything. Saving an already
// saved item and unsaving a missing one both succeed with Changed=false, so
// retried requests cannot fail or double-apply.
type ToggleResult struct {
	Saved   bool
	Changed bool
}

type SavedUsecase interface {
	SaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (ToggleResult, error)
	UnsaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (ToggleResult, error)
	SavedJobs(ctx context.Context, seekerID uuid.UUID) ([]job.Posting, error)
	SaveCV(ctx context.Context, providerID, cvID uuid.UUID) (ToggleResult, error)
	UnsaveCV(ctx context.Context, providerID, cvID uuid.UUID) (ToggleResult, error)
	SavedCVs(ctx context.Context, providerID uuid.UUID) ([]cv.CV, error)
}

type Service struct {
	saved repository.SavedItemRepository
	jobs  repository.JobRepository
	cvs   repository.CVRepository
}

func NewService(saved repository.SavedItemRepository, jobs repository.JobRepository, cvs repository.CVRepository) *Service {
	return &Service{saved: saved, jobs: jobs, cvs: cvs}
}

func (s *Service) SaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (ToggleResult, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ToggleResult{}, ErrJobNotFound
		}
		return ToggleResult{}, ErrInternal
	}

	changed, err := s.saved.SaveJob(ctx, seekerID, jobID)
	if err != nil {
		return ToggleResult{}, ErrInternal
	}
	return ToggleResult{Saved: true, Changed: changed}, nil
}

func (s *Service) UnsaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (ToggleResult, error) {
	changed, err := s.saved.UnsaveJob(ctx, seekerID, jobID)
	if err != nil {
		return ToggleResult{}, ErrInternal
	}
	return ToggleResult{Saved: false, Changed: changed}, nil
}

func (s *Service) SavedJobs(ctx context.Context, seekerID uuid.UUID) ([]job.Posting, error) {
	ids, err := s.saved.SavedJobIDs(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]job.Posting, 0, len(ids))
	for _, id := range ids {
		p, err := s.jobs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				// Saved row may outlive the posting; skip it.
				continue
			}
			return nil, ErrInternal
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) SaveCV(ctx context.Context, providerID, cvID uuid.UUID) (ToggleResult, error) {
	if _, err := s.cvs.GetByID(ctx, cvID); err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return ToggleResult{}, ErrCVNotFound
		}
		return ToggleResult{}, ErrInternal
	}

	changed, err := s.saved.SaveCV(ctx, providerID, cvID)
	if err != nil {
		return ToggleResult{}, ErrInternal
	}
	return ToggleResult{Saved: true, Changed: changed}, nil
}

func (s *Service) UnsaveCV(ctx context.Context, providerID, cvID uuid.UUID) (ToggleResult, error) {
	changed, err := s.saved.UnsaveCV(ctx, providerID, cvID)
	if err != nil {
		return ToggleResult{}, ErrInternal
	}
	return ToggleResult{Saved: false, Changed: changed}, nil
}

func (s *Service) SavedCVs(ctx context.Context, providerID uuid.UUID) ([]cv.CV, error) {
	ids, err := s.saved.SavedCVIDs(ctx, providerID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]cv.CV, 0, len(ids))
	for _, id := range ids {
		c, err := s.cvs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCVNotFound) {
				continue
			}
			return nil, ErrInternal
		}
		out = append(out, c)
	}
	return out, nil
}
