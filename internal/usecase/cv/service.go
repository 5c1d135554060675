package cv

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"jobboard/internal/domain/cv"
	"jobboard/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cv not found")
	ErrForbidden    = errors.New("cv does not belong to seeker")
	ErrInternal     = errors.New("internal error")
)

type CVUsecase interface {
	Create(ctx context.Context, seekerID uuid.UUID, in cv.CV) (cv.CV, error)
	Update(ctx context.Context, seekerID uuid.UUID, in cv.CV) (cv.CV, error)
	Get(ctx context.Context, seekerID, id uuid.UUID) (cv.CV, error)
	ListMine(ctx context.Context, seekerID uuid.UUID) ([]cv.CV, error)
}

type Service struct {
	cvs repository.CVRepository
}

func NewService(cvs repository.CVRepository) *Service {
	return &Service{cvs: cvs}
}

func (s *Service) Create(ctx context.Context, seekerID uuid.UUID, in cv.CV) (cv.CV, error) {
	in.ID = uuid.New()
	in.SeekerID = seekerID

	in.Normalize()
	if err := in.Validate(); err != nil {
		return cv.CV{}, ErrInvalidInput
	}

	if err := s.cvs.Create(ctx, in); err != nil {
		return cv.CV{}, ErrInternal
	}
	return s.get(ctx, in.ID)
}

func (s *Service) Update(ctx context.Context, seekerID uuid.UUID, in cv.CV) (cv.CV, error) {
	existing, err := s.cvs.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return cv.CV{}, ErrNotFound
		}
		return cv.CV{}, ErrInternal
	}
	if existing.SeekerID != seekerID {
		return cv.CV{}, ErrForbidden
	}

	in.SeekerID = seekerID
	in.Normalize()
	if err := in.Validate(); err != nil {
		return cv.CV{}, ErrInvalidInput
	}

	if err := s.cvs.Update(ctx, in); err != nil {
		return cv.CV{}, ErrInternal
	}
	return s.get(ctx, in.ID)
}

// Get returns one of the seeker's own CVs. A CV is personal data, so reads
// carry the same ownership check as writes.
func (s *Service) Get(ctx context.Context, seekerID, id uuid.UUID) (cv.CV, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return cv.CV{}, err
	}
	if c.SeekerID != seekerID {
		return cv.CV{}, ErrForbidden
	}
	return c, nil
}

func (s *Service) ListMine(ctx context.Context, seekerID uuid.UUID) ([]cv.CV, error) {
	out, err := s.cvs.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	c, err := s.cvs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return cv.CV{}, ErrNotFound
		}
		return cv.CV{}, ErrInternal
	}
	return c, nil
}
