package question

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrNotFound     = errors.New("application not found")
	ErrForbidden    = errors.New("not allowed")
	ErrInternal     = errors.New("internal error")
)

type QuestionInput struct {
	Prompt   string
	Kind     string
	Required bool
	MinValue *float64
	MaxValue *float64
}

type QuestionUsecase interface {
	ReplaceForJob(ctx context.Context, providerID, jobID uuid.UUID, in []QuestionInput) ([]repository.Question, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]repository.Question, error)
	AnswersForApplication(ctx context.Context, providerID, applicationID uuid.UUID) ([]repository.Answer, error)
}

type Service struct {
	questions    repository.QuestionRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
}

func NewService(
	questions repository.QuestionRepository,
	jobs repository.JobRepository,
	applications repository.ApplicationRepository,
) *Service {
	return &Service{questions: questions, jobs: jobs, applications: applications}
}

// ReplaceForJob swaps the job's question set atomically. Answers already given
// against removed questions are deleted by the cascade.
func (s *Service) ReplaceForJob(ctx context.Context, providerID, jobID uuid.UUID, in []QuestionInput) ([]repository.Question, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if posting.ProviderID != providerID {
		return nil, ErrForbidden
	}

	questions := make([]repository.Question, 0, len(in))
	for _, q := range in {
		prompt := strings.TrimSpace(q.Prompt)
		if prompt == "" {
			return nil, ErrInvalidInput
		}
		switch q.Kind {
		case repository.QuestionKindText:
			if q.MinValue != nil || q.MaxValue != nil {
				return nil, ErrInvalidInput
			}
		case repository.QuestionKindNumeric:
			if q.MinValue != nil && q.MaxValue != nil && *q.MinValue > *q.MaxValue {
				return nil, ErrInvalidInput
			}
		default:
			return nil, ErrInvalidInput
		}

		questions = append(questions, repository.Question{
			ID:       uuid.New(),
			JobID:    jobID,
			Prompt:   prompt,
			Kind:     q.Kind,
			Required: q.Required,
			MinValue: q.MinValue,
			MaxValue: q.MaxValue,
		})
	}

	if err := s.questions.ReplaceForJob(ctx, jobID, questions); err != nil {
		return nil, ErrInternal
	}
	return s.ListByJob(ctx, jobID)
}

func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]repository.Question, error) {
	out, err := s.questions.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) AnswersForApplication(ctx context.Context, providerID, applicationID uuid.UUID) ([]repository.Answer, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, ErrInternal
	}
	if posting.ProviderID != providerID {
		return nil, ErrForbidden
	}

	out, err := s.questions.ListAnswersByApplication(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
