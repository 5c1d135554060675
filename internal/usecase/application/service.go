package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/repository"
	jobuc "jobboard/internal/usecase/job"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrJobNotFound        = errors.New("job not found")
	ErrJobExpired         = errors.New("job posting has expired")
	ErrCVNotFound         = errors.New("cv not found")
	ErrNotFound           = errors.New("application not found")
	ErrAlreadyApplied     = errors.New("already applied to this job")
	ErrCoverLetterMissing = errors.New("cover letter is required")
	ErrAnswersMissing     = errors.New("answers to required questions are missing")
	ErrAnswerOutOfRange   = errors.New("numeric answer outside allowed range")
	ErrForbidden          = errors.New("not allowed")
	ErrIllegalTransition  = application.ErrIllegalTransition
	ErrInternal           = errors.New("internal error")
)

var nowFunc = time.Now

type AnswerInput struct {
	QuestionID   uuid.UUID
	TextValue    *string
	NumericValue *float64
}

type ApplyInput struct {
	JobID       uuid.UUID
	CVID        uuid.UUID
	CoverLetter *string
	Answers     []AnswerInput
}

// StatusEvent is pushed to the seeker's websocket connection when a provider
// moves their application.
type StatusEvent struct {
	ApplicationID uuid.UUID          `json:"application_id"`
	JobID         uuid.UUID          `json:"job_id"`
	Status        application.Status `json:"status"`
}

type Notifier interface {
	NotifySeeker(seekerID uuid.UUID, event StatusEvent)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, seekerID uuid.UUID, in ApplyInput) (application.Application, error)
	Transition(ctx context.Context, providerID, applicationID uuid.UUID, action application.Action) (application.Application, error)
	Get(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJob(ctx context.Context, providerID, jobID uuid.UUID) ([]application.Application, error)
	ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]application.Application, error)
}

type Service struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	cvs          repository.CVRepository
	questions    repository.QuestionRepository
	cache        jobuc.Cache
	notifier     Notifier
	logger       *log.Logger
}

func NewService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	cvs repository.CVRepository,
	questions repository.QuestionRepository,
	c jobuc.Cache,
	notifier Notifier,
	logger *log.Logger,
) *Service {
	return &Service{
		applications: applications,
		jobs:         jobs,
		cvs:          cvs,
		questions:    questions,
		cache:        c,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *Service) Apply(ctx context.Context, seekerID uuid.UUID, in ApplyInput) (application.Application, error) {
	if in.JobID == uuid.Nil || in.CVID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	posting, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if posting.Expired(nowFunc()) {
		return application.Application{}, ErrJobExpired
	}

	c, err := s.cvs.GetByID(ctx, in.CVID)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return application.Application{}, ErrCVNotFound
		}
		return application.Application{}, ErrInternal
	}
	if c.SeekerID != seekerID {
		return application.Application{}, ErrForbidden
	}

	if posting.CoverLetterRequired {
		if in.CoverLetter == nil || strings.TrimSpace(*in.CoverLetter) == "" {
			return application.Application{}, ErrCoverLetterMissing
		}
	}

	answers, err := s.validateAnswers(ctx, posting.ID, posting.QuestionRequired, in.Answers)
	if err != nil {
		return application.Application{}, err
	}

	matched := analytics.MatchingSkills(posting.SkillIDs, c.SkillIDs)

	app := application.Application{
		ID:                 uuid.New(),
		JobID:              in.JobID,
		SeekerID:           seekerID,
		CVID:               in.CVID,
		Status:             application.StatusHold,
		MatchedSkillsCount: len(matched),
		CoverLetter:        in.CoverLetter,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	if len(answers) > 0 {
		for i := range answers {
			answers[i].ApplicationID = app.ID
		}
		if err := s.questions.CreateAnswers(ctx, answers); err != nil {
			return application.Application{}, ErrInternal
		}
	}

	s.invalidate(ctx)

	created, err := s.applications.GetByID(ctx, app.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	return created, nil
}

// Transition applies a provider action to an application. Accepting an
// application rejects every other non-terminal application for the same job
// in the same transaction.
func (s *Service) Transition(ctx context.Context, providerID, applicationID uuid.UUID, action application.Action) (application.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if posting.ProviderID != providerID {
		return application.Application{}, ErrForbidden
	}

	next, err := application.Transition(app.Status, action)
	if err != nil {
		return application.Application{}, err
	}

	rejectOthers := action == application.ActionAccept
	if err := s.applications.UpdateStatus(ctx, applicationID, next, rejectOthers); err != nil {
		return application.Application{}, ErrInternal
	}

	s.invalidate(ctx)

	updated, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	if s.notifier != nil {
		s.notifier.NotifySeeker(updated.SeekerID, StatusEvent{
			ApplicationID: updated.ID,
			JobID:         updated.JobID,
			Status:        updated.Status,
		})
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return app, nil
}

func (s *Service) ListByJob(ctx context.Context, providerID, jobID uuid.UUID) ([]application.Application, error) {
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

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *Service) ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]application.Application, error) {
	apps, err := s.applications.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *Service) validateAnswers(ctx context.Context, jobID uuid.UUID, questionRequired bool, in []AnswerInput) ([]repository.Answer, error) {
	questions, err := s.questions.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(questions) == 0 {
		return nil, nil
	}

	byID := make(map[uuid.UUID]repository.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answered := make(map[uuid.UUID]bool, len(in))
	out := make([]repository.Answer, 0, len(in))
	for _, a := range in {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, ErrInvalidInput
		}
		if answered[q.ID] {
			return nil, ErrInvalidInput
		}
		answered[q.ID] = true

		switch q.Kind {
		case repository.QuestionKindText:
			if a.TextValue == nil || strings.TrimSpace(*a.TextValue) == "" {
				return nil, ErrInvalidInput
			}
		case repository.QuestionKindNumeric:
			if a.NumericValue == nil {
				return nil, ErrInvalidInput
			}
			if q.MinValue != nil && *a.NumericValue < *q.MinValue {
				return nil, ErrAnswerOutOfRange
			}
			if q.MaxValue != nil && *a.NumericValue > *q.MaxValue {
				return nil, ErrAnswerOutOfRange
			}
		default:
			return nil, ErrInternal
		}

		out = append(out, repository.Answer{
			ID:           uuid.New(),
			QuestionID:   a.QuestionID,
			TextValue:    a.TextValue,
			NumericValue: a.NumericValue,
		})
	}

	for _, q := range questions {
		if (q.Required || questionRequired) && !answered[q.ID] {
			return nil, ErrAnswersMissing
		}
	}
	return out, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateJobLists(ctx); err != nil && s.logger != nil {
		s.logger.Printf("[Application] cache invalidation failed | err=%v", err)
	}
}
