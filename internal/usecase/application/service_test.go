package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/cv"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

type mockAppRepo struct {
	apps map[uuid.UUID]application.Application

	createErr error
	created   *application.Application

	lastStatus       application.Status
	lastRejectOthers bool
	updated          bool
}

func (m *mockAppRepo) Create(_ context.Context, a application.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = &a
	if m.apps == nil {
		m.apps = map[uuid.UUID]application.Application{}
	}
	m.apps[a.ID] = a
	return nil
}

func (m *mockAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockAppRepo) ListByJob(context.Context, uuid.UUID) ([]application.Application, error) {
	return nil, nil
}

func (m *mockAppRepo) ListBySeeker(context.Context, uuid.UUID) ([]application.Application, error) {
	return nil, nil
}

func (m *mockAppRepo) ListAllStatuses(context.Context) ([]application.Status, error) {
	return nil, nil
}

func (m *mockAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status, rejectOthers bool) error {
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	m.apps[id] = a
	m.lastStatus = status
	m.lastRejectOthers = rejectOthers
	m.updated = true
	return nil
}

type mockJobRepo struct {
	jobs map[uuid.UUID]job.Posting
}

func (m mockJobRepo) Create(context.Context, job.Posting) error { return nil }
func (m mockJobRepo) Update(context.Context, job.Posting) error { return nil }
func (m mockJobRepo) Delete(context.Context, uuid.UUID) error   { return nil }
func (m mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := m.jobs[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return p, nil
}
func (m mockJobRepo) List(context.Context, repository.JobListFilter) ([]job.Posting, int, error) {
	return nil, 0, nil
}
func (m mockJobRepo) ListCityNames(context.Context) ([]string, error)               { return nil, nil }
func (m mockJobRepo) SkillIDsByJob(context.Context, uuid.UUID) ([]uuid.UUID, error) { return nil, nil }

type mockCVRepo struct {
	cvs map[uuid.UUID]cv.CV
}

func (m mockCVRepo) Create(context.Context, cv.CV) error { return nil }
func (m mockCVRepo) Update(context.Context, cv.CV) error { return nil }
func (m mockCVRepo) GetByID(_ context.Context, id uuid.UUID) (cv.CV, error) {
	c, ok := m.cvs[id]
	if !ok {
		return cv.CV{}, repository.ErrCVNotFound
	}
	return c, nil
}
func (m mockCVRepo) ListBySeeker(context.Context, uuid.UUID) ([]cv.CV, error)     { return nil, nil }
func (m mockCVRepo) SkillIDsByCV(context.Context, uuid.UUID) ([]uuid.UUID, error) { return nil, nil }

type mockQuestionRepo struct {
	questions []repository.Question

	answers []repository.Answer
}

func (m *mockQuestionRepo) ReplaceForJob(context.Context, uuid.UUID, []repository.Question) error {
	return nil
}
func (m *mockQuestionRepo) ListByJob(context.Context, uuid.UUID) ([]repository.Question, error) {
	return m.questions, nil
}
func (m *mockQuestionRepo) CreateAnswers(_ context.Context, answers []repository.Answer) error {
	m.answers = append(m.answers, answers...)
	return nil
}
func (m *mockQuestionRepo) ListAnswersByApplication(context.Context, uuid.UUID) ([]repository.Answer, error) {
	return m.answers, nil
}

type recordingNotifier struct {
	seekerID uuid.UUID
	events   []StatusEvent
}

func (n *recordingNotifier) NotifySeeker(seekerID uuid.UUID, event StatusEvent) {
	n.seekerID = seekerID
	n.events = append(n.events, event)
}

func fixedSkills(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestApply_CountsMatchedSkills(t *testing.T) {
	jobID, cvID, seekerID := uuid.New(), uuid.New(), uuid.New()
	shared := fixedSkills(2)

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {
		ID:         jobID,
		ProviderID: uuid.New(),
		SkillIDs:   append(shared, uuid.New()),
	}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {
		ID:       cvID,
		SeekerID: seekerID,
		SkillIDs: append(shared, uuid.New(), uuid.New()),
	}}}
	apps := &mockAppRepo{}

	svc := NewService(apps, jobs, cvs, &mockQuestionRepo{}, nil, nil, nil)
	created, err := svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.MatchedSkillsCount != 2 {
		t.Fatalf("expected 2 matched skills, got %d", created.MatchedSkillsCount)
	}
	if created.Status != application.StatusHold {
		t.Fatalf("expected initial status hold, got %s", created.Status)
	}
}

func TestApply_RejectsExpiredJob(t *testing.T) {
	jobID, cvID, seekerID := uuid.New(), uuid.New(), uuid.New()
	past := time.Now().Add(-24 * time.Hour)

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, ExpiryDate: &past}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID, SeekerID: seekerID}}}

	svc := NewService(&mockAppRepo{}, jobs, cvs, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID})
	if !errors.Is(err, ErrJobExpired) {
		t.Fatalf("expected ErrJobExpired, got %v", err)
	}
}

func TestApply_RequiresCoverLetter(t *testing.T) {
	jobID, cvID, seekerID := uuid.New(), uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, CoverLetterRequired: true}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID, SeekerID: seekerID}}}

	svc := NewService(&mockAppRepo{}, jobs, cvs, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID})
	if !errors.Is(err, ErrCoverLetterMissing) {
		t.Fatalf("expected ErrCoverLetterMissing, got %v", err)
	}

	blank := "   "
	_, err = svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID, CoverLetter: &blank})
	if !errors.Is(err, ErrCoverLetterMissing) {
		t.Fatalf("expected ErrCoverLetterMissing for blank letter, got %v", err)
	}
}

func TestApply_RejectsForeignCV(t *testing.T) {
	jobID, cvID := uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID, SeekerID: uuid.New()}}}

	svc := NewService(&mockAppRepo{}, jobs, cvs, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{JobID: jobID, CVID: cvID})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApply_DuplicateMapsToAlreadyApplied(t *testing.T) {
	jobID, cvID, seekerID := uuid.New(), uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID, SeekerID: seekerID}}}
	apps := &mockAppRepo{createErr: repository.ErrAlreadyApplied}

	svc := NewService(apps, jobs, cvs, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_ValidatesRequiredAndNumericAnswers(t *testing.T) {
	jobID, cvID, seekerID := uuid.New(), uuid.New(), uuid.New()
	textQ := uuid.New()
	numQ := uuid.New()
	min, max := 0.0, 10.0

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}
	cvs := mockCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID, SeekerID: seekerID}}}
	questions := &mockQuestionRepo{questions: []repository.Question{
		{ID: textQ, JobID: jobID, Prompt: "Why us?", Kind: repository.QuestionKindText, Required: true},
		{ID: numQ, JobID: jobID, Prompt: "Years of Go", Kind: repository.QuestionKindNumeric, Required: true, MinValue: &min, MaxValue: &max},
	}}

	svc := NewService(&mockAppRepo{}, jobs, cvs, questions, nil, nil, nil)

	_, err := svc.Apply(context.Background(), seekerID, ApplyInput{JobID: jobID, CVID: cvID})
	if !errors.Is(err, ErrAnswersMissing) {
		t.Fatalf("expected ErrAnswersMissing, got %v", err)
	}

	text := "culture"
	tooBig := 99.0
	_, err = svc.Apply(context.Background(), seekerID, ApplyInput{
		JobID: jobID, CVID: cvID,
		Answers: []AnswerInput{
			{QuestionID: textQ, TextValue: &text},
			{QuestionID: numQ, NumericValue: &tooBig},
		},
	})
	if !errors.Is(err, ErrAnswerOutOfRange) {
		t.Fatalf("expected ErrAnswerOutOfRange, got %v", err)
	}

	ok := 3.0
	created, err := svc.Apply(context.Background(), seekerID, ApplyInput{
		JobID: jobID, CVID: cvID,
		Answers: []AnswerInput{
			{QuestionID: textQ, TextValue: &text},
			{QuestionID: numQ, NumericValue: &ok},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(questions.answers) != 2 {
		t.Fatalf("expected 2 stored answers, got %d", len(questions.answers))
	}
	for _, a := range questions.answers {
		if a.ApplicationID != created.ID {
			t.Fatalf("answer not linked to application")
		}
	}
}

func TestTransition_AcceptRejectsOthersAndNotifies(t *testing.T) {
	providerID, seekerID := uuid.New(), uuid.New()
	jobID, appID := uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, ProviderID: providerID}}}
	apps := &mockAppRepo{apps: map[uuid.UUID]application.Application{appID: {
		ID: appID, JobID: jobID, SeekerID: seekerID, Status: application.StatusFinalStep,
	}}}
	notifier := &recordingNotifier{}

	svc := NewService(apps, jobs, mockCVRepo{}, &mockQuestionRepo{}, nil, notifier, nil)
	updated, err := svc.Transition(context.Background(), providerID, appID, application.ActionAccept)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if !apps.lastRejectOthers {
		t.Fatalf("expected accept to reject sibling applications")
	}
	if len(notifier.events) != 1 || notifier.seekerID != seekerID {
		t.Fatalf("expected one notification to seeker, got %+v", notifier.events)
	}
	if notifier.events[0].Status != application.StatusAccepted {
		t.Fatalf("notification carries wrong status: %s", notifier.events[0].Status)
	}
}

func TestTransition_IllegalFromTerminal(t *testing.T) {
	providerID := uuid.New()
	jobID, appID := uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, ProviderID: providerID}}}
	apps := &mockAppRepo{apps: map[uuid.UUID]application.Application{appID: {
		ID: appID, JobID: jobID, Status: application.StatusRejected,
	}}}

	svc := NewService(apps, jobs, mockCVRepo{}, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Transition(context.Background(), providerID, appID, application.ActionNext)
	if !errors.Is(err, application.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if apps.updated {
		t.Fatalf("illegal transition must not touch storage")
	}
}

func TestTransition_ForeignProviderForbidden(t *testing.T) {
	jobID, appID := uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, ProviderID: uuid.New()}}}
	apps := &mockAppRepo{apps: map[uuid.UUID]application.Application{appID: {
		ID: appID, JobID: jobID, Status: application.StatusHold,
	}}}

	svc := NewService(apps, jobs, mockCVRepo{}, &mockQuestionRepo{}, nil, nil, nil)
	_, err := svc.Transition(context.Background(), uuid.New(), appID, application.ActionNext)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTransition_NonAcceptKeepsSiblings(t *testing.T) {
	providerID := uuid.New()
	jobID, appID := uuid.New(), uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID, ProviderID: providerID}}}
	apps := &mockAppRepo{apps: map[uuid.UUID]application.Application{appID: {
		ID: appID, JobID: jobID, Status: application.StatusHold,
	}}}

	svc := NewService(apps, jobs, mockCVRepo{}, &mockQuestionRepo{}, nil, nil, nil)
	updated, err := svc.Transition(context.Background(), providerID, appID, application.ActionNext)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusNextStep {
		t.Fatalf("expected next_step, got %s", updated.Status)
	}
	if apps.lastRejectOthers {
		t.Fatalf("non-accept transitions must not reject siblings")
	}
}
