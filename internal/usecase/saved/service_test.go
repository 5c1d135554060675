package saved

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/cv"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

type pairKey struct{ actor, subject uuid.UUID }

// memSaved mirrors the ON CONFLICT DO NOTHING semantics of the Postgres
// implementation: save and unsave report whether they changed anything.
type memSaved struct {
	jobs map[pairKey]bool
	cvs  map[pairKey]bool
}

func newMemSaved() *memSaved {
	return &memSaved{jobs: map[pairKey]bool{}, cvs: map[pairKey]bool{}}
}

func (m *memSaved) SaveJob(_ context.Context, seekerID, jobID uuid.UUID) (bool, error) {
	k := pairKey{seekerID, jobID}
	if m.jobs[k] {
		return false, nil
	}
	m.jobs[k] = true
	return true, nil
}

func (m *memSaved) UnsaveJob(_ context.Context, seekerID, jobID uuid.UUID) (bool, error) {
	k := pairKey{seekerID, jobID}
	if !m.jobs[k] {
		return false, nil
	}
	delete(m.jobs, k)
	return true, nil
}

func (m *memSaved) SavedJobIDs(_ context.Context, seekerID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for k := range m.jobs {
		if k.actor == seekerID {
			out = append(out, k.subject)
		}
	}
	return out, nil
}

func (m *memSaved) SaveCV(_ context.Context, providerID, cvID uuid.UUID) (bool, error) {
	k := pairKey{providerID, cvID}
	if m.cvs[k] {
		return false, nil
	}
	m.cvs[k] = true
	return true, nil
}

func (m *memSaved) UnsaveCV(_ context.Context, providerID, cvID uuid.UUID) (bool, error) {
	k := pairKey{providerID, cvID}
	if !m.cvs[k] {
		return false, nil
	}
	delete(m.cvs, k)
	return true, nil
}

func (m *memSaved) SavedCVIDs(_ context.Context, providerID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for k := range m.cvs {
		if k.actor == providerID {
			out = append(out, k.subject)
		}
	}
	return out, nil
}

type stubJobRepo struct {
	jobs map[uuid.UUID]job.Posting
}

func (s stubJobRepo) Create(context.Context, job.Posting) error { return nil }
func (s stubJobRepo) Update(context.Context, job.Posting) error { return nil }
func (s stubJobRepo) Delete(context.Context, uuid.UUID) error   { return nil }
func (s stubJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := s.jobs[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return p, nil
}
func (s stubJobRepo) List(context.Context, repository.JobListFilter) ([]job.Posting, int, error) {
	return nil, 0, nil
}
func (s stubJobRepo) ListCityNames(context.Context) ([]string, error)               { return nil, nil }
func (s stubJobRepo) SkillIDsByJob(context.Context, uuid.UUID) ([]uuid.UUID, error) { return nil, nil }

type stubCVRepo struct {
	cvs map[uuid.UUID]cv.CV
}

func (s stubCVRepo) Create(context.Context, cv.CV) error { return nil }
func (s stubCVRepo) Update(context.Context, cv.CV) error { return nil }
func (s stubCVRepo) GetByID(_ context.Context, id uuid.UUID) (cv.CV, error) {
	c, ok := s.cvs[id]
	if !ok {
		return cv.CV{}, repository.ErrCVNotFound
	}
	return c, nil
}
func (s stubCVRepo) ListBySeeker(context.Context, uuid.UUID) ([]cv.CV, error)     { return nil, nil }
func (s stubCVRepo) SkillIDsByCV(context.Context, uuid.UUID) ([]uuid.UUID, error) { return nil, nil }

func TestSaveJob_IdempotentRetry(t *testing.T) {
	seekerID, jobID := uuid.New(), uuid.New()
	svc := NewService(newMemSaved(), stubJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}, stubCVRepo{})

	first, err := svc.SaveJob(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !first.Saved || !first.Changed {
		t.Fatalf("first save should change state, got %+v", first)
	}

	second, err := svc.SaveJob(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("retried save must not fail: %v", err)
	}
	if !second.Saved || second.Changed {
		t.Fatalf("retried save should be a no-op, got %+v", second)
	}

	jobs, err := svc.SavedJobs(context.Background(), seekerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected exactly one saved job, got %d", len(jobs))
	}
}

func TestUnsaveJob_MissingIsNoOp(t *testing.T) {
	seekerID, jobID := uuid.New(), uuid.New()
	svc := NewService(newMemSaved(), stubJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}, stubCVRepo{})

	res, err := svc.UnsaveJob(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unsave of missing item must not fail: %v", err)
	}
	if res.Saved || res.Changed {
		t.Fatalf("expected no-op, got %+v", res)
	}
}

func TestSaveJob_UnknownJob(t *testing.T) {
	svc := NewService(newMemSaved(), stubJobRepo{}, stubCVRepo{})
	_, err := svc.SaveJob(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestSaveUnsaveCycle(t *testing.T) {
	seekerID, jobID := uuid.New(), uuid.New()
	svc := NewService(newMemSaved(), stubJobRepo{jobs: map[uuid.UUID]job.Posting{jobID: {ID: jobID}}}, stubCVRepo{})

	if _, err := svc.SaveJob(context.Background(), seekerID, jobID); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := svc.UnsaveJob(context.Background(), seekerID, jobID)
	if err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if res.Saved || !res.Changed {
		t.Fatalf("unsave after save should change state, got %+v", res)
	}

	jobs, err := svc.SavedJobs(context.Background(), seekerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty saved set, got %d", len(jobs))
	}
}

func TestSaveCV_IdempotentRetry(t *testing.T) {
	providerID, cvID := uuid.New(), uuid.New()
	svc := NewService(newMemSaved(), stubJobRepo{}, stubCVRepo{cvs: map[uuid.UUID]cv.CV{cvID: {ID: cvID}}})

	first, err := svc.SaveCV(context.Background(), providerID, cvID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !first.Changed {
		t.Fatalf("first save should change state")
	}
	second, err := svc.SaveCV(context.Background(), providerID, cvID)
	if err != nil {
		t.Fatalf("retried save must not fail: %v", err)
	}
	if second.Changed {
		t.Fatalf("retried save should be a no-op")
	}
}
