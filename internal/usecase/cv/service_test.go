package cv

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/cv"
	"jobboard/internal/repository"
)

type memCVRepo struct {
	cvs map[uuid.UUID]cv.CV
}

func newMemCVRepo() *memCVRepo { return &memCVRepo{cvs: map[uuid.UUID]cv.CV{}} }

func (m *memCVRepo) Create(_ context.Context, c cv.CV) error {
	m.cvs[c.ID] = c
	return nil
}

func (m *memCVRepo) Update(_ context.Context, c cv.CV) error {
	if _, ok := m.cvs[c.ID]; !ok {
		return repository.ErrCVNotFound
	}
	m.cvs[c.ID] = c
	return nil
}

func (m *memCVRepo) GetByID(_ context.Context, id uuid.UUID) (cv.CV, error) {
	c, ok := m.cvs[id]
	if !ok {
		return cv.CV{}, repository.ErrCVNotFound
	}
	return c, nil
}

func (m *memCVRepo) ListBySeeker(_ context.Context, seekerID uuid.UUID) ([]cv.CV, error) {
	out := make([]cv.CV, 0)
	for _, c := range m.cvs {
		if c.SeekerID == seekerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCVRepo) SkillIDsByCV(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return m.cvs[id].SkillIDs, nil
}

func TestGet_OnlyOwnerMayReadCV(t *testing.T) {
	owner := uuid.New()
	cvID := uuid.New()
	repo := newMemCVRepo()
	repo.cvs[cvID] = cv.CV{ID: cvID, SeekerID: owner}

	svc := NewService(repo)

	if _, err := svc.Get(context.Background(), uuid.New(), cvID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign seeker must not read the cv, got %v", err)
	}

	got, err := svc.Get(context.Background(), owner, cvID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.ID != cvID {
		t.Fatalf("unexpected cv: %+v", got)
	}
}

func TestGet_MissingCVIsNotFound(t *testing.T) {
	svc := NewService(newMemCVRepo())

	if _, err := svc.Get(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_ForeignCVForbidden(t *testing.T) {
	owner := uuid.New()
	cvID := uuid.New()
	repo := newMemCVRepo()
	repo.cvs[cvID] = cv.CV{ID: cvID, SeekerID: owner}

	svc := NewService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), cv.CV{ID: cvID})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign seeker must not update the cv, got %v", err)
	}
	if repo.cvs[cvID].SeekerID != owner {
		t.Fatalf("rejected update must not change stored cv")
	}
}
