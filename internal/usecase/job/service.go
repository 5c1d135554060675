package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/analytics"
	"jobboard/internal/domain/account"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("job does not belong to provider")
	ErrInternal     = errors.New("internal error")
)

const (
	defaultPerPage = 10
	maxPerPage     = 50

	listCacheTTL = 10 * time.Minute
)

type ListInput struct {
	City    string
	Type    string
	Search  string
	Page    int
	PerPage int
}

type ListResult struct {
	Jobs       []job.Posting
	Page       int
	PerPage    int
	TotalItems int
}

type CreateInput struct {
	Title               string
	Description         string
	Salary              *float64
	Type                string
	CityID              *uuid.UUID
	ExpiryDate          *time.Time
	CoverLetterRequired bool
	QuestionRequired    bool
	CategoryIDs         []uuid.UUID
	SkillIDs            []uuid.UUID
}

type UpdateInput struct {
	ID uuid.UUID
	CreateInput
}

// Actor is the authenticated account behind a write. Admins may moderate any
// posting; everyone else only their own.
type Actor struct {
	AccountID uuid.UUID
	Role      account.Role
}

func (a Actor) mayModerate(ownerID uuid.UUID) bool {
	return a.Role == account.RoleAdmin || a.AccountID == ownerID
}

// Cache is satisfied by cache.Redis; a nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateJobLists(ctx context.Context) error
}

// Recommendation pairs a posting with the skill names it shares with the
// seeker's CVs, in the posting's skill order.
type Recommendation struct {
	Posting           job.Posting
	MatchedSkillNames []string
}

type JobUsecase interface {
	List(ctx context.Context, in ListInput) (ListResult, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Create(ctx context.Context, providerID uuid.UUID, in CreateInput) (job.Posting, error)
	Update(ctx context.Context, actor Actor, in UpdateInput) (job.Posting, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Recommend(ctx context.Context, seekerID uuid.UUID, limit int) ([]Recommendation, error)
}

type Service struct {
	jobs     repository.JobRepository
	cvs      repository.CVRepository
	taxonomy repository.TaxonomyRepository
	cache    Cache
	logger   *log.Logger
}

func NewService(jobs repository.JobRepository, cvs repository.CVRepository, taxonomy repository.TaxonomyRepository, c Cache, logger *log.Logger) *Service {
	return &Service{jobs: jobs, cvs: cvs, taxonomy: taxonomy, cache: c, logger: logger}
}

func (s *Service) List(ctx context.Context, in ListInput) (ListResult, error) {
	page, perPage := normalizePage(in.Page, in.PerPage)

	key := listCacheKey(in.City, in.Type, in.Search, page, perPage)
	if s.cache != nil {
		var cached ListResult
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}

	f := repository.JobListFilter{
		City:   strings.TrimSpace(in.City),
		Type:   strings.TrimSpace(in.Type),
		Search: strings.TrimSpace(in.Search),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
	jobs, total, err := s.jobs.List(ctx, f)
	if err != nil {
		return ListResult{}, ErrInternal
	}

	out := ListResult{Jobs: jobs, Page: page, PerPage: perPage, TotalItems: total}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, listCacheTTL); err != nil && s.logger != nil {
			s.logger.Printf("[Job] cache set failed | key=%s err=%v", key, err)
		}
	}
	return out, nil
}

func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]job.Posting, error) {
	jobs, _, err := s.jobs.List(ctx, repository.JobListFilter{ProviderID: providerID, Limit: maxPerPage * 10})
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, providerID uuid.UUID, in CreateInput) (job.Posting, error) {
	p, err := postingFromInput(in)
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = uuid.New()
	p.ProviderID = providerID

	if err := s.jobs.Create(ctx, p); err != nil {
		return job.Posting{}, ErrInternal
	}
	s.invalidate(ctx)

	return s.Get(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, actor Actor, in UpdateInput) (job.Posting, error) {
	existing, err := s.jobs.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}
	if !actor.mayModerate(existing.ProviderID) {
		return job.Posting{}, ErrForbidden
	}

	p, err := postingFromInput(in.CreateInput)
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = in.ID
	// An admin edit must not reassign the posting to the admin.
	p.ProviderID = existing.ProviderID

	if err := s.jobs.Update(ctx, p); err != nil {
		return job.Posting{}, ErrInternal
	}
	s.invalidate(ctx)

	return s.Get(ctx, in.ID)
}

func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if !actor.mayModerate(existing.ProviderID) {
		return ErrForbidden
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	s.invalidate(ctx)
	return nil
}

// Recommend ranks open postings by how many of the seeker's CV skills they
// share, most overlap first. Postings with no overlap are dropped.
func (s *Service) Recommend(ctx context.Context, seekerID uuid.UUID, limit int) ([]Recommendation, error) {
	if limit <= 0 || limit > maxPerPage {
		limit = defaultPerPage
	}

	cvs, err := s.cvs.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	var seekerSkills []uuid.UUID
	for _, c := range cvs {
		seekerSkills = append(seekerSkills, c.SkillIDs...)
	}
	if len(seekerSkills) == 0 {
		return []Recommendation{}, nil
	}

	jobs, _, err := s.jobs.List(ctx, repository.JobListFilter{Limit: maxPerPage * 10})
	if err != nil {
		return nil, ErrInternal
	}

	now := time.Now()
	type scored struct {
		p       job.Posting
		matched []uuid.UUID
	}
	var ranked []scored
	for _, p := range jobs {
		if p.Expired(now) {
			continue
		}
		matched := analytics.MatchingSkills(p.SkillIDs, seekerSkills)
		if len(matched) == 0 {
			continue
		}
		ranked = append(ranked, scored{p: p, matched: matched})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return len(ranked[i].matched) > len(ranked[j].matched) })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	var allMatched []uuid.UUID
	for _, r := range ranked {
		allMatched = append(allMatched, r.matched...)
	}
	names, err := s.taxonomy.SkillNamesByIDs(ctx, allMatched)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		rec := Recommendation{Posting: r.p, MatchedSkillNames: make([]string, 0, len(r.matched))}
		for _, id := range r.matched {
			if name, ok := names[id]; ok {
				rec.MatchedSkillNames = append(rec.MatchedSkillNames, name)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateJobLists(ctx); err != nil && s.logger != nil {
		s.logger.Printf("[Job] cache invalidation failed | err=%v", err)
	}
}

func postingFromInput(in CreateInput) (job.Posting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" {
		return job.Posting{}, ErrInvalidInput
	}
	t, err := job.ParseType(strings.TrimSpace(in.Type))
	if err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	if in.Salary != nil && *in.Salary < 0 {
		return job.Posting{}, ErrInvalidInput
	}

	return job.Posting{
		Title:               title,
		Description:         strings.TrimSpace(in.Description),
		Salary:              in.Salary,
		Type:                t,
		CityID:              in.CityID,
		ExpiryDate:          in.ExpiryDate,
		CoverLetterRequired: in.CoverLetterRequired,
		QuestionRequired:    in.QuestionRequired,
		CategoryIDs:         in.CategoryIDs,
		SkillIDs:            in.SkillIDs,
	}, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func listCacheKey(city, jobType, search string, page, perPage int) string {
	norm := func(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
	return fmt.Sprintf("jobs:list:city=%s:type=%s:q=%s:page=%d:per=%d",
		norm(city), norm(jobType), norm(search), page, perPage)
}
