package stats

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/analytics"
	"jobboard/internal/domain/city"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/seeker"
	"jobboard/internal/repository"
	jobuc "jobboard/internal/usecase/job"
)

var ErrInternal = errors.New("internal error")

const statsCacheTTL = 5 * time.Minute

type StatsUsecase interface {
	Cities(ctx context.Context) ([]city.City, error)
	CityStatistics(ctx context.Context) ([]city.Statistics, error)
	JobsByCity(ctx context.Context) ([]analytics.CityCount, error)
	SeekersByCity(ctx context.Context) ([]analytics.CityCount, error)
	ApplicationBreakdown(ctx context.Context) (analytics.StatusCounts, error)
}

type Service struct {
	cities       repository.CityRepository
	jobs         repository.JobRepository
	seekers      repository.SeekerRepository
	applications repository.ApplicationRepository
	cache        jobuc.Cache
	logger       *log.Logger
}

func NewService(
	cities repository.CityRepository,
	jobs repository.JobRepository,
	seekers repository.SeekerRepository,
	applications repository.ApplicationRepository,
	c jobuc.Cache,
	logger *log.Logger,
) *Service {
	return &Service{
		cities:       cities,
		jobs:         jobs,
		seekers:      seekers,
		applications: applications,
		cache:        c,
		logger:       logger,
	}
}

func (s *Service) Cities(ctx context.Context) ([]city.City, error) {
	out, err := s.cities.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) CityStatistics(ctx context.Context) ([]city.Statistics, error) {
	var out []city.Statistics
	if s.cached(ctx, "stats:city", &out) {
		return out, nil
	}

	out, err := s.cities.ListStatistics(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	s.store(ctx, "stats:city", out)
	return out, nil
}

// JobsByCity feeds the postings-per-city bar chart. Uses the client-side
// grouping rules: first-seen order, blanks skipped, zero-count cities omitted.
func (s *Service) JobsByCity(ctx context.Context) ([]analytics.CityCount, error) {
	var out []analytics.CityCount
	if s.cached(ctx, "stats:jobs_by_city", &out) {
		return out, nil
	}

	jobs, _, err := s.jobs.List(ctx, repository.JobListFilter{Limit: 10000})
	if err != nil {
		return nil, ErrInternal
	}

	out = analytics.ByCity(jobs, func(p job.Posting) string {
		if p.CityName == nil {
			return ""
		}
		return *p.CityName
	})
	s.store(ctx, "stats:jobs_by_city", out)
	return out, nil
}

func (s *Service) SeekersByCity(ctx context.Context) ([]analytics.CityCount, error) {
	var out []analytics.CityCount
	if s.cached(ctx, "stats:seekers_by_city", &out) {
		return out, nil
	}

	seekers, err := s.seekers.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out = analytics.ByCity(seekers, func(sk seeker.Seeker) string {
		if sk.CityName == nil {
			return ""
		}
		return *sk.CityName
	})
	s.store(ctx, "stats:seekers_by_city", out)
	return out, nil
}

func (s *Service) ApplicationBreakdown(ctx context.Context) (analytics.StatusCounts, error) {
	var out analytics.StatusCounts
	if s.cached(ctx, "stats:application_breakdown", &out) {
		return out, nil
	}

	statuses, err := s.applications.ListAllStatuses(ctx)
	if err != nil {
		return analytics.StatusCounts{}, ErrInternal
	}

	out = analytics.StatusBreakdown(statuses)
	s.store(ctx, "stats:application_breakdown", out)
	return out, nil
}

func (s *Service) cached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.GetJSON(ctx, key, out)
	return err == nil && ok
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, statsCacheTTL); err != nil && s.logger != nil {
		s.logger.Printf("[Stats] cache set failed | key=%s err=%v", key, err)
	}
}
