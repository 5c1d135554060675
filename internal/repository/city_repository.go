package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/city"
)

type CityRepository interface {
	List(ctx context.Context) ([]city.City, error)
	// ListStatistics returns one row per known city, zeros included, unlike
	// the client-side grouping which omits empty cities.
	ListStatistics(ctx context.Context) ([]city.Statistics, error)
}

type PostgresCityRepository struct {
	db database.DB
}

func NewPostgresCityRepository(db database.DB) *PostgresCityRepository {
	return &PostgresCityRepository{db: db}
}

func (r *PostgresCityRepository) List(ctx context.Context) ([]city.City, error) {
	rows, err := r.db.Query(ctx, `SELECT id, city_name FROM cities ORDER BY city_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]city.City, 0)
	for rows.Next() {
		var c city.City
		if err := rows.Scan(&c.ID, &c.CityName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCityRepository) ListStatistics(ctx context.Context) ([]city.Statistics, error) {
	rows, err := r.db.Query(ctx, `
SELECT c.id, c.city_name,
       COUNT(DISTINCT s.id)  AS seekers_count,
       COUNT(DISTINCT j.id)  AS job_postings_count,
       COUNT(DISTINCT a.id)  AS applied_jobs_count,
       COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'accepted') AS accepted_jobs_count,
       COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'rejected') AS rejected_jobs_count
FROM cities c
LEFT JOIN seekers s ON s.city_id = c.id
LEFT JOIN job_postings j ON j.city_id = c.id
LEFT JOIN applications a ON a.job_id = j.id
GROUP BY c.id, c.city_name
ORDER BY c.city_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]city.Statistics, 0)
	for rows.Next() {
		var st city.Statistics
		if err := rows.Scan(&st.ID, &st.CityName, &st.SeekersCount, &st.JobPostingsCount,
			&st.AppliedJobsCount, &st.AcceptedJobsCount, &st.RejectedJobsCount); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
