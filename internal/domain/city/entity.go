package city

import "github.com/google/uuid"

type City struct {
	ID       uuid.UUID
	CityName string
}

// Statistics is a precomputed per-city row; it includes cities with zero
// matching records, unlike the client-side grouping in the analytics package.
type Statistics struct {
	ID                uuid.UUID
	CityName          string
	SeekersCount      int
	JobPostingsCount  int
	AppliedJobsCount  int
	AcceptedJobsCount int
	RejectedJobsCount int
}
