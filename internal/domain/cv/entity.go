package cv

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingStartDate = errors.New("missing start date")
	ErrEndBeforeStart   = errors.New("end date before start date")
)

type CV struct {
	ID          uuid.UUID
	SeekerID    uuid.UUID
	SkillIDs    []uuid.UUID
	Educations  []Education
	Experiences []Experience
	CoverLetter *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Education and Experience entries carry a start date and either an end date
// or the Ongoing flag. The two are mutually exclusive: an ongoing entry has no
// end date, and normalization enforces that before any entry is persisted.
type Education struct {
	ID        uuid.UUID
	School    string
	Degree    *string
	StartDate time.Time
	EndDate   *time.Time
	Ongoing   bool
}

type Experience struct {
	ID          uuid.UUID
	Company     string
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	Ongoing     bool
}

// Normalize drops the end date of every ongoing entry, whatever the caller
// typed in, and derives Ongoing for entries that arrive without an end date.
func (c *CV) Normalize() {
	for i := range c.Educations {
		normalizeSpan(&c.Educations[i].EndDate, &c.Educations[i].Ongoing)
	}
	for i := range c.Experiences {
		normalizeSpan(&c.Experiences[i].EndDate, &c.Experiences[i].Ongoing)
	}
}

func normalizeSpan(endDate **time.Time, ongoing *bool) {
	if *ongoing {
		*endDate = nil
		return
	}
	if *endDate == nil {
		*ongoing = true
	}
}

// Validate checks entry dates after normalization.
func (c *CV) Validate() error {
	for _, e := range c.Educations {
		if err := validateSpan(e.StartDate, e.EndDate); err != nil {
			return err
		}
	}
	for _, e := range c.Experiences {
		if err := validateSpan(e.StartDate, e.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func validateSpan(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return ErrMissingStartDate
	}
	if end != nil && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
