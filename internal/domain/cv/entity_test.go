package cv

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_OngoingForcesEndDateNil(t *testing.T) {
	end := date(2024, time.June, 1)
	c := CV{
		Educations: []Education{
			{School: "UT", StartDate: date(2020, time.September, 1), EndDate: &end, Ongoing: true},
		},
		Experiences: []Experience{
			{Company: "Acme", Title: "Dev", StartDate: date(2022, time.January, 1)},
		},
	}

	c.Normalize()

	if c.Educations[0].EndDate != nil {
		t.Fatalf("ongoing education kept its end date")
	}
	if !c.Educations[0].Ongoing {
		t.Fatalf("ongoing flag lost")
	}
}

func TestNormalize_MissingEndDateMeansOngoing(t *testing.T) {
	c := CV{
		Experiences: []Experience{
			{Company: "Acme", Title: "Dev", StartDate: date(2022, time.January, 1)},
		},
	}

	c.Normalize()

	if !c.Experiences[0].Ongoing {
		t.Fatalf("entry without end date should be marked ongoing")
	}
}

func TestNormalize_FinishedEntryUntouched(t *testing.T) {
	end := date(2023, time.March, 31)
	c := CV{
		Experiences: []Experience{
			{Company: "Acme", Title: "Dev", StartDate: date(2021, time.April, 1), EndDate: &end},
		},
	}

	c.Normalize()

	if c.Experiences[0].Ongoing {
		t.Fatalf("finished entry marked ongoing")
	}
	if c.Experiences[0].EndDate == nil || !c.Experiences[0].EndDate.Equal(end) {
		t.Fatalf("finished entry lost its end date")
	}
}

func TestValidate_EndBeforeStart(t *testing.T) {
	end := date(2019, time.January, 1)
	c := CV{
		Educations: []Education{
			{School: "UT", StartDate: date(2020, time.September, 1), EndDate: &end},
		},
	}

	if err := c.Validate(); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestValidate_MissingStartDate(t *testing.T) {
	c := CV{
		Experiences: []Experience{{Company: "Acme", Title: "Dev"}},
	}

	if err := c.Validate(); !errors.Is(err, ErrMissingStartDate) {
		t.Fatalf("expected ErrMissingStartDate, got %v", err)
	}
}
