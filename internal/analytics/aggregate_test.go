package analytics

import (
	"testing"

	"jobboard/internal/domain/application"
)

type cityRecord struct {
	city string
}

func TestByCity_FirstSeenOrder(t *testing.T) {
	records := []cityRecord{
		{city: "Tirana"},
		{city: "Tirana"},
		{city: "Durres"},
	}

	got := ByCity(records, func(r cityRecord) string { return r.city })

	want := []CityCount{
		{CityName: "Tirana", Count: 2},
		{CityName: "Durres", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestByCity_SkipsBlankAndOmitsZeroCities(t *testing.T) {
	records := []cityRecord{{city: ""}, {city: "Vlore"}}

	got := ByCity(records, func(r cityRecord) string { return r.city })

	if len(got) != 1 || got[0].CityName != "Vlore" || got[0].Count != 1 {
		t.Fatalf("unexpected groups: %+v", got)
	}
}

func TestByCity_Empty(t *testing.T) {
	got := ByCity(nil, func(r cityRecord) string { return r.city })
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestStatusBreakdown_ExcludesIntermediateStatuses(t *testing.T) {
	statuses := []application.Status{
		application.StatusAccepted,
		application.StatusRejected,
		application.StatusHold,
		application.StatusHold,
		application.StatusNextStep,
	}

	got := StatusBreakdown(statuses)

	if got.Accepted != 1 || got.Rejected != 1 || got.Hold != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if total := got.Accepted + got.Rejected + got.Hold; total != 4 {
		t.Fatalf("expected 4 counted of 5 inputs, got %d", total)
	}
}

func TestStatusBreakdown_FinalStepExcluded(t *testing.T) {
	got := StatusBreakdown([]application.Status{application.StatusFinalStep})
	if got != (StatusCounts{}) {
		t.Fatalf("final_step should not be counted: %+v", got)
	}
}

func TestMatchingSkills_JobOrderMembershipOnly(t *testing.T) {
	jobSkills := []string{"Go", "SQL", "Docker", "Go"}
	candidate := []string{"Docker", "Go", "Kubernetes"}

	got := MatchingSkills(jobSkills, candidate)

	want := []string{"Go", "Docker"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMatchingSkills_NoOverlap(t *testing.T) {
	got := MatchingSkills([]string{"Go"}, []string{"Rust"})
	if len(got) != 0 {
		t.Fatalf("expected no overlap, got %v", got)
	}
}
