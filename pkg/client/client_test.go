package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"jobboard/pkg/session"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, "ok", []Job{})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok-123"})

	c := New(srv.URL, "seeker", store)
	if _, _, err := c.ListJobs(context.Background(), ListJobsParams{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestDo_ClearsOnlyOwnRoleOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "unauthorized", nil)
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "stale"})
	_ = store.Set("provider", session.Tokens{AccessToken: "valid"})

	c := New(srv.URL, "seeker", store)
	_, _, err := c.ListJobs(context.Background(), ListJobsParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, ok := store.Get("seeker"); ok {
		t.Fatalf("seeker session must be cleared after 401")
	}
	if _, ok := store.Get("provider"); !ok {
		t.Fatalf("provider session must survive seeker's 401")
	}
}

func TestLogin_StoresTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string]string{
			"access_token":  "acc",
			"refresh_token": "ref",
			"role":          "provider",
		})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	c := New(srv.URL, "provider", store)
	if err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw-longer"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	tok, ok := store.Get("provider")
	if !ok || tok.AccessToken != "acc" || tok.RefreshToken != "ref" {
		t.Fatalf("tokens not stored: %+v ok=%v", tok, ok)
	}
}

func TestToggleSavedJob_AlternatesSaveAndUnsave(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		saved := r.Method == http.MethodPut
		writeEnvelope(w, http.StatusOK, "ok", ToggleResult{Saved: saved, Changed: true})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	want := []bool{true, false, true}
	for i, wantSaved := range want {
		res, err := c.ToggleSavedJob(context.Background(), "job-1")
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if res.Saved != wantSaved {
			t.Fatalf("toggle %d: saved=%v, want %v", i, res.Saved, wantSaved)
		}
	}

	wantMethods := []string{http.MethodPut, http.MethodDelete, http.MethodPut}
	if len(methods) != len(wantMethods) {
		t.Fatalf("expected exactly one write per toggle, got %v", methods)
	}
	for i := range wantMethods {
		if methods[i] != wantMethods[i] {
			t.Fatalf("write %d: got %s, want %s", i, methods[i], wantMethods[i])
		}
	}
}

func TestToggleSavedJob_RefusesWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		close(entered)
		<-release
		writeEnvelope(w, http.StatusOK, "ok", ToggleResult{Saved: true, Changed: true})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = c.ToggleSavedJob(context.Background(), "job-1")
	}()

	<-entered
	if _, err := c.ToggleSavedJob(context.Background(), "job-1"); !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("expected ErrToggleInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first toggle: %v", firstErr)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("refused toggle must not reach the server, saw %d requests", got)
	}
}

func TestToggleSavedJob_FailureKeepsMembership(t *testing.T) {
	var methods []string
	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if fail {
			writeEnvelope(w, http.StatusInternalServerError, "boom", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "ok", ToggleResult{Saved: true, Changed: true})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	if _, err := c.ToggleSavedJob(context.Background(), "job-1"); err == nil {
		t.Fatalf("expected the failed toggle to surface an error")
	}

	// The subject is still absent locally, so the retry saves again.
	fail = false
	res, err := c.ToggleSavedJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !res.Saved {
		t.Fatalf("retry should have saved, got %+v", res)
	}
	if len(methods) != 2 || methods[0] != http.MethodPut || methods[1] != http.MethodPut {
		t.Fatalf("both attempts must be saves, got %v", methods)
	}
}

func TestSavedJobs_SeedsMembershipForToggles(t *testing.T) {
	var toggleMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, "ok", []Job{{ID: "job-1", Title: "Backend Engineer"}})
		default:
			toggleMethod = r.Method
			writeEnvelope(w, http.StatusOK, "ok", ToggleResult{Saved: false, Changed: true})
		}
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	if _, err := c.SavedJobs(context.Background()); err != nil {
		t.Fatalf("saved jobs: %v", err)
	}

	// job-1 came back saved, so the next toggle must unsave it.
	res, err := c.ToggleSavedJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggleMethod != http.MethodDelete || res.Saved {
		t.Fatalf("expected an unsave, got method=%s res=%+v", toggleMethod, res)
	}
}

func TestToggleSavedJob_CancelledContextIsNoOp(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, "ok", ToggleResult{})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ToggleSavedJob(ctx, "job-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("cancelled toggle must not reach the server")
	}
	if _, ok := store.Get("seeker"); !ok {
		t.Fatalf("cancellation must not clear the session")
	}
}

func TestDo_MapsValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, "cover letter is required", nil)
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("seeker", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "seeker", store)

	_, _, err := c.ListJobs(context.Background(), ListJobsParams{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, ok := store.Get("seeker"); !ok {
		t.Fatalf("validation errors must not clear the session")
	}
}

func TestListJobs_ReturnsMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "Tirana" {
			t.Errorf("expected city query, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  http.StatusOK,
			"message": "ok",
			"data":    []Job{{ID: "j1", Title: "Backend Engineer"}},
			"meta":    PageMeta{Page: 2, PerPage: 10, TotalItems: 31, TotalPages: 4},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "seeker", session.NewMemStore())
	jobs, meta, err := c.ListJobs(context.Background(), ListJobsParams{City: "Tirana", Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Backend Engineer" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if meta.TotalPages != 4 || meta.Page != 2 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestTransitionApplication_SendsAction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["action"] != "accept" {
			t.Errorf("expected accept action, got %q", body["action"])
		}
		writeEnvelope(w, http.StatusOK, "ok", Application{
			ID: "a1", Status: "accepted", AllowedActions: []string{},
		})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	_ = store.Set("provider", session.Tokens{AccessToken: "tok"})
	c := New(srv.URL, "provider", store)

	app, err := c.TransitionApplication(context.Background(), "a1", "accept")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.Status != "accepted" || len(app.AllowedActions) != 0 {
		t.Fatalf("unexpected application: %+v", app)
	}
}
