package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jobboard/pkg/session"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	AccountID    string `json:"account_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Job struct {
	ID                  string     `json:"id"`
	ProviderID          string     `json:"provider_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Salary              *float64   `json:"salary"`
	Type                string     `json:"type"`
	CityName            *string    `json:"city_name"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	Expired             bool       `json:"expired"`
	CoverLetterRequired bool       `json:"cover_letter_required"`
	QuestionRequired    bool       `json:"question_required"`
}

type Application struct {
	ID                 string    `json:"id"`
	JobID              string    `json:"job_id"`
	Status             string    `json:"status"`
	AllowedActions     []string  `json:"allowed_actions"`
	MatchedSkillsCount int       `json:"matched_skills_count"`
	CreatedAt          time.Time `json:"created_at"`
}

type CV struct {
	ID          string    `json:"id"`
	SeekerID    string    `json:"seeker_id"`
	SkillIDs    []string  `json:"skill_ids"`
	CoverLetter *string   `json:"cover_letter"`
	CreatedAt   time.Time `json:"created_at"`
}

type ToggleResult struct {
	Saved   bool `json:"saved"`
	Changed bool `json:"changed"`
}

// Login authenticates the client's role and stores the issued tokens.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var data loginData
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", creds, &data); err != nil {
		return err
	}
	return c.store.Set(c.role, session.Tokens{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	})
}

// Refresh swaps the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	tokens, ok := c.store.Get(c.role)
	if !ok || tokens.RefreshToken == "" {
		return ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/refresh", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
	}
	if resp.StatusCode >= 400 {
		return c.mapStatus(resp.StatusCode, env.Message)
	}

	var data loginData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return fmt.Errorf("malformed data: %w", err)
		}
	}
	return c.store.Set(c.role, session.Tokens{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	})
}

// Logout revokes the access token server side and clears the stored session.
// The server call is best effort: the local session goes away either way.
func (c *Client) Logout(ctx context.Context) error {
	_, _ = c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	return c.store.Clear(c.role)
}

type ListJobsParams struct {
	City    string
	Type    string
	Search  string
	Page    int
	PerPage int
}

func (c *Client) ListJobs(ctx context.Context, p ListJobsParams) ([]Job, PageMeta, error) {
	values := url.Values{}
	if p.City != "" {
		values.Set("city", p.City)
	}
	if p.Type != "" {
		values.Set("type", p.Type)
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}

	var jobs []Job
	meta, err := c.do(ctx, http.MethodGet, "/api/v1/jobs"+queryString(values), nil, &jobs)
	if err != nil {
		return nil, PageMeta{}, err
	}
	out := PageMeta{}
	if meta != nil {
		out = *meta
	}
	return jobs, out, nil
}

// ToggleSavedJob flips the saved state of a job based on the locally tracked
// saved-set: absent saves, present unsaves. While a toggle for the same job is
// in flight a second call is refused with ErrToggleInFlight, so a double-click
// cannot invert the save/unsave order. Membership only changes once the server
// confirms, and a context that is already done returns before any request.
func (c *Client) ToggleSavedJob(ctx context.Context, jobID string) (ToggleResult, error) {
	return c.toggleSaved(ctx, "job:"+jobID, "/api/v1/seeker/saved-jobs/"+jobID)
}

// ToggleSavedCV is the provider-side counterpart of ToggleSavedJob.
func (c *Client) ToggleSavedCV(ctx context.Context, cvID string) (ToggleResult, error) {
	return c.toggleSaved(ctx, "cv:"+cvID, "/api/v1/provider/saved-cvs/"+cvID)
}

func (c *Client) toggleSaved(ctx context.Context, subject, path string) (ToggleResult, error) {
	if err := ctx.Err(); err != nil {
		return ToggleResult{}, err
	}
	if !c.beginToggle(subject) {
		return ToggleResult{}, ErrToggleInFlight
	}
	defer c.endToggle(subject)

	method := http.MethodPut
	if c.isSaved(subject) {
		method = http.MethodDelete
	}

	var res ToggleResult
	if _, err := c.do(ctx, method, path, nil, &res); err != nil {
		// Membership stays at its pre-toggle value on failure.
		return ToggleResult{}, err
	}
	c.setSaved(subject, res.Saved)
	return res, nil
}

// SavedJobs fetches the seeker's saved jobs and reconciles the local
// saved-set with the server's answer.
func (c *Client) SavedJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/seeker/saved-jobs/", nil, &jobs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	c.reconcileSaved("job:", ids)
	return jobs, nil
}

// SavedCVs is the provider-side counterpart of SavedJobs.
func (c *Client) SavedCVs(ctx context.Context) ([]CV, error) {
	var cvs []CV
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/provider/saved-cvs/", nil, &cvs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(cvs))
	for _, v := range cvs {
		ids = append(ids, v.ID)
	}
	c.reconcileSaved("cv:", ids)
	return cvs, nil
}

func (c *Client) MyApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/seeker/applications/", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// TransitionApplication applies a provider action (next, final, accept,
// reject) and returns the application as the server now sees it.
func (c *Client) TransitionApplication(ctx context.Context, applicationID, action string) (Application, error) {
	body := map[string]string{"action": action}

	var app Application
	path := fmt.Sprintf("/api/v1/provider/applications/%s/status", applicationID)
	if _, err := c.do(ctx, http.MethodPatch, path, body, &app); err != nil {
		return Application{}, err
	}
	return app, nil
}
