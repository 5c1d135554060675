package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucjob "jobboard/internal/usecase/job"
)

type JobHandler struct {
	uc ucjob.JobUsecase
}

func NewJobHandler(uc ucjob.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

type jobRequest struct {
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Salary              *float64    `json:"salary"`
	Type                string      `json:"type"`
	CityID              *uuid.UUID  `json:"city_id"`
	ExpiryDate          *time.Time  `json:"expiry_date"`
	CoverLetterRequired bool        `json:"cover_letter_required"`
	QuestionRequired    bool        `json:"question_required"`
	CategoryIDs         []uuid.UUID `json:"category_ids"`
	SkillIDs            []uuid.UUID `json:"skill_ids"`
}

// RegisterPublicRoutes exposes listing and detail without authentication.
func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *JobHandler) RegisterProviderRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) RegisterSeekerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/recommended", h.Recommend)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	in := ucjob.ListInput{
		City:    c.Query("city"),
		Type:    c.Query("type"),
		Search:  c.Query("search"),
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", 0),
	}

	res, err := h.uc.List(c.Context(), in)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Paginated(c, fiber.StatusOK, response.MessageOK,
		dto.NewJobListResponse(res.Jobs),
		pageMeta(res.Page, res.PerPage, res.TotalItems))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.ListByProvider(c.Context(), providerID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(jobs))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Create(c.Context(), providerID, createInputFromRequest(req))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), actor, ucjob.UpdateInput{ID: id, CreateInput: createInputFromRequest(req)})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func actorFromCtx(c fiber.Ctx) (ucjob.Actor, error) {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return ucjob.Actor{}, err
	}
	role, err := roleFromCtx(c)
	if err != nil {
		return ucjob.Actor{}, err
	}
	return ucjob.Actor{AccountID: id, Role: role}, nil
}

func (h *JobHandler) Recommend(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	recs, err := h.uc.Recommend(c.Context(), seekerID, intQuery(c, "limit", 0))
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.RecommendationResponse{
			Job:               dto.NewJobResponse(rec.Posting),
			MatchedSkillNames: rec.MatchedSkillNames,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func createInputFromRequest(req jobRequest) ucjob.CreateInput {
	return ucjob.CreateInput{
		Title:               req.Title,
		Description:         req.Description,
		Salary:              req.Salary,
		Type:                req.Type,
		CityID:              req.CityID,
		ExpiryDate:          req.ExpiryDate,
		CoverLetterRequired: req.CoverLetterRequired,
		QuestionRequired:    req.QuestionRequired,
		CategoryIDs:         req.CategoryIDs,
		SkillIDs:            req.SkillIDs,
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
