package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/cv"
	"jobboard/internal/pkg/response"
	uccv "jobboard/internal/usecase/cv"
)

type CVHandler struct {
	uc uccv.CVUsecase
}

func NewCVHandler(uc uccv.CVUsecase) *CVHandler {
	return &CVHandler{uc: uc}
}

type cvRequest struct {
	SkillIDs    []uuid.UUID         `json:"skill_ids"`
	Educations  []educationRequest  `json:"educations"`
	Experiences []experienceRequest `json:"experiences"`
	CoverLetter *string             `json:"cover_letter"`
}

type educationRequest struct {
	School    string     `json:"school"`
	Degree    *string    `json:"degree"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Ongoing   bool       `json:"ongoing"`
}

type experienceRequest struct {
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Ongoing     bool       `json:"ongoing"`
}

func (h *CVHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
}

func (h *CVHandler) ListMine(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	cvs, err := h.uc.ListMine(c.Context(), seekerID)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVListResponse(cvs))
}

func (h *CVHandler) Create(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req cvRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), seekerID, cvFromRequest(req))
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewCVResponse(created))
}

func (h *CVHandler) Get(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.uc.Get(c.Context(), seekerID, id)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVResponse(found))
}

func (h *CVHandler) Update(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req cvRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := cvFromRequest(req)
	in.ID = id

	updated, err := h.uc.Update(c.Context(), seekerID, in)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVResponse(updated))
}

func cvFromRequest(req cvRequest) cv.CV {
	edus := make([]cv.Education, 0, len(req.Educations))
	for _, e := range req.Educations {
		edus = append(edus, cv.Education{
			ID:        uuid.New(),
			School:    e.School,
			Degree:    e.Degree,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Ongoing:   e.Ongoing,
		})
	}

	exps := make([]cv.Experience, 0, len(req.Experiences))
	for _, e := range req.Experiences {
		exps = append(exps, cv.Experience{
			ID:          uuid.New(),
			Company:     e.Company,
			Title:       e.Title,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Ongoing:     e.Ongoing,
		})
	}

	return cv.CV{
		SkillIDs:    req.SkillIDs,
		Educations:  edus,
		Experiences: exps,
		CoverLetter: req.CoverLetter,
	}
}

func mapCVUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, uccv.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, uccv.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "CV not found", nil, err)
	case errors.Is(err, uccv.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
