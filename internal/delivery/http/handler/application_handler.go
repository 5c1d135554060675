package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/pkg/response"
	ucapp "jobboard/internal/usecase/application"
)

type ApplicationHandler struct {
	uc ucapp.ApplicationUsecase
}

func NewApplicationHandler(uc ucapp.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	JobID       uuid.UUID      `json:"job_id"`
	CVID        uuid.UUID      `json:"cv_id"`
	CoverLetter *string        `json:"cover_letter"`
	Answers     []answerSubmit `json:"answers"`
}

type answerSubmit struct {
	QuestionID   uuid.UUID `json:"question_id"`
	TextValue    *string   `json:"text_value"`
	NumericValue *float64  `json:"numeric_value"`
}

type transitionRequest struct {
	Action string `json:"action"`
}

func (h *ApplicationHandler) RegisterSeekerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Apply)
	r.Get("/", h.ListMine)
}

func (h *ApplicationHandler) RegisterProviderRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/job/:jobId", h.ListByJob)
	r.Patch("/:id/status", h.Transition)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	answers := make([]ucapp.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, ucapp.AnswerInput{
			QuestionID:   a.QuestionID,
			TextValue:    a.TextValue,
			NumericValue: a.NumericValue,
		})
	}

	app, err := h.uc.Apply(c.Context(), seekerID, ucapp.ApplyInput{
		JobID:       req.JobID,
		CVID:        req.CVID,
		CoverLetter: req.CoverLetter,
		Answers:     answers,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListBySeeker(c.Context(), seekerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(apps))
}

func (h *ApplicationHandler) ListByJob(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByJob(c.Context(), providerID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(apps))
}

func (h *ApplicationHandler) Transition(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	action, err := application.ParseAction(strings.TrimSpace(req.Action))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown action", nil, err)
	}

	app, err := h.uc.Transition(c.Context(), providerID, id, action)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucapp.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapp.ErrCVNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "CV not found", nil, err)
	case errors.Is(err, ucapp.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapp.ErrJobExpired):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job posting has expired", nil, err)
	case errors.Is(err, ucapp.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, ucapp.ErrCoverLetterMissing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Cover letter is required", nil, err)
	case errors.Is(err, ucapp.ErrAnswersMissing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Answers to required questions are missing", nil, err)
	case errors.Is(err, ucapp.ErrAnswerOutOfRange):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Numeric answer outside allowed range", nil, err)
	case errors.Is(err, application.ErrIllegalTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Illegal status transition", nil, err)
	case errors.Is(err, ucapp.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
