package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucsaved "jobboard/internal/usecase/saved"
)

type SavedHandler struct {
	uc ucsaved.SavedUsecase
}

func NewSavedHandler(uc ucsaved.SavedUsecase) *SavedHandler {
	return &SavedHandler{uc: uc}
}

func (h *SavedHandler) RegisterSeekerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.SavedJobs)
	r.Put("/:id", h.SaveJob)
	r.Delete("/:id", h.UnsaveJob)
}

func (h *SavedHandler) RegisterProviderRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.SavedCVs)
	r.Put("/:id", h.SaveCV)
	r.Delete("/:id", h.UnsaveCV)
}

func (h *SavedHandler) SavedJobs(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.SavedJobs(c.Context(), seekerID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(jobs))
}

func (h *SavedHandler) SaveJob(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.SaveJob(c.Context(), seekerID, jobID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toggleData(res))
}

func (h *SavedHandler) UnsaveJob(c fiber.Ctx) error {
	seekerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.UnsaveJob(c.Context(), seekerID, jobID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toggleData(res))
}

func (h *SavedHandler) SavedCVs(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	cvs, err := h.uc.SavedCVs(c.Context(), providerID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVListResponse(cvs))
}

func (h *SavedHandler) SaveCV(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	cvID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.SaveCV(c.Context(), providerID, cvID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toggleData(res))
}

func (h *SavedHandler) UnsaveCV(c fiber.Ctx) error {
	providerID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}
	cvID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.UnsaveCV(c.Context(), providerID, cvID)
	if err != nil {
		return mapSavedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toggleData(res))
}

func toggleData(res ucsaved.ToggleResult) map[string]any {
	return map[string]any{
		"saved":   res.Saved,
		"changed": res.Changed,
	}
}

func mapSavedUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucsaved.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucsaved.ErrCVNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "CV not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
