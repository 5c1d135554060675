package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucprofile "jobboard/internal/usecase/profile"
)

type ProfileHandler struct {
	uc ucprofile.ProfileUsecase
}

func NewProfileHandler(uc ucprofile.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type updateSeekerRequest struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phonenumber *string    `json:"phonenumber"`
	CityID      *uuid.UUID `json:"city_id"`
}

type updateProviderRequest struct {
	CompanyName string     `json:"company_name"`
	Phonenumber *string    `json:"phonenumber"`
	CityID      *uuid.UUID `json:"city_id"`
}

func (h *ProfileHandler) RegisterSeekerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.SeekerMe)
	r.Get("/me/info", h.SeekerInfo)
	r.Put("/me", h.UpdateSeeker)
}

func (h *ProfileHandler) RegisterProviderRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.ProviderMe)
	r.Put("/me", h.UpdateProvider)
}

func (h *ProfileHandler) SeekerMe(c fiber.Ctx) error {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	sk, err := h.uc.Seeker(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSeekerResponse(sk))
}

func (h *ProfileHandler) SeekerInfo(c fiber.Ctx) error {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	info, err := h.uc.SeekerInfo(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSeekerInfoResponse(info))
}

func (h *ProfileHandler) UpdateSeeker(c fiber.Ctx) error {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateSeekerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sk, err := h.uc.UpdateSeeker(c.Context(), id, ucprofile.UpdateSeekerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phonenumber: req.Phonenumber,
		CityID:      req.CityID,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSeekerResponse(sk))
}

func (h *ProfileHandler) ProviderMe(c fiber.Ctx) error {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	pr, err := h.uc.Provider(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProviderResponse(pr))
}

func (h *ProfileHandler) UpdateProvider(c fiber.Ctx) error {
	id, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateProviderRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	pr, err := h.uc.UpdateProvider(c.Context(), id, ucprofile.UpdateProviderInput{
		CompanyName: req.CompanyName,
		Phonenumber: req.Phonenumber,
		CityID:      req.CityID,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProviderResponse(pr))
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucprofile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
