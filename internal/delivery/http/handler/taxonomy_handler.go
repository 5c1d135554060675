package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
)

// TaxonomyHandler serves the reference lists job and CV forms are built from.
type TaxonomyHandler struct {
	repo repository.TaxonomyRepository
}

func NewTaxonomyHandler(repo repository.TaxonomyRepository) *TaxonomyHandler {
	return &TaxonomyHandler{repo: repo}
}

func (h *TaxonomyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/categories", h.Categories)
	r.Get("/skills", h.Skills)
}

func (h *TaxonomyHandler) Categories(c fiber.Ctx) error {
	items, err := h.repo.ListCategories(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *TaxonomyHandler) Skills(c fiber.Ctx) error {
	items, err := h.repo.ListSkills(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
