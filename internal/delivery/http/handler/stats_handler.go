package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucstats "jobboard/internal/usecase/stats"
)

type StatsHandler struct {
	uc ucstats.StatsUsecase
}

func NewStatsHandler(uc ucstats.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/cities", h.Cities)
}

// RegisterAdminRoutes mounts the chart feeds behind the admin role.
func (h *StatsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/cities", h.CityStatistics)
	r.Get("/jobs-by-city", h.JobsByCity)
	r.Get("/seekers-by-city", h.SeekersByCity)
	r.Get("/applications", h.ApplicationBreakdown)
}

func (h *StatsHandler) Cities(c fiber.Ctx) error {
	cities, err := h.uc.Cities(c.Context())
	if err != nil {
		return mapStatsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, cities)
}

func (h *StatsHandler) CityStatistics(c fiber.Ctx) error {
	stats, err := h.uc.CityStatistics(c.Context())
	if err != nil {
		return mapStatsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *StatsHandler) JobsByCity(c fiber.Ctx) error {
	series, err := h.uc.JobsByCity(c.Context())
	if err != nil {
		return mapStatsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, series)
}

func (h *StatsHandler) SeekersByCity(c fiber.Ctx) error {
	series, err := h.uc.SeekersByCity(c.Context())
	if err != nil {
		return mapStatsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, series)
}

func (h *StatsHandler) ApplicationBreakdown(c fiber.Ctx) error {
	counts, err := h.uc.ApplicationBreakdown(c.Context())
	if err != nil {
		return mapStatsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, counts)
}

func mapStatsUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
