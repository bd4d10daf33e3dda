package handlers

import (
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"
	"freshtrack-backend/pkg/waste"

	"github.com/gofiber/fiber/v2"
)

type (
	StatsHandler interface {
		GetWasteStats(c *fiber.Ctx) error
		GetEnhancedWasteStats(c *fiber.Ctx) error
	}

	statsHandler struct {
		wasteService waste.WasteService
	}
)

func NewStatsHandler(wasteService waste.WasteService) StatsHandler {
	return &statsHandler{wasteService: wasteService}
}

func (h *statsHandler) GetWasteStats(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c.Query("as_of"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWasteStats, err)
	}

	stats, err := h.wasteService.GetWasteStats(c.Context(), asOf)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWasteStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetWasteStats)
}

func (h *statsHandler) GetEnhancedWasteStats(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c.Query("as_of"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWasteStats, err)
	}

	stats, err := h.wasteService.GetEnhancedWasteStats(c.Context(), asOf)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWasteStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetWasteStats)
}

// parseAsOf reads the optional as_of query parameter; the current UTC day
// is the default.
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
