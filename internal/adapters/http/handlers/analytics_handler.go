package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/core/services"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// AnalyticsHandler serves dashboard aggregates
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Overview godoc
// @Summary Dashboard overview
// @Description Platform-wide counts, commission totals and top agents
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	data, err := h.analyticsService.GetOverview(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Overview retrieved successfully", data)
}

// DsaActivity returns a zero-filled loan submission series, either for
// one DSA (?dsaId=) or the whole platform, daily or weekly (?period=)
func (h *AnalyticsHandler) DsaActivity(c *fiber.Ctx) error {
	period := c.Query("period", services.PeriodDaily)
	if period != services.PeriodDaily && period != services.PeriodWeekly {
		return response.BadRequest(c, "period must be daily or weekly")
	}

	var dsaID *uint
	if raw := c.Query("dsaId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid dsaId")
		}
		id := uint(parsed)
		dsaID = &id
	}

	data, err := h.analyticsService.GetDsaActivity(c.Context(), dsaID, period)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Activity retrieved successfully", data)
}

// PlanPopularity returns admin counts grouped by plan
func (h *AnalyticsHandler) PlanPopularity(c *fiber.Ctx) error {
	data, err := h.analyticsService.GetPlanPopularity(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Plan popularity retrieved successfully", data)
}
