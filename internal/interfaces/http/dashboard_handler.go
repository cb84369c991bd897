package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Autoelectrica-api/internal/application/analytics"
	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
)

// DashboardHandler expone los KPIs del dashboard y las notificaciones de
// stock bajo.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// KPIs godoc
// @Summary      KPIs del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKPIsDTO
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetKPIs(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Notifications godoc
// @Summary      Productos en o bajo su umbral de alerta
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /api/notifications [get]
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	out, err := h.uc.ListAlerts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
