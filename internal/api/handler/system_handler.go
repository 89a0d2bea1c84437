package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsconsole/admin-api/internal/core/ports"
)

// SystemHandler serves the admin-only operational metrics view.
type SystemHandler struct {
	provider ports.SystemInfoProvider
}

func NewSystemHandler(provider ports.SystemInfoProvider) *SystemHandler {
	return &SystemHandler{provider: provider}
}

// Info returns a read-only snapshot of host metrics.
//
// @Summary      System info
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemInfo
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /system-info [get]
func (h *SystemHandler) Info(c echo.Context) error {
	snapshot, err := h.provider.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}
