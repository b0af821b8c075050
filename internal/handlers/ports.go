package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errGetStatus = "failed to load status"

// @Summary      List serial ports
// @Description  All serial devices in enumeration order; "matched" marks ports the upload would consider a board.
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, ports"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ports [get]
func (h *Handler) listPorts(c *gin.Context) {
	ports, err := h.services.Ports.ListPorts(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errEnumerate, "ports_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(ports),
		"ports": ports,
	})
}

// @Summary      Agent status
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.AgentStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
