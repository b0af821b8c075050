package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arduino_agent/internal/service"

	"github.com/gin-gonic/gin"
)

const errLoadEvents = "failed to load events"

// Accepted forms of the from/to query parameters, tried in order.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// eventQuery binds the GET /api/v1/events query string.
type eventQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Type  string `form:"type"`
	Limit int    `form:"limit"`
}

// filter turns the raw query into a service filter. A date-only "to" covers
// that whole day.
func (q eventQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, Limit: q.Limit}
	var err error
	if q.From != "" {
		if f.From, err = parseQueryTime(q.From); err != nil {
			return f, fmt.Errorf("%w: from: %v", service.ErrInvalidFilter, err)
		}
	}
	if q.To != "" {
		if f.To, err = parseQueryTime(q.To); err != nil {
			return f, fmt.Errorf("%w: to: %v", service.ErrInvalidFilter, err)
		}
		if !strings.ContainsAny(q.To, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

// @Summary      List agent events
// @Description  Upload results and board attach/detach history, oldest first. Dates are RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         events
// @Produce      json
// @Param        from   query   string  false  "Start of range"  example(2025-08-01)
// @Param        to     query   string  false  "End of range"  example(2025-08-31)
// @Param        type   query   string  false  "Event type"  Enums(UPLOAD_SUCCEEDED,UPLOAD_FAILED,DEVICE_NOT_FOUND,DEVICE_ATTACHED,DEVICE_DETACHED)
// @Param        limit  query   int     false  "Keep only the newest N events"
// @Success      200    {object}  map[string]interface{}  "count, events"
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/events [get]
func (h *Handler) getEvents(c *gin.Context) {
	var q eventQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	f, err := q.filter()
	if err != nil {
		h.eventsError(c, q, err)
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.eventsError(c, q, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}

// eventsError answers 400 for filters the caller got wrong, 500 otherwise.
func (h *Handler) eventsError(c *gin.Context, q eventQuery, err error) {
	if errors.Is(err, service.ErrInvalidFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errLoadEvents, "events_list_failed", err,
		"from", q.From, "to", q.To, "type", q.Type)
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
