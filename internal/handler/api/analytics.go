package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/stream"
	"roombook/internal/usecase/queries"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const streamHeartbeat = 30 * time.Second

type AnalyticsHandler struct {
	queries queries.AnalyticsQueries
	hub     *stream.Hub
}

func NewAnalyticsHandler(analyticsQueries queries.AnalyticsQueries, hub *stream.Hub) *AnalyticsHandler {
	return &AnalyticsHandler{
		queries: analyticsQueries,
		hub:     hub,
	}
}

// @Summary Utilization report
// @Description Aggregated utilization, peak hours and booking frequency for the requested window.
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param range query string false "Named range: week, month or year (default week)"
// @Param start query string false "Explicit window start (YYYY-MM-DD)"
// @Param end query string false "Explicit window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=queries.AnalyticsReport}
// @Failure 400 {object} response.Envelope
// @Router /analytics [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	from, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}

	report, err := h.queries.Report(c.Request.Context(), c.Query("range"), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", report)
}

// @Summary Dashboard statistics
// @Description Booking counts by status, popular rooms, peak hours and the daily trend.
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD, default 30 days ago)"
// @Param end query string false "Window end (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope{data=queries.DashboardReport}
// @Failure 400 {object} response.Envelope
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	from, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}

	report, err := h.queries.Dashboard(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", report)
}

// @Summary Time slot popularity
// @Description Confirmed bookings bucketed by weekday and starting hour.
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD, default 30 days ago)"
// @Param end query string false "Window end (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope{data=queries.TimeSlotPopularityReport}
// @Failure 400 {object} response.Envelope
// @Router /analytics/time-slots [get]
func (h *AnalyticsHandler) TimeSlots(c *gin.Context) {
	from, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}

	report, err := h.queries.TimeSlotPopularity(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", report)
}

// @Summary Most active bookers
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param start query string false "Window start (YYYY-MM-DD, default 30 days ago)"
// @Param end query string false "Window end (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope{data=queries.UserStatsReport}
// @Failure 400 {object} response.Envelope
// @Router /analytics/user-stats [get]
func (h *AnalyticsHandler) UserStats(c *gin.Context) {
	from, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}

	report, err := h.queries.UserStats(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", report)
}

// @Summary Utilization of a single room
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param roomId query string true "Room ID"
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=queries.RoomUtilizationView}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/utilization [get]
func (h *AnalyticsHandler) RoomUtilization(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("roomId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid roomId parameter")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid start parameter")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid end parameter")
		return
	}

	view, err := h.queries.RoomUtilization(c.Request.Context(), roomID, from, to)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", view)
}

// @Summary Live analytics stream
// @Description Server-sent events; pushes a fresh weekly report whenever the calendar mutates.
// @Tags analytics
// @Security BearerAuth
// @Produce text/event-stream
// @Router /analytics/stream [get]
func (h *AnalyticsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(events)

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	_ = sse.Encode(c.Writer, sse.Event{Event: "connected", Data: "ok"})
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case ev, open := <-events:
			if !open {
				return false
			}
			// The mutation already invalidated the cache, so the first
			// subscriber rebuilds the report and the rest hit the cache.
			report, err := h.queries.Report(c.Request.Context(), "", nil, nil)
			if err != nil {
				_ = sse.Encode(w, sse.Event{Event: ev.Name, Data: ev.Data})
				return true
			}
			_ = sse.Encode(w, sse.Event{Event: ev.Name, Data: report})
			return true
		case <-heartbeat.C:
			_ = sse.Encode(w, sse.Event{Event: "heartbeat", Data: time.Now().UTC().Format(time.RFC3339)})
			return true
		}
	})
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return nil, false
	}
	return &parsed, true
}
