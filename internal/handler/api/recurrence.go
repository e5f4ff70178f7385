package api

import (
	"errors"
	"net/http"

	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecurrenceHandler struct {
	commands        commands.RecurrenceCommands
	bookingCommands commands.BookingCommands
	queries         queries.RecurrenceQueries
}

func NewRecurrenceHandler(
	recurrenceCommands commands.RecurrenceCommands,
	bookingCommands commands.BookingCommands,
	recurrenceQueries queries.RecurrenceQueries,
) *RecurrenceHandler {
	return &RecurrenceHandler{
		commands:        recurrenceCommands,
		bookingCommands: bookingCommands,
		queries:         recurrenceQueries,
	}
}

// @Summary Create a weekly recurring booking
// @Description Books every free occurrence of the pattern and reports the dates that were skipped.
// @Tags recurring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRecurringRequest true "Recurring booking request"
// @Success 201 {object} response.Envelope{data=response.RecurringCreateResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /recurrence [post]
func (h *RecurrenceHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req reqdto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.commands.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, "Recurring booking created", response.RecurringCreateResponse{
		Group:        result.Group,
		Created:      result.Created,
		SkippedDates: result.SkippedDates,
	})
}

// @Summary Get a recurrence group with its occurrences
// @Tags recurring
// @Security BearerAuth
// @Produce json
// @Param groupId path string true "Recurrence group ID"
// @Success 200 {object} response.Envelope{data=queries.GroupWithOccurrences}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recurrence/{groupId} [get]
func (h *RecurrenceHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	group, err := h.queries.GetGroup(c.Request.Context(), userID, middleware.IsAdmin(c), groupID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRecurrenceGroupNotFound):
			response.Error(c, http.StatusNotFound, "Recurrence group not found")
		case errors.Is(err, queries.ErrRecurrenceGroupAccess):
			response.Error(c, http.StatusForbidden, "Not allowed to view this recurrence group")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.JSON(c, http.StatusOK, "", group)
}

// @Summary Cancel every remaining occurrence of a group
// @Tags recurring
// @Security BearerAuth
// @Produce json
// @Param groupId path string true "Recurrence group ID"
// @Success 200 {object} response.Envelope{data=response.RecurringCancelResponse}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recurrence/{groupId}/all [delete]
func (h *RecurrenceHandler) CancelAll(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	result, err := h.commands.CancelAll(c.Request.Context(), groupID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Recurring booking cancelled", response.RecurringCancelResponse{
		CancelledCount: result.CancelledCount,
	})
}

// @Summary Cancel a single occurrence
// @Description Cancels one booking of a recurrence group; the rest of the series stays.
// @Tags recurring
// @Security BearerAuth
// @Produce json
// @Param bookingId path string true "Booking ID of the occurrence"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recurrence/single/{bookingId} [delete]
func (h *RecurrenceHandler) CancelSingle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	if err := h.bookingCommands.Cancel(c.Request.Context(), bookingID, userID, middleware.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, commands.ErrNotOwner):
			response.Error(c, http.StatusForbidden, "Not allowed to modify this booking")
		case errors.Is(err, commands.ErrDomainValidation):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.JSON(c, http.StatusOK, "Occurrence cancelled", nil)
}

// @Summary Edit every occurrence of a group
// @Description Changes purpose, attendees or notes on the whole series. The weekly pattern itself is immutable.
// @Tags recurring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param groupId path string true "Recurrence group ID"
// @Param request body reqdto.UpdateRecurringRequest true "Update request"
// @Success 200 {object} response.Envelope{data=queries.RecurrenceGroupView}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recurrence/{groupId}/all [put]
func (h *RecurrenceHandler) UpdateAll(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	var req reqdto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := h.commands.UpdateAll(c.Request.Context(), groupID, req, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Recurring booking updated", group)
}

func (h *RecurrenceHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "Room not found")
	case errors.Is(err, commands.ErrRecurrenceGroupNotFound):
		response.Error(c, http.StatusNotFound, "Recurrence group not found")
	case errors.Is(err, commands.ErrAllOccurrencesConflict):
		response.Error(c, http.StatusConflict, "Every occurrence conflicts with existing bookings")
	case errors.Is(err, commands.ErrInvalidRecurrence):
		response.Error(c, http.StatusBadRequest, "Invalid recurrence pattern")
	case errors.Is(err, commands.ErrDomainValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, commands.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "Not allowed to modify this recurring booking")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
