package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: bookingCommands,
		queries:  bookingQueries,
	}
}

// @Summary Create a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} response.Envelope{data=queries.BookingView}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	view, err := h.commands.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, "Booking created", view)
}

// @Summary List the caller's bookings
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope{data=[]queries.BookingListItem}
// @Router /bookings/my-bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	items, err := h.queries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", items)
}

// @Summary List bookings of a room in a time window
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param roomId path string true "Room ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} response.Envelope{data=[]queries.BookingListItem}
// @Failure 400 {object} response.Envelope
// @Router /bookings/room/{roomId} [get]
func (h *BookingHandler) ListByRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid start parameter")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid end parameter")
		return
	}
	if !to.After(from) {
		response.Error(c, http.StatusBadRequest, "End must be after start")
		return
	}

	items, err := h.queries.ListByRoom(c.Request.Context(), roomID, from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", items)
}

// @Summary Get a booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope{data=queries.BookingView}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, queries.ErrBookingAccess):
			response.Error(c, http.StatusForbidden, "Not allowed to view this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.JSON(c, http.StatusOK, "", view)
}

// @Summary Reschedule or edit a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update request"
// @Success 200 {object} response.Envelope{data=queries.BookingView}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	view, err := h.commands.Reschedule(c.Request.Context(), bookingID, req, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Booking updated", view)
}

// @Summary Cancel a booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), bookingID, userID, middleware.IsAdmin(c)); err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Booking cancelled", nil)
}

func (h *BookingHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "Room not found")
	case errors.Is(err, commands.ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, commands.ErrBookingConflict):
		response.Error(c, http.StatusConflict, "Time slot conflicts with an existing booking")
	case errors.Is(err, commands.ErrInvalidTimeSlot):
		response.Error(c, http.StatusBadRequest, "Invalid time slot")
	case errors.Is(err, commands.ErrDomainValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, commands.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "Not allowed to modify this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
