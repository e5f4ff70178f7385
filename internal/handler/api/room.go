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

type RoomHandler struct {
	commands commands.RoomCommands
	queries  queries.RoomQueries
}

func NewRoomHandler(roomCommands commands.RoomCommands, roomQueries queries.RoomQueries) *RoomHandler {
	return &RoomHandler{
		commands: roomCommands,
		queries:  roomQueries,
	}
}

// @Summary List rooms
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param include_inactive query bool false "Include deactivated rooms (admin only)"
// @Success 200 {object} response.Envelope{data=[]queries.RoomView}
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && middleware.IsAdmin(c)

	rooms, err := h.queries.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", rooms)
}

// @Summary Get a room
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope{data=queries.RoomView}
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.queries.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", room)
}

// @Summary Day schedule of a room
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Param date query string false "Day to inspect (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope{data=queries.RoomAvailability}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid date parameter")
			return
		}
	}

	availability, err := h.queries.Availability(c.Request.Context(), roomID, date)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, "", availability)
}

// @Summary Create a room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRoomRequest true "Room request"
// @Success 201 {object} response.Envelope{data=queries.RoomView}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := h.commands.Create(c.Request.Context(), req)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, "Room created", room)
}

// @Summary Update a room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Update request"
// @Success 200 {object} response.Envelope{data=queries.RoomView}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := h.commands.Update(c.Request.Context(), roomID, req)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Room updated", room)
}

// @Summary Deactivate a room
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Deactivate(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	if err := h.commands.Deactivate(c.Request.Context(), roomID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Room deactivated", nil)
}

func (h *RoomHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "Room not found")
	case errors.Is(err, commands.ErrDuplicateRoomName):
		response.Error(c, http.StatusConflict, "A room with this name already exists")
	case errors.Is(err, commands.ErrDomainValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
