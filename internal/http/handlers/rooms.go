package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain/models"
	"hotel/internal/http/middleware"
	"hotel/internal/repositories"
	"hotel/internal/services"
)

// RoomHandler covers the category surface: public reads, admin lifecycle.
type RoomHandler struct {
	Rooms    services.RoomService
	RoomRepo repositories.RoomRepository
}

func (h RoomHandler) svc(c *gin.Context) services.RoomService {
	s := h.Rooms
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h RoomHandler) List(c *gin.Context) {
	rooms, err := h.RoomRepo.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h RoomHandler) GetByID(c *gin.Context) {
	room, err := h.RoomRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRequest carries one category plus all of its physical units. The
// whole payload is persisted atomically.
type RoomCreateRequest struct {
	Room  models.Room   `json:"room"`
	Units []models.Unit `json:"units"`
}

func (h RoomHandler) Create(c *gin.Context) {
	var in RoomCreateRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	room, units, err := h.svc(c).CreateRoomWithUnits(c.Request.Context(), in.Room, in.Units)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": room, "units": units})
}

func (h RoomHandler) Update(c *gin.Context) {
	var patch services.RoomPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	room, err := h.svc(c).UpdateRoom(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h RoomHandler) Delete(c *gin.Context) {
	if err := h.svc(c).DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
