package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain/models"
	"hotel/internal/http/middleware"
	"hotel/internal/repositories"
	"hotel/internal/services"
)

// UnitHandler covers physical units, including the availability search that
// drives the booking funnel.
type UnitHandler struct {
	Rooms        services.RoomService
	Availability services.AvailabilityService
	UnitRepo     repositories.UnitRepository
}

func (h UnitHandler) svc(c *gin.Context) services.RoomService {
	s := h.Rooms
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h UnitHandler) List(c *gin.Context) {
	units, err := h.UnitRepo.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (h UnitHandler) GetByID(c *gin.Context) {
	unit, err := h.UnitRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Search answers "which units are free for this stay". Query parameters:
// start and end (YYYY-MM-DD), optional min_price/max_price, view and smoking.
// The response groups surviving units under their room category.
func (h UnitHandler) Search(c *gin.Context) {
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return
	}
	smoking, ok := queryBool(c, "smoking")
	if !ok {
		return
	}

	min := 0.0
	if minPrice != nil {
		min = *minPrice
	}

	rooms, grouped, err := h.Availability.Search(c.Request.Context(),
		c.Query("start"), c.Query("end"), min, maxPrice, c.Query("view"), smoking)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "available_units": grouped})
}

func (h UnitHandler) Create(c *gin.Context) {
	var in struct {
		Units []models.Unit `json:"units"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	units, err := h.svc(c).CreateUnits(c.Request.Context(), in.Units)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"units": units})
}

func (h UnitHandler) Update(c *gin.Context) {
	var patch services.UnitPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	unit, err := h.svc(c).UpdateUnit(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Delete refuses while the unit still has bookings ending in the future.
func (h UnitHandler) Delete(c *gin.Context) {
	if err := h.svc(c).DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
