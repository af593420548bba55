package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/http/middleware"
	"hotel/internal/services"
)

// BookingHandler covers the booking lifecycle plus the checkout and document
// endpoints around it.
type BookingHandler struct {
	Bookings services.BookingService
	Checkout services.CheckoutService
	Docs     services.DocsService
	Export   services.ExportService
}

func (h BookingHandler) svc(c *gin.Context) services.BookingService {
	s := h.Bookings
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// Create books a unit. Customers can only book for themselves; the guest id
// in the payload is overridden with the caller's id unless the caller is an
// admin booking on a guest's behalf.
func (h BookingHandler) Create(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	var in services.BookingCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	if rc.Role != domain.RoleAdmin {
		in.GuestID = int64(rc.UserID)
	}
	booking, err := h.svc(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetByID returns one booking; customers can only read their own.
func (h BookingHandler) GetByID(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	booking, err := h.svc(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !h.canAccess(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListByStatus is the admin listing, optionally filtered by derived status
// (booked, in_stay, completed).
func (h BookingHandler) ListByStatus(c *gin.Context) {
	bookings, err := h.svc(c).ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListByGuest returns one guest's bookings; customers can only list their own.
func (h BookingHandler) ListByGuest(c *gin.Context) {
	guestID, ok := paramInt64(c, "userId")
	if !ok {
		return
	}
	rc, _ := middleware.GetRequestContext(c)
	if rc.Role != domain.RoleAdmin && int64(rc.UserID) != guestID {
		respondError(c, http.StatusForbidden, "forbidden", "not your bookings")
		return
	}
	bookings, err := h.svc(c).ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Update applies the guest-editable fields while the booking is still Booked.
func (h BookingHandler) Update(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	current, err := h.svc(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !h.canAccess(c, current) {
		respondError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}

	var upd models.BookingUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	booking, err := h.svc(c).Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Delete removes a booking; admin only at the router.
func (h BookingHandler) Delete(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	if err := h.svc(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckoutSessionRequest describes the pending purchase to price.
type CheckoutSessionRequest struct {
	RoomID  string `json:"room_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Smoking *bool  `json:"smoking"`
}

// CheckoutSession picks an available unit of the requested category and
// returns the payment intent for it. Nothing is reserved yet.
func (h BookingHandler) CheckoutSession(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	var in CheckoutSessionRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	checkout := h.Checkout
	checkout.RequestID = middleware.GetRequestID(c)
	intent, err := checkout.CreateIntent(c.Request.Context(), int64(rc.UserID), in.RoomID, in.Start, in.End, in.Smoking)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// Confirmation streams the booking confirmation PDF.
func (h BookingHandler) Confirmation(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	booking, err := h.svc(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !h.canAccess(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := docs.GenerateConfirmation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportXLSX streams the full bookings sheet; admin only at the router.
func (h BookingHandler) ExportXLSX(c *gin.Context) {
	export := h.Export
	export.RequestID = middleware.GetRequestID(c)
	data, filename, err := export.ExportBookings(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h BookingHandler) canAccess(c *gin.Context, booking models.Booking) bool {
	rc, ok := middleware.GetRequestContext(c)
	if !ok {
		return false
	}
	return rc.Role == domain.RoleAdmin || int64(rc.UserID) == booking.GuestID
}
