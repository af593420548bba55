package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain"
	"hotel/internal/http/middleware"
	"hotel/internal/services"
)

// UserHandler exposes account endpoints: signup/signin plus the self-service
// profile surface.
type UserHandler struct {
	Users services.UserService
}

func (h UserHandler) svc(c *gin.Context) services.UserService {
	s := h.Users
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h UserHandler) Signup(c *gin.Context) {
	var in services.Signup
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.svc(c).Signup(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h UserHandler) Signin(c *gin.Context) {
	var in services.Credentials
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.svc(c).Signin(c.Request.Context(), in)
	if err != nil {
		if domain.IsForbidden(err) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error())
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h UserHandler) GetProfile(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	user, err := h.svc(c).GetProfile(c.Request.Context(), int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h UserHandler) UpdateProfile(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	var patch services.ProfileUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	user, err := h.svc(c).UpdateProfile(c.Request.Context(), int64(rc.UserID), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h UserHandler) Deactivate(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	if err := h.svc(c).Deactivate(c.Request.Context(), int64(rc.UserID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List is admin-only; the router gates it with Authorize.
func (h UserHandler) List(c *gin.Context) {
	users, err := h.svc(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
