package api

import (
	"database/sql"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"hotel/internal/config"
	"hotel/internal/domain"
	h "hotel/internal/http/handlers"
	"hotel/internal/http/middleware"
	"hotel/internal/repositories"
	"hotel/internal/services"
	"hotel/internal/utils"
)

// NewRouter wires repositories, services and handlers onto one gin engine.
func NewRouter(env config.Env, database *sql.DB) (*gin.Engine, error) {
	policy, err := utils.NewStayPolicy(env.CheckInHour, env.CheckOutHour, env.TimeZone)
	if err != nil {
		return nil, err
	}

	roomRepo := repositories.RoomRepository{DB: database}
	unitRepo := repositories.UnitRepository{DB: database}
	bookingRepo := repositories.BookingRepository{DB: database}
	userRepo := repositories.UserRepository{DB: database}

	availability := services.AvailabilityService{RoomRepo: roomRepo, UnitRepo: unitRepo, Policy: policy}
	bookings := services.BookingService{
		BookingRepo: bookingRepo,
		UnitRepo:    unitRepo,
		RoomRepo:    roomRepo,
		UserRepo:    userRepo,
		DB:          database,
		Policy:      policy,
	}
	rooms := services.RoomService{RoomRepo: roomRepo, UnitRepo: unitRepo, DB: database}
	users := services.UserService{
		UserRepo:  userRepo,
		JWTSecret: env.JWTSecret,
		JWTTTL:    time.Duration(env.JWTTTLHours) * time.Hour,
	}

	bookingHandler := h.BookingHandler{
		Bookings: bookings,
		Checkout: services.CheckoutService{Availability: availability},
		Docs:     services.DocsService{BookingRepo: bookingRepo, RoomRepo: roomRepo},
		Export:   services.ExportService{BookingRepo: bookingRepo},
	}
	roomHandler := h.RoomHandler{Rooms: rooms, RoomRepo: roomRepo}
	unitHandler := h.UnitHandler{Rooms: rooms, Availability: availability, UnitRepo: unitRepo}
	userHandler := h.UserHandler{Users: users}
	systemHandler := h.SystemHandler{DB: database}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(),
		middleware.RateLimit(env.RateLimitPerSec),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", systemHandler.Health)
	r.GET("/db-check", systemHandler.DBCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protect := middleware.Protect(env.JWTSecret, userRepo)
	adminOnly := middleware.Authorize(domain.RoleAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/signin", userHandler.Signin)

		// Categories are public reads; lifecycle is admin.
		roomsGrp := api.Group("/rooms")
		roomsGrp.GET("", roomHandler.List)
		roomsGrp.GET("/:id", roomHandler.GetByID)
		roomsGrp.POST("", protect, adminOnly, roomHandler.Create)
		roomsGrp.PUT("/:id", protect, adminOnly, roomHandler.Update)
		roomsGrp.DELETE("/:id", protect, adminOnly, roomHandler.Delete)

		// Availability search is the public entry to the booking funnel.
		unitsGrp := api.Group("/units")
		unitsGrp.GET("/search", unitHandler.Search)
		unitsGrp.GET("", protect, adminOnly, unitHandler.List)
		unitsGrp.GET("/:id", protect, adminOnly, unitHandler.GetByID)
		unitsGrp.POST("", protect, adminOnly, unitHandler.Create)
		unitsGrp.PUT("/:id", protect, adminOnly, unitHandler.Update)
		unitsGrp.DELETE("/:id", protect, adminOnly, unitHandler.Delete)

		bookingsGrp := api.Group("/bookings", protect)
		bookingsGrp.POST("", bookingHandler.Create)
		bookingsGrp.POST("/checkout-session", bookingHandler.CheckoutSession)
		bookingsGrp.GET("", adminOnly, bookingHandler.ListByStatus)
		bookingsGrp.GET("/export", adminOnly, bookingHandler.ExportXLSX)
		bookingsGrp.GET("/:id", bookingHandler.GetByID)
		bookingsGrp.GET("/:id/confirmation", bookingHandler.Confirmation)
		bookingsGrp.PATCH("/:id", bookingHandler.Update)
		bookingsGrp.DELETE("/:id", adminOnly, bookingHandler.Delete)

		usersGrp := api.Group("/users", protect)
		usersGrp.GET("", adminOnly, userHandler.List)
		usersGrp.GET("/:userId/bookings", bookingHandler.ListByGuest)

		profile := api.Group("/profile", protect)
		profile.GET("", userHandler.GetProfile)
		profile.PUT("", userHandler.UpdateProfile)
		profile.DELETE("", userHandler.Deactivate)
	}

	return r, nil
}
