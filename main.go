package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel/internal/config"
	"hotel/internal/db"
	router "hotel/internal/http"
	"hotel/internal/metrics"
	"hotel/internal/utils"
)

func main() {
	env := config.LoadEnv()
	utils.InitLogger(env.GinMode)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	database := config.ConnectDB(env.DBDSN)
	defer config.CloseDB()

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	metrics.Register()

	r, err := router.NewRouter(env, database)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}

	log.Info().Msg("server stopped")
}
