package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"kam-api/config"
	"kam-api/events"
	"kam-api/geocode"
	"kam-api/handlers"
	"kam-api/logging"
	"kam-api/middleware"
	"kam-api/routes"
	"kam-api/services"
	"kam-api/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logging.New(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	log.WithField("driver", cfg.Database.Driver).Info("Database connected and migrated successfully")

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.WithError(err).Warn("Interaction events disabled")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	var lookup geocode.TimezoneLookup
	if cfg.Maps.APIKey != "" {
		lookup = geocode.NewClient(cfg.Maps.APIKey, cfg.Maps.BaseURL, cfg.Maps.Timeout)
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set; address timezones will be left empty")
	}

	base := logrus.NewEntry(log)
	s := store.New(db)
	kam := services.NewKAMService(s, base)
	jwt := middleware.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(log))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Register all routes
	routes.SetupRoutes(r, routes.Handlers{
		JWT:          jwt,
		Public:       handlers.NewPublicHandler(s),
		Auth:         handlers.NewAuthHandler(s, jwt),
		Restaurants:  handlers.NewRestaurantHandler(s),
		Contacts:     handlers.NewContactHandler(s),
		Interactions: handlers.NewInteractionHandler(s, services.NewInteractionService(s, publisher, base)),
		Addresses:    handlers.NewAddressHandler(s, services.NewAddressService(s, lookup, base)),
		KAM:          handlers.NewKAMHandler(kam),
		Admin:        handlers.NewAdminHandler(s, kam),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
