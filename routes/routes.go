package routes

import (
	"kam-api/handlers"
	"kam-api/middleware"
	"kam-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	JWT          *middleware.JWT
	Public       *handlers.PublicHandler
	Auth         *handlers.AuthHandler
	Restaurants  *handlers.RestaurantHandler
	Contacts     *handlers.ContactHandler
	Interactions *handlers.InteractionHandler
	Addresses    *handlers.AddressHandler
	KAM          *handlers.KAMHandler
	Admin        *handlers.AdminHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	handlers.RegisterValidation()

	writers := middleware.RoleRequired(models.RoleAdmin, models.RoleKAM)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	// ── Public routes ──────────────────────────────────────────────
	r.GET("/health", h.Public.Health)
	r.GET("/", h.Public.Index)

	public := r.Group("/api/auth")
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
	}

	// ── Authenticated routes ───────────────────────────────────────
	api := r.Group("/api")
	api.Use(h.JWT.AuthRequired())
	api.GET("/auth/profile", h.Auth.Profile)

	// ── Restaurants ────────────────────────────────────────────────
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", h.Restaurants.List)
		restaurants.GET("/due-calls", h.KAM.DueCalls)
		restaurants.GET("/performance-metrics", h.KAM.PerformanceMetrics)
		restaurants.GET("/:id", h.Restaurants.Get)
		restaurants.GET("/:id/contacts", h.Contacts.ListByRestaurant("id"))
		restaurants.GET("/:id/interactions", h.Interactions.ListByRestaurant("id"))
		restaurants.GET("/:id/order-frequency", h.KAM.OrderFrequency)

		restaurants.POST("", writers, h.Restaurants.Create)
		restaurants.PUT("/:id", writers, h.Restaurants.Update)
		restaurants.DELETE("/:id", adminOnly, h.Restaurants.Delete)
	}

	// ── Contacts ───────────────────────────────────────────────────
	contacts := api.Group("/contacts")
	{
		contacts.GET("", h.Contacts.List)
		contacts.GET("/restaurant/:restaurantId", h.Contacts.ListByRestaurant("restaurantId"))
		contacts.POST("", writers, h.Contacts.Create)
		contacts.PUT("/:id", writers, h.Contacts.Update)
		contacts.DELETE("/:id", writers, h.Contacts.Delete)
	}

	// ── Interactions ───────────────────────────────────────────────
	interactions := api.Group("/interactions")
	{
		interactions.GET("/leads/due", h.KAM.DueCalls)
		interactions.GET("/performance", h.KAM.PerformanceData)
		interactions.GET("/restaurant/:restaurantId", h.Interactions.ListByRestaurant("restaurantId"))
		interactions.GET("/:id", h.Interactions.Get)
		interactions.POST("", writers, h.Interactions.Create)
		interactions.PUT("/:id", writers, h.Interactions.Update)
		interactions.DELETE("/:id", writers, h.Interactions.Delete)
	}

	// ── Addresses ──────────────────────────────────────────────────
	addresses := api.Group("/addresses")
	{
		addresses.GET("", h.Addresses.List)
		addresses.GET("/:id", h.Addresses.Get)
		addresses.POST("", writers, h.Addresses.Create)
		addresses.PUT("/:id", writers, h.Addresses.Update)
		addresses.DELETE("/:id", writers, h.Addresses.Delete)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(adminOnly)
	{
		admin.GET("/users", h.Admin.Users)
		admin.GET("/restaurants", h.Admin.Restaurants)
	}
}
