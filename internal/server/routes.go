package server

import (
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	babyHandler *handlers.BabyHandler,
	feedHandler *handlers.FeedHandler,
	diaperHandler *handlers.DiaperHandler,
	temperatureHandler *handlers.TemperatureHandler,
	growthHandler *handlers.GrowthHandler,
	medicationHandler *handlers.MedicationHandler,
	milestoneHandler *handlers.MilestoneHandler,
	settingsHandler *handlers.SettingsHandler,
	summaryHandler *handlers.SummaryHandler,
	insightsHandler *handlers.InsightsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	babies := api.Group("/babies", authMiddleware)
	babies.GET("", babyHandler.List)
	babies.POST("", babyHandler.Create)
	babies.GET("/:babyId", babyHandler.Get)
	babies.PUT("/:babyId", babyHandler.Update)
	babies.DELETE("/:babyId", babyHandler.Delete)

	babies.GET("/:babyId/feeds", feedHandler.List)
	babies.POST("/:babyId/feeds", feedHandler.Create)
	babies.GET("/:babyId/diapers", diaperHandler.List)
	babies.POST("/:babyId/diapers", diaperHandler.Create)
	babies.GET("/:babyId/temperatures", temperatureHandler.List)
	babies.POST("/:babyId/temperatures", temperatureHandler.Create)
	babies.GET("/:babyId/growth", growthHandler.List)
	babies.POST("/:babyId/growth", growthHandler.Create)
	babies.GET("/:babyId/medications", medicationHandler.List)
	babies.POST("/:babyId/medications", medicationHandler.Create)
	babies.GET("/:babyId/milestones", milestoneHandler.List)
	babies.POST("/:babyId/milestones", milestoneHandler.Create)

	babies.GET("/:babyId/alert-settings", settingsHandler.Get)
	babies.PUT("/:babyId/alert-settings", settingsHandler.Put)
	babies.GET("/:babyId/summary/today", summaryHandler.Today)
	babies.GET("/:babyId/insights", insightsHandler.Get)
	babies.POST("/:babyId/insights/generate", insightsHandler.Generate, aiRateLimiter)

	feeds := api.Group("/feeds", authMiddleware)
	feeds.DELETE("/:id", feedHandler.Delete)

	diapers := api.Group("/diapers", authMiddleware)
	diapers.DELETE("/:id", diaperHandler.Delete)

	temperatures := api.Group("/temperatures", authMiddleware)
	temperatures.DELETE("/:id", temperatureHandler.Delete)

	growth := api.Group("/growth", authMiddleware)
	growth.DELETE("/:id", growthHandler.Delete)

	medications := api.Group("/medications", authMiddleware)
	medications.DELETE("/:id", medicationHandler.Delete)

	milestones := api.Group("/milestones", authMiddleware)
	milestones.DELETE("/:id", milestoneHandler.Delete)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/ai-requests", adminHandler.ListAIRequests)
	admin.GET("/usage", adminHandler.Usage)
}
