package server

import (
	"github.com/labstack/echo/v4"

	"example.com/lifeboard/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	transactionHandler *handlers.TransactionHandler,
	habitHandler *handlers.HabitHandler,
	taskHandler *handlers.TaskHandler,
	goalHandler *handlers.GoalHandler,
	noteHandler *handlers.NoteHandler,
	statsHandler *handlers.StatsHandler,
	insightHandler *handlers.InsightHandler,
	xpHandler *handlers.XPHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/export/json", transactionHandler.ExportJSON)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	habits := api.Group("/habits", authMiddleware)
	habits.GET("", habitHandler.List)
	habits.POST("", habitHandler.Create)
	habits.PUT("/:id", habitHandler.Update)
	habits.DELETE("/:id", habitHandler.Delete)
	habits.PATCH("/:id/toggle", habitHandler.Toggle)

	tasks := api.Group("/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.PATCH("/:id/toggle", taskHandler.Toggle)

	goals := api.Group("/goals", authMiddleware)
	goals.GET("", goalHandler.List)
	goals.POST("", goalHandler.Create)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)
	goals.PATCH("/:id/progress", goalHandler.AddProgress)
	goals.PATCH("/:id/complete", goalHandler.Complete)

	notes := api.Group("/notes", authMiddleware)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)
	notes.PATCH("/:id/pin", noteHandler.TogglePin)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/balances", statsHandler.Balances)
	stats.GET("/monthly", statsHandler.Monthly)
	stats.GET("/category-breakdown", statsHandler.CategoryBreakdown)
	stats.GET("/daily-series", statsHandler.DailySeries)
	stats.GET("/portfolio", statsHandler.Portfolio)
	stats.GET("/habits/daily", statsHandler.HabitsDaily)
	stats.GET("/habits/weekly", statsHandler.HabitsWeekly)
	stats.GET("/habits/monthly", statsHandler.HabitsMonthly)
	stats.GET("/habits/leaderboard", statsHandler.HabitsLeaderboard)
	stats.GET("/habits/consistency-audit", statsHandler.HabitsConsistency)

	api.GET("/insights", insightHandler.Get, authMiddleware)
	api.GET("/xp", xpHandler.Get, authMiddleware)

	notificationsGroup := api.Group("/notifications", authMiddleware)
	notificationsGroup.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/usage", adminHandler.Usage)
}
