package server

import (
	"github.com/labstack/echo/v4"

	"example.com/zaffaf/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	venueHandler *handlers.VenueHandler,
	favoriteHandler *handlers.FavoriteHandler,
	budgetHandler *handlers.BudgetHandler,
	checklistHandler *handlers.ChecklistHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
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

	// Карточка открыта публично, список — только авторизованным.
	venueGroup := api.Group("/venues")
	venueGroup.GET("", venueHandler.List, authMiddleware)
	venueGroup.GET("/:id", venueHandler.GetByID)

	favorites := api.Group("/favorites", authMiddleware)
	favorites.GET("", favoriteHandler.List)
	favorites.PUT("/:venueId", favoriteHandler.Add)
	favorites.GET("/:venueId/status", favoriteHandler.Status)
	favorites.DELETE("/:venueId", favoriteHandler.Remove)

	budget := api.Group("/budget", authMiddleware)
	budget.GET("", budgetHandler.Get)
	budget.PUT("", budgetHandler.Set)
	budget.GET("/categories", budgetHandler.ListCategories)
	budget.POST("/categories", budgetHandler.AddCategory)
	budget.PUT("/categories/:id", budgetHandler.UpdateCategory)
	budget.DELETE("/categories/:id", budgetHandler.DeleteCategory)
	budget.POST("/categories/:id/expenses", budgetHandler.AddExpense)
	budget.GET("/expenses", budgetHandler.ListExpenses)
	budget.PUT("/expenses/:id", budgetHandler.UpdateExpense)
	budget.DELETE("/expenses/:id", budgetHandler.DeleteExpense)

	checklist := api.Group("/checklist", authMiddleware)
	checklist.GET("", checklistHandler.List)
	checklist.POST("", checklistHandler.Add)
	checklist.PUT("/:id", checklistHandler.Update)
	checklist.PATCH("/:id/status", checklistHandler.SetStatus)
	checklist.DELETE("/:id", checklistHandler.Delete)

	notificationGroup := api.Group("/notifications", authMiddleware)
	notificationGroup.GET("/stream", notificationHandler.Stream)
}
