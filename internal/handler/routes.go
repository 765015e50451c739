package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.TokenAuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	transactionHandler *TransactionHandler,
	subscriptionHandler *SubscriptionHandler,
	categoryHandler *CategoryHandler,
	budgetHandler *BudgetHandler,
	ruleHandler *RuleHandler,
	monthHandler *MonthHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(rateLimiter.Middleware())

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.GetSubscriptions)
	subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
	subscriptions.GET("/:id/occurrences", subscriptionHandler.GetOccurrences)
	subscriptions.POST("/:id/pay", subscriptionHandler.PayOccurrence)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)

	// Month budget routes
	budgets := api.Group("/budgets")
	budgets.GET("/:monthKey", budgetHandler.GetBudget)
	budgets.PUT("/:monthKey", budgetHandler.UpsertBudget)
	budgets.POST("/:monthKey/copy-previous", budgetHandler.CopyPreviousBudget)

	// Auto-categorization rule routes
	rules := api.Group("/rules")
	rules.GET("", ruleHandler.GetRules)
	rules.POST("", ruleHandler.CreateRule)
	rules.PUT("/:id", ruleHandler.UpdateRule)
	rules.DELETE("/:id", ruleHandler.DeleteRule)
	rules.GET("/suggest", ruleHandler.SuggestCategory)

	// Month view routes
	months := api.Group("/months")
	months.GET("/:monthKey", monthHandler.GetMonth)
	months.GET("/:monthKey/summary", monthHandler.GetSummary)
	months.GET("/:monthKey/forecast", monthHandler.GetForecast)
	months.GET("/:monthKey/alerts", monthHandler.GetAlerts)
	months.GET("/:monthKey/insights", monthHandler.GetInsights)

	// WebSocket endpoint. Token auth happens inside the handler because the
	// browser passes the token as a query parameter, not a header.
	e.GET("/ws", wsHandler.HandleWS)
}
