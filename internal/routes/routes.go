// Package routes wires the HTTP handlers onto the fiber app.
package routes

import (
	"riskledger/internal/handlers"
	"riskledger/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the handler sets exposed by the API.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Transactions *handlers.TransactionHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.HealthCheck)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Post("/signup", h.Auth.Signup)
	api.Post("/login", h.Auth.Login)

	api.Post("/add-transactions", h.Transactions.AddTransaction)
	api.Get("/transactions/:username", h.Transactions.GetTransactions)
	api.Get("/transactions/:username/summary", h.Transactions.GetSummary)
}
