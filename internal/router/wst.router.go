package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"wastetrade-service/internal/handler"
	hrest "wastetrade-service/internal/handler/rest"
	"wastetrade-service/internal/middleware"
	"wastetrade-service/internal/usecase"
)

func New(
	ledgerH *hrest.LedgerRestHandler,
	wasteH *hrest.WasteRestHandler,
	directoryH *hrest.DirectoryRestHandler,
	ledgerUC *usecase.LedgerUsecase,
	notifier *usecase.Notifier,
	auth *middleware.AuthMiddleware,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/api", func(r chi.Router) {
			// Ledger
			r.Post("/payments", ledgerH.MakePayment)
			r.Post("/withdrawals", ledgerH.ProcessWithdrawal)
			r.Get("/balance/{userID}", ledgerH.GetBalance)
			r.Get("/transactions/{userID}", ledgerH.ListTransactions)

			// Waste registry
			r.Post("/waste", wasteH.RegisterWaste)
			r.Post("/waste/sell", wasteH.SellWaste)
			r.Post("/waste/assign", wasteH.AssignWaste)
			r.Post("/waste/collect", wasteH.CollectWaste)
			r.Get("/waste", wasteH.ViewAllWaste)
			r.Get("/reports/waste", wasteH.GenerateReport)

			// Directory
			r.Post("/agents", directoryH.RegisterAgent)
			r.Get("/agents", directoryH.ListAgents)
			r.Get("/agents/{agentID}", directoryH.GetAgent)
			r.Put("/agents/profile", directoryH.UpdateAgentProfile)
			r.Post("/users", directoryH.RegisterUser)
			r.Get("/users/{userID}", directoryH.GetUser)

			// Admin
			r.Get("/admin/users", directoryH.ManageUsers)
			r.Delete("/admin/users/{userID}", directoryH.DeleteUser)
			r.Post("/admin/notifications", directoryH.SendNotification)
		})
	})

	// Browsers cannot set Authorization headers on websocket upgrades.
	r.Get("/ws/balance/{userID}", handler.BalanceWSHandler(ledgerUC, notifier))

	return r
}
