package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Sale listings
	mux.Post("/vehicles/sell", authMiddleware.ThenFunc(app.vehicleHandler.CreateVehicle))
	mux.Get("/vehicles/filtered-listings", standardMiddleware.ThenFunc(app.vehicleHandler.GetFilteredListings))
	mux.Get("/vehicles/user/:user_id", standardMiddleware.ThenFunc(app.vehicleHandler.GetSellerListings))
	mux.Get("/vehicles/:id", standardMiddleware.ThenFunc(app.vehicleHandler.GetVehicleByID))
	mux.Put("/vehicles/status/:id", adminAuthMiddleware.ThenFunc(app.vehicleHandler.UpdateVehicleStatus))
	mux.Del("/vehicles/:id", authMiddleware.ThenFunc(app.vehicleHandler.DeleteVehicle))
	mux.Get("/admin/vehicles", adminAuthMiddleware.ThenFunc(app.vehicleHandler.GetAdminListings))

	// Update requests
	mux.Post("/vehicles/:id/update-request", authMiddleware.ThenFunc(app.updateRequestHandler.SubmitUpdateRequest))
	mux.Put("/admin/update-requests/:id", adminAuthMiddleware.ThenFunc(app.updateRequestHandler.ResolveUpdateRequest))
	mux.Get("/admin/update-requests", adminAuthMiddleware.ThenFunc(app.updateRequestHandler.GetUpdateRequests))

	// Rent listings
	mux.Post("/rent-vehicles", authMiddleware.ThenFunc(app.rentHandler.CreateRentVehicle))
	mux.Get("/rent-vehicles", standardMiddleware.ThenFunc(app.rentHandler.GetRentVehicles))
	mux.Get("/rent-vehicles/user/:user_id", standardMiddleware.ThenFunc(app.rentHandler.GetOwnerRentVehicles))
	mux.Get("/rent-vehicles/:id", standardMiddleware.ThenFunc(app.rentHandler.GetRentVehicleByID))
	mux.Put("/rent-vehicles/status/:id", adminAuthMiddleware.ThenFunc(app.rentHandler.UpdateRentStatus))
	mux.Put("/rent-vehicles/:id/availability", authMiddleware.ThenFunc(app.rentHandler.UpdateAvailability))
	mux.Del("/rent-vehicles/:id", authMiddleware.ThenFunc(app.rentHandler.DeleteRentVehicle))

	// Payments. The callbacks are hit by the gateway, not by clients, so
	// they sit outside the auth chain.
	mux.Post("/payment/initiate", authMiddleware.ThenFunc(app.paymentHandler.InitiatePayment))
	mux.Post("/payment/success", standardMiddleware.ThenFunc(app.paymentHandler.PaymentSuccess))
	mux.Post("/payment/fail", standardMiddleware.ThenFunc(app.paymentHandler.PaymentFail))
	mux.Post("/payment/cancel", standardMiddleware.ThenFunc(app.paymentHandler.PaymentCancel))
	mux.Get("/admin/payments", adminAuthMiddleware.ThenFunc(app.paymentHandler.GetTransactions))
	mux.Get("/admin/payments/:tran_id", adminAuthMiddleware.ThenFunc(app.paymentHandler.GetTransaction))

	// Dashboards
	mux.Get("/summary/:user_id", authMiddleware.ThenFunc(app.summaryHandler.GetUserSummary))
	mux.Post("/admin/summary/:user_id/recompute", adminAuthMiddleware.ThenFunc(app.summaryHandler.RecomputeSummary))
	mux.Get("/admin/dashboard", adminAuthMiddleware.ThenFunc(app.dashboardHandler.GetStats))

	// Settings
	mux.Get("/admin/settings", adminAuthMiddleware.ThenFunc(app.settingsHandler.GetSettings))
	mux.Put("/admin/settings", adminAuthMiddleware.ThenFunc(app.settingsHandler.UpdateSettings))

	// Notification tokens
	mux.Post("/notify-tokens", authMiddleware.ThenFunc(app.fcmHandler.RegisterToken))
	mux.Del("/notify-tokens/:token", authMiddleware.ThenFunc(app.fcmHandler.UnregisterToken))

	return mux
}
