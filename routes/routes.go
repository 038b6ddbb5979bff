package routes

import (
	"os"

	"rapidtransit/constants"
	authController "rapidtransit/controllers/auth"
	notificationController "rapidtransit/controllers/notification"
	parcelController "rapidtransit/controllers/parcel"
	paymentController "rapidtransit/controllers/payment"
	transportController "rapidtransit/controllers/transport"
	"rapidtransit/httpServices/sms"
	"rapidtransit/logger"
	"rapidtransit/middleware"
	parcelService "rapidtransit/services/parcel"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	smsService := sms.NewSMSService(sms.LoadConfig())
	lifecycle := parcelService.NewService(db, smsService)

	auth := authController.NewAuthController(db, asyncLogger)
	parcels := parcelController.NewParcelController(db, lifecycle, asyncLogger)
	transports := transportController.NewTransportController(db, asyncLogger)
	notifications := notificationController.NewNotificationController(db, asyncLogger)
	payments := paymentController.NewPaymentController(db, asyncLogger, os.Getenv("STRIPE_SECRET_KEY"))

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)
	api.Get("/track/:trackingNumber", parcels.Track)
	api.Post("/estimate-cost", parcels.EstimateCost)
	api.Get("/transports", transports.Index)

	/*=============================================================================
	| Authenticated Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", auth.Profile)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcelGroup := api.Group("/parcels")

	parcelGroup.Post("/", middleware.RequirePermissions(
		constants.PermCustomer,
	), parcels.Store)

	parcelGroup.Get("/", middleware.RequirePermissions(
		constants.PermCustomer,
	), parcels.Index)

	parcelGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermCustomer,
	), parcels.Show)

	// Depot staff only: lifecycle transitions
	parcelGroup.Patch("/:id/status", middleware.RequirePermissions(
		constants.PermOperator,
	), parcels.UpdateStatus)

	/*=============================================================================
	| Transport Routes
	===============================================================================*/
	api.Post("/transports", middleware.RequirePermissions(
		constants.PermOperator,
	), transports.Store)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notificationGroup := api.Group("/notifications").Use(middleware.RequireAuthentication())
	notificationGroup.Get("/", notifications.Index)
	notificationGroup.Patch("/:id/read", notifications.MarkRead)

	/*=============================================================================
	| Dashboard & Payment Routes
	===============================================================================*/
	api.Get("/dashboard/stats", middleware.RequireAuthentication(), parcels.Stats)
	api.Post("/create-payment-intent", middleware.RequireAuthentication(), payments.CreatePaymentIntent)
}
