package payment

import (
	"fmt"
	"math"

	"rapidtransit/logger"
	"rapidtransit/types"
	paymentTypes "rapidtransit/types/payment"
	"rapidtransit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"gorm.io/gorm"
)

// PaymentController passes card payments through to Stripe. The core never
// reconciles payments; the client confirms the intent with the secret.
type PaymentController struct {
	DB        *gorm.DB
	Logger    *logger.AsyncLogger
	secretKey string
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, secretKey string) *PaymentController {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &PaymentController{
		DB:        db,
		Logger:    asyncLogger,
		secretKey: secretKey,
	}
}

func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// CreatePaymentIntent creates a Stripe payment intent for a parcel booking.
// Amounts arrive in rand and are converted to cents.
func (pc *PaymentController) CreatePaymentIntent(c *fiber.Ctx) error {
	if pc.secretKey == "" {
		return pc.sendResponseWithLog(c, fiber.StatusServiceUnavailable, types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Payments are not configured",
			Data:    nil,
		})
	}

	var req paymentTypes.CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Amount <= 0 {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "amount must be positive",
			Data:    nil,
		})
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyZAR)),
	}
	if req.ParcelID != nil {
		params.AddMetadata("parcel_id", fmt.Sprintf("%d", *req.ParcelID))
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		logger.Error("Failed to create payment intent", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error creating payment intent",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment intent created successfully",
		Data: fiber.Map{
			"client_secret": intent.ClientSecret,
		},
	})
}
