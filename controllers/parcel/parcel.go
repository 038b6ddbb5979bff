package parcel

import (
	"errors"
	"fmt"
	"strconv"

	"rapidtransit/logger"
	notificationModel "rapidtransit/models/notification"
	parcelModel "rapidtransit/models/parcel"
	userModel "rapidtransit/models/user"
	parcelService "rapidtransit/services/parcel"
	"rapidtransit/services/pricing"
	"rapidtransit/types"
	parcelTypes "rapidtransit/types/parcel"
	"rapidtransit/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParcelController handles parcel booking and tracking HTTP requests
type ParcelController struct {
	DB        *gorm.DB
	Lifecycle *parcelService.Service
	Logger    *logger.AsyncLogger
}

// NewParcelController creates a new parcel controller
func NewParcelController(db *gorm.DB, lifecycle *parcelService.Service, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:        db,
		Lifecycle: lifecycle,
		Logger:    asyncLogger,
	}
}

// Helper function to send response and log in one call
func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// currentUser resolves the authenticated user from the JWT claims.
func (pc *ParcelController) currentUser(c *fiber.Ctx) (*userModel.User, int, string) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return nil, fiber.StatusUnauthorized, "Invalid user claims"
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return nil, fiber.StatusUnauthorized, "User UUID not found in token"
	}

	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		if err.Error() == "user not found" {
			return nil, fiber.StatusUnauthorized, "User not found"
		}
		logger.Error("Error finding user by UUID", err)
		return nil, fiber.StatusInternalServerError, "Database error"
	}

	return userInfo, 0, ""
}

// Store creates a new parcel booking
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcelTypes.CreateParcelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	sender, status, msg := pc.currentUser(c)
	if sender == nil {
		return pc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	// The booking form may leave the cost to the server.
	if req.EstimatedCost == 0 {
		req.EstimatedCost = pricing.EstimateCost(
			parcelModel.ParcelSize(req.ParcelSize),
			parcelModel.ParcelPriority(req.Priority),
			req.DistanceKm,
		)
	}

	newParcel, err := pc.Lifecycle.CreateParcel(req, sender)
	if err != nil {
		var validationErr *parcelService.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: validationErr.Error(),
				Data:    nil,
			})
		case errors.Is(err, parcelService.ErrTrackingNumberConflict):
			return pc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Tracking number conflict, please retry the booking",
				Data:    nil,
			})
		default:
			logger.Error("Failed to create parcel", err)
			return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create parcel",
				Data:    nil,
			})
		}
	}

	// In-app notification for the sender; independent of the SMS side effect.
	inApp := notificationModel.Notification{
		UserID:   sender.ID,
		Title:    fmt.Sprintf("Parcel %s created", newParcel.TrackingNumber),
		Message:  fmt.Sprintf("Your parcel to %s has been successfully booked.", newParcel.DeliveryAddress),
		Type:     "success",
		ParcelID: &newParcel.ID,
	}
	if err := pc.DB.Create(&inApp).Error; err != nil {
		logger.Error("Failed to create in-app notification", err)
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Parcel booked successfully",
		Data:    newParcel,
	})
}

// Index lists the authenticated user's parcels, newest first
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	sender, status, msg := pc.currentUser(c)
	if sender == nil {
		return pc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	parcels, err := pc.Lifecycle.Store.GetUserParcels(sender.ID)
	if err != nil {
		logger.Error("Failed to fetch parcels", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch parcels",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data:    parcels,
	})
}

// Show returns a single parcel; only its sender may read it
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	sender, status, msg := pc.currentUser(c)
	if sender == nil {
		return pc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	parcelID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		})
	}

	p, err := pc.Lifecycle.Store.GetParcel(uint(parcelID))
	if err != nil {
		if errors.Is(err, parcelService.ErrParcelNotFound) {
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch parcel", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch parcel",
			Data:    nil,
		})
	}

	if p.SenderID != sender.ID {
		return pc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Access denied",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel retrieved successfully",
		Data:    p,
	})
}

// Track returns a parcel and its full status history by tracking number.
// Public: a recipient only needs the tracking number.
func (pc *ParcelController) Track(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")

	p, err := pc.Lifecycle.Store.GetParcelByTrackingNumber(trackingNumber)
	if err != nil {
		if errors.Is(err, parcelService.ErrParcelNotFound) {
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to track parcel", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to track parcel",
			Data:    nil,
		})
	}

	history, err := pc.Lifecycle.Store.GetStatusHistory(p.ID)
	if err != nil {
		logger.Error("Failed to fetch status history", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to track parcel",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel tracked successfully",
		Data: fiber.Map{
			"parcel":         p,
			"status_history": history,
		},
	})
}

// UpdateStatus applies a lifecycle transition to a parcel
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	parcelID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		})
	}

	var req parcelTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	updated, err := pc.Lifecycle.UpdateStatus(uint(parcelID), parcelModel.ParcelStatus(req.Status), req.Location, req.Notes)
	if err != nil {
		var validationErr *parcelService.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: validationErr.Error(),
				Data:    nil,
			})
		case errors.Is(err, parcelService.ErrParcelNotFound):
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		default:
			logger.Error("Failed to update parcel status", err)
			return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update parcel status",
				Data:    nil,
			})
		}
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel status updated successfully",
		Data:    updated,
	})
}

// EstimateCost quotes a booking price. Public, stateless.
func (pc *ParcelController) EstimateCost(c *fiber.Ctx) error {
	var req parcelTypes.EstimateCostRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	estimatedCost := pricing.EstimateCost(
		parcelModel.ParcelSize(req.ParcelSize),
		parcelModel.ParcelPriority(req.Priority),
		req.Distance,
	)

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Cost estimated successfully",
		Data: fiber.Map{
			"estimated_cost": estimatedCost,
		},
	})
}

// Stats returns the dashboard counters for the authenticated user
func (pc *ParcelController) Stats(c *fiber.Ctx) error {
	sender, status, msg := pc.currentUser(c)
	if sender == nil {
		return pc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	stats, err := pc.Lifecycle.Store.GetUserParcelStats(sender.ID)
	if err != nil {
		logger.Error("Failed to fetch dashboard stats", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch dashboard stats",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data:    stats,
	})
}
