package notification

import (
	"errors"
	"strconv"

	"rapidtransit/logger"
	notificationModel "rapidtransit/models/notification"
	"rapidtransit/types"
	"rapidtransit/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController handles in-app notification HTTP requests
type NotificationController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewNotificationController creates a new notification controller
func NewNotificationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *NotificationController {
	return &NotificationController{
		DB:     db,
		Logger: asyncLogger,
	}
}

func (nc *NotificationController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	nc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Index lists the authenticated user's latest notifications
func (nc *NotificationController) Index(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return nc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
			Data:    nil,
		})
	}

	userUUID, _ := claims["uuid"].(string)
	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		return nc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	var notifications []notificationModel.Notification
	err = nc.DB.Where("user_id = ?", userInfo.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error
	if err != nil {
		logger.Error("Failed to fetch notifications", err)
		return nc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch notifications",
			Data:    nil,
		})
	}

	return nc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications retrieved successfully",
		Data:    notifications,
	})
}

// MarkRead marks a single notification as read
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	notificationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid notification id",
			Data:    nil,
		})
	}

	var n notificationModel.Notification
	if err := nc.DB.First(&n, uint(notificationID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Notification not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find notification", err)
		return nc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if err := nc.DB.Model(&n).Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark notification as read", err)
		return nc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to mark notification as read",
			Data:    nil,
		})
	}

	return nc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notification marked as read",
		Data:    nil,
	})
}
