package transport

import (
	"rapidtransit/logger"
	transportModel "rapidtransit/models/transport"
	"rapidtransit/types"
	transportTypes "rapidtransit/types/transport"
	"rapidtransit/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TransportController handles transport schedule HTTP requests
type TransportController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewTransportController creates a new transport controller
func NewTransportController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TransportController {
	return &TransportController{
		DB:     db,
		Logger: asyncLogger,
	}
}

func (tc *TransportController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Index lists transport runs, optionally filtered by route endpoints.
// With both from and to set, only scheduled runs on that route are returned.
func (tc *TransportController) Index(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")

	var transports []transportModel.Transport
	query := tc.DB.Order("departure_time ASC")

	if from != "" && to != "" {
		query = query.
			Where("route_from LIKE ?", "%"+from+"%").
			Where("route_to LIKE ?", "%"+to+"%").
			Where("status = ?", transportModel.TransportStatusScheduled)
	}

	if err := query.Find(&transports).Error; err != nil {
		logger.Error("Failed to fetch transports", err)
		return tc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch transports",
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Transports retrieved successfully",
		Data:    transports,
	})
}

// Store creates a new scheduled transport run
func (tc *TransportController) Store(c *fiber.Ctx) error {
	var req transportTypes.CreateTransportRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Operator == "" || req.VehicleNumber == "" || req.RouteFrom == "" || req.RouteTo == "" {
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "operator, vehicle_number, route_from and route_to are required",
			Data:    nil,
		})
	}

	if !req.ArrivalTime.After(req.DepartureTime) {
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "arrival_time must be after departure_time",
			Data:    nil,
		})
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 50
	}

	newTransport := transportModel.Transport{
		Operator:          req.Operator,
		VehicleNumber:     req.VehicleNumber,
		RouteFrom:         req.RouteFrom,
		RouteTo:           req.RouteTo,
		DepartureTime:     req.DepartureTime,
		ArrivalTime:       req.ArrivalTime,
		Capacity:          capacity,
		AvailableCapacity: capacity,
		Status:            transportModel.TransportStatusScheduled,
	}

	if err := tc.DB.Create(&newTransport).Error; err != nil {
		logger.Error("Failed to create transport", err)
		return tc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create transport",
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Transport created successfully",
		Data:    newTransport,
	})
}
