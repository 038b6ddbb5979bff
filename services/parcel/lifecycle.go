package parcel

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"rapidtransit/logger"
	parcelModel "rapidtransit/models/parcel"
	userModel "rapidtransit/models/user"
	notificationService "rapidtransit/services/notification"
	parcelTypes "rapidtransit/types/parcel"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// TextSender is the outbound messaging collaborator. Send reports delivery
// success; it must never block the caller on provider retries.
type TextSender interface {
	Send(to, message string) bool
}

// Service orchestrates the parcel lifecycle: creation with the initial
// pending history record, and status transitions with history appends and
// best-effort recipient notifications.
type Service struct {
	Store *Store
	SMS   TextSender
}

func NewService(db *gorm.DB, sms TextSender) *Service {
	return &Service{
		Store: NewStore(db),
		SMS:   sms,
	}
}

// initialStatusNotes is recorded on the pending history row at creation.
const initialStatusNotes = "Parcel booking created"

// trackingCounter feeds the numeric suffix of generated tracking numbers.
// Seeded from wall-clock milliseconds so suffixes keep increasing across
// restarts; the unique index on tracking_number catches residual collisions.
var trackingCounter atomic.Int64

func init() {
	trackingCounter.Store(time.Now().UnixMilli())
}

// generateTrackingNumber returns a tracking number in the public
// RT-YYYY-NNNNNN format, NNNNNN being the low six digits of the counter.
func generateTrackingNumber() string {
	suffix := trackingCounter.Add(1) % 1000000
	return fmt.Sprintf("RT-%d-%06d", time.Now().Year(), suffix)
}

// CreateParcel validates the booking request, generates a tracking number
// and persists the parcel together with its initial pending status-history
// record in one transaction. A tracking number collision surfaces as
// ErrTrackingNumberConflict and is safe to retry.
func (s *Service) CreateParcel(req parcelTypes.CreateParcelRequest, sender *userModel.User) (*parcelModel.Parcel, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	p := &parcelModel.Parcel{
		TrackingNumber:    generateTrackingNumber(),
		SenderID:          sender.ID,
		SenderName:        sender.LegalName,
		SenderPhone:       strings.TrimSpace(req.SenderPhone),
		PickupAddress:     req.PickupAddress,
		RecipientName:     req.RecipientName,
		RecipientPhone:    strings.TrimSpace(req.RecipientPhone),
		DeliveryAddress:   req.DeliveryAddress,
		ParcelSize:        parcelModel.ParcelSize(req.ParcelSize),
		Priority:          parcelModel.ParcelPriority(req.Priority),
		EstimatedCost:     req.EstimatedCost,
		Status:            parcelModel.ParcelStatusPending,
		TransportID:       req.TransportID,
		ScheduledPickupAt: req.ScheduledPickupAt,
	}

	if req.Description != "" {
		p.Description = &req.Description
	}

	if req.ScheduledPickupAt != nil {
		estimated := estimateDeliveryTime(*req.ScheduledPickupAt, p.Priority)
		p.EstimatedDeliveryAt = &estimated
	}

	err := s.Store.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create parcel: %w", err)
		}

		notes := initialStatusNotes
		initialHistory := &parcelModel.ParcelStatusHistory{
			ParcelID: p.ID,
			Status:   parcelModel.ParcelStatusPending,
			Notes:    &notes,
		}
		return s.Store.addStatusHistory(tx, initialHistory)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTrackingNumberConflict
		}
		return nil, err
	}

	logger.Success(fmt.Sprintf("Parcel %s created with ID: %d", p.TrackingNumber, p.ID))
	return p, nil
}

// UpdateStatus applies a status transition: the parcel's denormalized
// status and timestamps are updated and a history record is appended within
// one transaction, so history can never miss a committed transition. After
// the commit a recipient SMS is dispatched fire-and-forget; its outcome is
// logged and never affects the result of the transition.
func (s *Service) UpdateStatus(parcelID uint, status parcelModel.ParcelStatus, location, notes *string) (*parcelModel.Parcel, error) {
	if !status.IsKnown() {
		return nil, newValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	p, err := s.Store.GetParcel(parcelID)
	if err != nil {
		return nil, err
	}

	currentTime := time.Now()
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": currentTime,
	}
	// Repeated delivered/collected transitions overwrite the timestamps;
	// the last occurrence wins.
	switch status {
	case parcelModel.ParcelStatusDelivered:
		fields["delivered_at"] = currentTime
	case parcelModel.ParcelStatusCollected:
		fields["picked_up_at"] = currentTime
	}

	err = s.Store.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Store.updateParcelFields(tx, p.ID, fields); err != nil {
			return err
		}
		return s.Store.addStatusHistory(tx, &parcelModel.ParcelStatusHistory{
			ParcelID: p.ID,
			Status:   status,
			Location: location,
			Notes:    notes,
		})
	})
	if err != nil {
		return nil, err
	}

	// History is durably committed before any notification attempt.
	go s.notifyStatusChange(p, status, location)

	return s.Store.GetParcel(p.ID)
}

// notifyStatusChange composes and sends the recipient SMS for a committed
// transition. Runs detached from the request; a raising sender must never
// reach the caller, so panics are contained here.
func (s *Service) notifyStatusChange(p *parcelModel.Parcel, status parcelModel.ParcelStatus, location *string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("SMS dispatch panicked for parcel %s", p.TrackingNumber),
				fmt.Errorf("%v", r))
		}
	}()

	message := notificationService.ComposeStatusMessage(status, p.TrackingNumber, p.RecipientName, location)

	if s.SMS == nil || !s.SMS.Send(p.RecipientPhone, message) {
		logger.Warning(fmt.Sprintf("Failed to send SMS notification for parcel %s", p.TrackingNumber))
		return
	}
	logger.Info(fmt.Sprintf("SMS notification sent for parcel %s (%s)", p.TrackingNumber, status))
}

// serviceDays is the nominal handling window per priority tier.
var serviceDays = map[parcelModel.ParcelPriority]int{
	parcelModel.PriorityStandard:      3,
	parcelModel.PriorityExpress:       2,
	parcelModel.PriorityNextTransport: 1,
}

// estimateDeliveryTime projects a delivery estimate from the scheduled
// pickup: the priority's service window, normalized to end of day.
func estimateDeliveryTime(scheduledPickup time.Time, priority parcelModel.ParcelPriority) time.Time {
	days, ok := serviceDays[priority]
	if !ok {
		days = serviceDays[parcelModel.PriorityStandard]
	}
	return now.With(scheduledPickup.AddDate(0, 0, days)).EndOfDay()
}

// validateCreateRequest checks the booking form against the parcel field
// constraints. No writes happen on failure.
func validateCreateRequest(req parcelTypes.CreateParcelRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"sender_phone", req.SenderPhone},
		{"pickup_address", req.PickupAddress},
		{"recipient_name", req.RecipientName},
		{"recipient_phone", req.RecipientPhone},
		{"delivery_address", req.DeliveryAddress},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return newValidationError(r.field, "is required")
		}
	}

	if !parcelModel.ParcelSize(req.ParcelSize).IsKnown() {
		return newValidationError("parcel_size", "must be one of small, medium, large")
	}
	if !parcelModel.ParcelPriority(req.Priority).IsKnown() {
		return newValidationError("priority", "must be one of standard, express, next_transport")
	}
	if req.EstimatedCost < 0 {
		return newValidationError("estimated_cost", "must not be negative")
	}

	return nil
}
