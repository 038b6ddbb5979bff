package parcel

import (
	"errors"
	"fmt"

	parcelModel "rapidtransit/models/parcel"

	"gorm.io/gorm"
)

// Store holds the persistence operations for parcels and their status
// history. It assumes the backend provides read-committed isolation and
// atomic single-row writes; pooling and retries are the driver's concern.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// GetParcel fetches a parcel by id.
func (s *Store) GetParcel(id uint) (*parcelModel.Parcel, error) {
	var p parcelModel.Parcel
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParcelNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

// GetParcelByTrackingNumber fetches a parcel by its public tracking number.
func (s *Store) GetParcelByTrackingNumber(trackingNumber string) (*parcelModel.Parcel, error) {
	var p parcelModel.Parcel
	if err := s.DB.Where("tracking_number = ?", trackingNumber).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParcelNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

// GetUserParcels lists a sender's parcels, newest first.
func (s *Store) GetUserParcels(senderID uint) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.DB.Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&parcels).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return parcels, nil
}

// GetStatusHistory lists a parcel's status history, newest first.
func (s *Store) GetStatusHistory(parcelID uint) ([]parcelModel.ParcelStatusHistory, error) {
	var history []parcelModel.ParcelStatusHistory
	err := s.DB.Where("parcel_id = ?", parcelID).
		Order("timestamp DESC, id DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return history, nil
}

// addStatusHistory appends one history record inside the given transaction.
func (s *Store) addStatusHistory(tx *gorm.DB, history *parcelModel.ParcelStatusHistory) error {
	if err := tx.Create(history).Error; err != nil {
		return fmt.Errorf("failed to add status history: %w", err)
	}
	return nil
}

// updateParcelFields applies a partial column update inside the given
// transaction.
func (s *Store) updateParcelFields(tx *gorm.DB, id uint, fields map[string]interface{}) error {
	if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update parcel: %w", err)
	}
	return nil
}

// ParcelStats are the dashboard counters for one sender.
type ParcelStats struct {
	Total     int64 `json:"total"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
	Pending   int64 `json:"pending"`
}

// GetUserParcelStats counts a sender's parcels per dashboard bucket.
func (s *Store) GetUserParcelStats(senderID uint) (*ParcelStats, error) {
	stats := &ParcelStats{}

	counts := []struct {
		target *int64
		status *parcelModel.ParcelStatus
	}{
		{&stats.Total, nil},
		{&stats.InTransit, statusPtr(parcelModel.ParcelStatusInTransit)},
		{&stats.Delivered, statusPtr(parcelModel.ParcelStatusDelivered)},
		{&stats.Pending, statusPtr(parcelModel.ParcelStatusPending)},
	}

	for _, c := range counts {
		query := s.DB.Model(&parcelModel.Parcel{}).Where("sender_id = ?", senderID)
		if c.status != nil {
			query = query.Where("status = ?", *c.status)
		}
		if err := query.Count(c.target).Error; err != nil {
			return nil, fmt.Errorf("failed to count parcels: %w", err)
		}
	}

	return stats, nil
}

func statusPtr(s parcelModel.ParcelStatus) *parcelModel.ParcelStatus {
	return &s
}
