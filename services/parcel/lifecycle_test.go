package parcel

import (
	"errors"
	"regexp"
	"testing"
	"time"

	parcelModel "rapidtransit/models/parcel"
	userModel "rapidtransit/models/user"
	parcelTypes "rapidtransit/types/parcel"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// recordingSender captures outbound messages so tests can await the
// fire-and-forget dispatch.
type recordingSender struct {
	sent chan sentMessage
}

type sentMessage struct {
	to   string
	body string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan sentMessage, 10)}
}

func (r *recordingSender) Send(to, message string) bool {
	r.sent <- sentMessage{to: to, body: message}
	return true
}

// panickingSender simulates a provider client blowing up mid-send.
type panickingSender struct{}

func (panickingSender) Send(string, string) bool {
	panic("provider client exploded")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&parcelModel.Parcel{},
		&parcelModel.ParcelStatusHistory{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *userModel.User {
	t.Helper()

	u := &userModel.User{
		Uuid:         "3f5c1f2a-0000-4000-8000-000000000001",
		Username:     "thandi",
		LegalName:    "Thandi Nkosi",
		Phone:        "+27821234567",
		PasswordHash: "$2a$10$irrelevant.for.these.tests",
		Permissions:  userModel.StringSlice{"customer.has_full_access"},
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func baseCreateRequest() parcelTypes.CreateParcelRequest {
	return parcelTypes.CreateParcelRequest{
		SenderPhone:     "0821234567",
		PickupAddress:   "12 Long Street, Cape Town",
		RecipientName:   "Sipho Dlamini",
		RecipientPhone:  "0837654321",
		DeliveryAddress: "45 Vilakazi Street, Soweto",
		ParcelSize:      string(parcelModel.ParcelSizeMedium),
		Priority:        string(parcelModel.PriorityExpress),
		EstimatedCost:   56.25,
	}
}

var trackingNumberPattern = regexp.MustCompile(`^RT-\d{4}-\d{6}$`)

func TestCreateParcelGeneratesTrackingNumber(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	assert.Regexp(t, trackingNumberPattern, p.TrackingNumber)
	assert.Equal(t, parcelModel.ParcelStatusPending, p.Status)
	assert.Equal(t, sender.ID, p.SenderID)
	assert.Equal(t, sender.LegalName, p.SenderName)
}

func TestCreateParcelTrackingNumbersAreUnique(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		p, err := service.CreateParcel(baseCreateRequest(), sender)
		require.NoError(t, err)
		assert.False(t, seen[p.TrackingNumber], "duplicate tracking number %s", p.TrackingNumber)
		seen[p.TrackingNumber] = true
	}
}

func TestCreateParcelWritesInitialHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	history, err := service.Store.GetStatusHistory(p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, parcelModel.ParcelStatusPending, history[0].Status)
	require.NotNil(t, history[0].Notes)
	assert.Equal(t, "Parcel booking created", *history[0].Notes)
}

func TestCreateParcelEstimatesDeliveryFromPickup(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	pickup := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	req := baseCreateRequest()
	req.Priority = string(parcelModel.PriorityNextTransport)
	req.ScheduledPickupAt = &pickup

	p, err := service.CreateParcel(req, sender)
	require.NoError(t, err)

	require.NotNil(t, p.EstimatedDeliveryAt)
	// next_transport is a one-day window, normalized to end of day.
	assert.Equal(t, 3, p.EstimatedDeliveryAt.Day())
	assert.Equal(t, 23, p.EstimatedDeliveryAt.Hour())
}

func TestCreateParcelValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	cases := []struct {
		name   string
		mutate func(*parcelTypes.CreateParcelRequest)
		field  string
	}{
		{"missing recipient phone", func(r *parcelTypes.CreateParcelRequest) { r.RecipientPhone = "  " }, "recipient_phone"},
		{"missing delivery address", func(r *parcelTypes.CreateParcelRequest) { r.DeliveryAddress = "" }, "delivery_address"},
		{"unknown size", func(r *parcelTypes.CreateParcelRequest) { r.ParcelSize = "gigantic" }, "parcel_size"},
		{"unknown priority", func(r *parcelTypes.CreateParcelRequest) { r.Priority = "teleport" }, "priority"},
		{"negative cost", func(r *parcelTypes.CreateParcelRequest) { r.EstimatedCost = -1 }, "estimated_cost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseCreateRequest()
			tc.mutate(&req)

			_, err := service.CreateParcel(req, sender)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	// Nothing was written for any rejected request.
	var count int64
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatusAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	transitions := []parcelModel.ParcelStatus{
		parcelModel.ParcelStatusCollected,
		parcelModel.ParcelStatusInTransit,
		parcelModel.ParcelStatusOutForDelivery,
		parcelModel.ParcelStatusDelivered,
	}
	for _, status := range transitions {
		updated, err := service.UpdateStatus(p.ID, status, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	history, err := service.Store.GetStatusHistory(p.ID)
	require.NoError(t, err)
	require.Len(t, history, len(transitions)+1)

	// Newest first; the creation record sits at the bottom.
	assert.Equal(t, parcelModel.ParcelStatusDelivered, history[0].Status)
	assert.Equal(t, parcelModel.ParcelStatusPending, history[len(history)-1].Status)
}

func TestUpdateStatusSetsLifecycleTimestamps(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	collected, err := service.UpdateStatus(p.ID, parcelModel.ParcelStatusCollected, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, collected.PickedUpAt)
	assert.Nil(t, collected.DeliveredAt)

	delivered, err := service.UpdateStatus(p.ID, parcelModel.ParcelStatusDelivered, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
	assert.False(t, delivered.DeliveredAt.Before(p.CreatedAt))
}

func TestUpdateStatusUnknownParcel(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())

	_, err := service.UpdateStatus(9999, parcelModel.ParcelStatusDelivered, nil, nil)
	assert.True(t, errors.Is(err, ErrParcelNotFound))

	var count int64
	require.NoError(t, db.Model(&parcelModel.ParcelStatusHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, newRecordingSender())
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	_, err = service.UpdateStatus(p.ID, parcelModel.ParcelStatus("vanished"), nil, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)

	history, err := service.Store.GetStatusHistory(p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdateStatusDispatchesSMS(t *testing.T) {
	db := setupTestDB(t)
	sms := newRecordingSender()
	service := NewService(db, sms)
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	_, err = service.UpdateStatus(p.ID, parcelModel.ParcelStatusDelivered, nil, nil)
	require.NoError(t, err)

	select {
	case msg := <-sms.sent:
		assert.Equal(t, p.RecipientPhone, msg.to)
		assert.Contains(t, msg.body, p.TrackingNumber)
		assert.Contains(t, msg.body, "Delivered!")
	case <-time.After(2 * time.Second):
		t.Fatal("no SMS dispatched after status update")
	}
}

func TestUpdateStatusRecordsLocation(t *testing.T) {
	db := setupTestDB(t)
	sms := newRecordingSender()
	service := NewService(db, sms)
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	location := "Bloemfontein depot"
	notes := "Scanned at sorting facility"
	_, err = service.UpdateStatus(p.ID, parcelModel.ParcelStatusInTransit, &location, &notes)
	require.NoError(t, err)

	history, err := service.Store.GetStatusHistory(p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.NotNil(t, history[0].Location)
	assert.Equal(t, location, *history[0].Location)
	require.NotNil(t, history[0].Notes)
	assert.Equal(t, notes, *history[0].Notes)

	select {
	case msg := <-sms.sent:
		assert.Contains(t, msg.body, "in transit at Bloemfontein depot")
	case <-time.After(2 * time.Second):
		t.Fatal("no SMS dispatched after status update")
	}
}

func TestUpdateStatusSurvivesPanickingSender(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, panickingSender{})
	sender := createTestUser(t, db)

	p, err := service.CreateParcel(baseCreateRequest(), sender)
	require.NoError(t, err)

	updated, err := service.UpdateStatus(p.ID, parcelModel.ParcelStatusInTransit, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.ParcelStatusInTransit, updated.Status)

	// Let the dispatch goroutine run; its panic must stay contained.
	time.Sleep(50 * time.Millisecond)

	history, err := service.Store.GetStatusHistory(p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestGenerateTrackingNumberFormat(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Regexp(t, trackingNumberPattern, generateTrackingNumber())
	}
}
