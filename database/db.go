package database

import (
	"fmt"
	"os"

	"rapidtransit/logger"
	logModel "rapidtransit/models/log"
	notificationModel "rapidtransit/models/notification"
	parcelModel "rapidtransit/models/parcel"
	transportModel "rapidtransit/models/transport"
	userModel "rapidtransit/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	// TranslateError maps driver errors onto gorm.ErrDuplicatedKey and
	// friends; the parcel store relies on it for conflict detection.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&userModel.User{},
		&transportModel.Transport{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&parcelModel.Parcel{},
		&parcelModel.ParcelStatusHistory{},
		&notificationModel.Notification{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		// Logging
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		// User indexes
		{"idx_users_uuid", "CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)"},
		{"idx_users_username", "CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)"},
		{"idx_users_phone", "CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)"},

		// Parcel indexes
		{"idx_parcels_tracking_number", "CREATE INDEX IF NOT EXISTS idx_parcels_tracking_number ON parcels(tracking_number)"},
		{"idx_parcels_sender_id", "CREATE INDEX IF NOT EXISTS idx_parcels_sender_id ON parcels(sender_id)"},
		{"idx_parcels_status", "CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels(status)"},
		{"idx_parcels_created_at", "CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at)"},

		// Status history indexes
		{"idx_parcel_status_history_parcel_id", "CREATE INDEX IF NOT EXISTS idx_parcel_status_history_parcel_id ON parcel_status_history(parcel_id)"},
		{"idx_parcel_status_history_timestamp", "CREATE INDEX IF NOT EXISTS idx_parcel_status_history_timestamp ON parcel_status_history(timestamp)"},

		// Transport indexes
		{"idx_transports_route", "CREATE INDEX IF NOT EXISTS idx_transports_route ON transports(route_from, route_to)"},
		{"idx_transports_status", "CREATE INDEX IF NOT EXISTS idx_transports_status ON transports(status)"},
		{"idx_transports_departure_time", "CREATE INDEX IF NOT EXISTS idx_transports_departure_time ON transports(departure_time)"},

		// Notification indexes
		{"idx_notifications_user_id", "CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)"},
		{"idx_notifications_created_at", "CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at)"},

		// Log indexes
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, index := range indexes {
		if err := DB.Exec(index.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", index.name, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_parcels_sender",
			sql: `ALTER TABLE parcels ADD CONSTRAINT fk_parcels_sender
				  FOREIGN KEY (sender_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			// A parcel owns its history: removing the parcel removes the rows.
			name: "fk_parcel_status_history_parcel",
			sql: `ALTER TABLE parcel_status_history ADD CONSTRAINT fk_parcel_status_history_parcel
				  FOREIGN KEY (parcel_id) REFERENCES parcels(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_notifications_user",
			sql: `ALTER TABLE notifications ADD CONSTRAINT fk_notifications_user
				  FOREIGN KEY (user_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
