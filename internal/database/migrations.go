package database

import (
	"github.com/ridelink/ridelink-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	// One table per vehicle category, all sharing the Vehicle row shape.
	for _, table := range models.VehicleTableNames() {
		if err := db.Table(table).AutoMigrate(&models.Vehicle{}); err != nil {
			return err
		}
	}

	// One table per booking category, all sharing the Booking row shape.
	for _, category := range models.AllCategories() {
		if err := db.Table(category.Table()).AutoMigrate(&models.Booking{}); err != nil {
			return err
		}
	}

	// Availability is a two-state flag; keep bad writes out at the schema level.
	for _, table := range models.VehicleTableNames() {
		db.Exec(`ALTER TABLE ` + table + ` DROP CONSTRAINT IF EXISTS ` + table + `_availability_check`)
		if err := db.Exec(`ALTER TABLE ` + table + ` ADD CONSTRAINT ` + table + `_availability_check CHECK (availability IN ('Available', 'Booked'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
