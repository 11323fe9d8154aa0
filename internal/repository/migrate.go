package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every table the repositories
// own. Row models stay private; callers migrate through this entry point.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&organizationModel{},
		&vehicleModel{},
		&clientModel{},
		&reservationModel{},
		&checkInModel{},
		&checkOutModel{},
		&checkOutFeeModel{},
		&fixedChargeModel{},
	)
}
