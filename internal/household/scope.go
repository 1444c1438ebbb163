package household

import "gorm.io/gorm"

// ForHousehold returns a GORM scope that filters by household_id.
func ForHousehold(householdID interface{}) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("household_id = ?", householdID)
	}
}
