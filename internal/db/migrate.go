package db

import (
	"github.com/arifshehab/Capstone-Project/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.ShortlistEntry{},
		&models.StockTrade{},
		&models.BondIssue{},
		&models.BondTrade{},
	)
}
