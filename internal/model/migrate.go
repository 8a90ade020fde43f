package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей архива.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Author{},
		&Section{},
		&Article{},
	)
}
