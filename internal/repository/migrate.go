package repository

import "gorm.io/gorm"

// Migrate brings the schema up to date for every persisted entity. The unique
// index on leads.email is the constraint the intake upsert depends on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&leadModel{},
		&quoteModel{},
		&serviceModel{},
		&contactModel{},
	)
}
