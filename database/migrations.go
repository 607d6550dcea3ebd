package database

import (
	"fmt"
	"log"

	"tasktrail/tasktrail/models"

	"gorm.io/gorm"
)

// SchemaMigration records one applied migration step.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt string `gorm:"not null"`
}

type migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

// Forward-only, versioned schema steps. Each runs at most once, inside
// its own transaction, and is recorded in schema_migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create tasks and events",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.Task{}, &models.Event{})
		},
	},
	{
		Version: 2,
		Name:    "add tasks.due_date",
		Run: func(tx *gorm.DB) error {
			// Databases created before due dates existed lack the column.
			if tx.Migrator().HasColumn(&models.Task{}, "due_date") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.Task{}, "DueDate")
		},
	},
}

// RunMigrations applies any schema steps not yet recorded. It is
// idempotent: running it against an up-to-date database does nothing.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return err
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&SchemaMigration{}).Where("version = ?", m.Version).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		log.Printf("Applying schema migration %d: %s", m.Version, m.Name)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: models.NowUTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("schema migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
	}

	return nil
}
