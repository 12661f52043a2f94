package database

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"taskflow-app/taskflow/models"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Task{}, "Assignees", &models.TaskAssignee{}); err != nil {
		log.Errorf("Join table setup failed: %v", err)
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.List{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Notification{},
	)

	if err != nil {
		log.Errorf("Migration failed: %v", err)
		return err
	}

	return nil
}
