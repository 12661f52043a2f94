package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskflow-app/taskflow/config"
	"taskflow-app/taskflow/models"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
	assert.NotPanics(t, func() {
		(&Database{}).Close()
	})
}

func TestDialector_Unsupported(t *testing.T) {
	_, err := Dialector(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSetup_SQLite(t *testing.T) {
	db, err := Setup(config.Config{
		AppEnv:         "test",
		DBDriver:       "sqlite",
		SQLitePath:     ":memory:",
		DBMaxIdleConns: 1,
		DBMaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	for _, table := range []interface{}{
		&models.User{},
		&models.Board{},
		&models.List{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Notification{},
	} {
		assert.True(t, db.DB.Migrator().HasTable(table), "%T table missing", table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&models.Notification{}, "idx_notifications_overdue_once"))
}
