package migrations

import (
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateUsersTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating users & profiles tables...")
	err := db.AutoMigrate(&models.User{}, &models.Profile{})
	if err != nil {
		configslog.Log.Error("Failed to migrate users & profiles tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Users & profiles tables migrated successfully")
	return nil
}
