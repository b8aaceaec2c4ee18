package migrations

import (
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateChannelsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating channels & messages tables...")
	err := db.AutoMigrate(
		&models.ChannelCategory{},
		&models.Channel{},
		&models.ChannelMember{},
		&models.ChannelMessage{},
	)
	if err != nil {
		configslog.Log.Error("Failed to migrate channels tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Channels tables migrated successfully")
	return nil
}
