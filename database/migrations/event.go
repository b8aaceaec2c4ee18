package migrations

import (
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateEventsTables etkinlik ve bağlı tabloları oluşturur/günceller.
// Sections tablosu önce migrate edilmiş olmalı (FK için).
func MigrateEventsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating events & attendance tables...")
	err := db.AutoMigrate(
		&models.Event{},
		&models.EventCohost{},
		&models.EventRSVP{},
		&models.EventWaitlistEntry{},
		&models.EventInvitation{},
		&models.EventSectionInvite{},
	)
	if err != nil {
		configslog.Log.Error("Failed to migrate events tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Events tables migrated successfully")
	return nil
}
