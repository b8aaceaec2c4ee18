package migrations

import (
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSectionsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating sections & membership tables...")
	err := db.AutoMigrate(
		&models.Section{},
		&models.SectionMember{},
		&models.SectionMembershipVisibility{},
		&models.SectionInvitation{},
		&models.SectionProfileField{},
		&models.SectionProfileData{},
	)
	if err != nil {
		configslog.Log.Error("Failed to migrate sections tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Sections tables migrated successfully")
	return nil
}
