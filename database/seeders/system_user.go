package seeders

import (
	"errors"
	"os"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const systemUserEmail = "sistem@topluluk.link"

// SeedSystemUser sistem kullanıcısını oluşturur veya şifresini günceller.
// Sistem kullanıcısı tüm etkinlik ve bölümleri yönetebilir.
func SeedSystemUser(db *gorm.DB) error {
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı için varsayılan şifre kullanılacak.")
		password = "topluluk-sistem"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing models.User
	result := db.Where("email = ?", systemUserEmail).First(&existing)
	if result.Error == nil {
		existing.PasswordHash = string(hash)
		existing.IsSystem = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{Email: systemUserEmail, PasswordHash: string(hash), IsSystem: true}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}
	profile := models.Profile{UserID: user.ID, FullName: "Sistem"}
	if err := db.Create(&profile).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı profili oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", user.ID)
	return nil
}
