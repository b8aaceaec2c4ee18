package seeders

import (
	"errors"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedChannelCategories kanal listesindeki gruplama başlıklarını oluşturur.
// Mevcut kategoriye dokunulmaz; seed yeniden çalıştırılabilir.
func SeedChannelCategories(db *gorm.DB) error {
	categoriesToSeed := []models.ChannelCategory{
		{Name: "Genel", SortOrder: 1},
		{Name: "Etkinlikler", SortOrder: 2},
		{Name: "Bölümler", SortOrder: 3},
		{Name: "Duyurular", SortOrder: 4},
	}

	var createdCount int64 = 0
	var errorOccurred bool = false

	configslog.SLog.Info("Kanal kategorileri seed işlemi başlıyor...")

	for _, categoryToSeed := range categoriesToSeed {
		var existing models.ChannelCategory
		result := db.Where("name = ?", categoryToSeed.Name).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Kategori '%s' zaten mevcut, oluşturma atlanıyor.", categoryToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Kategori kontrol edilirken veritabanı hatası",
				zap.String("category_name", categoryToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		if err := db.Create(&categoryToSeed).Error; err != nil {
			configslog.Log.Error("Kategori oluşturulamadı",
				zap.String("category_name", categoryToSeed.Name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni kanal kategorisi seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm kanal kategorileri zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("kanal kategorileri seed edilirken en az bir hata oluştu")
	}
	return nil
}
