package configs

import (
	"os"

	"topluluk.link/configs/configsdatabase"
	"topluluk.link/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa (örn. production'da env'ler
// dışarıdan verilir) sadece uyarı loglanır.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Warn(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak")
	}
}

// GetDB repositories ve services katmanlarının kullandığı GORM bağlantısı.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// JWTSecret token imzalama anahtarını döndürür.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Boş anahtarla imzalanan token'lar güvensizdir; geliştirme ortamı
		// için sabit bir değere düşülür ve uyarı verilir.
		configslog.SLog.Warn("JWT_SECRET tanımlı değil, geliştirme anahtarı kullanılıyor")
		secret = "topluluk-dev-secret"
	}
	return []byte(secret)
}

// AllowedOrigins CORS için izin verilen origin listesini döndürür.
func AllowedOrigins() string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return origins
	}
	return "http://localhost:3000"
}
