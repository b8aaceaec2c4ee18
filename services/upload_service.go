package services

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"topluluk.link/configs/configslog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadServiceError özel servis hataları
type UploadServiceError string

func (e UploadServiceError) Error() string { return string(e) }

const (
	ErrUploadInvalidType   UploadServiceError = "yalnızca jpg, jpeg, png, gif ve webp dosyaları yüklenebilir"
	ErrUploadTooLarge      UploadServiceError = "dosya boyutu 5 MB'ı aşamaz"
	ErrUploadNotConfigured UploadServiceError = "görsel deposu yapılandırılmamış"
	ErrUploadFailed        UploadServiceError = "dosya yüklenemedi"
)

// UploadBucket yükleme klasörünü tanımlar.
type UploadBucket string

const (
	BucketProfilePictures UploadBucket = "profile-pictures"
	BucketProjectImages   UploadBucket = "project-images"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// IUploadService görsel yükleme işlemleri için arayüz.
type IUploadService interface {
	UploadImage(ctx context.Context, bucket UploadBucket, file multipart.File, header *multipart.FileHeader) (string, error)
	DeleteImage(ctx context.Context, publicURL string) error
}

type UploadService struct{}

func NewUploadService() IUploadService {
	return &UploadService{}
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	if os.Getenv("CLOUDINARY_CLOUD_NAME") == "" {
		return nil, ErrUploadNotConfigured
	}
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// ValidateUpload uzantı ve boyut kontrolünü ağa çıkmadan önce yapar.
func ValidateUpload(header *multipart.FileHeader) error {
	if header == nil {
		return ErrUploadInvalidType
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		return ErrUploadInvalidType
	}
	if header.Size > maxUploadSize {
		return ErrUploadTooLarge
	}
	return nil
}

// UploadImage dosyayı ilgili klasöre yükler ve kalıcı URL'ini döndürür.
// Dosya adı çakışmaması için rastgele public ID üretilir.
func (s *UploadService) UploadImage(ctx context.Context, bucket UploadBucket, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := ValidateUpload(header); err != nil {
		return "", err
	}
	cld, err := newCloudinary()
	if err != nil {
		configslog.Log.Error("UploadImage: cloudinary config error", zap.Error(err))
		return "", ErrUploadNotConfigured
	}

	uploadCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := cld.Upload.Upload(uploadCtx, file, uploader.UploadParams{
		Folder:   string(bucket),
		PublicID: strings.ReplaceAll(uuid.NewString(), "-", ""),
	})
	if err != nil {
		configslog.Log.Error("UploadImage: upload error", zap.String("bucket", string(bucket)), zap.Error(err))
		return "", ErrUploadFailed
	}
	return resp.SecureURL, nil
}

// DeleteImage URL'den public ID'yi çıkarıp görseli depodan siler.
func (s *UploadService) DeleteImage(ctx context.Context, publicURL string) error {
	publicID := extractPublicID(publicURL)
	if publicID == "" {
		return nil
	}
	cld, err := newCloudinary()
	if err != nil {
		return ErrUploadNotConfigured
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := cld.Upload.Destroy(deleteCtx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		configslog.Log.Warn("DeleteImage: destroy error", zap.String("publicID", publicID), zap.Error(err))
		return ErrUploadFailed
	}
	return nil
}

// extractPublicID .../upload/v123/klasor/ad.jpg yolundan "klasor/ad" döndürür.
func extractPublicID(publicURL string) string {
	idx := strings.Index(publicURL, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimPrefix(publicURL[idx+len("/upload/"):], "/")
	parts := strings.Split(rest, "/")
	if len(parts) > 0 && strings.HasPrefix(parts[0], "v") {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return ""
	}
	joined := strings.Join(parts, "/")
	return strings.TrimSuffix(joined, filepath.Ext(joined))
}

var _ IUploadService = (*UploadService)(nil)
