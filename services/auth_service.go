package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/repositories"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthInvalidInput       AuthServiceError = "geçersiz kayıt verisi"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 8 karakter olmalıdır"
	ErrAuthTokenInvalid       AuthServiceError = "oturum geçersiz veya süresi dolmuş"
)

const tokenLifetime = 72 * time.Hour

// IAuthService kayıt, giriş ve token doğrulama işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(tokenString string) (uint, error)
}

type AuthService struct {
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

func NewAuthService() IAuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepository(),
		db:       configs.GetDB(),
	}
}

// Register yeni kullanıcı ve boş profilini tek transaction'da oluşturur.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrAuthInvalidInput
	}
	if len(password) < 8 {
		return nil, ErrAuthPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrAuthEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Register: bcrypt error", zap.Error(err))
		return nil, err
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID, FullName: strings.TrimSpace(fullName)}
		return tx.Create(&profile).Error
	})
	if txErr != nil {
		configslog.Log.Error("Register: DB error", zap.String("email", email), zap.Error(txErr))
		return nil, txErr
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: ID %d (%s)", user.ID, email)
	return &user, nil
}

// Login kimlik bilgilerini doğrular ve imzalı JWT döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrAuthInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrAuthInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(configs.JWTSecret())
	if err != nil {
		configslog.Log.Error("Login: token signing error", zap.Error(err))
		return "", nil, err
	}
	return signed, user, nil
}

// ParseToken JWT'yi doğrular ve kullanıcı ID'sini döndürür.
func (s *AuthService) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAuthTokenInvalid
		}
		return configs.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrAuthTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrAuthTokenInvalid
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrAuthTokenInvalid
	}
	return uint(sub), nil
}

var _ IAuthService = (*AuthService)(nil)
