package services

import (
	"context"
	"errors"
	"strings"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/repositories"

	"go.uber.org/zap"
)

// ProfileServiceError özel servis hataları
type ProfileServiceError string

func (e ProfileServiceError) Error() string { return string(e) }

const (
	ErrProfileNotFound     ProfileServiceError = "profil bulunamadı"
	ErrProfileUpdateFailed ProfileServiceError = "profil güncellenemedi"
	ErrProfilePrivate      ProfileServiceError = "bu profil gizli"
)

// ProfileUpdateInput istemciden gelen düzenlenebilir profil alanları.
type ProfileUpdateInput struct {
	FullName  string   `json:"full_name"`
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
	Phone     string   `json:"phone"`
	Private   bool     `json:"private"`
}

// IProfileService profil işlemleri için arayüz.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uint, requestingUserID uint) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.Profile, error)
	SetProfilePicture(ctx context.Context, userID uint, url string) error
}

type ProfileService struct {
	repo repositories.IProfileRepository
}

func NewProfileService() IProfileService {
	return &ProfileService{repo: repositories.NewProfileRepository()}
}

// GetProfile profili getirir; gizli profiller yalnızca sahibine görünür.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint, requestingUserID uint) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Private && userID != requestingUserID {
		return nil, ErrProfilePrivate
	}
	return profile, nil
}

// UpdateProfile kullanıcının kendi profilini günceller. İlgi alanları dilim
// olarak alınır, eski istemci formatıyla uyum için virgüllü saklanır.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	interests := make([]string, 0, len(input.Interests))
	for _, it := range input.Interests {
		if v := strings.TrimSpace(it); v != "" {
			interests = append(interests, v)
		}
	}

	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Bio = input.Bio
	profile.Interests = strings.Join(interests, ",")
	profile.Phone = strings.TrimSpace(input.Phone)
	profile.Private = input.Private

	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.Update(txCtx, profile); err != nil {
		configslog.Log.Error("UpdateProfile: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, ErrProfileUpdateFailed
	}
	return profile, nil
}

// SetProfilePicture yüklenen görselin URL'ini profile yazar.
func (s *ProfileService) SetProfilePicture(ctx context.Context, userID uint, url string) error {
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.UpdatePictureURL(txCtx, userID, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProfileNotFound
		}
		configslog.Log.Error("SetProfilePicture: DB error", zap.Uint("userID", userID), zap.Error(err))
		return ErrProfileUpdateFailed
	}
	return nil
}

var _ IProfileService = (*ProfileService)(nil)
