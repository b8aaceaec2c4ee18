package services

import (
	"context"
	"errors"

	"topluluk.link/models"
	"topluluk.link/repositories"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound UserServiceError = "kullanıcı bulunamadı"
)

// IUserService kullanıcı sorguları için arayüz.
type IUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SearchAvailableForInvite(ctx context.Context, sectionID uint, term string) ([]models.User, error)
}

type UserService struct {
	repo repositories.IUserRepository
}

func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SearchAvailableForInvite bölüme davet edilebilecek kullanıcıları arar
// (mevcut üyeler ve bekleyen davetliler hariç).
func (s *UserService) SearchAvailableForInvite(ctx context.Context, sectionID uint, term string) ([]models.User, error) {
	return s.repo.FindAvailableForInvite(ctx, sectionID, term)
}

var _ IUserService = (*UserService)(nil)
