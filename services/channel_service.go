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

// ChannelServiceError özel servis hataları
type ChannelServiceError string

func (e ChannelServiceError) Error() string { return string(e) }

const (
	ErrChannelNotFound     ChannelServiceError = "kanal bulunamadı"
	ErrChannelNameRequired ChannelServiceError = "kanal adı zorunludur"
	ErrChannelForbidden    ChannelServiceError = "bu kanal için yetkiniz yok"
	ErrChannelNotMember    ChannelServiceError = "bu kanalın üyesi değilsiniz"
	ErrMessageNotFound     ChannelServiceError = "mesaj bulunamadı"
	ErrMessageEmpty        ChannelServiceError = "mesaj içeriği boş olamaz"
	ErrMessageTooLong      ChannelServiceError = "mesaj çok uzun"
	ErrMessageNotYours     ChannelServiceError = "yalnızca kendi mesajınızı silebilirsiniz"
)

const maxMessageLength = 4000

// IMessageBroadcaster yeni ve silinen mesajları canlı akışa duyurur.
// realtime.Hub bu arayüzü uygular; testlerde sahte bir uygulama kullanılır.
type IMessageBroadcaster interface {
	BroadcastMessage(channelID uint, message *models.ChannelMessage)
	BroadcastDeletion(channelID, messageID uint)
}

// IChannelService kanal ve mesaj işlemleri için arayüz.
type IChannelService interface {
	CreateChannel(ctx context.Context, creatorID uint, channel models.Channel) (*models.Channel, error)
	GetChannelByID(ctx context.Context, id uint, requestingUserID uint) (*models.Channel, error)
	GetChannelsForUser(ctx context.Context, userID uint) ([]models.Channel, error)
	GetChannelsForSection(ctx context.Context, sectionID, requestingUserID uint) ([]models.Channel, error)
	DeleteChannel(ctx context.Context, id uint, userID uint) error
	JoinChannel(ctx context.Context, channelID, userID uint) error
	LeaveChannel(ctx context.Context, channelID, userID uint) error
	IsMember(ctx context.Context, channelID, userID uint) (bool, error)
	GetCategories(ctx context.Context) ([]models.ChannelCategory, error)

	PostMessage(ctx context.Context, channelID, userID uint, content string) (*models.ChannelMessage, error)
	DeleteMessage(ctx context.Context, messageID, userID uint) error
	GetMessages(ctx context.Context, channelID, userID uint, limit, beforeID int) ([]models.ChannelMessage, error)
}

type ChannelService struct {
	repo           repositories.IChannelRepository
	messageRepo    repositories.IChannelMessageRepository
	sectionService ISectionService
	broadcaster    IMessageBroadcaster
}

// NewChannelService yeni bir ChannelService örneği oluşturur. broadcaster nil
// olabilir; o durumda mesajlar yalnızca kalıcı kayda yazılır.
func NewChannelService(broadcaster IMessageBroadcaster) IChannelService {
	return &ChannelService{
		repo:           repositories.NewChannelRepository(),
		messageRepo:    repositories.NewChannelMessageRepository(),
		sectionService: NewSectionService(),
		broadcaster:    broadcaster,
	}
}

// CreateChannel kanal oluşturur; oluşturan otomatik üye olur. Bölüme bağlı
// kanal yalnızca bölüm yöneticisi tarafından açılabilir.
func (s *ChannelService) CreateChannel(ctx context.Context, creatorID uint, channel models.Channel) (*models.Channel, error) {
	if strings.TrimSpace(channel.Name) == "" {
		return nil, ErrChannelNameRequired
	}
	if channel.SectionID != nil && !s.sectionService.IsAdmin(ctx, *channel.SectionID, creatorID) {
		return nil, ErrChannelForbidden
	}
	channel.CreatorID = creatorID

	txCtx := models.ContextWithUserID(ctx, creatorID)
	if err := s.repo.Create(txCtx, &channel); err != nil {
		configslog.Log.Error("CreateChannel: DB error", zap.Uint("creatorID", creatorID), zap.Error(err))
		return nil, err
	}
	member := models.ChannelMember{ChannelID: channel.ID, UserID: creatorID}
	if err := s.repo.AddMember(txCtx, &member); err != nil {
		configslog.Log.Error("CreateChannel: creator membership error", zap.Uint("channelID", channel.ID), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("Kanal oluşturuldu: ID %d, Ad: %s", channel.ID, channel.Name)
	return &channel, nil
}

func (s *ChannelService) GetChannelByID(ctx context.Context, id uint, requestingUserID uint) (*models.Channel, error) {
	channel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return channel, nil
}

func (s *ChannelService) GetChannelsForUser(ctx context.Context, userID uint) ([]models.Channel, error) {
	return s.repo.FindAllForUser(ctx, userID)
}

// GetChannelsForSection bölüm kanallarını listeler; bölüm üyeliği gerekir.
func (s *ChannelService) GetChannelsForSection(ctx context.Context, sectionID, requestingUserID uint) ([]models.Channel, error) {
	if !s.sectionService.IsApprovedMember(ctx, sectionID, requestingUserID) &&
		!s.sectionService.IsAdmin(ctx, sectionID, requestingUserID) {
		return nil, ErrChannelForbidden
	}
	return s.repo.FindBySectionID(ctx, sectionID)
}

// DeleteChannel kanalı siler (yalnızca oluşturan veya bağlı bölümün yöneticisi).
func (s *ChannelService) DeleteChannel(ctx context.Context, id uint, userID uint) error {
	channel, err := s.GetChannelByID(ctx, id, userID)
	if err != nil {
		return err
	}
	allowed := channel.CreatorID == userID
	if !allowed && channel.SectionID != nil {
		allowed = s.sectionService.IsAdmin(ctx, *channel.SectionID, userID)
	}
	if !allowed {
		return ErrChannelForbidden
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	return s.repo.Delete(txCtx, channel, userID)
}

// JoinChannel kanala üye olur. Bölüme bağlı kanallara yalnızca bölümün onaylı
// üyeleri katılabilir.
func (s *ChannelService) JoinChannel(ctx context.Context, channelID, userID uint) error {
	channel, err := s.GetChannelByID(ctx, channelID, userID)
	if err != nil {
		return err
	}
	if channel.SectionID != nil && !s.sectionService.IsApprovedMember(ctx, *channel.SectionID, userID) {
		return ErrChannelForbidden
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	member := models.ChannelMember{ChannelID: channelID, UserID: userID}
	return s.repo.AddMember(txCtx, &member)
}

func (s *ChannelService) LeaveChannel(ctx context.Context, channelID, userID uint) error {
	err := s.repo.RemoveMember(ctx, channelID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrChannelNotMember
	}
	return err
}

func (s *ChannelService) IsMember(ctx context.Context, channelID, userID uint) (bool, error) {
	return s.repo.IsMember(ctx, channelID, userID)
}

func (s *ChannelService) GetCategories(ctx context.Context) ([]models.ChannelCategory, error) {
	return s.repo.FindCategories(ctx)
}

// PostMessage mesajı kalıcı kayda yazar, sonra canlı akışa duyurur. Kalıcı
// yazım başarısızsa hiçbir aboneye duyuru yapılmaz.
func (s *ChannelService) PostMessage(ctx context.Context, channelID, userID uint, content string) (*models.ChannelMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if len(content) > maxMessageLength {
		return nil, ErrMessageTooLong
	}
	isMember, err := s.repo.IsMember(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrChannelNotMember
	}

	message := models.ChannelMessage{ChannelID: channelID, UserID: userID, Content: content}
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.messageRepo.Create(txCtx, &message); err != nil {
		configslog.Log.Error("PostMessage: DB error", zap.Uint("channelID", channelID), zap.Error(err))
		return nil, err
	}
	// Yayın için gönderen profiliyle birlikte tekrar okunur.
	if full, err := s.messageRepo.FindByID(ctx, message.ID); err == nil {
		message = *full
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(channelID, &message)
	}
	return &message, nil
}

// DeleteMessage mesajı soft delete'ler; yalnızca gönderen silebilir. Silme de
// canlı akışa duyurulur ki açık istemciler mesajı düşürsün.
func (s *ChannelService) DeleteMessage(ctx context.Context, messageID, userID uint) error {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if message.UserID != userID {
		return ErrMessageNotYours
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.messageRepo.Delete(txCtx, message, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDeletion(message.ChannelID, messageID)
	}
	return nil
}

// GetMessages kanal geçmişini eskiden yeniye döndürür; üyelik gerekir.
func (s *ChannelService) GetMessages(ctx context.Context, channelID, userID uint, limit, beforeID int) ([]models.ChannelMessage, error) {
	isMember, err := s.repo.IsMember(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrChannelNotMember
	}
	return s.messageRepo.FindByChannelID(ctx, channelID, limit, beforeID)
}

var _ IChannelService = (*ChannelService)(nil)
