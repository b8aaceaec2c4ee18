package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/pkg/queryparams"
	"topluluk.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause" // Lock için
)

// SectionServiceError özel servis hataları
type SectionServiceError string

func (e SectionServiceError) Error() string { return string(e) }

const (
	ErrSectionNotFound       SectionServiceError = "bölüm bulunamadı"
	ErrSectionCreationFailed SectionServiceError = "bölüm oluşturulamadı"
	ErrSectionUpdateFailed   SectionServiceError = "bölüm güncellenemedi"
	ErrSectionDeletionFailed SectionServiceError = "bölüm silinemedi"
	ErrSectionForbidden      SectionServiceError = "bu işlem için bölüm yöneticisi olmalısınız"
	ErrSectionNameRequired   SectionServiceError = "bölüm adı zorunludur"
	ErrSectionAlreadyMember  SectionServiceError = "zaten bu bölümün üyesisiniz"
	ErrSectionMemberNotFound SectionServiceError = "üyelik kaydı bulunamadı"
	ErrSectionMemberPending  SectionServiceError = "üyelik isteğiniz onay bekliyor"
	ErrSectionCreatorLeave   SectionServiceError = "bölüm kurucusu bölümden ayrılamaz"
	ErrSectionFieldNotFound  SectionServiceError = "profil sorusu bulunamadı"
)

// SectionMemberView üye listesi görünümü: üyelik + bölüme özel cevaplar.
type SectionMemberView struct {
	Member      models.SectionMember        `json:"member"`
	ProfileData []models.SectionProfileData `json:"profile_data,omitempty"`
}

// ISectionService bölüm (ilgi alanı topluluğu) işlemleri için arayüz.
type ISectionService interface {
	CreateSection(ctx context.Context, creatorID uint, section models.Section) (*models.Section, error)
	GetSectionByID(ctx context.Context, id uint, requestingUserID uint) (*models.Section, error)
	GetPublicSections(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetSectionsForUser(ctx context.Context, userID uint) ([]models.Section, error)
	UpdateSection(ctx context.Context, id uint, userID uint, updates models.Section) error
	DeleteSection(ctx context.Context, id uint, userID uint) error

	JoinSection(ctx context.Context, sectionID, userID uint) (*models.SectionMember, error)
	LeaveSection(ctx context.Context, sectionID, userID uint) error
	ReviewMembership(ctx context.Context, sectionID, targetUserID, reviewerID uint, approve bool) error
	SetMemberAdmin(ctx context.Context, sectionID, targetUserID, byUserID uint, isAdmin bool) error
	GetMembers(ctx context.Context, sectionID, requestingUserID uint) ([]SectionMemberView, error)
	GetPendingMembers(ctx context.Context, sectionID, requestingUserID uint) ([]models.SectionMember, error)
	SetMembershipVisibility(ctx context.Context, sectionID, userID uint, hidden bool) error
	IsAdmin(ctx context.Context, sectionID, userID uint) bool
	IsApprovedMember(ctx context.Context, sectionID, userID uint) bool
	GetMemberCount(ctx context.Context, sectionID uint) int64

	CreateProfileField(ctx context.Context, sectionID, byUserID uint, field models.SectionProfileField) (*models.SectionProfileField, error)
	DeleteProfileField(ctx context.Context, sectionID, fieldID, byUserID uint) error
	GetProfileFields(ctx context.Context, sectionID uint) ([]models.SectionProfileField, error)
	SubmitProfileData(ctx context.Context, sectionID, userID uint, answers map[uint]string) error
}

type SectionService struct {
	repo        repositories.ISectionRepository
	memberRepo  repositories.ISectionMemberRepository
	profileRepo repositories.ISectionProfileRepository
	db          *gorm.DB
}

func NewSectionService() ISectionService {
	return &SectionService{
		repo:        repositories.NewSectionRepository(),
		memberRepo:  repositories.NewSectionMemberRepository(),
		profileRepo: repositories.NewSectionProfileRepository(),
		db:          configs.GetDB(),
	}
}

// CreateSection bölümü oluşturur; kurucu otomatik onaylı yönetici üye olur.
func (s *SectionService) CreateSection(ctx context.Context, creatorID uint, section models.Section) (*models.Section, error) {
	if strings.TrimSpace(section.Name) == "" {
		return nil, ErrSectionNameRequired
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kurucu ID", ErrSectionCreationFailed)
	}
	section.CreatorID = creatorID

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, creatorID)
		sectionRepoTx := repositories.NewSectionRepositoryTx(tx)
		memberRepoTx := repositories.NewSectionMemberRepositoryTx(tx)

		if err := sectionRepoTx.Create(txCtx, &section); err != nil {
			return err
		}
		creatorMember := models.SectionMember{
			SectionID: section.ID,
			UserID:    creatorID,
			IsAdmin:   true,
			Status:    models.MembershipStatusApproved,
		}
		return memberRepoTx.Create(txCtx, &creatorMember)
	})
	if txErr != nil {
		configslog.Log.Error("CreateSection: DB error", zap.Uint("creatorID", creatorID), zap.Error(txErr))
		return nil, ErrSectionCreationFailed
	}

	configslog.SLog.Infof("Bölüm oluşturuldu: ID %d, Ad: %s", section.ID, section.Name)
	return &section, nil
}

// GetSectionByID bölümü getirir; kapalı bölümler yalnızca üyelere görünür.
func (s *SectionService) GetSectionByID(ctx context.Context, id uint, requestingUserID uint) (*models.Section, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	if !section.IsPublic && !s.IsApprovedMember(ctx, id, requestingUserID) {
		return nil, ErrSectionForbidden
	}
	return section, nil
}

func (s *SectionService) GetPublicSections(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	sections, totalCount, err := s.repo.FindPublicPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: sections,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *SectionService) GetSectionsForUser(ctx context.Context, userID uint) ([]models.Section, error) {
	return s.repo.FindByMemberUserID(ctx, userID)
}

// IsAdmin kullanıcının bölümde yönetici olup olmadığını döndürür
// (kurucu her zaman yöneticidir).
func (s *SectionService) IsAdmin(ctx context.Context, sectionID, userID uint) bool {
	if userID == 0 {
		return false
	}
	section, err := s.repo.FindByID(ctx, sectionID)
	if err == nil && section.CreatorID == userID {
		return true
	}
	member, err := s.memberRepo.FindBySectionAndUser(ctx, sectionID, userID)
	return err == nil && member.IsAdmin && member.Status == models.MembershipStatusApproved
}

func (s *SectionService) IsApprovedMember(ctx context.Context, sectionID, userID uint) bool {
	if userID == 0 {
		return false
	}
	member, err := s.memberRepo.FindBySectionAndUser(ctx, sectionID, userID)
	return err == nil && member.Status == models.MembershipStatusApproved
}

// GetMemberCount onaylı üye sayısını döndürür; hata durumunda 0 sayılır.
func (s *SectionService) GetMemberCount(ctx context.Context, sectionID uint) int64 {
	count, err := s.memberRepo.CountApproved(ctx, sectionID)
	if err != nil {
		configslog.Log.Error("GetMemberCount: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return 0
	}
	return count
}

func (s *SectionService) UpdateSection(ctx context.Context, id uint, userID uint, updates models.Section) error {
	if strings.TrimSpace(updates.Name) == "" {
		return ErrSectionNameRequired
	}
	if !s.IsAdmin(ctx, id, userID) {
		return ErrSectionForbidden
	}

	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	section.Name = updates.Name
	section.Description = updates.Description
	section.ImageURL = updates.ImageURL
	section.IsPublic = updates.IsPublic
	section.RequiresApproval = updates.RequiresApproval

	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.Update(txCtx, section); err != nil {
		configslog.Log.Error("UpdateSection: DB error", zap.Uint("id", id), zap.Error(err))
		return ErrSectionUpdateFailed
	}
	return nil
}

func (s *SectionService) DeleteSection(ctx context.Context, id uint, userID uint) error {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	// Bölümü yalnızca kurucu silebilir.
	if section.CreatorID != userID {
		return ErrSectionForbidden
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.Delete(txCtx, section, userID); err != nil {
		configslog.Log.Error("DeleteSection: DB error", zap.Uint("id", id), zap.Error(err))
		return ErrSectionDeletionFailed
	}
	configslog.SLog.Infof("Bölüm silindi: ID %d (Silen: %d)", id, userID)
	return nil
}

// JoinSection katılma isteği oluşturur. Onay gerektirmeyen bölümlerde üyelik
// doğrudan onaylı yazılır; bölüm satırı kilitli alınır ki onay ayarı
// değişirken yarış olmasın.
func (s *SectionService) JoinSection(ctx context.Context, sectionID, userID uint) (*models.SectionMember, error) {
	var member models.SectionMember
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		memberRepoTx := repositories.NewSectionMemberRepositoryTx(tx)

		var section models.Section
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&section, sectionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}
		if !section.IsPublic {
			return ErrSectionForbidden
		}

		if existing, err := memberRepoTx.FindBySectionAndUser(txCtx, sectionID, userID); err == nil {
			switch existing.Status {
			case models.MembershipStatusApproved:
				return ErrSectionAlreadyMember
			case models.MembershipStatusPending:
				return ErrSectionMemberPending
			default:
				// Reddedilmiş kayıt yeniden başvuru ile pending'e döner.
				existing.Status = models.MembershipStatusPending
				if err := memberRepoTx.Update(txCtx, existing); err != nil {
					return err
				}
				member = *existing
				return nil
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		member = models.SectionMember{SectionID: sectionID, UserID: userID, Status: models.MembershipStatusApproved}
		if section.RequiresApproval {
			member.Status = models.MembershipStatusPending
		}
		return memberRepoTx.Create(txCtx, &member)
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Bölüme katılım: bölüm %d, kullanıcı %d, durum %s", sectionID, userID, member.Status)
	return &member, nil
}

// LeaveSection üyeliği kalıcı siler; kullanıcı daha sonra yeniden katılabilir.
func (s *SectionService) LeaveSection(ctx context.Context, sectionID, userID uint) error {
	section, err := s.repo.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	if section.CreatorID == userID {
		return ErrSectionCreatorLeave
	}
	if err := s.memberRepo.Delete(ctx, sectionID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionMemberNotFound
		}
		return err
	}
	return nil
}

// ReviewMembership bekleyen üyelik isteğini onaylar veya reddeder.
func (s *SectionService) ReviewMembership(ctx context.Context, sectionID, targetUserID, reviewerID uint, approve bool) error {
	if !s.IsAdmin(ctx, sectionID, reviewerID) {
		return ErrSectionForbidden
	}
	member, err := s.memberRepo.FindBySectionAndUser(ctx, sectionID, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionMemberNotFound
		}
		return err
	}
	if member.Status != models.MembershipStatusPending {
		return ErrSectionMemberNotFound
	}
	member.Status = models.MembershipStatusRejected
	if approve {
		member.Status = models.MembershipStatusApproved
	}
	txCtx := models.ContextWithUserID(ctx, reviewerID)
	if err := s.memberRepo.Update(txCtx, member); err != nil {
		configslog.Log.Error("ReviewMembership: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("targetUserID", targetUserID), zap.Error(err))
		return ErrSectionUpdateFailed
	}
	return nil
}

// SetMemberAdmin üyeyi yönetici yapar veya yöneticilikten alır.
func (s *SectionService) SetMemberAdmin(ctx context.Context, sectionID, targetUserID, byUserID uint, isAdmin bool) error {
	if !s.IsAdmin(ctx, sectionID, byUserID) {
		return ErrSectionForbidden
	}
	member, err := s.memberRepo.FindBySectionAndUser(ctx, sectionID, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionMemberNotFound
		}
		return err
	}
	if member.Status != models.MembershipStatusApproved {
		return ErrSectionMemberNotFound
	}
	member.IsAdmin = isAdmin
	txCtx := models.ContextWithUserID(ctx, byUserID)
	return s.memberRepo.Update(txCtx, member)
}

// GetMembers onaylı üyeleri döndürür. Görünürlüğünü kapatan üyeler yalnızca
// yöneticilere ve kendilerine görünür; her üyenin bölüme özel profil cevapları
// eklenir.
func (s *SectionService) GetMembers(ctx context.Context, sectionID, requestingUserID uint) ([]SectionMemberView, error) {
	if !s.IsApprovedMember(ctx, sectionID, requestingUserID) && !s.IsAdmin(ctx, sectionID, requestingUserID) {
		section, err := s.repo.FindByID(ctx, sectionID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrSectionNotFound
			}
			return nil, err
		}
		if !section.IsPublic {
			return nil, ErrSectionForbidden
		}
	}

	members, err := s.memberRepo.FindBySectionID(ctx, sectionID, true)
	if err != nil {
		return nil, err
	}
	hidden, err := s.memberRepo.HiddenUserIDs(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	isAdmin := s.IsAdmin(ctx, sectionID, requestingUserID)

	views := make([]SectionMemberView, 0, len(members))
	for _, m := range members {
		if hidden[m.UserID] && !isAdmin && m.UserID != requestingUserID {
			continue
		}
		view := SectionMemberView{Member: m}
		if data, err := s.profileRepo.FindDataByUser(ctx, sectionID, m.UserID); err == nil {
			view.ProfileData = data
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *SectionService) GetPendingMembers(ctx context.Context, sectionID, requestingUserID uint) ([]models.SectionMember, error) {
	if !s.IsAdmin(ctx, sectionID, requestingUserID) {
		return nil, ErrSectionForbidden
	}
	return s.memberRepo.FindPendingBySectionID(ctx, sectionID)
}

// SetMembershipVisibility üyenin kendi liste görünürlüğünü ayarlar.
func (s *SectionService) SetMembershipVisibility(ctx context.Context, sectionID, userID uint, hidden bool) error {
	if !s.IsApprovedMember(ctx, sectionID, userID) {
		return ErrSectionMemberNotFound
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	return s.memberRepo.SetVisibility(txCtx, sectionID, userID, hidden)
}

// CreateProfileField bölüme özel profil sorusu tanımlar (yalnızca yönetici).
func (s *SectionService) CreateProfileField(ctx context.Context, sectionID, byUserID uint, field models.SectionProfileField) (*models.SectionProfileField, error) {
	if !s.IsAdmin(ctx, sectionID, byUserID) {
		return nil, ErrSectionForbidden
	}
	if strings.TrimSpace(field.Label) == "" {
		return nil, fmt.Errorf("%w: soru metni zorunludur", ErrSectionUpdateFailed)
	}
	field.SectionID = sectionID
	txCtx := models.ContextWithUserID(ctx, byUserID)
	if err := s.profileRepo.CreateField(txCtx, &field); err != nil {
		configslog.Log.Error("CreateProfileField: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, ErrSectionUpdateFailed
	}
	return &field, nil
}

// DeleteProfileField soruyu ve tüm cevaplarını siler (yalnızca yönetici).
func (s *SectionService) DeleteProfileField(ctx context.Context, sectionID, fieldID, byUserID uint) error {
	if !s.IsAdmin(ctx, sectionID, byUserID) {
		return ErrSectionForbidden
	}
	field, err := s.profileRepo.FindFieldByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionFieldNotFound
		}
		return err
	}
	if field.SectionID != sectionID {
		return ErrSectionFieldNotFound
	}
	return s.profileRepo.DeleteField(ctx, fieldID)
}

func (s *SectionService) GetProfileFields(ctx context.Context, sectionID uint) ([]models.SectionProfileField, error) {
	return s.profileRepo.FindFieldsBySectionID(ctx, sectionID)
}

// SubmitProfileData üyenin bölüme özel sorulara cevaplarını upsert eder.
// answers anahtarı field ID'dir; başka bölümün sorusuna yazım reddedilir.
func (s *SectionService) SubmitProfileData(ctx context.Context, sectionID, userID uint, answers map[uint]string) error {
	if !s.IsApprovedMember(ctx, sectionID, userID) {
		return ErrSectionMemberNotFound
	}
	fields, err := s.profileRepo.FindFieldsBySectionID(ctx, sectionID)
	if err != nil {
		return err
	}
	valid := make(map[uint]bool, len(fields))
	for _, f := range fields {
		valid[f.ID] = true
	}

	txCtx := models.ContextWithUserID(ctx, userID)
	for fieldID, value := range answers {
		if !valid[fieldID] {
			return ErrSectionFieldNotFound
		}
		data := models.SectionProfileData{FieldID: fieldID, UserID: userID, Value: value}
		if err := s.profileRepo.UpsertData(txCtx, &data); err != nil {
			configslog.Log.Error("SubmitProfileData: DB error",
				zap.Uint("fieldID", fieldID), zap.Uint("userID", userID), zap.Error(err))
			return ErrSectionUpdateFailed
		}
	}
	return nil
}

var _ ISectionService = (*SectionService)(nil)
