package handlers

import (
	"context"

	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler profil görüntüleme, düzenleme ve görsel yükleme isteklerini
// yönetir.
type ProfileHandler struct {
	profileService services.IProfileService
	uploadService  services.IUploadService
}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{
		profileService: services.NewProfileService(),
		uploadService:  services.NewUploadService(),
	}
}

// GetOwn GET /api/profile
func (h *ProfileHandler) GetOwn(c *fiber.Ctx) error {
	userID := currentUserID(c)
	profile, err := h.profileService.GetProfile(c.UserContext(), userID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile, "interests": profile.InterestList()})
}

// GetByUserID GET /api/profiles/:userID — gizli profiller sahibine özeldir.
func (h *ProfileHandler) GetByUserID(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	profile, err := h.profileService.GetProfile(c.UserContext(), targetID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile, "interests": profile.InterestList()})
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var input services.ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	profile, err := h.profileService.UpdateProfile(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// UploadPicture POST /api/profile/picture — multipart "file" alanını
// profile-pictures klasörüne yükler ve profile yazar.
func (h *ProfileHandler) UploadPicture(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya alanı bulunamadı"})
	}
	if err := services.ValidateUpload(header); err != nil {
		return respondError(c, err)
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	userID := currentUserID(c)
	var oldURL string
	if current, profErr := h.profileService.GetProfile(c.UserContext(), userID, userID); profErr == nil {
		oldURL = current.ProfilePictureURL
	}

	url, err := h.uploadService.UploadImage(c.UserContext(), services.BucketProfilePictures, file, header)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.profileService.SetProfilePicture(c.UserContext(), userID, url); err != nil {
		return respondError(c, err)
	}

	// Eski görsel depodan temizlenir; silme hatası isteği etkilemez.
	if oldURL != "" && oldURL != url {
		go h.uploadService.DeleteImage(context.Background(), oldURL)
	}
	return c.JSON(fiber.Map{"url": url})
}

// UploadImage POST /api/uploads — genel görseller (etkinlik/bölüm kapakları)
// project-images klasörüne gider, URL istemciye döner.
func (h *ProfileHandler) UploadImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya alanı bulunamadı"})
	}
	if err := services.ValidateUpload(header); err != nil {
		return respondError(c, err)
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	url, err := h.uploadService.UploadImage(c.UserContext(), services.BucketProjectImages, file, header)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
