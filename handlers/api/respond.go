package handlers

import (
	"errors"

	"topluluk.link/configs/configslog"
	"topluluk.link/repositories"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// currentUserID auth middleware'inin yazdığı kullanıcı ID'sini okur.
// Korumasız rotalarda 0 döner.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// respondError servis hatasını HTTP cevabına çevirir. Bilinen hatalar uygun
// durum koduyla mesaj olarak döner, kalanlar loglanıp 500 olur.
func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("API: unexpected error",
			zap.String("path", c.Path()), zap.String("method", c.Method()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrSectionNotFound),
		errors.Is(err, services.ErrChannelNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRSVPNotFound),
		errors.Is(err, services.ErrWaitlistNotFound),
		errors.Is(err, services.ErrEventInviteNotFound),
		errors.Is(err, services.ErrSectionInviteNotFound),
		errors.Is(err, services.ErrSectionMemberNotFound),
		errors.Is(err, services.ErrSectionFieldNotFound),
		errors.Is(err, services.ErrCohostNotFound),
		errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, services.ErrEventForbidden),
		errors.Is(err, services.ErrSectionForbidden),
		errors.Is(err, services.ErrChannelForbidden),
		errors.Is(err, services.ErrChannelNotMember),
		errors.Is(err, services.ErrMessageNotYours),
		errors.Is(err, services.ErrEventInviteNotYours),
		errors.Is(err, services.ErrSectionInviteNotYours),
		errors.Is(err, services.ErrProfilePrivate),
		errors.Is(err, services.ErrRSVPGuestListHidden):
		return fiber.StatusForbidden

	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthTokenInvalid):
		return fiber.StatusUnauthorized

	case errors.Is(err, services.ErrAuthEmailTaken),
		errors.Is(err, services.ErrRSVPEventFull),
		errors.Is(err, services.ErrSectionAlreadyMember),
		errors.Is(err, services.ErrSectionMemberPending),
		errors.Is(err, services.ErrEventInviteExists),
		errors.Is(err, services.ErrSectionInviteExists),
		errors.Is(err, services.ErrEventInviteAlreadyClosed),
		errors.Is(err, services.ErrSectionInviteAlreadyClosed),
		errors.Is(err, services.ErrCohostAlreadyExists):
		return fiber.StatusConflict

	case isValidationError(err):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func isValidationError(err error) bool {
	var eventErr services.EventServiceError
	var authErr services.AuthServiceError
	var sectionErr services.SectionServiceError
	var channelErr services.ChannelServiceError
	var rsvpErr services.RSVPServiceError
	var uploadErr services.UploadServiceError
	return errors.As(err, &eventErr) || errors.As(err, &authErr) ||
		errors.As(err, &sectionErr) || errors.As(err, &channelErr) ||
		errors.As(err, &rsvpErr) || errors.As(err, &uploadErr)
}

// parseIDParam URL parametresini pozitif ID olarak okur.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "geçersiz "+name+" parametresi")
	}
	return uint(id), nil
}
