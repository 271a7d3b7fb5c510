package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	imageutil "agencyhub_backend/pkg/utils/image"
	"agencyhub_backend/pkg/utils/storage"
	"agencyhub_backend/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingsController struct {
	db      *gorm.DB
	storage *storage.Service
}

func NewSettingsController(db *gorm.DB, storageService *storage.Service) *SettingsController {
	return &SettingsController{db: db, storage: storageService}
}

func (ctrl *SettingsController) GetProfile(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var user model.User
	if err := ctrl.db.Where("tenant_id = ?", claims.TenantID).First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

type ProfileInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	PhoneNumber string `json:"phone_number"`
}

func (ctrl *SettingsController) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := ctrl.db.Where("tenant_id = ?", claims.TenantID).First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"title":        input.Title,
		"phone_number": input.PhoneNumber,
	}
	if err := ctrl.db.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

// UploadAvatar stores the optimized image on S3 and saves its URL.
func (ctrl *SettingsController) UploadAvatar(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No avatar file provided",
		})
	}

	if err := validation.ValidateUpload(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var body []byte
	contentType := file.Header.Get("Content-Type")
	if validation.IsImage(file) {
		buf, optimizedType, err := imageutil.Process(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		body = buf.Bytes()
		contentType = optimizedType
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar must be an image",
		})
	}

	url, err := ctrl.storage.Upload(claims.TenantID, storage.TimestampedName(file.Filename), contentType, body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload avatar",
		})
	}

	if err := ctrl.db.Model(&model.User{}).
		Where("id = ? AND tenant_id = ?", claims.UserID, claims.TenantID).
		Update("avatar", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save avatar",
		})
	}

	return c.JSON(fiber.Map{"avatar": url})
}
