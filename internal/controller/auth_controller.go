package controller

import (
	"log"

	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/email"
	"agencyhub_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db    *gorm.DB
	email *email.Service
}

func NewAuthController(db *gorm.DB, emailService *email.Service) *AuthController {
	return &AuthController{db: db, email: emailService}
}

type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	AgencyName string `json:"agency_name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the agency tenant and its owner user in one
// transaction and returns a signed token.
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Email == "" || len(input.Password) < 6 || input.AgencyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email, password (min 6 chars) and agency_name are required",
		})
	}

	var existingUser model.User
	if err := ctrl.db.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	var user model.User
	err = ctrl.db.Transaction(func(tx *gorm.DB) error {
		tenant := model.Tenant{
			Name:   input.AgencyName,
			Slug:   slug.Make(input.AgencyName),
			Status: model.TenantStatusActive,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		user = model.User{
			TenantID: tenant.ID,
			Email:    input.Email,
			Password: string(hashedPassword),
			Role:     model.RoleOwner,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create account",
		})
	}

	token, err := jwt.GenerateToken(user.ID, user.TenantID, user.Email, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	if ctrl.email != nil {
		if err := ctrl.email.SendWelcomeEmail(user.Email, input.AgencyName); err != nil {
			log.Printf("Could not send welcome email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    user.GetPublicProfile(),
	})
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := ctrl.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := jwt.GenerateToken(user.ID, user.TenantID, user.Email, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.GetPublicProfile(),
	})
}

func (ctrl *AuthController) GetMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var user model.User
	if err := ctrl.db.Where("tenant_id = ?", claims.TenantID).First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}
