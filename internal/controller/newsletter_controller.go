package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type NewsletterController struct {
	newsletter *service.NewsletterService
}

func NewNewsletterController(newsletter *service.NewsletterService) *NewsletterController {
	return &NewsletterController{newsletter: newsletter}
}

type subscribeRequest struct {
	TenantID uint   `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Source   string `json:"source"`
}

// Subscribe is the public capture endpoint, so the tenant comes from the
// payload rather than a token.
func (ctrl *NewsletterController) Subscribe(c *fiber.Ctx) error {
	input := new(subscribeRequest)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	if input.TenantID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "tenant_id is required")
	}

	subscriber, err := ctrl.newsletter.Subscribe(input.TenantID, &service.SubscribeInput{
		Email:  input.Email,
		Name:   input.Name,
		Source: input.Source,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(subscriber)
}

func (ctrl *NewsletterController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	subscribers, total, err := ctrl.newsletter.List(claims.TenantID, page.Offset(), page.Limit)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: subscribers,
		Meta: pagination.NewMeta(page, total),
	})
}
