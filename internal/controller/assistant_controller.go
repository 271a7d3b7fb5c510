package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AssistantController struct {
	assistant *service.AssistantService
}

func NewAssistantController(assistant *service.AssistantService) *AssistantController {
	return &AssistantController{assistant: assistant}
}

func (ctrl *AssistantController) Generate(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.GenerateInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	content, err := ctrl.assistant.Generate(claims.TenantID, claims.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(content)
}

func (ctrl *AssistantController) History(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	items, total, err := ctrl.assistant.History(claims.TenantID, page.Offset(), page.Limit)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: items,
		Meta: pagination.NewMeta(page, total),
	})
}
