package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type ClientController struct {
	clients *service.ClientService
}

func NewClientController(clients *service.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

func (ctrl *ClientController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateClientInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	client, err := ctrl.clients.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

func (ctrl *ClientController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid client id")
	}

	client, err := ctrl.clients.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(client)
}

func (ctrl *ClientController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListClientsFilter{
		Status: model.ClientStatus(c.Query("status")),
		Search: c.Query("search"),
		Offset: page.Offset(),
		Limit:  page.Limit,
	}

	clients, total, err := ctrl.clients.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: clients,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *ClientController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid client id")
	}

	input := new(service.UpdateClientInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	client, err := ctrl.clients.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(client)
}

func (ctrl *ClientController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid client id")
	}

	if err := ctrl.clients.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Client deleted"})
}
