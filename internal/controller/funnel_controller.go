package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FunnelController struct {
	funnels *service.FunnelService
}

func NewFunnelController(funnels *service.FunnelService) *FunnelController {
	return &FunnelController{funnels: funnels}
}

func (ctrl *FunnelController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateFunnelInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	funnel, err := ctrl.funnels.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(funnel)
}

func (ctrl *FunnelController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid funnel id")
	}

	funnel, err := ctrl.funnels.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(funnel)
}

func (ctrl *FunnelController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	funnels, err := ctrl.funnels.List(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(funnels)
}

func (ctrl *FunnelController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid funnel id")
	}

	input := new(service.UpdateFunnelInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	funnel, err := ctrl.funnels.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(funnel)
}

func (ctrl *FunnelController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid funnel id")
	}

	if err := ctrl.funnels.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Funnel deleted"})
}

func (ctrl *FunnelController) Stats(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid funnel id")
	}

	stats, err := ctrl.funnels.Stats(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
