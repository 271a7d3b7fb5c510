package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type DealController struct {
	deals *service.DealService
}

func NewDealController(deals *service.DealService) *DealController {
	return &DealController{deals: deals}
}

func (ctrl *DealController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateDealInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	deal, err := ctrl.deals.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(deal)
}

func (ctrl *DealController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deal id")
	}

	deal, err := ctrl.deals.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(deal)
}

func (ctrl *DealController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListDealsFilter{
		Stage:  model.DealStage(c.Query("stage")),
		Search: c.Query("search"),
		Offset: page.Offset(),
		Limit:  page.Limit,
	}

	deals, total, err := ctrl.deals.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: deals,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *DealController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deal id")
	}

	input := new(service.UpdateDealInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	deal, err := ctrl.deals.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(deal)
}

func (ctrl *DealController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deal id")
	}

	if err := ctrl.deals.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Deal deleted"})
}

type dealStageInput struct {
	Stage model.DealStage `json:"stage"`
}

func (ctrl *DealController) UpdateStage(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deal id")
	}

	input := new(dealStageInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	deal, err := ctrl.deals.UpdateStage(claims.TenantID, uint(id), input.Stage)
	if err != nil {
		return err
	}

	return c.JSON(deal)
}

func (ctrl *DealController) Close(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deal id")
	}

	input := new(service.CloseDealInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	deal, err := ctrl.deals.Close(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(deal)
}
