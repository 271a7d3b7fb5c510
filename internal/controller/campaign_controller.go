package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type CampaignController struct {
	campaigns *service.CampaignService
}

func NewCampaignController(campaigns *service.CampaignService) *CampaignController {
	return &CampaignController{campaigns: campaigns}
}

func (ctrl *CampaignController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateCampaignInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	campaign, err := ctrl.campaigns.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (ctrl *CampaignController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	campaign, err := ctrl.campaigns.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(campaign)
}

func (ctrl *CampaignController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListCampaignsFilter{
		Status:   model.CampaignStatus(c.Query("status")),
		Platform: model.AdPlatform(c.Query("platform")),
		Offset:   page.Offset(),
		Limit:    page.Limit,
	}
	if clientID := c.QueryInt("client_id", 0); clientID > 0 {
		id := uint(clientID)
		filter.ClientID = &id
	}

	campaigns, total, err := ctrl.campaigns.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: campaigns,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *CampaignController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	input := new(service.UpdateCampaignInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	campaign, err := ctrl.campaigns.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(campaign)
}

func (ctrl *CampaignController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	if err := ctrl.campaigns.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Campaign deleted"})
}

func (ctrl *CampaignController) UpdateMetrics(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	input := new(model.CampaignMetrics)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	campaign, err := ctrl.campaigns.UpdateMetrics(claims.TenantID, uint(id), *input)
	if err != nil {
		return err
	}

	return c.JSON(campaign)
}

func (ctrl *CampaignController) Performance(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	performance, err := ctrl.campaigns.Performance(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(performance)
}

func (ctrl *CampaignController) Summary(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	summary, err := ctrl.campaigns.Summary(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

func (ctrl *CampaignController) CreateCreative(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	campaignID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	input := new(service.CreateCreativeInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	creative, err := ctrl.campaigns.CreateCreative(claims.TenantID, uint(campaignID), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(creative)
}

func (ctrl *CampaignController) ListCreatives(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	campaignID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	creatives, err := ctrl.campaigns.ListCreatives(claims.TenantID, uint(campaignID))
	if err != nil {
		return err
	}

	return c.JSON(creatives)
}

type creativeStatusInput struct {
	Status model.CreativeStatus `json:"status"`
}

func (ctrl *CampaignController) UpdateCreativeStatus(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	creativeID, err := c.ParamsInt("creativeId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid creative id")
	}

	input := new(creativeStatusInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	creative, err := ctrl.campaigns.UpdateCreativeStatus(claims.TenantID, uint(creativeID), input.Status)
	if err != nil {
		return err
	}

	return c.JSON(creative)
}

func (ctrl *CampaignController) DeleteCreative(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	creativeID, err := c.ParamsInt("creativeId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid creative id")
	}

	if err := ctrl.campaigns.DeleteCreative(claims.TenantID, uint(creativeID)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Creative deleted"})
}

func (ctrl *CampaignController) CreateSplitTest(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateSplitTestInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	test, err := ctrl.campaigns.CreateSplitTest(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(test)
}

func (ctrl *CampaignController) ListSplitTests(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	tests, err := ctrl.campaigns.ListSplitTests(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(tests)
}

type completeSplitTestInput struct {
	WinnerID uint `json:"winner_id"`
}

func (ctrl *CampaignController) CompleteSplitTest(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid split test id")
	}

	input := new(completeSplitTestInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	test, err := ctrl.campaigns.CompleteSplitTest(claims.TenantID, uint(id), input.WinnerID)
	if err != nil {
		return err
	}

	return c.JSON(test)
}
