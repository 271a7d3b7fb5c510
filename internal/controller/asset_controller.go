package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AssetController struct {
	assets *service.AssetService
}

func NewAssetController(assets *service.AssetService) *AssetController {
	return &AssetController{assets: assets}
}

func (ctrl *AssetController) Upload(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}

	var clientID *uint
	if id := c.QueryInt("client_id", 0); id > 0 {
		v := uint(id)
		clientID = &v
	}

	asset, err := ctrl.assets.Upload(claims.TenantID, claims.UserID, file, clientID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(asset)
}

func (ctrl *AssetController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid asset id")
	}

	asset, err := ctrl.assets.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(asset)
}

func (ctrl *AssetController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListAssetsFilter{
		Type:   model.AssetType(c.Query("type")),
		Offset: page.Offset(),
		Limit:  page.Limit,
	}
	if clientID := c.QueryInt("client_id", 0); clientID > 0 {
		id := uint(clientID)
		filter.ClientID = &id
	}

	assets, total, err := ctrl.assets.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: assets,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *AssetController) Archive(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid asset id")
	}

	asset, err := ctrl.assets.Archive(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(asset)
}

func (ctrl *AssetController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid asset id")
	}

	if err := ctrl.assets.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Asset deleted"})
}
