package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CRMController struct {
	crm     *service.CRMService
	reports *service.ReportService
}

func NewCRMController(crm *service.CRMService, reports *service.ReportService) *CRMController {
	return &CRMController{crm: crm, reports: reports}
}

func (ctrl *CRMController) Dashboard(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	stats, err := ctrl.crm.Dashboard(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

func (ctrl *CRMController) Pipeline(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	view, err := ctrl.crm.Pipeline(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(view)
}

func (ctrl *CRMController) Forecast(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	months := c.QueryInt("months", 3)
	forecast, err := ctrl.crm.ForecastRevenue(claims.TenantID, months)
	if err != nil {
		return err
	}

	return c.JSON(forecast)
}

func (ctrl *CRMController) Analytics(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	period := c.Query("period", "month")
	analytics, err := ctrl.crm.Analytics(claims.TenantID, period)
	if err != nil {
		return err
	}

	return c.JSON(analytics)
}

func (ctrl *CRMController) GenerateReport(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	reportType := c.Query("type")
	opts := service.ReportOptions{
		Months: c.QueryInt("months", 3),
	}

	report, err := ctrl.reports.Generate(claims.TenantID, reportType, opts)
	if err != nil {
		return err
	}

	return c.JSON(report)
}
