package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ScraperController struct {
	scraper *service.ScraperService
}

func NewScraperController(scraper *service.ScraperService) *ScraperController {
	return &ScraperController{scraper: scraper}
}

func (ctrl *ScraperController) CreateJob(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateScraperJobInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	job, err := ctrl.scraper.CreateJob(claims.TenantID, claims.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(job)
}

func (ctrl *ScraperController) GetJob(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	job, err := ctrl.scraper.GetJob(claims.TenantID, c.Params("jobId"))
	if err != nil {
		return err
	}

	return c.JSON(job)
}

func (ctrl *ScraperController) ListJobs(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	jobs, err := ctrl.scraper.ListJobs(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

func (ctrl *ScraperController) Industries(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"industries": ctrl.scraper.Industries()})
}
