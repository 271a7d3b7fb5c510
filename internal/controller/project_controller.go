package controller

import (
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type ProjectController struct {
	projects *service.ProjectService
}

func NewProjectController(projects *service.ProjectService) *ProjectController {
	return &ProjectController{projects: projects}
}

func (ctrl *ProjectController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateProjectInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	project, err := ctrl.projects.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (ctrl *ProjectController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	project, err := ctrl.projects.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(project)
}

func (ctrl *ProjectController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListProjectsFilter{
		Status: model.ProjectStatus(c.Query("status")),
		Offset: page.Offset(),
		Limit:  page.Limit,
	}
	if clientID := c.QueryInt("client_id", 0); clientID > 0 {
		id := uint(clientID)
		filter.ClientID = &id
	}

	projects, total, err := ctrl.projects.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: projects,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *ProjectController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	input := new(service.UpdateProjectInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	project, err := ctrl.projects.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(project)
}

func (ctrl *ProjectController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	if err := ctrl.projects.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Project deleted"})
}

func (ctrl *ProjectController) Summary(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	summary, err := ctrl.projects.Summary(claims.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}
