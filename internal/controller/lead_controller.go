package controller

import (
	"fmt"
	"time"

	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/export"
	"agencyhub_backend/pkg/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type LeadController struct {
	leads      *service.LeadService
	activities *service.ActivityService
}

func NewLeadController(leads *service.LeadService, activities *service.ActivityService) *LeadController {
	return &LeadController{leads: leads, activities: activities}
}

func (ctrl *LeadController) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.CreateLeadInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	lead, err := ctrl.leads.Create(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

func (ctrl *LeadController) Get(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	lead, err := ctrl.leads.Get(claims.TenantID, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(lead)
}

func (ctrl *LeadController) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	page := pagination.Parse(c)

	filter := service.ListLeadsFilter{
		Status: model.LeadStatus(c.Query("status")),
		Source: model.LeadSource(c.Query("source")),
		Search: c.Query("search"),
		Offset: page.Offset(),
		Limit:  page.Limit,
	}

	leads, total, err := ctrl.leads.List(claims.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(pagination.Envelope{
		Data: leads,
		Meta: pagination.NewMeta(page, total),
	})
}

func (ctrl *LeadController) Update(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(service.UpdateLeadInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	lead, err := ctrl.leads.Update(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(lead)
}

func (ctrl *LeadController) Delete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	if err := ctrl.leads.Delete(claims.TenantID, uint(id)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Lead deleted"})
}

type leadStatusInput struct {
	Status model.LeadStatus `json:"status"`
}

func (ctrl *LeadController) UpdateStatus(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(leadStatusInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	lead, err := ctrl.leads.UpdateStatus(claims.TenantID, uint(id), input.Status)
	if err != nil {
		return err
	}

	return c.JSON(lead)
}

type leadScoreInput struct {
	Score float64 `json:"score"`
}

func (ctrl *LeadController) Score(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(leadScoreInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	lead, err := ctrl.leads.Score(claims.TenantID, uint(id), input.Score)
	if err != nil {
		return err
	}

	return c.JSON(lead)
}

type leadAssignInput struct {
	AssigneeID *uint `json:"assignee_id"`
}

func (ctrl *LeadController) Assign(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(leadAssignInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	lead, err := ctrl.leads.Assign(claims.TenantID, uint(id), input.AssigneeID)
	if err != nil {
		return err
	}

	return c.JSON(lead)
}

func (ctrl *LeadController) Convert(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(service.ConvertLeadInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	result, err := ctrl.leads.Convert(claims.TenantID, uint(id), input)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (ctrl *LeadController) BatchUpdateStatus(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(service.BatchStatusInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	updated, err := ctrl.leads.BatchUpdateStatus(claims.TenantID, input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"updated":   updated,
		"requested": len(input.LeadIDs),
	})
}

// Export streams the tenant's leads as a CSV download.
func (ctrl *LeadController) Export(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	leads, err := ctrl.leads.ListAll(claims.TenantID)
	if err != nil {
		return err
	}

	body, err := export.LeadsToCSV(leads)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("leads_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}

func (ctrl *LeadController) CreateActivity(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	leadID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	input := new(service.CreateActivityInput)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	activity, err := ctrl.activities.Create(claims.TenantID, uint(leadID), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (ctrl *LeadController) ListActivities(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	leadID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	activities, err := ctrl.activities.ListForLead(claims.TenantID, uint(leadID))
	if err != nil {
		return err
	}

	return c.JSON(activities)
}

func (ctrl *LeadController) CompleteActivity(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	activityID, err := c.ParamsInt("activityId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid activity id")
	}

	activity, err := ctrl.activities.Complete(claims.TenantID, uint(activityID))
	if err != nil {
		return err
	}

	return c.JSON(activity)
}
