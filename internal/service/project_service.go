package service

import (
	"errors"
	"time"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	ClientID    *uint      `json:"client_id"`
	StartAt     *time.Time `json:"start_at"`
	DueAt       *time.Time `json:"due_at"`
}

func (in *CreateProjectInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if in.Budget < 0 {
		return NewValidation("budget cannot be negative")
	}
	return nil
}

type UpdateProjectInput struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Status      *model.ProjectStatus `json:"status"`
	Budget      *float64             `json:"budget"`
	DueAt       *time.Time           `json:"due_at"`
}

type ListProjectsFilter struct {
	Status   model.ProjectStatus
	ClientID *uint
	Offset   int
	Limit    int
}

func (s *ProjectService) Create(tenantID uint, in *CreateProjectInput) (*model.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.ClientID != nil {
		var client model.Client
		err := s.db.Where("tenant_id = ?", tenantID).First(&client, *in.ClientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("client")
		}
		if err != nil {
			return nil, err
		}
	}

	project := model.Project{
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		Status:      model.ProjectStatusPlanning,
		Budget:      in.Budget,
		ClientID:    in.ClientID,
		StartAt:     in.StartAt,
		DueAt:       in.DueAt,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(tenantID, id uint) (*model.Project, error) {
	var project model.Project
	err := s.db.Where("tenant_id = ?", tenantID).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) List(tenantID uint, filter ListProjectsFilter) ([]model.Project, int64, error) {
	query := s.db.Model(&model.Project{}).Where("tenant_id = ?", tenantID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, NewValidation("invalid project status: %s", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.Project
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (s *ProjectService) Update(tenantID, id uint, in *UpdateProjectInput) (*model.Project, error) {
	project, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, NewValidation("name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, NewValidation("invalid project status: %s", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, NewValidation("budget cannot be negative")
		}
		updates["budget"] = *in.Budget
	}
	if in.DueAt != nil {
		updates["due_at"] = in.DueAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return project, nil
}

func (s *ProjectService) Delete(tenantID, id uint) error {
	project, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(project).Error
}

type ProjectStatusSummary struct {
	Status model.ProjectStatus `json:"status"`
	Count  int64               `json:"count"`
	Budget float64             `json:"budget"`
}

// Summary groups the tenant's projects by status with budget totals.
func (s *ProjectService) Summary(tenantID uint) ([]ProjectStatusSummary, error) {
	var rows []ProjectStatusSummary
	err := s.db.Model(&model.Project{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(budget), 0) as budget").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Fixed order, zero-filled.
	byStatus := map[model.ProjectStatus]ProjectStatusSummary{}
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	summary := make([]ProjectStatusSummary, 0, len(model.ProjectStatuses))
	for _, status := range model.ProjectStatuses {
		row, ok := byStatus[status]
		if !ok {
			row = ProjectStatusSummary{Status: status}
		}
		summary = append(summary, row)
	}
	return summary, nil
}
