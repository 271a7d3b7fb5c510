package service

import (
	"errors"
	"time"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

type CreateActivityInput struct {
	Type        model.ActivityType `json:"type"`
	Subject     string             `json:"subject"`
	Description string             `json:"description"`
	ScheduledAt *time.Time         `json:"scheduled_at"`
}

func (in *CreateActivityInput) Validate() error {
	if !in.Type.Valid() {
		return NewValidation("invalid activity type: %s", in.Type)
	}
	if in.Subject == "" {
		return NewValidation("subject is required")
	}
	return nil
}

// Create attaches an activity to a lead of the same tenant.
func (s *ActivityService) Create(tenantID, leadID uint, in *CreateActivityInput) (*model.Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var lead model.Lead
	err := s.db.Where("tenant_id = ?", tenantID).First(&lead, leadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("lead")
	}
	if err != nil {
		return nil, err
	}

	activity := model.Activity{
		TenantID:    tenantID,
		LeadID:      leadID,
		Type:        in.Type,
		Subject:     in.Subject,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *ActivityService) ListForLead(tenantID, leadID uint) ([]model.Activity, error) {
	var lead model.Lead
	err := s.db.Where("tenant_id = ?", tenantID).First(&lead, leadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("lead")
	}
	if err != nil {
		return nil, err
	}

	var activities []model.Activity
	err = s.db.Where("tenant_id = ? AND lead_id = ?", tenantID, leadID).
		Order("created_at desc").
		Find(&activities).Error
	return activities, err
}

func (s *ActivityService) Complete(tenantID, id uint) (*model.Activity, error) {
	var activity model.Activity
	err := s.db.Where("tenant_id = ?", tenantID).First(&activity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("activity")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&activity).Update("completed_at", &now).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}
