package service

import (
	"encoding/json"
	"errors"

	"agencyhub_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FunnelService struct {
	db *gorm.DB
}

func NewFunnelService(db *gorm.DB) *FunnelService {
	return &FunnelService{db: db}
}

type CreateFunnelInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Stages      []model.FunnelStage `json:"stages"`
	ClientID    *uint               `json:"client_id"`
}

func (in *CreateFunnelInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if len(in.Stages) == 0 {
		return NewValidation("at least one stage is required")
	}
	for _, stage := range in.Stages {
		if stage.Name == "" {
			return NewValidation("every stage needs a name")
		}
	}
	return nil
}

func (s *FunnelService) Create(tenantID uint, in *CreateFunnelInput) (*model.SalesFunnel, error) {
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

	stages, err := json.Marshal(in.Stages)
	if err != nil {
		return nil, err
	}

	funnel := model.SalesFunnel{
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		Status:      model.FunnelStatusDraft,
		Stages:      datatypes.JSON(stages),
		ClientID:    in.ClientID,
	}

	if err := s.db.Create(&funnel).Error; err != nil {
		return nil, err
	}
	return &funnel, nil
}

func (s *FunnelService) Get(tenantID, id uint) (*model.SalesFunnel, error) {
	var funnel model.SalesFunnel
	err := s.db.Where("tenant_id = ?", tenantID).First(&funnel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("funnel")
	}
	if err != nil {
		return nil, err
	}
	return &funnel, nil
}

func (s *FunnelService) List(tenantID uint) ([]model.SalesFunnel, error) {
	var funnels []model.SalesFunnel
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&funnels).Error
	return funnels, err
}

type UpdateFunnelInput struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Status      *model.FunnelStatus `json:"status"`
	Stages      []model.FunnelStage `json:"stages"`
}

func (s *FunnelService) Update(tenantID, id uint, in *UpdateFunnelInput) (*model.SalesFunnel, error) {
	funnel, err := s.Get(tenantID, id)
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
			return nil, NewValidation("invalid funnel status: %s", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Stages != nil {
		for _, stage := range in.Stages {
			if stage.Name == "" {
				return nil, NewValidation("every stage needs a name")
			}
		}
		stages, err := json.Marshal(in.Stages)
		if err != nil {
			return nil, err
		}
		updates["stages"] = datatypes.JSON(stages)
	}

	if len(updates) > 0 {
		if err := s.db.Model(funnel).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return funnel, nil
}

func (s *FunnelService) Delete(tenantID, id uint) error {
	funnel, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(funnel).Error
}

type FunnelStageStats struct {
	Name           string  `json:"name"`
	Visitors       int64   `json:"visitors"`
	Conversions    int64   `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
	DropOffRate    float64 `json:"drop_off_rate"`
}

// Stats derives per-stage conversion and drop-off rates from the stored
// stage counters, zero-guarded.
func (s *FunnelService) Stats(tenantID, id uint) ([]FunnelStageStats, error) {
	funnel, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	var stages []model.FunnelStage
	if len(funnel.Stages) > 0 {
		if err := json.Unmarshal(funnel.Stages, &stages); err != nil {
			return nil, err
		}
	}

	stats := make([]FunnelStageStats, 0, len(stages))
	for i, stage := range stages {
		row := FunnelStageStats{
			Name:        stage.Name,
			Visitors:    stage.Visitors,
			Conversions: stage.Conversions,
		}
		if stage.Visitors > 0 {
			row.ConversionRate = float64(stage.Conversions) / float64(stage.Visitors) * 100
		}
		if i > 0 && stages[i-1].Visitors > 0 {
			row.DropOffRate = 100 - float64(stage.Visitors)/float64(stages[i-1].Visitors)*100
		}
		stats = append(stats, row)
	}

	return stats, nil
}
