package service

import (
	"errors"
	"time"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

type DealService struct {
	db *gorm.DB
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db}
}

type CreateDealInput struct {
	Title           string     `json:"title"`
	Value           float64    `json:"value"`
	Probability     int        `json:"probability"`
	LeadID          *uint      `json:"lead_id"`
	ClientID        *uint      `json:"client_id"`
	ExpectedCloseAt *time.Time `json:"expected_close_at"`
}

func (in *CreateDealInput) Validate() error {
	if in.Title == "" {
		return NewValidation("title is required")
	}
	if in.Value < 0 {
		return NewValidation("value cannot be negative")
	}
	if in.Probability < 0 || in.Probability > 100 {
		return NewValidation("probability must be between 0 and 100")
	}
	return nil
}

type UpdateDealInput struct {
	Title           *string    `json:"title"`
	Value           *float64   `json:"value"`
	Probability     *int       `json:"probability"`
	ExpectedCloseAt *time.Time `json:"expected_close_at"`
}

type ListDealsFilter struct {
	Stage  model.DealStage
	Search string
	Offset int
	Limit  int
}

func (s *DealService) Create(tenantID uint, in *CreateDealInput) (*model.Deal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.LeadID != nil {
		var lead model.Lead
		err := s.db.Where("tenant_id = ?", tenantID).First(&lead, *in.LeadID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("lead")
		}
		if err != nil {
			return nil, err
		}
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

	deal := model.Deal{
		TenantID:        tenantID,
		Title:           in.Title,
		Value:           in.Value,
		Stage:           model.DealStageProspect,
		Probability:     in.Probability,
		LeadID:          in.LeadID,
		ClientID:        in.ClientID,
		ExpectedCloseAt: in.ExpectedCloseAt,
	}

	if err := s.db.Create(&deal).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (s *DealService) Get(tenantID, id uint) (*model.Deal, error) {
	var deal model.Deal
	err := s.db.Where("tenant_id = ?", tenantID).First(&deal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("deal")
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (s *DealService) List(tenantID uint, filter ListDealsFilter) ([]model.Deal, int64, error) {
	query := s.db.Model(&model.Deal{}).Where("tenant_id = ?", tenantID)

	if filter.Stage != "" {
		if !filter.Stage.Valid() {
			return nil, 0, NewValidation("invalid deal stage: %s", filter.Stage)
		}
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deals []model.Deal
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&deals).Error
	if err != nil {
		return nil, 0, err
	}

	return deals, total, nil
}

func (s *DealService) ListAll(tenantID uint) ([]model.Deal, error) {
	var deals []model.Deal
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&deals).Error
	return deals, err
}

func (s *DealService) Update(tenantID, id uint, in *UpdateDealInput) (*model.Deal, error) {
	deal, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, NewValidation("title cannot be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Value != nil {
		if *in.Value < 0 {
			return nil, NewValidation("value cannot be negative")
		}
		updates["value"] = *in.Value
	}
	if in.Probability != nil {
		if *in.Probability < 0 || *in.Probability > 100 {
			return nil, NewValidation("probability must be between 0 and 100")
		}
		updates["probability"] = *in.Probability
	}
	if in.ExpectedCloseAt != nil {
		updates["expected_close_at"] = in.ExpectedCloseAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(deal).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return deal, nil
}

func (s *DealService) Delete(tenantID, id uint) error {
	deal, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(deal).Error
}

// UpdateStage moves a deal along the pipeline per the transition table.
// Closing stages go through Close so the close date is recorded.
func (s *DealService) UpdateStage(tenantID, id uint, stage model.DealStage) (*model.Deal, error) {
	if !stage.Valid() {
		return nil, NewValidation("invalid deal stage: %s", stage)
	}
	if stage.Closed() {
		return nil, NewValidation("use the close operation to move a deal to %s", stage)
	}

	deal, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if deal.Stage == stage {
		return deal, nil
	}
	if !deal.Stage.CanTransitionTo(stage) {
		return nil, NewValidation("cannot move deal from %s to %s", deal.Stage, stage)
	}

	if err := s.db.Model(deal).Update("stage", stage).Error; err != nil {
		return nil, err
	}
	return deal, nil
}

type CloseDealInput struct {
	Outcome string `json:"outcome"` // won | lost
}

// Close finishes a deal. Won deals get probability 100, lost 0; the
// actual close date is stamped either way.
func (s *DealService) Close(tenantID, id uint, in *CloseDealInput) (*model.Deal, error) {
	var stage model.DealStage
	var probability int
	switch in.Outcome {
	case "won":
		stage = model.DealStageClosedWon
		probability = 100
	case "lost":
		stage = model.DealStageClosedLost
		probability = 0
	default:
		return nil, NewValidation("outcome must be won or lost")
	}

	deal, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if deal.Stage.Closed() {
		return nil, NewConflict("deal is already closed")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"stage":           stage,
		"probability":     probability,
		"actual_close_at": &now,
	}
	if err := s.db.Model(deal).Updates(updates).Error; err != nil {
		return nil, err
	}
	return deal, nil
}

// OpenSummary returns the count and total value of unclosed deals.
func (s *DealService) OpenSummary(tenantID uint) (int64, float64, error) {
	var count int64
	openStages := []model.DealStage{
		model.DealStageProspect,
		model.DealStageQualification,
		model.DealStageProposal,
		model.DealStageNegotiation,
	}

	query := s.db.Model(&model.Deal{}).
		Where("tenant_id = ? AND stage IN ?", tenantID, openStages)

	if err := query.Count(&count).Error; err != nil {
		return 0, 0, err
	}

	var value struct{ Total float64 }
	err := s.db.Model(&model.Deal{}).
		Select("COALESCE(SUM(value), 0) as total").
		Where("tenant_id = ? AND stage IN ?", tenantID, openStages).
		Scan(&value).Error
	if err != nil {
		return 0, 0, err
	}

	return count, value.Total, nil
}
