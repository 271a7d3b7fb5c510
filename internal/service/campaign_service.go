package service

import (
	"encoding/json"
	"errors"
	"time"

	"agencyhub_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CampaignService struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

type CreateCampaignInput struct {
	Name     string           `json:"name"`
	Platform model.AdPlatform `json:"platform"`
	Budget   float64          `json:"budget"`
	ClientID *uint            `json:"client_id"`
	StartAt  *time.Time       `json:"start_at"`
	EndAt    *time.Time       `json:"end_at"`
}

func (in *CreateCampaignInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if in.Platform == "" {
		in.Platform = model.PlatformOther
	}
	if !in.Platform.Valid() {
		return NewValidation("invalid platform: %s", in.Platform)
	}
	if in.Budget < 0 {
		return NewValidation("budget cannot be negative")
	}
	return nil
}

type UpdateCampaignInput struct {
	Name   *string               `json:"name"`
	Status *model.CampaignStatus `json:"status"`
	Budget *float64              `json:"budget"`
	Spend  *float64              `json:"spend"`
	EndAt  *time.Time            `json:"end_at"`
}

type ListCampaignsFilter struct {
	Status   model.CampaignStatus
	Platform model.AdPlatform
	ClientID *uint
	Offset   int
	Limit    int
}

func (s *CampaignService) Create(tenantID uint, in *CreateCampaignInput) (*model.AdCampaign, error) {
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

	metrics, _ := json.Marshal(model.CampaignMetrics{})

	campaign := model.AdCampaign{
		TenantID: tenantID,
		Name:     in.Name,
		Platform: in.Platform,
		Status:   model.CampaignStatusDraft,
		Budget:   in.Budget,
		Metrics:  datatypes.JSON(metrics),
		ClientID: in.ClientID,
		StartAt:  in.StartAt,
		EndAt:    in.EndAt,
	}

	if err := s.db.Create(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) Get(tenantID, id uint) (*model.AdCampaign, error) {
	var campaign model.AdCampaign
	err := s.db.Where("tenant_id = ?", tenantID).First(&campaign, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("campaign")
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) List(tenantID uint, filter ListCampaignsFilter) ([]model.AdCampaign, int64, error) {
	query := s.db.Model(&model.AdCampaign{}).Where("tenant_id = ?", tenantID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, NewValidation("invalid campaign status: %s", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Platform != "" {
		if !filter.Platform.Valid() {
			return nil, 0, NewValidation("invalid platform: %s", filter.Platform)
		}
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []model.AdCampaign
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (s *CampaignService) Update(tenantID, id uint, in *UpdateCampaignInput) (*model.AdCampaign, error) {
	campaign, err := s.Get(tenantID, id)
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
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, NewValidation("invalid campaign status: %s", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, NewValidation("budget cannot be negative")
		}
		updates["budget"] = *in.Budget
	}
	if in.Spend != nil {
		if *in.Spend < 0 {
			return nil, NewValidation("spend cannot be negative")
		}
		updates["spend"] = *in.Spend
	}
	if in.EndAt != nil {
		updates["end_at"] = in.EndAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(campaign).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return campaign, nil
}

func (s *CampaignService) Delete(tenantID, id uint) error {
	campaign, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(campaign).Error
}

// UpdateMetrics replaces the campaign's counter blob.
func (s *CampaignService) UpdateMetrics(tenantID, id uint, metrics model.CampaignMetrics) (*model.AdCampaign, error) {
	if metrics.Impressions < 0 || metrics.Clicks < 0 || metrics.Conversions < 0 {
		return nil, NewValidation("metric counters cannot be negative")
	}

	campaign, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(metrics)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(campaign).Update("metrics", datatypes.JSON(blob)).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

type CampaignPerformance struct {
	CampaignID     uint    `json:"campaign_id"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Conversions    int64   `json:"conversions"`
	Spend          float64 `json:"spend"`
	CTR            float64 `json:"ctr"`             // clicks / impressions * 100
	CPC            float64 `json:"cpc"`             // spend / clicks
	CPM            float64 `json:"cpm"`             // spend / impressions * 1000
	ConversionRate float64 `json:"conversion_rate"` // conversions / clicks * 100
}

// Performance derives the rate metrics, guarding every division.
func (s *CampaignService) Performance(tenantID, id uint) (*CampaignPerformance, error) {
	campaign, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	var metrics model.CampaignMetrics
	if len(campaign.Metrics) > 0 {
		if err := json.Unmarshal(campaign.Metrics, &metrics); err != nil {
			return nil, err
		}
	}

	return ComputePerformance(campaign.ID, metrics, campaign.Spend), nil
}

func ComputePerformance(campaignID uint, m model.CampaignMetrics, spend float64) *CampaignPerformance {
	perf := &CampaignPerformance{
		CampaignID:  campaignID,
		Impressions: m.Impressions,
		Clicks:      m.Clicks,
		Conversions: m.Conversions,
		Spend:       spend,
	}
	if m.Impressions > 0 {
		perf.CTR = float64(m.Clicks) / float64(m.Impressions) * 100
		perf.CPM = spend / float64(m.Impressions) * 1000
	}
	if m.Clicks > 0 {
		perf.CPC = spend / float64(m.Clicks)
		perf.ConversionRate = float64(m.Conversions) / float64(m.Clicks) * 100
	}
	return perf
}

type CampaignStatusSummary struct {
	Status model.CampaignStatus `json:"status"`
	Count  int64                `json:"count"`
	Budget float64              `json:"budget"`
	Spend  float64              `json:"spend"`
}

func (s *CampaignService) Summary(tenantID uint) ([]CampaignStatusSummary, error) {
	var rows []CampaignStatusSummary
	err := s.db.Model(&model.AdCampaign{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(budget), 0) as budget, COALESCE(SUM(spend), 0) as spend").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := map[model.CampaignStatus]CampaignStatusSummary{}
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	summary := make([]CampaignStatusSummary, 0, len(model.CampaignStatuses))
	for _, status := range model.CampaignStatuses {
		row, ok := byStatus[status]
		if !ok {
			row = CampaignStatusSummary{Status: status}
		}
		summary = append(summary, row)
	}
	return summary, nil
}

type CreateCreativeInput struct {
	Name     string             `json:"name"`
	Type     model.CreativeType `json:"type"`
	Headline string             `json:"headline"`
	Body     string             `json:"body"`
	AssetID  *uint              `json:"asset_id"`
}

func (in *CreateCreativeInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if !in.Type.Valid() {
		return NewValidation("invalid creative type: %s", in.Type)
	}
	return nil
}

func (s *CampaignService) CreateCreative(tenantID, campaignID uint, in *CreateCreativeInput) (*model.AdCreative, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.Get(tenantID, campaignID); err != nil {
		return nil, err
	}

	if in.AssetID != nil {
		var asset model.Asset
		err := s.db.Where("tenant_id = ?", tenantID).First(&asset, *in.AssetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("asset")
		}
		if err != nil {
			return nil, err
		}
	}

	creative := model.AdCreative{
		TenantID:   tenantID,
		CampaignID: campaignID,
		Name:       in.Name,
		Type:       in.Type,
		Status:     model.CreativeStatusDraft,
		Headline:   in.Headline,
		Body:       in.Body,
		AssetID:    in.AssetID,
	}

	if err := s.db.Create(&creative).Error; err != nil {
		return nil, err
	}
	return &creative, nil
}

func (s *CampaignService) ListCreatives(tenantID, campaignID uint) ([]model.AdCreative, error) {
	if _, err := s.Get(tenantID, campaignID); err != nil {
		return nil, err
	}

	var creatives []model.AdCreative
	err := s.db.Where("tenant_id = ? AND campaign_id = ?", tenantID, campaignID).
		Order("created_at desc").
		Find(&creatives).Error
	return creatives, err
}

func (s *CampaignService) UpdateCreativeStatus(tenantID, id uint, status model.CreativeStatus) (*model.AdCreative, error) {
	if !status.Valid() {
		return nil, NewValidation("invalid creative status: %s", status)
	}

	var creative model.AdCreative
	err := s.db.Where("tenant_id = ?", tenantID).First(&creative, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("creative")
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&creative).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &creative, nil
}

func (s *CampaignService) DeleteCreative(tenantID, id uint) error {
	var creative model.AdCreative
	err := s.db.Where("tenant_id = ?", tenantID).First(&creative, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound("creative")
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&creative).Error
}

type CreateSplitTestInput struct {
	Name       string `json:"name"`
	CampaignID uint   `json:"campaign_id"`
	VariantAID uint   `json:"variant_a_id"`
	VariantBID uint   `json:"variant_b_id"`
}

func (in *CreateSplitTestInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if in.CampaignID == 0 {
		return NewValidation("campaign_id is required")
	}
	if in.VariantAID == 0 || in.VariantBID == 0 {
		return NewValidation("both variant creatives are required")
	}
	if in.VariantAID == in.VariantBID {
		return NewValidation("variants must be different creatives")
	}
	return nil
}

func (s *CampaignService) CreateSplitTest(tenantID uint, in *CreateSplitTestInput) (*model.SplitTest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.Get(tenantID, in.CampaignID); err != nil {
		return nil, err
	}

	for _, variantID := range []uint{in.VariantAID, in.VariantBID} {
		var creative model.AdCreative
		err := s.db.Where("tenant_id = ? AND campaign_id = ?", tenantID, in.CampaignID).
			First(&creative, variantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("creative")
		}
		if err != nil {
			return nil, err
		}
	}

	test := model.SplitTest{
		TenantID:   tenantID,
		CampaignID: in.CampaignID,
		Name:       in.Name,
		Status:     model.SplitTestStatusRunning,
		VariantAID: in.VariantAID,
		VariantBID: in.VariantBID,
	}

	if err := s.db.Create(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (s *CampaignService) ListSplitTests(tenantID uint) ([]model.SplitTest, error) {
	var tests []model.SplitTest
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&tests).Error
	return tests, err
}

// CompleteSplitTest picks the winner; it must be one of the variants.
func (s *CampaignService) CompleteSplitTest(tenantID, id, winnerID uint) (*model.SplitTest, error) {
	var test model.SplitTest
	err := s.db.Where("tenant_id = ?", tenantID).First(&test, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("split test")
	}
	if err != nil {
		return nil, err
	}

	if test.Status != model.SplitTestStatusRunning {
		return nil, NewConflict("split test is not running")
	}
	if winnerID != test.VariantAID && winnerID != test.VariantBID {
		return nil, NewValidation("winner must be one of the test variants")
	}

	updates := map[string]interface{}{
		"status":    model.SplitTestStatusCompleted,
		"winner_id": winnerID,
	}
	if err := s.db.Model(&test).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &test, nil
}
