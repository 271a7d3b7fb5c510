package service

import (
	"sync"
	"time"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/config"

	"gorm.io/gorm"
)

// CRMService composes lead and deal data into the dashboard, pipeline,
// forecast and windowed analytics views.
type CRMService struct {
	db       *gorm.DB
	leads    *LeadService
	deals    *DealService
	forecast config.ForecastConfig
}

func NewCRMService(db *gorm.DB, leads *LeadService, deals *DealService, forecast config.ForecastConfig) *CRMService {
	return &CRMService{db: db, leads: leads, deals: deals, forecast: forecast}
}

type DashboardStats struct {
	TotalLeads     int64            `json:"total_leads"`
	LeadsByStatus  map[string]int64 `json:"leads_by_status"`
	TotalClients   int64            `json:"total_clients"`
	OpenDeals      int64            `json:"open_deals"`
	OpenDealValue  float64          `json:"open_deal_value"`
	ConversionRate float64          `json:"conversion_rate"`
}

// Dashboard fans the independent counts out on goroutines and joins
// before shaping the response. Each goroutine gets its own session.
func (s *CRMService) Dashboard(tenantID uint) (*DashboardStats, error) {
	stats := &DashboardStats{LeadsByStatus: map[string]int64{}}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		breakdown []statusCount
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		if err := s.db.Session(&gorm.Session{}).Model(&model.Lead{}).
			Where("tenant_id = ?", tenantID).
			Count(&stats.TotalLeads).Error; err != nil {
			fail(err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := s.db.Session(&gorm.Session{}).Model(&model.Lead{}).
			Select("status, COUNT(*) as count").
			Where("tenant_id = ?", tenantID).
			Group("status").
			Scan(&breakdown).Error; err != nil {
			fail(err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := s.db.Session(&gorm.Session{}).Model(&model.Client{}).
			Where("tenant_id = ?", tenantID).
			Count(&stats.TotalClients).Error; err != nil {
			fail(err)
		}
	}()

	go func() {
		defer wg.Done()
		count, value, err := s.deals.OpenSummary(tenantID)
		if err != nil {
			fail(err)
			return
		}
		stats.OpenDeals = count
		stats.OpenDealValue = value
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	for _, row := range breakdown {
		stats.LeadsByStatus[row.Status] = row.Count
	}

	stats.ConversionRate = conversionRate(stats.LeadsByStatus, stats.TotalLeads)

	return stats, nil
}

type statusCount struct {
	Status string
	Count  int64
}

// conversionRate is qualified-or-better leads over the total, as a
// percentage. Zero when there are no leads.
func conversionRate(byStatus map[string]int64, total int64) float64 {
	if total == 0 {
		return 0
	}
	converted := byStatus[string(model.LeadStatusQualified)] +
		byStatus[string(model.LeadStatusClosedWon)]
	return float64(converted) / float64(total) * 100
}

// PipelineBucketNames is the fixed, ordered bucket set of the lead
// pipeline view. Closed and disqualified leads share the last bucket.
var PipelineBucketNames = []string{
	"new", "contacted", "qualified", "proposal", "negotiation", "closed",
}

func pipelineBucketFor(status model.LeadStatus) string {
	switch status {
	case model.LeadStatusNew:
		return "new"
	case model.LeadStatusContacted:
		return "contacted"
	case model.LeadStatusQualified:
		return "qualified"
	case model.LeadStatusProposalSent:
		return "proposal"
	case model.LeadStatusNegotiation:
		return "negotiation"
	default:
		return "closed"
	}
}

// PartitionLeads groups leads into the fixed bucket set, preserving the
// relative order of the input. Every lead lands in exactly one bucket.
func PartitionLeads(leads []model.Lead) map[string][]model.Lead {
	buckets := make(map[string][]model.Lead, len(PipelineBucketNames))
	for _, name := range PipelineBucketNames {
		buckets[name] = []model.Lead{}
	}
	for _, lead := range leads {
		name := pipelineBucketFor(lead.Status)
		buckets[name] = append(buckets[name], lead)
	}
	return buckets
}

type PipelineView struct {
	Leads       []model.Lead            `json:"leads"`
	Buckets     map[string][]model.Lead `json:"buckets"`
	BucketOrder []string                `json:"bucket_order"`
	DealStages  []DealStageBucket       `json:"deal_stages"`
}

type DealStageBucket struct {
	Stage model.DealStage `json:"stage"`
	Count int             `json:"count"`
	Value float64         `json:"value"`
}

// Pipeline loads the full tenant lead set once and partitions it in
// memory; no pagination applies to this view.
func (s *CRMService) Pipeline(tenantID uint) (*PipelineView, error) {
	leads, err := s.leads.ListAll(tenantID)
	if err != nil {
		return nil, err
	}

	deals, err := s.deals.ListAll(tenantID)
	if err != nil {
		return nil, err
	}

	stageBuckets := make([]DealStageBucket, 0, len(model.DealStages))
	for _, stage := range model.DealStages {
		bucket := DealStageBucket{Stage: stage}
		for _, deal := range deals {
			if deal.Stage == stage {
				bucket.Count++
				bucket.Value += deal.Value
			}
		}
		stageBuckets = append(stageBuckets, bucket)
	}

	return &PipelineView{
		Leads:       leads,
		Buckets:     PartitionLeads(leads),
		BucketOrder: PipelineBucketNames,
		DealStages:  stageBuckets,
	}, nil
}

type Forecast struct {
	Months            int     `json:"months"`
	LeadCount         int64   `json:"lead_count"`
	ConversionRate    float64 `json:"conversion_rate"`
	AvgDealValue      float64 `json:"avg_deal_value"`
	ProjectedRevenue  float64 `json:"projected_revenue"`
	MonthlyProjection float64 `json:"monthly_projection"`
}

// ForecastRevenue projects revenue from the trailing window's lead
// count: leads x conversion rate x average deal value, spread evenly
// across the window. A placeholder heuristic, not a statistical model.
func (s *CRMService) ForecastRevenue(tenantID uint, months int) (*Forecast, error) {
	if months <= 0 {
		months = 3
	}

	cutoff := time.Now().AddDate(0, -months, 0)
	leadCount, err := s.leads.CountCreatedSince(tenantID, cutoff)
	if err != nil {
		return nil, err
	}

	return ComputeForecast(leadCount, months, s.forecast), nil
}

// ComputeForecast applies the projection formula to a lead count.
func ComputeForecast(leadCount int64, months int, cfg config.ForecastConfig) *Forecast {
	projected := float64(leadCount) * cfg.ConversionRate * cfg.AvgDealValue
	return &Forecast{
		Months:            months,
		LeadCount:         leadCount,
		ConversionRate:    cfg.ConversionRate,
		AvgDealValue:      cfg.AvgDealValue,
		ProjectedRevenue:  projected,
		MonthlyProjection: projected / float64(months),
	}
}

// periodDays maps the analytics periods to fixed day offsets.
var periodDays = map[string]int{
	"week":    7,
	"month":   30,
	"quarter": 90,
	"year":    365,
}

type PeriodAnalytics struct {
	Period         string           `json:"period"`
	Since          time.Time        `json:"since"`
	NewLeads       int64            `json:"new_leads"`
	LeadsByStatus  map[string]int64 `json:"leads_by_status"`
	NewClients     int64            `json:"new_clients"`
	DealsWon       int64            `json:"deals_won"`
	RevenueWon     float64          `json:"revenue_won"`
	ConversionRate float64          `json:"conversion_rate"`
}

// Analytics recomputes the dashboard shape over a fixed trailing
// window. Every call is a full scan; nothing is cached.
func (s *CRMService) Analytics(tenantID uint, period string) (*PeriodAnalytics, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, NewValidation("invalid period: %s (want week, month, quarter or year)", period)
	}

	since := time.Now().AddDate(0, 0, -days)
	result := &PeriodAnalytics{
		Period:        period,
		Since:         since,
		LeadsByStatus: map[string]int64{},
	}

	if err := s.db.Model(&model.Lead{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Count(&result.NewLeads).Error; err != nil {
		return nil, err
	}

	var breakdown []statusCount
	if err := s.db.Model(&model.Lead{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Group("status").
		Scan(&breakdown).Error; err != nil {
		return nil, err
	}
	for _, row := range breakdown {
		result.LeadsByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&model.Client{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Count(&result.NewClients).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Deal{}).
		Where("tenant_id = ? AND stage = ? AND actual_close_at >= ?",
			tenantID, model.DealStageClosedWon, since).
		Count(&result.DealsWon).Error; err != nil {
		return nil, err
	}

	var revenue struct{ Total float64 }
	if err := s.db.Model(&model.Deal{}).
		Select("COALESCE(SUM(value), 0) as total").
		Where("tenant_id = ? AND stage = ? AND actual_close_at >= ?",
			tenantID, model.DealStageClosedWon, since).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	result.RevenueWon = revenue.Total

	result.ConversionRate = conversionRate(result.LeadsByStatus, result.NewLeads)

	return result, nil
}
