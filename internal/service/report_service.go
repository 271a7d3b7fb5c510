package service

import "time"

// ReportService reshapes CRM data into report payloads. Reports are
// never persisted; generation is pure response shaping.
type ReportService struct {
	leads *LeadService
	crm   *CRMService
}

func NewReportService(leads *LeadService, crm *CRMService) *ReportService {
	return &ReportService{leads: leads, crm: crm}
}

type ReportOptions struct {
	Months int // forecast window, default 3
}

type Report struct {
	Type        string      `json:"type"`
	GeneratedAt time.Time   `json:"generated_at"`
	Data        interface{} `json:"data"`
}

// Generate dispatches on type. Unknown types are a hard error.
func (s *ReportService) Generate(tenantID uint, reportType string, opts ReportOptions) (*Report, error) {
	var (
		data interface{}
		err  error
	)

	switch reportType {
	case "leads":
		data, err = s.buildLeadsReport(tenantID)
	case "pipeline":
		data, err = s.buildPipelineReport(tenantID)
	case "forecast":
		data, err = s.buildForecastReport(tenantID, opts)
	default:
		return nil, NewValidation("unknown report type: %s", reportType)
	}
	if err != nil {
		return nil, err
	}

	return &Report{
		Type:        reportType,
		GeneratedAt: time.Now(),
		Data:        data,
	}, nil
}

type LeadsReport struct {
	TotalLeads     int64            `json:"total_leads"`
	ByStatus       map[string]int64 `json:"by_status"`
	BySource       map[string]int64 `json:"by_source"`
	ConversionRate float64          `json:"conversion_rate"`
}

func (s *ReportService) buildLeadsReport(tenantID uint) (*LeadsReport, error) {
	leads, err := s.leads.ListAll(tenantID)
	if err != nil {
		return nil, err
	}

	report := &LeadsReport{
		TotalLeads: int64(len(leads)),
		ByStatus:   map[string]int64{},
		BySource:   map[string]int64{},
	}
	for _, lead := range leads {
		report.ByStatus[string(lead.Status)]++
		report.BySource[string(lead.Source)]++
	}
	report.ConversionRate = conversionRate(report.ByStatus, report.TotalLeads)

	return report, nil
}

type PipelineReport struct {
	Buckets     map[string]int64  `json:"buckets"`
	BucketOrder []string          `json:"bucket_order"`
	Conversions []StageConversion `json:"conversions"`
}

// StageConversion is the ratio of leads in one bucket to the previous
// one, read as stage-to-stage carryover.
type StageConversion struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

func (s *ReportService) buildPipelineReport(tenantID uint) (*PipelineReport, error) {
	leads, err := s.leads.ListAll(tenantID)
	if err != nil {
		return nil, err
	}

	buckets := PartitionLeads(leads)
	report := &PipelineReport{
		Buckets:     map[string]int64{},
		BucketOrder: PipelineBucketNames,
	}
	for name, bucket := range buckets {
		report.Buckets[name] = int64(len(bucket))
	}

	for i := 1; i < len(PipelineBucketNames); i++ {
		from := PipelineBucketNames[i-1]
		to := PipelineBucketNames[i]
		conv := StageConversion{From: from, To: to}
		if report.Buckets[from] > 0 {
			conv.Rate = float64(report.Buckets[to]) / float64(report.Buckets[from]) * 100
		}
		report.Conversions = append(report.Conversions, conv)
	}

	return report, nil
}

type ForecastReport struct {
	WindowMonths     int     `json:"window_months"`
	LeadVolume       int64   `json:"lead_volume"`
	ProjectedRevenue float64 `json:"projected_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	Assumptions      struct {
		ConversionRate float64 `json:"conversion_rate"`
		AvgDealValue   float64 `json:"avg_deal_value"`
	} `json:"assumptions"`
}

func (s *ReportService) buildForecastReport(tenantID uint, opts ReportOptions) (*ForecastReport, error) {
	months := opts.Months
	if months <= 0 {
		months = 3
	}

	forecast, err := s.crm.ForecastRevenue(tenantID, months)
	if err != nil {
		return nil, err
	}

	report := &ForecastReport{
		WindowMonths:     forecast.Months,
		LeadVolume:       forecast.LeadCount,
		ProjectedRevenue: forecast.ProjectedRevenue,
		MonthlyRevenue:   forecast.MonthlyProjection,
	}
	report.Assumptions.ConversionRate = forecast.ConversionRate
	report.Assumptions.AvgDealValue = forecast.AvgDealValue

	return report, nil
}
