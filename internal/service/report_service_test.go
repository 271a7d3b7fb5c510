package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/config"
)

func buildReportService(t *testing.T) (*ReportService, *model.Tenant) {
	t.Helper()

	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")

	leadSvc := NewLeadService(db, nil)
	dealSvc := NewDealService(db)
	crm := NewCRMService(db, leadSvc, dealSvc, config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000})

	seedLead(t, db, tenant.ID, "R1", model.LeadStatusNew)
	seedLead(t, db, tenant.ID, "R2", model.LeadStatusNew)
	seedLead(t, db, tenant.ID, "R3", model.LeadStatusContacted)
	seedLead(t, db, tenant.ID, "R4", model.LeadStatusClosedWon)

	return NewReportService(leadSvc, crm), tenant
}

func TestGenerateRejectsUnknownReportType(t *testing.T) {
	svc, tenant := buildReportService(t)

	_, err := svc.Generate(tenant.ID, "quarterly-synergy", ReportOptions{})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLeadsReportBreakdowns(t *testing.T) {
	svc, tenant := buildReportService(t)

	report, err := svc.Generate(tenant.ID, "leads", ReportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "leads", report.Type)

	data, ok := report.Data.(*LeadsReport)
	require.True(t, ok)
	assert.Equal(t, int64(4), data.TotalLeads)
	assert.Equal(t, int64(2), data.ByStatus[string(model.LeadStatusNew)])
	assert.Equal(t, int64(4), data.BySource[string(model.LeadSourceOther)])
	assert.Equal(t, 25.0, data.ConversionRate)
}

func TestPipelineReportConversions(t *testing.T) {
	svc, tenant := buildReportService(t)

	report, err := svc.Generate(tenant.ID, "pipeline", ReportOptions{})
	require.NoError(t, err)

	data, ok := report.Data.(*PipelineReport)
	require.True(t, ok)
	assert.Equal(t, int64(2), data.Buckets["new"])
	assert.Equal(t, int64(1), data.Buckets["contacted"])

	require.Len(t, data.Conversions, len(PipelineBucketNames)-1)
	assert.Equal(t, "new", data.Conversions[0].From)
	assert.Equal(t, "contacted", data.Conversions[0].To)
	assert.Equal(t, 50.0, data.Conversions[0].Rate)

	// Empty source bucket yields a zero rate, not a division error.
	assert.Equal(t, 0.0, data.Conversions[2].Rate)
}

func TestForecastReportShape(t *testing.T) {
	svc, tenant := buildReportService(t)

	report, err := svc.Generate(tenant.ID, "forecast", ReportOptions{Months: 2})
	require.NoError(t, err)

	data, ok := report.Data.(*ForecastReport)
	require.True(t, ok)
	assert.Equal(t, 2, data.WindowMonths)
	assert.Equal(t, int64(4), data.LeadVolume)
	assert.Equal(t, 4*0.15*5000, data.ProjectedRevenue)
	assert.Equal(t, data.ProjectedRevenue/2, data.MonthlyRevenue)
	assert.Equal(t, 0.15, data.Assumptions.ConversionRate)
	assert.Equal(t, 5000.0, data.Assumptions.AvgDealValue)
}
