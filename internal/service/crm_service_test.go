package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/config"
)

func TestPartitionLeadsCoversEveryLead(t *testing.T) {
	leads := []model.Lead{
		{Name: "a", Status: model.LeadStatusNew},
		{Name: "b", Status: model.LeadStatusContacted},
		{Name: "c", Status: model.LeadStatusQualified},
		{Name: "d", Status: model.LeadStatusProposalSent},
		{Name: "e", Status: model.LeadStatusNegotiation},
		{Name: "f", Status: model.LeadStatusClosedWon},
		{Name: "g", Status: model.LeadStatusClosedLost},
		{Name: "h", Status: model.LeadStatusDisqualified},
		{Name: "i", Status: model.LeadStatusNew},
	}

	buckets := PartitionLeads(leads)

	// Every bucket exists even when empty.
	assert.Len(t, buckets, len(PipelineBucketNames))
	for _, name := range PipelineBucketNames {
		assert.Contains(t, buckets, name)
	}

	total := 0
	for _, bucket := range buckets {
		total += len(bucket)
	}
	assert.Equal(t, len(leads), total)

	assert.Len(t, buckets["new"], 2)
	assert.Len(t, buckets["closed"], 3)

	// Relative input order survives within a bucket.
	assert.Equal(t, "a", buckets["new"][0].Name)
	assert.Equal(t, "i", buckets["new"][1].Name)
}

func TestPartitionLeadsEmptyInput(t *testing.T) {
	buckets := PartitionLeads(nil)
	assert.Len(t, buckets, len(PipelineBucketNames))
	for _, name := range PipelineBucketNames {
		assert.Empty(t, buckets[name])
	}
}

func TestComputeForecastFormula(t *testing.T) {
	cfg := config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000}

	forecast := ComputeForecast(40, 4, cfg)
	assert.Equal(t, int64(40), forecast.LeadCount)
	assert.Equal(t, 40*0.15*5000, forecast.ProjectedRevenue)
	assert.Equal(t, forecast.ProjectedRevenue/4, forecast.MonthlyProjection)

	zero := ComputeForecast(0, 3, cfg)
	assert.Equal(t, 0.0, zero.ProjectedRevenue)
	assert.Equal(t, 0.0, zero.MonthlyProjection)
}

func TestConversionRate(t *testing.T) {
	byStatus := map[string]int64{
		string(model.LeadStatusNew):       5,
		string(model.LeadStatusQualified): 2,
		string(model.LeadStatusClosedWon): 1,
		string(model.LeadStatusContacted): 2,
	}
	assert.Equal(t, 30.0, conversionRate(byStatus, 10))
	assert.Equal(t, 0.0, conversionRate(map[string]int64{}, 0))
}

func TestDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	other := seedTenant(t, db, "Other Agency", "other-agency")

	leadSvc := NewLeadService(db, nil)
	dealSvc := NewDealService(db)
	crm := NewCRMService(db, leadSvc, dealSvc, config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000})

	seedLead(t, db, tenant.ID, "L1", model.LeadStatusNew)
	seedLead(t, db, tenant.ID, "L2", model.LeadStatusQualified)
	seedLead(t, db, other.ID, "Foreign", model.LeadStatusNew)

	_, err := dealSvc.Create(tenant.ID, &CreateDealInput{Title: "Open deal", Value: 4000})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Client{TenantID: tenant.ID, Name: "Client A", Status: model.ClientStatusActive}).Error)

	stats, err := crm.Dashboard(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(1), stats.LeadsByStatus[string(model.LeadStatusQualified)])
	assert.Equal(t, int64(1), stats.TotalClients)
	assert.Equal(t, int64(1), stats.OpenDeals)
	assert.Equal(t, 4000.0, stats.OpenDealValue)
	assert.Equal(t, 50.0, stats.ConversionRate)
}

func TestPipelineView(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")

	leadSvc := NewLeadService(db, nil)
	dealSvc := NewDealService(db)
	crm := NewCRMService(db, leadSvc, dealSvc, config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000})

	seedLead(t, db, tenant.ID, "P1", model.LeadStatusNew)
	seedLead(t, db, tenant.ID, "P2", model.LeadStatusNegotiation)

	_, err := dealSvc.Create(tenant.ID, &CreateDealInput{Title: "D1", Value: 1500})
	require.NoError(t, err)

	view, err := crm.Pipeline(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, view.Leads, 2)
	assert.Equal(t, PipelineBucketNames, view.BucketOrder)
	assert.Len(t, view.Buckets["new"], 1)
	assert.Len(t, view.Buckets["negotiation"], 1)

	require.Len(t, view.DealStages, len(model.DealStages))
	assert.Equal(t, model.DealStageProspect, view.DealStages[0].Stage)
	assert.Equal(t, 1, view.DealStages[0].Count)
	assert.Equal(t, 1500.0, view.DealStages[0].Value)
}

func TestAnalyticsRejectsUnknownPeriod(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")

	leadSvc := NewLeadService(db, nil)
	dealSvc := NewDealService(db)
	crm := NewCRMService(db, leadSvc, dealSvc, config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000})

	_, err := crm.Analytics(tenant.ID, "fortnight")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	for _, period := range []string{"week", "month", "quarter", "year"} {
		result, err := crm.Analytics(tenant.ID, period)
		require.NoError(t, err)
		assert.Equal(t, period, result.Period)
	}
}

func TestForecastRevenueCountsRecentLeads(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")

	leadSvc := NewLeadService(db, nil)
	dealSvc := NewDealService(db)
	crm := NewCRMService(db, leadSvc, dealSvc, config.ForecastConfig{ConversionRate: 0.15, AvgDealValue: 5000})

	seedLead(t, db, tenant.ID, "Recent", model.LeadStatusNew)

	forecast, err := crm.ForecastRevenue(tenant.ID, 0) // defaults to 3
	require.NoError(t, err)
	assert.Equal(t, 3, forecast.Months)
	assert.Equal(t, int64(1), forecast.LeadCount)
	assert.Equal(t, 1*0.15*5000, forecast.ProjectedRevenue)
}
