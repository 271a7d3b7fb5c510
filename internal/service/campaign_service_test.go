package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestCampaignPerformanceZeroGuards(t *testing.T) {
	perf := ComputePerformance(1, model.CampaignMetrics{}, 500)
	assert.Equal(t, 0.0, perf.CTR)
	assert.Equal(t, 0.0, perf.CPC)
	assert.Equal(t, 0.0, perf.CPM)
	assert.Equal(t, 0.0, perf.ConversionRate)
}

func TestCampaignPerformanceRates(t *testing.T) {
	metrics := model.CampaignMetrics{Impressions: 10000, Clicks: 250, Conversions: 25}
	perf := ComputePerformance(1, metrics, 500)

	assert.Equal(t, 2.5, perf.CTR)
	assert.Equal(t, 2.0, perf.CPC)
	assert.Equal(t, 50.0, perf.CPM)
	assert.Equal(t, 10.0, perf.ConversionRate)
}

func TestCampaignMetricsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewCampaignService(db)

	campaign, err := svc.Create(tenant.ID, &CreateCampaignInput{
		Name:     "Spring Launch",
		Platform: model.PlatformGoogle,
		Budget:   2000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusDraft, campaign.Status)

	_, err = svc.UpdateMetrics(tenant.ID, campaign.ID, model.CampaignMetrics{
		Impressions: 1000, Clicks: 50, Conversions: 5,
	})
	require.NoError(t, err)

	perf, err := svc.Performance(tenant.ID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), perf.Impressions)
	assert.Equal(t, 5.0, perf.CTR)

	_, err = svc.UpdateMetrics(tenant.ID, campaign.ID, model.CampaignMetrics{Clicks: -1})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCampaignSummaryZeroFillsStatuses(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewCampaignService(db)

	_, err := svc.Create(tenant.ID, &CreateCampaignInput{Name: "Only Draft", Budget: 100})
	require.NoError(t, err)

	summary, err := svc.Summary(tenant.ID)
	require.NoError(t, err)
	require.Len(t, summary, len(model.CampaignStatuses))

	assert.Equal(t, model.CampaignStatusDraft, summary[0].Status)
	assert.Equal(t, int64(1), summary[0].Count)
	assert.Equal(t, 100.0, summary[0].Budget)

	for _, row := range summary[1:] {
		assert.Equal(t, int64(0), row.Count)
	}
}

func TestSplitTestLifecycle(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewCampaignService(db)

	campaign, err := svc.Create(tenant.ID, &CreateCampaignInput{Name: "AB Campaign"})
	require.NoError(t, err)

	variantA, err := svc.CreateCreative(tenant.ID, campaign.ID, &CreateCreativeInput{
		Name: "Variant A", Type: model.CreativeTypeImage, Headline: "Headline A",
	})
	require.NoError(t, err)
	variantB, err := svc.CreateCreative(tenant.ID, campaign.ID, &CreateCreativeInput{
		Name: "Variant B", Type: model.CreativeTypeImage, Headline: "Headline B",
	})
	require.NoError(t, err)

	var validation *ValidationError

	// Same creative twice is rejected.
	_, err = svc.CreateSplitTest(tenant.ID, &CreateSplitTestInput{
		Name: "Bad", CampaignID: campaign.ID, VariantAID: variantA.ID, VariantBID: variantA.ID,
	})
	assert.ErrorAs(t, err, &validation)

	test, err := svc.CreateSplitTest(tenant.ID, &CreateSplitTestInput{
		Name: "Headline test", CampaignID: campaign.ID, VariantAID: variantA.ID, VariantBID: variantB.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SplitTestStatusRunning, test.Status)

	// Winner must be one of the variants.
	_, err = svc.CompleteSplitTest(tenant.ID, test.ID, 9999)
	assert.ErrorAs(t, err, &validation)

	completed, err := svc.CompleteSplitTest(tenant.ID, test.ID, variantB.ID)
	require.NoError(t, err)

	var stored model.SplitTest
	require.NoError(t, db.First(&stored, completed.ID).Error)
	assert.Equal(t, model.SplitTestStatusCompleted, stored.Status)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, variantB.ID, *stored.WinnerID)

	// Completed tests cannot be completed twice.
	_, err = svc.CompleteSplitTest(tenant.ID, test.ID, variantA.ID)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreativeRequiresOwnCampaign(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewCampaignService(db)

	campaign, err := svc.Create(tenantB.ID, &CreateCampaignInput{Name: "Foreign"})
	require.NoError(t, err)

	_, err = svc.CreateCreative(tenantA.ID, campaign.ID, &CreateCreativeInput{
		Name: "Sneaky", Type: model.CreativeTypeText,
	})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
