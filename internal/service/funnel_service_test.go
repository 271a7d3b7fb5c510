package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestFunnelCreateValidation(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewFunnelService(db)

	var validation *ValidationError

	_, err := svc.Create(tenant.ID, &CreateFunnelInput{Name: "No stages"})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(tenant.ID, &CreateFunnelInput{
		Name:   "Nameless stage",
		Stages: []model.FunnelStage{{Visitors: 10}},
	})
	assert.ErrorAs(t, err, &validation)
}

func TestFunnelStatsRates(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewFunnelService(db)

	funnel, err := svc.Create(tenant.ID, &CreateFunnelInput{
		Name: "Webinar funnel",
		Stages: []model.FunnelStage{
			{Name: "Landing", Visitors: 1000, Conversions: 200},
			{Name: "Signup", Visitors: 200, Conversions: 50},
			{Name: "Attended", Visitors: 0, Conversions: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.FunnelStatusDraft, funnel.Status)

	stats, err := svc.Stats(tenant.ID, funnel.ID)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, 20.0, stats[0].ConversionRate)
	assert.Equal(t, 0.0, stats[0].DropOffRate) // first stage has no predecessor

	assert.Equal(t, 25.0, stats[1].ConversionRate)
	assert.Equal(t, 80.0, stats[1].DropOffRate)

	// Zero visitors: every rate stays zero instead of dividing.
	assert.Equal(t, 0.0, stats[2].ConversionRate)
	assert.Equal(t, 100.0, stats[2].DropOffRate)
}

func TestFunnelStatsIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewFunnelService(db)

	funnel, err := svc.Create(tenantA.ID, &CreateFunnelInput{
		Name:   "Private funnel",
		Stages: []model.FunnelStage{{Name: "Only stage"}},
	})
	require.NoError(t, err)

	_, err = svc.Stats(tenantB.ID, funnel.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
