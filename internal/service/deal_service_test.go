package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestDealCreateValidation(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewDealService(db)

	var validation *ValidationError

	_, err := svc.Create(tenant.ID, &CreateDealInput{Value: 100})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(tenant.ID, &CreateDealInput{Title: "Bad", Value: -1})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(tenant.ID, &CreateDealInput{Title: "Bad", Probability: 150})
	assert.ErrorAs(t, err, &validation)

	deal, err := svc.Create(tenant.ID, &CreateDealInput{Title: "Retainer", Value: 9000, Probability: 40})
	require.NoError(t, err)
	assert.Equal(t, model.DealStageProspect, deal.Stage)
}

func TestDealCreateRejectsForeignLead(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewDealService(db)

	lead := seedLead(t, db, tenantB.ID, "Foreign Lead", model.LeadStatusNew)

	_, err := svc.Create(tenantA.ID, &CreateDealInput{Title: "Poached", LeadID: &lead.ID})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDealStageTransitions(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewDealService(db)

	deal, err := svc.Create(tenant.ID, &CreateDealInput{Title: "Retainer", Value: 9000})
	require.NoError(t, err)

	moved, err := svc.UpdateStage(tenant.ID, deal.ID, model.DealStageQualification)
	require.NoError(t, err)
	assert.Equal(t, model.DealStageQualification, moved.Stage)

	var validation *ValidationError

	// Skipping PROPOSAL is not allowed.
	_, err = svc.UpdateStage(tenant.ID, deal.ID, model.DealStageNegotiation)
	assert.ErrorAs(t, err, &validation)

	// Closing stages go through Close.
	_, err = svc.UpdateStage(tenant.ID, deal.ID, model.DealStageClosedWon)
	assert.ErrorAs(t, err, &validation)
}

func TestDealClose(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewDealService(db)

	deal, err := svc.Create(tenant.ID, &CreateDealInput{Title: "Retainer", Value: 9000})
	require.NoError(t, err)

	_, err = svc.Close(tenant.ID, deal.ID, &CloseDealInput{Outcome: "maybe"})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	closed, err := svc.Close(tenant.ID, deal.ID, &CloseDealInput{Outcome: "won"})
	require.NoError(t, err)

	var stored model.Deal
	require.NoError(t, db.First(&stored, closed.ID).Error)
	assert.Equal(t, model.DealStageClosedWon, stored.Stage)
	assert.Equal(t, 100, stored.Probability)
	assert.NotNil(t, stored.ActualCloseAt)

	_, err = svc.Close(tenant.ID, deal.ID, &CloseDealInput{Outcome: "lost"})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestDealOpenSummaryExcludesClosed(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewDealService(db)

	_, err := svc.Create(tenant.ID, &CreateDealInput{Title: "Open 1", Value: 1000})
	require.NoError(t, err)
	_, err = svc.Create(tenant.ID, &CreateDealInput{Title: "Open 2", Value: 2500})
	require.NoError(t, err)

	closing, err := svc.Create(tenant.ID, &CreateDealInput{Title: "Closing", Value: 7000})
	require.NoError(t, err)
	_, err = svc.Close(tenant.ID, closing.ID, &CloseDealInput{Outcome: "lost"})
	require.NoError(t, err)

	count, value, err := svc.OpenSummary(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 3500.0, value)
}
