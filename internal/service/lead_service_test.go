package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestLeadCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	lead, err := svc.Create(tenant.ID, &CreateLeadInput{
		Name:   "Jordan Reyes",
		Email:  "jordan@example.com",
		Source: model.LeadSourceWebsite,
	})
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusNew, lead.Status)
	assert.Equal(t, tenant.ID, lead.TenantID)

	got, err := svc.Get(tenant.ID, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", got.Name)
}

func TestLeadCreateRequiresName(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	_, err := svc.Create(tenant.ID, &CreateLeadInput{Email: "noname@example.com"})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLeadGetIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewLeadService(db, nil)

	lead := seedLead(t, db, tenantA.ID, "Hidden Lead", model.LeadStatusNew)

	_, err := svc.Get(tenantB.ID, lead.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLeadStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	lead := seedLead(t, db, tenant.ID, "Pipeline Lead", model.LeadStatusNew)

	updated, err := svc.UpdateStatus(tenant.ID, lead.ID, model.LeadStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusContacted, updated.Status)

	// NEW -> QUALIFIED skips CONTACTED and must be rejected.
	other := seedLead(t, db, tenant.ID, "Impatient Lead", model.LeadStatusNew)
	_, err = svc.UpdateStatus(tenant.ID, other.ID, model.LeadStatusQualified)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	// Same-status update is a no-op, not an error.
	same, err := svc.UpdateStatus(tenant.ID, updated.ID, model.LeadStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusContacted, same.Status)
}

func TestLeadTerminalStatusHasNoMoves(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	lead := seedLead(t, db, tenant.ID, "Won Lead", model.LeadStatusClosedWon)

	_, err := svc.UpdateStatus(tenant.ID, lead.ID, model.LeadStatusNew)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLeadBatchUpdateStatusSkipsForeignLeads(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewLeadService(db, nil)

	mine := seedLead(t, db, tenantA.ID, "Mine", model.LeadStatusNew)
	theirs := seedLead(t, db, tenantB.ID, "Theirs", model.LeadStatusNew)

	updated, err := svc.BatchUpdateStatus(tenantA.ID, &BatchStatusInput{
		LeadIDs: []uint{mine.ID, theirs.ID},
		Status:  model.LeadStatusContacted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var untouched model.Lead
	require.NoError(t, db.First(&untouched, theirs.ID).Error)
	assert.Equal(t, model.LeadStatusNew, untouched.Status)
}

func TestLeadBatchUpdateStatusValidation(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	var validation *ValidationError

	_, err := svc.BatchUpdateStatus(tenant.ID, &BatchStatusInput{Status: model.LeadStatusContacted})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.BatchUpdateStatus(tenant.ID, &BatchStatusInput{LeadIDs: []uint{1}, Status: "BOGUS"})
	assert.ErrorAs(t, err, &validation)
}

func TestLeadConvertCreatesClientAndDeal(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	lead := seedLead(t, db, tenant.ID, "Converting Lead", model.LeadStatusNegotiation)

	result, err := svc.Convert(tenant.ID, lead.ID, &ConvertLeadInput{
		CreateDeal: true,
		DealTitle:  "Launch retainer",
		DealValue:  12000,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Client)
	require.NotNil(t, result.Deal)
	assert.Equal(t, "Converting Lead", result.Client.Name)
	assert.Equal(t, 12000.0, result.Deal.Value)
	assert.Equal(t, model.DealStageProspect, result.Deal.Stage)

	var stored model.Lead
	require.NoError(t, db.First(&stored, lead.ID).Error)
	assert.Equal(t, model.LeadStatusClosedWon, stored.Status)
	require.NotNil(t, stored.ClientID)
	assert.Equal(t, result.Client.ID, *stored.ClientID)

	// A second conversion must conflict.
	_, err = svc.Convert(tenant.ID, lead.ID, &ConvertLeadInput{})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestLeadListFilters(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewLeadService(db, nil)

	seedLead(t, db, tenant.ID, "Alpha", model.LeadStatusNew)
	seedLead(t, db, tenant.ID, "Beta", model.LeadStatusContacted)
	seedLead(t, db, tenant.ID, "Gamma", model.LeadStatusContacted)

	leads, total, err := svc.List(tenant.ID, ListLeadsFilter{
		Status: model.LeadStatusContacted,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, leads, 2)

	_, _, err = svc.List(tenant.ID, ListLeadsFilter{Status: "NOPE", Limit: 10})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}
