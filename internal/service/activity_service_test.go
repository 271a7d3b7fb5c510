package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestActivityCreateAndComplete(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewActivityService(db)

	lead := seedLead(t, db, tenant.ID, "Busy Lead", model.LeadStatusNew)

	activity, err := svc.Create(tenant.ID, lead.ID, &CreateActivityInput{
		Type:    model.ActivityTypeCall,
		Subject: "Intro call",
	})
	require.NoError(t, err)
	assert.Nil(t, activity.CompletedAt)

	completed, err := svc.Complete(tenant.ID, activity.ID)
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)

	listed, err := svc.ListForLead(tenant.ID, lead.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestActivityCreateValidation(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewActivityService(db)

	lead := seedLead(t, db, tenant.ID, "Busy Lead", model.LeadStatusNew)

	var validation *ValidationError

	_, err := svc.Create(tenant.ID, lead.ID, &CreateActivityInput{Type: "FAX", Subject: "x"})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(tenant.ID, lead.ID, &CreateActivityInput{Type: model.ActivityTypeNote})
	assert.ErrorAs(t, err, &validation)
}

func TestActivityCreateRequiresOwnLead(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewActivityService(db)

	lead := seedLead(t, db, tenantB.ID, "Foreign Lead", model.LeadStatusNew)

	_, err := svc.Create(tenantA.ID, lead.ID, &CreateActivityInput{
		Type:    model.ActivityTypeEmail,
		Subject: "Should fail",
	})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
