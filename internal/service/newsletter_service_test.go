package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeValidatesEmail(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewNewsletterService(db)

	var validation *ValidationError

	_, err := svc.Subscribe(tenant.ID, &SubscribeInput{})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Subscribe(tenant.ID, &SubscribeInput{Email: "not-an-email"})
	assert.ErrorAs(t, err, &validation)
}

func TestSubscribeRejectsDuplicatePerTenant(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewNewsletterService(db)

	_, err := svc.Subscribe(tenantA.ID, &SubscribeInput{Email: "fan@example.com", Name: "Fan"})
	require.NoError(t, err)

	_, err = svc.Subscribe(tenantA.ID, &SubscribeInput{Email: "fan@example.com"})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)

	// The same address is fine under another tenant.
	_, err = svc.Subscribe(tenantB.ID, &SubscribeInput{Email: "fan@example.com"})
	assert.NoError(t, err)
}

func TestSubscriberListIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewNewsletterService(db)

	_, err := svc.Subscribe(tenantA.ID, &SubscribeInput{Email: "one@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(tenantA.ID, &SubscribeInput{Email: "two@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(tenantB.ID, &SubscribeInput{Email: "three@example.com"})
	require.NoError(t, err)

	subscribers, total, err := svc.List(tenantA.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, subscribers, 2)
}
