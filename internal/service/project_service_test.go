package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestProjectSlugIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewProjectService(db)

	first, err := svc.Create(tenantA.ID, &CreateProjectInput{Name: "Website Relaunch"})
	require.NoError(t, err)
	assert.Equal(t, "website-relaunch", first.Slug)

	// Same name in the same tenant gets a dated suffix.
	second, err := svc.Create(tenantA.ID, &CreateProjectInput{Name: "Website Relaunch"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "website-relaunch-")

	// Another tenant can reuse the plain slug.
	other, err := svc.Create(tenantB.ID, &CreateProjectInput{Name: "Website Relaunch"})
	require.NoError(t, err)
	assert.Equal(t, "website-relaunch", other.Slug)
}

func TestProjectSummaryZeroFillsStatuses(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewProjectService(db)

	_, err := svc.Create(tenant.ID, &CreateProjectInput{Name: "Planned", Budget: 3000})
	require.NoError(t, err)

	summary, err := svc.Summary(tenant.ID)
	require.NoError(t, err)
	require.Len(t, summary, len(model.ProjectStatuses))

	assert.Equal(t, model.ProjectStatusPlanning, summary[0].Status)
	assert.Equal(t, int64(1), summary[0].Count)
	assert.Equal(t, 3000.0, summary[0].Budget)

	for _, row := range summary[1:] {
		assert.Equal(t, int64(0), row.Count)
	}
}
