package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestScraperJobCompletes(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	leadSvc := NewLeadService(db, nil)
	svc := NewScraperService(db, leadSvc)

	job, err := svc.CreateJob(tenant.ID, 1, &CreateScraperJobInput{
		Industry: "Restaurants",
		Location: "Berlin",
		Limit:    2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobID)

	stored, err := svc.GetJob(tenant.ID, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, model.ScraperJobCompleted, stored.Status)
	assert.Equal(t, 2, stored.LeadsFound)
	assert.NotEmpty(t, stored.Result)

	leads, err := leadSvc.ListAll(tenant.ID)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	for _, lead := range leads {
		assert.Equal(t, model.LeadSourceScraper, lead.Source)
	}
}

func TestScraperJobFailsOnUnknownIndustry(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	leadSvc := NewLeadService(db, nil)
	svc := NewScraperService(db, leadSvc)

	job, err := svc.CreateJob(tenant.ID, 1, &CreateScraperJobInput{
		Industry: "submarine rentals",
	})
	require.NoError(t, err)

	stored, err := svc.GetJob(tenant.ID, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, model.ScraperJobFailed, stored.Status)
	assert.NotEmpty(t, stored.Error)

	leads, err := leadSvc.ListAll(tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestScraperJobValidation(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewScraperService(db, NewLeadService(db, nil))

	var validation *ValidationError

	_, err := svc.CreateJob(tenant.ID, 1, &CreateScraperJobInput{})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.CreateJob(tenant.ID, 1, &CreateScraperJobInput{Industry: "fitness", Limit: -1})
	assert.ErrorAs(t, err, &validation)
}

func TestScraperJobsAreTenantScoped(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewScraperService(db, NewLeadService(db, nil))

	job, err := svc.CreateJob(tenantA.ID, 1, &CreateScraperJobInput{Industry: "fitness"})
	require.NoError(t, err)

	_, err = svc.GetJob(tenantB.ID, job.JobID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	jobs, err := svc.ListJobs(tenantB.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestScraperIndustriesListsDatasets(t *testing.T) {
	svc := NewScraperService(nil, nil)
	industries := svc.Industries()
	assert.ElementsMatch(t, []string{"restaurants", "fitness", "real_estate", "ecommerce"}, industries)
}
