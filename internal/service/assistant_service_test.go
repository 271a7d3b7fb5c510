package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyhub_backend/internal/model"
)

func TestGenerateRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewAssistantService(db)

	var validation *ValidationError

	_, err := svc.Generate(tenant.ID, 1, &GenerateInput{
		Type:   "haiku",
		Params: GenerateParams{Product: "AgencyHub"},
	})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Generate(tenant.ID, 1, &GenerateInput{Type: model.ContentTypeAdCopy})
	assert.ErrorAs(t, err, &validation)
}

func TestGenerateIsDeterministic(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewAssistantService(db)

	input := &GenerateInput{
		Type: model.ContentTypeAdCopy,
		Params: GenerateParams{
			Product:  "AgencyHub",
			Audience: "small agencies",
			Tone:     "urgent",
		},
	}

	first, err := svc.Generate(tenant.ID, 1, input)
	require.NoError(t, err)
	second, err := svc.Generate(tenant.ID, 1, input)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Contains(t, first.Content, "AgencyHub")
	assert.Contains(t, first.Content, "small agencies")
	assert.Contains(t, first.Content, "Don't miss out")
}

func TestGenerateEveryContentType(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "Acme Agency", "acme-agency")
	svc := NewAssistantService(db)

	for _, contentType := range []model.ContentType{
		model.ContentTypeAdCopy,
		model.ContentTypeEmail,
		model.ContentTypeSocialPost,
		model.ContentTypeBlogOutline,
	} {
		content, err := svc.Generate(tenant.ID, 1, &GenerateInput{
			Type:   contentType,
			Params: GenerateParams{Product: "AgencyHub", Keywords: "reporting, automation"},
		})
		require.NoError(t, err, "type %s", contentType)
		assert.Equal(t, contentType, content.Type)
		assert.NotEmpty(t, content.Content)
	}
}

func TestHistoryIsTenantScopedAndPaginated(t *testing.T) {
	db := newTestDB(t)
	tenantA := seedTenant(t, db, "Agency A", "agency-a")
	tenantB := seedTenant(t, db, "Agency B", "agency-b")
	svc := NewAssistantService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.Generate(tenantA.ID, 1, &GenerateInput{
			Type:   model.ContentTypeAdCopy,
			Params: GenerateParams{Product: "AgencyHub"},
		})
		require.NoError(t, err)
	}
	_, err := svc.Generate(tenantB.ID, 1, &GenerateInput{
		Type:   model.ContentTypeEmail,
		Params: GenerateParams{Product: "Other"},
	})
	require.NoError(t, err)

	history, total, err := svc.History(tenantA.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, history, 2)
}
