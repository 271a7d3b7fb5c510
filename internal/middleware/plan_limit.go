package middleware

import (
	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/subscription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LimitedResource names a countable resource gated by plan limits.
type LimitedResource string

const (
	ResourceLeads       LimitedResource = "leads"
	ResourceCampaigns   LimitedResource = "campaigns"
	ResourceAssets      LimitedResource = "assets"
	ResourceGenerations LimitedResource = "generations"
)

func planTypeFor(db *gorm.DB, tenantID uint) subscription.PlanType {
	var sub model.TenantSubscription
	if err := db.Where("tenant_id = ? AND status = ?", tenantID, "active").
		Preload("Plan").
		First(&sub).Error; err != nil {
		return subscription.StarterPlan
	}
	return subscription.PlanTypeFromName(sub.Plan.Name)
}

// CheckPlanLimit rejects creation once the tenant's count of the
// resource reaches its plan limit.
func CheckPlanLimit(db *gorm.DB, resource LimitedResource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		limits := subscription.GetPlanLimits(planTypeFor(db, claims.TenantID))

		var count int64
		var max int

		switch resource {
		case ResourceLeads:
			db.Model(&model.Lead{}).Where("tenant_id = ?", claims.TenantID).Count(&count)
			max = limits.MaxLeads
		case ResourceCampaigns:
			db.Model(&model.AdCampaign{}).Where("tenant_id = ?", claims.TenantID).Count(&count)
			max = limits.MaxCampaigns
		case ResourceAssets:
			db.Model(&model.Asset{}).Where("tenant_id = ?", claims.TenantID).Count(&count)
			max = limits.MaxAssets
		case ResourceGenerations:
			db.Model(&model.GeneratedContent{}).Where("tenant_id = ?", claims.TenantID).Count(&count)
			max = limits.MaxGenerations
		}

		if int(count) >= max {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "You have reached your plan limit for " + string(resource) + ". Please upgrade your plan.",
				"current_count": count,
				"max_limit":     max,
			})
		}

		return c.Next()
	}
}

// CheckFeatureAccess gates endpoints behind plan features.
func CheckFeatureAccess(db *gorm.DB, feature subscription.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)

		if !subscription.CanUseFeature(planTypeFor(db, claims.TenantID), feature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This feature requires a higher subscription plan",
			})
		}

		return c.Next()
	}
}
