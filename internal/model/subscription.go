package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan is a billable subscription tier.
type Plan struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // days

	MaxLeads       int `json:"max_leads"`
	MaxCampaigns   int `json:"max_campaigns"`
	MaxAssets      int `json:"max_assets"`
	MaxGenerations int `json:"max_generations"` // assistant outputs per cycle

	StripeProductID string `json:"stripe_product_id"`
	StripePriceID   string `json:"stripe_price_id" gorm:"index"`
}

// TenantSubscription links a tenant to its active plan.
type TenantSubscription struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`
	PlanID   uint `json:"plan_id" gorm:"not null"`

	Status               string     `json:"status" gorm:"default:'active';index"` // active, cancelled, expired
	StripeCustomerID     string     `json:"stripe_customer_id"`
	StripeSubscriptionID string     `json:"stripe_subscription_id"`
	ExpiresAt            *time.Time `json:"expires_at"`

	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID"`
	Plan   Plan   `json:"plan" gorm:"foreignKey:PlanID"`
}
