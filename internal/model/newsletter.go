package model

import "gorm.io/gorm"

// Subscriber is a newsletter signup captured on a tenant's public pages.
type Subscriber struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"uniqueIndex:idx_tenant_subscriber_email;index;not null"`

	Email  string `json:"email" gorm:"uniqueIndex:idx_tenant_subscriber_email;not null"`
	Name   string `json:"name"`
	Source string `json:"source"`
}
