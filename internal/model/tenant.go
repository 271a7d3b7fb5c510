package model

import "gorm.io/gorm"

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is an agency account. Every domain row carries its ID and
// every query is scoped by it.
type Tenant struct {
	gorm.Model
	Name   string       `json:"name" gorm:"not null"`
	Slug   string       `json:"slug" gorm:"uniqueIndex;not null"`
	Status TenantStatus `json:"status" gorm:"default:'active'"`

	Users []User `json:"-"`
}
