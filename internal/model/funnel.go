package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FunnelStatus string

const (
	FunnelStatusDraft    FunnelStatus = "DRAFT"
	FunnelStatusActive   FunnelStatus = "ACTIVE"
	FunnelStatusArchived FunnelStatus = "ARCHIVED"
)

var funnelStatuses = map[FunnelStatus]bool{
	FunnelStatusDraft:    true,
	FunnelStatusActive:   true,
	FunnelStatusArchived: true,
}

func (s FunnelStatus) Valid() bool {
	return funnelStatuses[s]
}

// FunnelStage is one step of a funnel's ordered stage list, stored as
// a JSON array on the funnel row.
type FunnelStage struct {
	Name        string `json:"name"`
	Visitors    int64  `json:"visitors"`
	Conversions int64  `json:"conversions"`
}

type SalesFunnel struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      FunnelStatus   `json:"status" gorm:"default:'DRAFT'"`
	Stages      datatypes.JSON `json:"stages"`

	ClientID *uint `json:"client_id" gorm:"index"`

	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}
