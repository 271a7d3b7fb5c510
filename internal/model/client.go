package model

import "gorm.io/gorm"

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusChurned  ClientStatus = "CHURNED"
)

var clientStatuses = map[ClientStatus]bool{
	ClientStatusActive:   true,
	ClientStatusInactive: true,
	ClientStatusChurned:  true,
}

func (s ClientStatus) Valid() bool {
	return clientStatuses[s]
}

// Client is a converted contact an agency does business with.
type Client struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Name          string       `json:"name" gorm:"not null"`
	Email         string       `json:"email" gorm:"index"`
	Phone         string       `json:"phone"`
	Company       string       `json:"company"`
	Website       string       `json:"website"`
	Industry      string       `json:"industry"`
	Status        ClientStatus `json:"status" gorm:"default:'ACTIVE'"`
	Notes         string       `json:"notes" gorm:"type:text"`

	Leads    []Lead    `json:"-" gorm:"foreignKey:ClientID"`
	Deals    []Deal    `json:"-" gorm:"foreignKey:ClientID"`
	Projects []Project `json:"-" gorm:"foreignKey:ClientID"`
	Assets   []Asset   `json:"-" gorm:"foreignKey:ClientID"`
}
