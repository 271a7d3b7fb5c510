package model

import (
	"strings"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleMember UserRole = "member"
)

type User struct {
	gorm.Model
	TenantID uint     `json:"tenant_id" gorm:"index;not null"`
	Email    string   `gorm:"uniqueIndex;not null"`
	Password string   `gorm:"not null"`
	Role     UserRole `json:"role" gorm:"default:'member'"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`

	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"tenant_id":    u.TenantID,
		"email":        u.Email,
		"role":         u.Role,
		"full_name":    u.GetFullName(),
		"title":        u.Title,
		"phone_number": u.PhoneNumber,
		"avatar":       u.Avatar,
	}
}
