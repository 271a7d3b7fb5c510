package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusReview     ProjectStatus = "REVIEW"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusArchived   ProjectStatus = "ARCHIVED"
)

var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusReview,
	ProjectStatusCompleted,
	ProjectStatusArchived,
}

var projectStatuses = map[ProjectStatus]bool{
	ProjectStatusPlanning:   true,
	ProjectStatusInProgress: true,
	ProjectStatusReview:     true,
	ProjectStatusCompleted:  true,
	ProjectStatusArchived:   true,
}

func (s ProjectStatus) Valid() bool {
	return projectStatuses[s]
}

type Project struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"uniqueIndex:idx_tenant_project_slug;index;not null"`

	Name        string        `json:"name" gorm:"not null"`
	Slug        string        `json:"slug" gorm:"uniqueIndex:idx_tenant_project_slug"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"default:'PLANNING';index"`
	Budget      float64       `json:"budget"`

	ClientID *uint      `json:"client_id" gorm:"index"`
	StartAt  *time.Time `json:"start_at"`
	DueAt    *time.Time `json:"due_at"`

	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}

// BeforeCreate fills the slug from the name, suffixing the date when a
// tenant already has a project with the same slug.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Name)

		var count int64
		tx.Model(&Project{}).Where("tenant_id = ? AND slug = ?", p.TenantID, s).Count(&count)
		if count > 0 {
			s = s + "-" + time.Now().Format("20060102")
		}
		p.Slug = s
	}
	return nil
}
