package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScraperJobStatus string

const (
	ScraperJobPending   ScraperJobStatus = "PENDING"
	ScraperJobRunning   ScraperJobStatus = "RUNNING"
	ScraperJobCompleted ScraperJobStatus = "COMPLETED"
	ScraperJobFailed    ScraperJobStatus = "FAILED"
)

// ScraperJob is one run of the lead scraper. The runner catches every
// failure and marks the job FAILED instead of propagating.
type ScraperJob struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	JobID    string           `json:"job_id" gorm:"uniqueIndex;not null"`
	Industry string           `json:"industry" gorm:"not null"`
	Location string           `json:"location"`
	Limit    int              `json:"limit"`
	Status   ScraperJobStatus `json:"status" gorm:"default:'PENDING';index"`

	LeadsFound int            `json:"leads_found"`
	Result     datatypes.JSON `json:"result"`
	Error      string         `json:"error"`

	UserID uint `json:"user_id"`
}
