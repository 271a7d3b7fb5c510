package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusArchived  CampaignStatus = "ARCHIVED"
)

var CampaignStatuses = []CampaignStatus{
	CampaignStatusDraft,
	CampaignStatusActive,
	CampaignStatusPaused,
	CampaignStatusCompleted,
	CampaignStatusArchived,
}

var campaignStatuses = map[CampaignStatus]bool{
	CampaignStatusDraft:     true,
	CampaignStatusActive:    true,
	CampaignStatusPaused:    true,
	CampaignStatusCompleted: true,
	CampaignStatusArchived:  true,
}

func (s CampaignStatus) Valid() bool {
	return campaignStatuses[s]
}

type AdPlatform string

const (
	PlatformGoogle    AdPlatform = "GOOGLE"
	PlatformFacebook  AdPlatform = "FACEBOOK"
	PlatformInstagram AdPlatform = "INSTAGRAM"
	PlatformLinkedIn  AdPlatform = "LINKEDIN"
	PlatformTikTok    AdPlatform = "TIKTOK"
	PlatformOther     AdPlatform = "OTHER"
)

var adPlatforms = map[AdPlatform]bool{
	PlatformGoogle:    true,
	PlatformFacebook:  true,
	PlatformInstagram: true,
	PlatformLinkedIn:  true,
	PlatformTikTok:    true,
	PlatformOther:     true,
}

func (p AdPlatform) Valid() bool {
	return adPlatforms[p]
}

// CampaignMetrics is the raw counter blob synced from the ad platform.
type CampaignMetrics struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Conversions int64 `json:"conversions"`
}

type AdCampaign struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"uniqueIndex:idx_tenant_campaign_slug;index;not null"`

	Name     string         `json:"name" gorm:"not null"`
	Slug     string         `json:"slug" gorm:"uniqueIndex:idx_tenant_campaign_slug"`
	Platform AdPlatform     `json:"platform" gorm:"default:'OTHER'"`
	Status   CampaignStatus `json:"status" gorm:"default:'DRAFT';index"`

	Budget  float64        `json:"budget"`
	Spend   float64        `json:"spend"`
	Metrics datatypes.JSON `json:"metrics"`

	ClientID *uint      `json:"client_id" gorm:"index"`
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`

	Client    *Client      `json:"-" gorm:"foreignKey:ClientID"`
	Creatives []AdCreative `json:"creatives,omitempty" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
}

func (c *AdCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		s := slug.Make(c.Name)

		var count int64
		tx.Model(&AdCampaign{}).Where("tenant_id = ? AND slug = ?", c.TenantID, s).Count(&count)
		if count > 0 {
			s = s + "-" + time.Now().Format("20060102")
		}
		c.Slug = s
	}
	return nil
}

type CreativeType string

const (
	CreativeTypeImage    CreativeType = "IMAGE"
	CreativeTypeVideo    CreativeType = "VIDEO"
	CreativeTypeCarousel CreativeType = "CAROUSEL"
	CreativeTypeText     CreativeType = "TEXT"
)

var creativeTypes = map[CreativeType]bool{
	CreativeTypeImage:    true,
	CreativeTypeVideo:    true,
	CreativeTypeCarousel: true,
	CreativeTypeText:     true,
}

func (t CreativeType) Valid() bool {
	return creativeTypes[t]
}

type CreativeStatus string

const (
	CreativeStatusDraft    CreativeStatus = "DRAFT"
	CreativeStatusActive   CreativeStatus = "ACTIVE"
	CreativeStatusPaused   CreativeStatus = "PAUSED"
	CreativeStatusRejected CreativeStatus = "REJECTED"
)

var creativeStatuses = map[CreativeStatus]bool{
	CreativeStatusDraft:    true,
	CreativeStatusActive:   true,
	CreativeStatusPaused:   true,
	CreativeStatusRejected: true,
}

func (s CreativeStatus) Valid() bool {
	return creativeStatuses[s]
}

type AdCreative struct {
	gorm.Model
	TenantID   uint `json:"tenant_id" gorm:"index;not null"`
	CampaignID uint `json:"campaign_id" gorm:"index;not null"`

	Name     string         `json:"name" gorm:"not null"`
	Type     CreativeType   `json:"type" gorm:"not null"`
	Status   CreativeStatus `json:"status" gorm:"default:'DRAFT'"`
	Headline string         `json:"headline"`
	Body     string         `json:"body" gorm:"type:text"`
	AssetID  *uint          `json:"asset_id" gorm:"index"`

	Campaign AdCampaign `json:"-" gorm:"foreignKey:CampaignID"`
	Asset    *Asset     `json:"-" gorm:"foreignKey:AssetID"`
}

type SplitTestStatus string

const (
	SplitTestStatusRunning   SplitTestStatus = "RUNNING"
	SplitTestStatusCompleted SplitTestStatus = "COMPLETED"
	SplitTestStatusCancelled SplitTestStatus = "CANCELLED"
)

var splitTestStatuses = map[SplitTestStatus]bool{
	SplitTestStatusRunning:   true,
	SplitTestStatusCompleted: true,
	SplitTestStatusCancelled: true,
}

func (s SplitTestStatus) Valid() bool {
	return splitTestStatuses[s]
}

// SplitTest compares two creatives of the same campaign. WinnerID is
// set when the test is completed.
type SplitTest struct {
	gorm.Model
	TenantID   uint `json:"tenant_id" gorm:"index;not null"`
	CampaignID uint `json:"campaign_id" gorm:"index;not null"`

	Name       string          `json:"name" gorm:"not null"`
	Status     SplitTestStatus `json:"status" gorm:"default:'RUNNING'"`
	VariantAID uint            `json:"variant_a_id"`
	VariantBID uint            `json:"variant_b_id"`
	WinnerID   *uint           `json:"winner_id"`

	Campaign AdCampaign `json:"-" gorm:"foreignKey:CampaignID"`
}
