package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentTypeAdCopy      ContentType = "ad_copy"
	ContentTypeEmail       ContentType = "email"
	ContentTypeSocialPost  ContentType = "social_post"
	ContentTypeBlogOutline ContentType = "blog_outline"
)

var contentTypes = map[ContentType]bool{
	ContentTypeAdCopy:      true,
	ContentTypeEmail:       true,
	ContentTypeSocialPost:  true,
	ContentTypeBlogOutline: true,
}

func (t ContentType) Valid() bool {
	return contentTypes[t]
}

// GeneratedContent is one assistant output, kept so tenants can browse
// their generation history. Params holds the prompt inputs as JSON.
type GeneratedContent struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Type    ContentType    `json:"type" gorm:"not null"`
	Params  datatypes.JSON `json:"params"`
	Content string         `json:"content" gorm:"type:text"`

	UserID uint `json:"user_id"`
}
