package model

import "gorm.io/gorm"

type AssetType string

const (
	AssetTypeImage    AssetType = "IMAGE"
	AssetTypeVideo    AssetType = "VIDEO"
	AssetTypeDocument AssetType = "DOCUMENT"
	AssetTypeAudio    AssetType = "AUDIO"
	AssetTypeOther    AssetType = "OTHER"
)

var assetTypes = map[AssetType]bool{
	AssetTypeImage:    true,
	AssetTypeVideo:    true,
	AssetTypeDocument: true,
	AssetTypeAudio:    true,
	AssetTypeOther:    true,
}

func (t AssetType) Valid() bool {
	return assetTypes[t]
}

// AssetTypeFromContentType maps an upload's MIME type to an asset type.
func AssetTypeFromContentType(contentType string) AssetType {
	switch {
	case len(contentType) >= 6 && contentType[:6] == "image/":
		return AssetTypeImage
	case len(contentType) >= 6 && contentType[:6] == "video/":
		return AssetTypeVideo
	case len(contentType) >= 6 && contentType[:6] == "audio/":
		return AssetTypeAudio
	case contentType == "application/pdf":
		return AssetTypeDocument
	default:
		return AssetTypeOther
	}
}

type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "ACTIVE"
	AssetStatusArchived AssetStatus = "ARCHIVED"
)

type Asset struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Name         string      `json:"name" gorm:"not null"`
	Type         AssetType   `json:"type" gorm:"index"`
	Status       AssetStatus `json:"status" gorm:"default:'ACTIVE'"`
	URL          string      `json:"url" gorm:"not null"`
	ThumbnailURL string      `json:"thumbnail_url"`
	ContentType  string      `json:"content_type"`
	SizeBytes    int64       `json:"size_bytes"`

	ClientID   *uint `json:"client_id" gorm:"index"`
	UploaderID uint  `json:"uploader_id"`

	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}
