package service

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"agencyhub_backend/internal/model"
	imageutil "agencyhub_backend/pkg/utils/image"
	"agencyhub_backend/pkg/utils/storage"
	"agencyhub_backend/pkg/utils/validation"

	"gorm.io/gorm"
)

type AssetService struct {
	db      *gorm.DB
	storage *storage.Service
}

// NewAssetService builds the asset service. storage may be nil in
// tests; upload and delete then fail cleanly.
func NewAssetService(db *gorm.DB, storageService *storage.Service) *AssetService {
	return &AssetService{db: db, storage: storageService}
}

type ListAssetsFilter struct {
	Type     model.AssetType
	ClientID *uint
	Offset   int
	Limit    int
}

// Upload validates the file, optimizes images, stores the object (plus
// a webp thumbnail for images) and records the asset row.
func (s *AssetService) Upload(tenantID, uploaderID uint, file *multipart.FileHeader, clientID *uint) (*model.Asset, error) {
	if err := validation.ValidateUpload(file); err != nil {
		return nil, NewValidation("%s", err.Error())
	}
	if s.storage == nil {
		return nil, errors.New("storage is not configured")
	}

	if clientID != nil {
		var client model.Client
		err := s.db.Where("tenant_id = ?", tenantID).First(&client, *clientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("client")
		}
		if err != nil {
			return nil, err
		}
	}

	contentType := file.Header.Get("Content-Type")
	var body []byte

	if validation.IsImage(file) {
		buf, optimizedType, err := imageutil.Process(file)
		if err != nil {
			return nil, NewValidation("%s", err.Error())
		}
		body = buf.Bytes()
		contentType = optimizedType
	} else {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		body, err = io.ReadAll(src)
		if err != nil {
			return nil, err
		}
	}

	url, err := s.storage.Upload(tenantID, storage.TimestampedName(file.Filename), contentType, body)
	if err != nil {
		return nil, err
	}

	asset := model.Asset{
		TenantID:    tenantID,
		Name:        file.Filename,
		Type:        model.AssetTypeFromContentType(contentType),
		Status:      model.AssetStatusActive,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(body)),
		ClientID:    clientID,
		UploaderID:  uploaderID,
	}

	if validation.IsImage(file) {
		if thumb, err := imageutil.Thumbnail(file); err == nil {
			thumbURL, err := s.storage.Upload(tenantID, "thumb_"+storage.TimestampedName(file.Filename)+".webp", "image/webp", thumb.Bytes())
			if err == nil {
				asset.ThumbnailURL = thumbURL
			} else {
				log.Printf("Could not upload asset thumbnail: %v", err)
			}
		} else {
			log.Printf("Could not build asset thumbnail: %v", err)
		}
	}

	if err := s.db.Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) Get(tenantID, id uint) (*model.Asset, error) {
	var asset model.Asset
	err := s.db.Where("tenant_id = ?", tenantID).First(&asset, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("asset")
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) List(tenantID uint, filter ListAssetsFilter) ([]model.Asset, int64, error) {
	query := s.db.Model(&model.Asset{}).Where("tenant_id = ?", tenantID)

	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, 0, NewValidation("invalid asset type: %s", filter.Type)
		}
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []model.Asset
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func (s *AssetService) Archive(tenantID, id uint) (*model.Asset, error) {
	asset, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(asset).Update("status", model.AssetStatusArchived).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes the row and then the S3 objects best effort; a failed
// object delete is logged, not surfaced.
func (s *AssetService) Delete(tenantID, id uint) error {
	asset, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return err
	}

	if s.storage != nil {
		if err := s.storage.Delete(asset.URL); err != nil {
			log.Printf("Could not delete asset object: %v", err)
		}
		if asset.ThumbnailURL != "" {
			if err := s.storage.Delete(asset.ThumbnailURL); err != nil {
				log.Printf("Could not delete asset thumbnail: %v", err)
			}
		}
	}

	return nil
}
