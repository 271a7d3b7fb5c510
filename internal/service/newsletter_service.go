package service

import (
	"errors"
	"net/mail"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

type NewsletterService struct {
	db *gorm.DB
}

func NewNewsletterService(db *gorm.DB) *NewsletterService {
	return &NewsletterService{db: db}
}

type SubscribeInput struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (in *SubscribeInput) Validate() error {
	if in.Email == "" {
		return NewValidation("email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return NewValidation("invalid email address")
	}
	return nil
}

// Subscribe captures a signup; a repeat email for the same tenant is a
// conflict.
func (s *NewsletterService) Subscribe(tenantID uint, in *SubscribeInput) (*model.Subscriber, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var existing model.Subscriber
	err := s.db.Where("tenant_id = ? AND email = ?", tenantID, in.Email).First(&existing).Error
	if err == nil {
		return nil, NewConflict("email is already subscribed")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subscriber := model.Subscriber{
		TenantID: tenantID,
		Email:    in.Email,
		Name:     in.Name,
		Source:   in.Source,
	}

	if err := s.db.Create(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (s *NewsletterService) List(tenantID uint, offset, limit int) ([]model.Subscriber, int64, error) {
	query := s.db.Model(&model.Subscriber{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subscribers []model.Subscriber
	err := query.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&subscribers).Error
	if err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}
