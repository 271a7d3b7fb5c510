package service

import (
	"errors"
	"log"
	"time"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/email"

	"gorm.io/gorm"
)

type LeadService struct {
	db    *gorm.DB
	email *email.Service
}

// NewLeadService builds the lead service. email may be nil; lead
// notifications are then skipped.
func NewLeadService(db *gorm.DB, emailService *email.Service) *LeadService {
	return &LeadService{db: db, email: emailService}
}

type CreateLeadInput struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Company    string           `json:"company"`
	Source     model.LeadSource `json:"source"`
	Notes      string           `json:"notes"`
	AssigneeID *uint            `json:"assignee_id"`
	ClientID   *uint            `json:"client_id"`
}

func (in *CreateLeadInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	if in.Source == "" {
		in.Source = model.LeadSourceOther
	}
	if !in.Source.Valid() {
		return NewValidation("invalid lead source: %s", in.Source)
	}
	return nil
}

type UpdateLeadInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Notes   *string `json:"notes"`
}

type ListLeadsFilter struct {
	Status model.LeadStatus
	Source model.LeadSource
	Search string
	Offset int
	Limit  int
}

func (s *LeadService) Create(tenantID uint, in *CreateLeadInput) (*model.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lead := model.Lead{
		TenantID:   tenantID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Source:     in.Source,
		Status:     model.LeadStatusNew,
		Notes:      in.Notes,
		AssigneeID: in.AssigneeID,
		ClientID:   in.ClientID,
	}

	if err := s.db.Create(&lead).Error; err != nil {
		return nil, err
	}

	s.notifyNewLead(&lead)

	return &lead, nil
}

// notifyNewLead emails the assignee, falling back to the tenant owner.
// Best effort: failures are logged, never surfaced.
func (s *LeadService) notifyNewLead(lead *model.Lead) {
	if s.email == nil {
		return
	}

	var recipient model.User
	query := s.db.Where("tenant_id = ?", lead.TenantID)
	if lead.AssigneeID != nil {
		query = query.Where("id = ?", *lead.AssigneeID)
	} else {
		query = query.Where("role = ?", model.RoleOwner)
	}
	if err := query.First(&recipient).Error; err != nil {
		return
	}

	if err := s.email.SendLeadNotificationEmail(
		recipient.Email, lead.Name, lead.Email, lead.Phone, lead.Company, string(lead.Source),
	); err != nil {
		log.Printf("Could not send lead notification email: %v", err)
	}
}

func (s *LeadService) Get(tenantID, id uint) (*model.Lead, error) {
	var lead model.Lead
	err := s.db.Where("tenant_id = ?", tenantID).First(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("lead")
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *LeadService) List(tenantID uint, filter ListLeadsFilter) ([]model.Lead, int64, error) {
	query := s.db.Model(&model.Lead{}).Where("tenant_id = ?", tenantID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, NewValidation("invalid lead status: %s", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		if !filter.Source.Valid() {
			return nil, 0, NewValidation("invalid lead source: %s", filter.Source)
		}
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []model.Lead
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// ListAll returns the full tenant lead set ordered by creation
// descending, for the pipeline view and CSV export.
func (s *LeadService) ListAll(tenantID uint) ([]model.Lead, error) {
	var leads []model.Lead
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&leads).Error
	return leads, err
}

func (s *LeadService) Update(tenantID, id uint, in *UpdateLeadInput) (*model.Lead, error) {
	lead, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, NewValidation("name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Company != nil {
		updates["company"] = *in.Company
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(lead).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return lead, nil
}

func (s *LeadService) Delete(tenantID, id uint) error {
	lead, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(lead).Error
}

// UpdateStatus moves a lead along the pipeline, rejecting moves the
// transition table does not allow.
func (s *LeadService) UpdateStatus(tenantID, id uint, status model.LeadStatus) (*model.Lead, error) {
	if !status.Valid() {
		return nil, NewValidation("invalid lead status: %s", status)
	}

	lead, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if lead.Status == status {
		return lead, nil
	}
	if !lead.Status.CanTransitionTo(status) {
		return nil, NewValidation("cannot move lead from %s to %s", lead.Status, status)
	}

	if err := s.db.Model(lead).Update("status", status).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// Score sets the lead score. The value is stored as posted; the
// accepted range is caller-defined.
func (s *LeadService) Score(tenantID, id uint, score float64) (*model.Lead, error) {
	lead, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(lead).Update("score", score).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) Assign(tenantID, id uint, assigneeID *uint) (*model.Lead, error) {
	lead, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		var assignee model.User
		err := s.db.Where("tenant_id = ?", tenantID).First(&assignee, *assigneeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("assignee")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(lead).Update("assignee_id", assigneeID).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

type BatchStatusInput struct {
	LeadIDs []uint           `json:"lead_ids"`
	Status  model.LeadStatus `json:"status"`
}

// BatchUpdateStatus updates the given leads in one statement. The
// filter is tenant-scoped, so ids belonging to other tenants are left
// untouched; the returned count is the number of rows actually updated.
func (s *LeadService) BatchUpdateStatus(tenantID uint, in *BatchStatusInput) (int64, error) {
	if len(in.LeadIDs) == 0 {
		return 0, NewValidation("lead_ids is required")
	}
	if !in.Status.Valid() {
		return 0, NewValidation("invalid lead status: %s", in.Status)
	}

	result := s.db.Model(&model.Lead{}).
		Where("id IN ? AND tenant_id = ?", in.LeadIDs, tenantID).
		Update("status", in.Status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

type ConvertLeadInput struct {
	CreateDeal bool    `json:"create_deal"`
	DealTitle  string  `json:"deal_title"`
	DealValue  float64 `json:"deal_value"`
}

type ConvertLeadResult struct {
	Lead   *model.Lead   `json:"lead"`
	Client *model.Client `json:"client"`
	Deal   *model.Deal   `json:"deal,omitempty"`
}

// Convert turns a lead into a client, optionally opening a deal, and
// marks the lead CLOSED_WON. Runs in one transaction.
func (s *LeadService) Convert(tenantID, id uint, in *ConvertLeadInput) (*ConvertLeadResult, error) {
	lead, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if lead.Status == model.LeadStatusClosedWon || lead.ClientID != nil {
		return nil, NewConflict("lead is already converted")
	}

	result := &ConvertLeadResult{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		client := model.Client{
			TenantID: tenantID,
			Name:     lead.Name,
			Email:    lead.Email,
			Phone:    lead.Phone,
			Company:  lead.Company,
			Status:   model.ClientStatusActive,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"client_id": client.ID,
			"status":    model.LeadStatusClosedWon,
		}
		if err := tx.Model(lead).Updates(updates).Error; err != nil {
			return err
		}

		result.Client = &client

		if in.CreateDeal {
			title := in.DealTitle
			if title == "" {
				title = lead.Name
			}
			deal := model.Deal{
				TenantID: tenantID,
				Title:    title,
				Value:    in.DealValue,
				Stage:    model.DealStageProspect,
				LeadID:   &lead.ID,
				ClientID: &client.ID,
			}
			if err := tx.Create(&deal).Error; err != nil {
				return err
			}
			result.Deal = &deal
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Lead = lead
	return result, nil
}

// CountCreatedSince counts leads created at or after the cutoff.
func (s *LeadService) CountCreatedSince(tenantID uint, cutoff time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&model.Lead{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, cutoff).
		Count(&count).Error
	return count, err
}
