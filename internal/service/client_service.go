package service

import (
	"errors"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type CreateClientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Notes    string `json:"notes"`
}

func (in *CreateClientInput) Validate() error {
	if in.Name == "" {
		return NewValidation("name is required")
	}
	return nil
}

type UpdateClientInput struct {
	Name     *string             `json:"name"`
	Email    *string             `json:"email"`
	Phone    *string             `json:"phone"`
	Company  *string             `json:"company"`
	Website  *string             `json:"website"`
	Industry *string             `json:"industry"`
	Status   *model.ClientStatus `json:"status"`
	Notes    *string             `json:"notes"`
}

type ListClientsFilter struct {
	Status model.ClientStatus
	Search string
	Offset int
	Limit  int
}

func (s *ClientService) Create(tenantID uint, in *CreateClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	client := model.Client{
		TenantID: tenantID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Company:  in.Company,
		Website:  in.Website,
		Industry: in.Industry,
		Status:   model.ClientStatusActive,
		Notes:    in.Notes,
	}

	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) Get(tenantID, id uint) (*model.Client, error) {
	var client model.Client
	err := s.db.Where("tenant_id = ?", tenantID).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("client")
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) List(tenantID uint, filter ListClientsFilter) ([]model.Client, int64, error) {
	query := s.db.Model(&model.Client{}).Where("tenant_id = ?", tenantID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, NewValidation("invalid client status: %s", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	err := query.Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (s *ClientService) Update(tenantID, id uint, in *UpdateClientInput) (*model.Client, error) {
	client, err := s.Get(tenantID, id)
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
	if in.Website != nil {
		updates["website"] = *in.Website
	}
	if in.Industry != nil {
		updates["industry"] = *in.Industry
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, NewValidation("invalid client status: %s", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(client).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return client, nil
}

func (s *ClientService) Delete(tenantID, id uint) error {
	client, err := s.Get(tenantID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(client).Error
}
