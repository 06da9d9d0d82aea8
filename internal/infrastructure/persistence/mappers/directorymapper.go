package mappers

import (
	"opendesk/internal/domain/directory"
	"opendesk/internal/infrastructure/persistence/models"
)

// DirectoryMapper converts directory persistence models to the read-only
// domain records the ticket engine consumes.
type DirectoryMapper struct{}

func NewDirectoryMapper() *DirectoryMapper {
	return &DirectoryMapper{}
}

func (m *DirectoryMapper) DepartmentToDomain(model *models.DepartmentModel) *directory.Department {
	return &directory.Department{
		ID:               model.ID,
		CompanyID:        model.CompanyID,
		Name:             model.Name,
		Email:            model.Email,
		AutoCloseMinutes: model.AutoCloseMinutes,
		AutoCloseReply:   model.AutoCloseReply,
	}
}

func (m *DirectoryMapper) StaffToDomain(model *models.StaffModel) *directory.Staff {
	return &directory.Staff{
		ID:        model.ID,
		CompanyID: model.CompanyID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		Signature: model.Signature,
	}
}

func (m *DirectoryMapper) ClientToDomain(model *models.ClientModel) *directory.Client {
	return &directory.Client{
		ID:        model.ID,
		CompanyID: model.CompanyID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

func (m *DirectoryMapper) ContactToDomain(model *models.ContactModel) *directory.Contact {
	return &directory.Contact{
		ID:        model.ID,
		ClientID:  model.ClientID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

func (m *DirectoryMapper) ServiceToDomain(model *models.ServiceModel) *directory.Service {
	return &directory.Service{
		ID:       model.ID,
		ClientID: model.ClientID,
		Name:     model.Name,
	}
}
