package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"opendesk/internal/domain/directory"
	"opendesk/internal/infrastructure/persistence/mappers"
	"opendesk/internal/infrastructure/persistence/models"
	db "opendesk/internal/shared/db"
)

// DirectoryRepository serves the read-only org lookups the ticket engine
// validates against.
type DirectoryRepository struct {
	db     *gorm.DB
	mapper *mappers.DirectoryMapper
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{
		db:     db,
		mapper: mappers.NewDirectoryMapper(),
	}
}

func (r *DirectoryRepository) DepartmentByID(ctx context.Context, id uint) (*directory.Department, error) {
	var model models.DepartmentModel
	if err := r.first(ctx, &model, id); err != nil {
		return nil, err
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.DepartmentToDomain(&model), nil
}

func (r *DirectoryRepository) StaffByID(ctx context.Context, id uint) (*directory.Staff, error) {
	var model models.StaffModel
	if err := r.first(ctx, &model, id); err != nil {
		return nil, err
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.StaffToDomain(&model), nil
}

func (r *DirectoryRepository) ClientByID(ctx context.Context, id uint) (*directory.Client, error) {
	var model models.ClientModel
	if err := r.first(ctx, &model, id); err != nil {
		return nil, err
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.ClientToDomain(&model), nil
}

func (r *DirectoryRepository) ContactByID(ctx context.Context, id uint) (*directory.Contact, error) {
	var model models.ContactModel
	if err := r.first(ctx, &model, id); err != nil {
		return nil, err
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.ContactToDomain(&model), nil
}

func (r *DirectoryRepository) ServiceByID(ctx context.Context, id uint) (*directory.Service, error) {
	var model models.ServiceModel
	if err := r.first(ctx, &model, id); err != nil {
		return nil, err
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.ServiceToDomain(&model), nil
}

func (r *DirectoryRepository) AutoCloseDepartments(ctx context.Context) ([]*directory.Department, error) {
	var departmentModels []models.DepartmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("auto_close_minutes > 0").
		Find(&departmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find auto-close departments: %w", err)
	}

	departments := make([]*directory.Department, len(departmentModels))
	for i := range departmentModels {
		departments[i] = r.mapper.DepartmentToDomain(&departmentModels[i])
	}

	return departments, nil
}

// first loads a row by primary key, leaving dest zeroed when absent.
func (r *DirectoryRepository) first(ctx context.Context, dest any, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(dest, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("failed to load record: %w", err)
	}
	return nil
}
