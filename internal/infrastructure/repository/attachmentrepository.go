package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"opendesk/internal/domain/ticket"
	"opendesk/internal/infrastructure/persistence/mappers"
	"opendesk/internal/infrastructure/persistence/models"
	db "opendesk/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *AttachmentRepository) SaveAll(ctx context.Context, attachments []*ticket.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	attachmentModels := make([]*models.AttachmentModel, len(attachments))
	for i, a := range attachments {
		attachmentModels[i] = r.mapper.AttachmentToModel(a)
	}

	if err := tx.Create(&attachmentModels).Error; err != nil {
		return fmt.Errorf("failed to save attachments: %w", err)
	}

	for i, a := range attachments {
		if err := a.SetID(attachmentModels[i].ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *AttachmentRepository) GetByReplyID(ctx context.Context, replyID uint) ([]*ticket.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("reply_id = ?", replyID).
		Order("id ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, len(attachmentModels))
	for i, model := range attachmentModels {
		a, err := r.mapper.AttachmentToDomain(&model)
		if err != nil {
			return nil, err
		}
		attachments[i] = a
	}

	return attachments, nil
}

func (r *AttachmentRepository) DeleteByReplyID(ctx context.Context, replyID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("reply_id = ?", replyID).
		Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}

	return nil
}
