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

type ReplyRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ReplyRepository) Save(ctx context.Context, reply *ticket.Reply) error {
	model := r.mapper.ReplyToModel(reply)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reply: %w", err)
	}

	if err := reply.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ReplyRepository) GetByID(ctx context.Context, replyID uint) (*ticket.Reply, error) {
	var model models.ReplyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, replyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reply: %w", err)
	}

	return r.mapper.ReplyToDomain(&model)
}

func (r *ReplyRepository) GetByIDs(ctx context.Context, replyIDs []uint) ([]*ticket.Reply, error) {
	if len(replyIDs) == 0 {
		return nil, nil
	}

	var replyModels []models.ReplyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("id IN ?", replyIDs).
		Find(&replyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find replies: %w", err)
	}

	return r.toDomainSlice(replyModels)
}

func (r *ReplyRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Reply, error) {
	var replyModels []models.ReplyModel
	tx := db.GetTxFromContext(ctx, r.db)

	// Newest first; id breaks ties between entries created in the same
	// millisecond.
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("date_added DESC, id DESC").
		Find(&replyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find replies: %w", err)
	}

	return r.toDomainSlice(replyModels)
}

func (r *ReplyRepository) ReassignByIDs(ctx context.Context, replyIDs []uint, toTicketID uint) error {
	if len(replyIDs) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.ReplyModel{}).
		Where("id IN ?", replyIDs).
		Update("ticket_id", toTicketID)
	if result.Error != nil {
		return fmt.Errorf("failed to reassign replies: %w", result.Error)
	}

	return nil
}

func (r *ReplyRepository) ReassignContent(ctx context.Context, fromTicketID, toTicketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	// Log entries stay behind; only conversation content moves.
	result := tx.
		Model(&models.ReplyModel{}).
		Where("ticket_id = ? AND type IN ?", fromTicketID, []string{"reply", "note"}).
		Update("ticket_id", toTicketID)
	if result.Error != nil {
		return fmt.Errorf("failed to reassign replies: %w", result.Error)
	}

	return nil
}

func (r *ReplyRepository) CountRepliesExcluding(ctx context.Context, ticketID uint, excluded []uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Model(&models.ReplyModel{}).
		Where("ticket_id = ? AND type = ?", ticketID, "reply")
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count replies: %w", err)
	}

	return count, nil
}

func (r *ReplyRepository) toDomainSlice(replyModels []models.ReplyModel) ([]*ticket.Reply, error) {
	replies := make([]*ticket.Reply, len(replyModels))
	for i, model := range replyModels {
		reply, err := r.mapper.ReplyToDomain(&model)
		if err != nil {
			return nil, err
		}
		replies[i] = reply
	}
	return replies, nil
}
