package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"opendesk/internal/domain/ticket"
	"opendesk/internal/infrastructure/persistence/mappers"
	"opendesk/internal/infrastructure/persistence/models"
	db "opendesk/internal/shared/db"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]bool{
	"id":            true,
	"code":          true,
	"status":        true,
	"priority":      true,
	"department_id": true,
	"staff_id":      true,
	"client_id":     true,
	"date_added":    true,
	"date_closed":   true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Duplicate-key errors from the unique index on code propagate to the
	// caller, which owns the retry.
	if err := tx.Create(model).Error; err != nil {
		return err
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so cleared pointer columns (assignee, date_closed) are
	// written back as NULL rather than skipped as zero values.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "date_added").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByIDs(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error) {
	if len(ticketIDs) == 0 {
		return nil, nil
	}

	var ticketModels []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("id IN ?", ticketIDs).
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}

	return tickets, nil
}

func (r *TicketRepository) List(
	ctx context.Context,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.TicketModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = r.applyOrderAndPage(query, filter)

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainSlice(ticketModels, total)
}

func (r *TicketRepository) Search(
	ctx context.Context,
	term string,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	pattern := "%" + term + "%"
	query := r.applyFilter(tx.Model(&models.TicketModel{}), filter).
		Where("code = ? OR summary LIKE ? OR email LIKE ?", term, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = r.applyOrderAndPage(query, filter)

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search tickets: %w", err)
	}

	return r.toDomainSlice(ticketModels, total)
}

func (r *TicketRepository) AutoCloseCandidates(
	ctx context.Context,
	departmentID uint,
	cutoff time.Time,
) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// Candidates must have at least one staff-authored reply, and the
	// newest one must predate the cutoff. Tickets without a staff reply
	// never match the subquery.
	newestStaffReply := tx.
		Model(&models.ReplyModel{}).
		Select("ticket_id, MAX(date_added) AS last_staff_reply").
		Where("type = ? AND staff_id IS NOT NULL", "reply").
		Group("ticket_id")

	var ticketModels []models.TicketModel
	err := tx.
		Model(&models.TicketModel{}).
		Joins("JOIN (?) AS sr ON sr.ticket_id = tickets.id", newestStaffReply).
		Where("tickets.department_id = ?", departmentID).
		Where("tickets.status NOT IN ?", []string{"in_progress", "closed"}).
		Where("sr.last_staff_reply < ?", cutoff.UnixMilli()).
		Find(&ticketModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find auto-close candidates: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}

	return tickets, nil
}

func (r *TicketRepository) applyFilter(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	return query
}

// applyOrderAndPage validates sorting against the whitelist and applies
// pagination.
func (r *TicketRepository) applyOrderAndPage(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedTicketOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("date_added DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	return query
}

func (r *TicketRepository) toDomainSlice(ticketModels []models.TicketModel, total int64) ([]*ticket.Ticket, int64, error) {
	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}
	return tickets, total, nil
}
