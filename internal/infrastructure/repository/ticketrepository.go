package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/infrastructure/persistence/mappers"
	"github.com/supportdesk/supportdesk/internal/infrastructure/persistence/models"
	"github.com/supportdesk/supportdesk/internal/shared/db"
)

// ticketUpdateColumns are rewritten by Update. seq and ticket_id stay put so
// a replaced ticket keeps its place in the list.
var ticketUpdateColumns = []string{
	"title",
	"description",
	"status",
	"priority",
	"user_id",
	"user_name",
	"user_email",
	"attachments",
	"created_at",
	"updated_at",
}

// TicketRepository is the sqlite-backed ticket store.
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
	model, messages, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db).WithContext(ctx)
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		return r.insertMessages(tx, messages)
	})
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) (bool, error) {
	model, messages, err := r.mapper.ToModel(t)
	if err != nil {
		return false, err
	}

	updated := false
	tx := db.GetTxFromContext(ctx, r.db).WithContext(ctx)
	err = tx.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&models.TicketModel{}).
			Where("ticket_id = ?", model.TicketID).
			Select(ticketUpdateColumns).
			Updates(model)
		if result.Error != nil {
			return fmt.Errorf("failed to update ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		updated = true

		if err := tx.Where("ticket_id = ?", model.TicketID).Delete(&models.MessageModel{}).Error; err != nil {
			return fmt.Errorf("failed to replace ticket messages: %w", err)
		}
		return r.insertMessages(tx, messages)
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db).WithContext(ctx)

	if err := tx.Where("ticket_id = ?", ticketID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	grouped, err := r.loadMessages(tx, []string{model.TicketID})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, grouped[model.TicketID])
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	var rows []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db).WithContext(ctx)

	if err := tx.
		Scopes(
			db.WhereIf("user_id", filter.UserID),
			db.WhereIf("status", filter.Status.String()),
			db.OrderBySeqDesc(),
		).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	if len(rows) == 0 {
		return []*ticket.Ticket{}, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].TicketID
	}
	grouped, err := r.loadMessages(tx, ids)
	if err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i], grouped[rows[i].TicketID])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (r *TicketRepository) insertMessages(tx *gorm.DB, messages []models.MessageModel) error {
	if len(messages) == 0 {
		return nil
	}
	if err := tx.Create(&messages).Error; err != nil {
		return fmt.Errorf("failed to save ticket messages: %w", err)
	}
	return nil
}

// loadMessages fetches the messages of every listed ticket in one query.
func (r *TicketRepository) loadMessages(tx *gorm.DB, ticketIDs []string) (map[string][]models.MessageModel, error) {
	var rows []models.MessageModel
	if err := tx.
		Where("ticket_id IN ?", ticketIDs).
		Order("ticket_id, position").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket messages: %w", err)
	}

	grouped := make(map[string][]models.MessageModel, len(ticketIDs))
	for _, row := range rows {
		grouped[row.TicketID] = append(grouped[row.TicketID], row)
	}
	return grouped, nil
}
