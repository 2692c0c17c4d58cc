package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dokuhost/admin-service/internal/models"
)

// ticketRepository implements ticket data access
type ticketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *ticketRepository {
	return &ticketRepository{
		db: db,
	}
}

// Create inserts a new ticket
func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (sender_id, recipient_id, content, status)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, ticket.SenderID, ticket.RecipientID, ticket.Content, ticket.Status)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ticket.ID = int(id)
	return nil
}

// GetByID retrieves a ticket by ID
func (r *ticketRepository) GetByID(ctx context.Context, ticketID int) (*models.Ticket, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, status, created_at
		FROM tickets
		WHERE id = ?
		LIMIT 1
	`

	ticket := &models.Ticket{}
	err := r.db.QueryRowContext(ctx, query, ticketID).Scan(
		&ticket.ID, &ticket.SenderID, &ticket.RecipientID,
		&ticket.Content, &ticket.Status, &ticket.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: ticket %d", models.ErrNotFound, ticketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket by id: %w", err)
	}

	return ticket, nil
}

// ListByUser retrieves all tickets sent or received by a user, newest-first
func (r *ticketRepository) ListByUser(ctx context.Context, userID int) ([]models.Ticket, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, status, created_at
		FROM tickets
		WHERE sender_id = ? OR recipient_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.ID, &ticket.SenderID, &ticket.RecipientID,
			&ticket.Content, &ticket.Status, &ticket.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tickets, nil
}

// UpdateStatus sets a ticket's status
func (r *ticketRepository) UpdateStatus(ctx context.Context, ticketID, status int) error {
	query := `UPDATE tickets SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, ticketID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: ticket %d", models.ErrNotFound, ticketID)
	}

	return nil
}

// Delete removes a ticket by ID
func (r *ticketRepository) Delete(ctx context.Context, ticketID int) error {
	query := `DELETE FROM tickets WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: ticket %d", models.ErrNotFound, ticketID)
	}

	return nil
}
