package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
)

// TicketRepository is the interface that wraps methods for Ticket table data access
type TicketRepository interface {
	// Method Create inserts a new ticket into the database.
	//
	// "ticket" parameter is used to create a new ticket.
	//
	// If some error occurs during ticket creation, the error will be returned.
	Create(ctx context.Context, ticket *models.Ticket) error
	// Method GetByID retrieves a ticket by ID.
	//
	// "ticketID" parameter is used to retrieve a ticket by ID.
	//
	// If ticket with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, ticketID int) (*models.Ticket, error)
	// Method ListByUser retrieves tickets where the user is sender or
	// recipient, newest-first.
	//
	// "userID" parameter selects the user.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID int) ([]models.Ticket, error)
	// Method UpdateStatus sets the status of a ticket.
	//
	// "ticketID" parameter selects the ticket.
	// "status" parameter is the new status.
	//
	// If ticket with such ID does not exist, the error will be returned.
	UpdateStatus(ctx context.Context, ticketID, status int) error
	// Method Delete removes a ticket by ID.
	//
	// "ticketID" parameter selects the ticket.
	//
	// If ticket with such ID does not exist, the error will be returned.
	Delete(ctx context.Context, ticketID int) error
}

// TicketUserRepository is the interface that wraps the user lookup the ticket flow needs
type TicketUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// ticketService implements the support ticket flow
type ticketService struct {
	ticketRepo TicketRepository
	userRepo   TicketUserRepository
	logger     *zap.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository, userRepo TicketUserRepository, logger *zap.Logger) *ticketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateTicket opens a ticket from the caller to an existing recipient
func (s *ticketService) CreateTicket(ctx context.Context, senderID int, req *models.CreateTicketRequest) (*models.Ticket, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", models.ErrValidation)
	}
	if req.RecipientID == senderID {
		return nil, fmt.Errorf("%w: cannot open a ticket to yourself", models.ErrValidation)
	}

	// Recipient must exist
	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     content,
		Status:      models.TicketStatusOpen,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.Int("ticketId", ticket.ID),
		zap.Int("senderId", senderID),
		zap.Int("recipientId", req.RecipientID))
	return ticket, nil
}

// GetTicket retrieves a ticket visible to the caller.
//
// Only the sender, the recipient, or an admin may read a ticket.
func (s *ticketService) GetTicket(ctx context.Context, ticketID, callerID int, callerTier models.Tier) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !canAccessTicket(ticket, callerID, callerTier) {
		return nil, fmt.Errorf("%w: no access to this ticket", models.ErrForbidden)
	}
	return ticket, nil
}

// GetMyTickets retrieves tickets where the caller is sender or recipient
func (s *ticketService) GetMyTickets(ctx context.Context, callerID int) ([]models.Ticket, error) {
	return s.ticketRepo.ListByUser(ctx, callerID)
}

// UpdateTicketStatus opens or closes a ticket visible to the caller
func (s *ticketService) UpdateTicketStatus(ctx context.Context, ticketID, callerID int, callerTier models.Tier, req *models.UpdateTicketStatusRequest) (*models.Ticket, error) {
	if req.Status != models.TicketStatusOpen && req.Status != models.TicketStatusClosed {
		return nil, fmt.Errorf("%w: status must be %d (open) or %d (closed)", models.ErrValidation, models.TicketStatusOpen, models.TicketStatusClosed)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canAccessTicket(ticket, callerID, callerTier) {
		return nil, fmt.Errorf("%w: no access to this ticket", models.ErrForbidden)
	}

	if err = s.ticketRepo.UpdateStatus(ctx, ticketID, req.Status); err != nil {
		return nil, err
	}
	ticket.Status = req.Status
	return ticket, nil
}

// DeleteTicket removes a ticket, admins only
func (s *ticketService) DeleteTicket(ctx context.Context, ticketID int) error {
	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return err
	}

	s.logger.Info("ticket deleted", zap.Int("ticketId", ticketID))
	return nil
}

// canAccessTicket reports whether the caller may see the ticket
func canAccessTicket(ticket *models.Ticket, callerID int, callerTier models.Tier) bool {
	return ticket.SenderID == callerID || ticket.RecipientID == callerID || callerTier >= models.TierAdmin
}
