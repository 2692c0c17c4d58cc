package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TicketService is the interface that wraps methods for the support ticket business logic.
type TicketService interface {
	// Method CreateTicket opens a ticket from the caller to an existing recipient.
	//
	// "senderID" parameter is the authenticated caller.
	// "req" parameter carries the recipient and the content.
	//
	// If the recipient does not exist or validation fails, the error will be returned together with "nil" value.
	CreateTicket(ctx context.Context, senderID int, req *models.CreateTicketRequest) (*models.Ticket, error)
	// Method GetTicket retrieves a ticket visible to the caller.
	//
	// "ticketID" parameter selects the ticket.
	// "callerID" and "callerTier" parameters identify the caller for the access check.
	//
	// If the caller is neither a party of the ticket nor an admin, the error will be returned together with "nil" value.
	GetTicket(ctx context.Context, ticketID, callerID int, callerTier models.Tier) (*models.Ticket, error)
	// Method GetMyTickets retrieves tickets where the caller is sender or recipient.
	//
	// "callerID" parameter is the authenticated caller.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetMyTickets(ctx context.Context, callerID int) ([]models.Ticket, error)
	// Method UpdateTicketStatus opens or closes a ticket visible to the caller.
	//
	// "ticketID" parameter selects the ticket.
	// "callerID" and "callerTier" parameters identify the caller for the access check.
	// "req" parameter carries the new status.
	//
	// If the caller has no access or the status is invalid, the error will be returned together with "nil" value.
	UpdateTicketStatus(ctx context.Context, ticketID, callerID int, callerTier models.Tier, req *models.UpdateTicketStatusRequest) (*models.Ticket, error)
	// Method DeleteTicket removes a ticket.
	//
	// "ticketID" parameter selects the ticket.
	//
	// If ticket with such ID does not exist, the error will be returned.
	DeleteTicket(ctx context.Context, ticketID int) error
}

// TicketHandler handles support ticket HTTP requests
type TicketHandler struct {
	BaseHandler
	ticketService TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService TicketService, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		ticketService: ticketService,
	}
}

// RegisterRoutes registers the ticket routes. The router must already carry
// the auth middleware.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Post("/add", h.CreateTicket)
	r.Get("/my", h.GetMyTickets)
	r.Get("/{id}", h.GetTicket)
	r.Put("/{id}/status", h.UpdateStatus)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierAdmin))
		r.Delete("/{id}", h.DeleteTicket)
	})
}

// CreateTicket handles POST /tickets/add
// @Summary Open ticket
// @Description Open a support ticket from the caller to another user
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body models.CreateTicketRequest true "Recipient and content"
// @Success 201 {object} models.Ticket "Created ticket"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Recipient not found"
// @Router /tickets/add [post]
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	senderID, _ := middleware.GetUserID(r.Context())

	var req models.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), senderID, &req)
	if err != nil {
		h.Logger.Warn("failed to create ticket", zap.Int("senderId", senderID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, ticket)
}

// GetMyTickets handles GET /tickets/my
// @Summary Get own tickets
// @Description Get tickets where the caller is sender or recipient, newest-first
// @Tags tickets
// @Produce json
// @Success 200 {array} models.Ticket "List of tickets"
// @Router /tickets/my [get]
func (h *TicketHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserID(r.Context())

	tickets, err := h.ticketService.GetMyTickets(r.Context(), callerID)
	if err != nil {
		h.Logger.Error("failed to get tickets", zap.Int("userId", callerID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tickets)
}

// GetTicket handles GET /tickets/{id}
// @Summary Get ticket by ID
// @Description Get a ticket visible to the caller (sender, recipient or admin)
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} models.Ticket "Ticket data"
// @Failure 403 {object} map[string]string "No access to this ticket"
// @Failure 404 {object} map[string]string "Ticket not found"
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())
	callerTier, _ := middleware.GetTier(r.Context())

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID, callerID, callerTier)
	if err != nil {
		h.Logger.Warn("failed to get ticket", zap.Int("ticketId", ticketID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, ticket)
}

// UpdateStatus handles PUT /tickets/{id}/status
// @Summary Update ticket status
// @Description Open or close a ticket visible to the caller
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body models.UpdateTicketStatusRequest true "New status"
// @Success 200 {object} models.Ticket "Updated ticket"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "No access to this ticket"
// @Failure 404 {object} map[string]string "Ticket not found"
// @Router /tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())
	callerTier, _ := middleware.GetTier(r.Context())

	var req models.UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.ticketService.UpdateTicketStatus(r.Context(), ticketID, callerID, callerTier, &req)
	if err != nil {
		h.Logger.Warn("failed to update ticket status", zap.Int("ticketId", ticketID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, ticket)
}

// DeleteTicket handles DELETE /tickets/{id}
// @Summary Delete ticket
// @Description Delete a ticket, admins only
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} map[string]string "Ticket deleted"
// @Failure 404 {object} map[string]string "Ticket not found"
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.ticketService.DeleteTicket(r.Context(), ticketID); err != nil {
		h.Logger.Warn("failed to delete ticket", zap.Int("ticketId", ticketID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "ticket deleted successfully"})
}
