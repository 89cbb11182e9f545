package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportdesk/supportdesk/internal/application/ticket/usecases"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/utils"
)

type Handler struct {
	createTicketUC usecases.CreateTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	sendMessageUC  usecases.SendMessageExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getDashboardUC usecases.GetDashboardExecutor
	logger         logger.Interface
}

func NewHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	sendMessageUC usecases.SendMessageExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getDashboardUC usecases.GetDashboardExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createTicketUC: createTicketUC,
		updateTicketUC: updateTicketUC,
		sendMessageUC:  sendMessageUC,
		changeStatusUC: changeStatusUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		getDashboardUC: getDashboardUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /tickets
func (h *Handler) CreateTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTickets handles GET /tickets and GET /admin/tickets
func (h *Handler) ListTickets(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Status: c.Query("status"),
		Actor:  actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result, len(result))
}

// GetDashboard handles GET /dashboard and GET /admin/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.getDashboardUC.Execute(c.Request.Context(), usecases.GetDashboardQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /tickets/:id
func (h *Handler) GetTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseTicketIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PUT /tickets/:id. An ID that cannot name a ticket
// matches nothing, so the replace is skipped like any other unknown ID.
func (h *Handler) UpdateTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseTicketIDParam(c)
	if err != nil {
		h.logger.Infow("ticket replace ignored, unrecognised ticket id", "ticket_id", c.Param("id"))
		utils.SuccessResponse(c, http.StatusOK, "", UpdateTicketResponse{Updated: false})
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}
	if req.ID != ticketID {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket id in body does not match path"))
		return
	}

	cmd, err := req.ToCommand(actor)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid ticket record", err.Error()))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", UpdateTicketResponse{
		Updated: result.Updated,
		Ticket:  result.Ticket,
	})
}

// SendMessage handles POST /tickets/:id/messages
func (h *Handler) SendMessage(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseTicketIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.sendMessageUC.Execute(c.Request.Context(), usecases.SendMessageCommand{
		TicketID: ticketID,
		Content:  req.Content,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", SendMessageResponse{
		Sent:       result.Sent,
		SkipReason: result.SkipReason,
		Message:    result.Message,
		Ticket:     result.Ticket,
	})
}

// ChangeStatus handles PATCH /admin/tickets/:id/status
func (h *Handler) ChangeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseTicketIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change status", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: req.Status,
		Actor:     actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ChangeStatusResponse{
		Found:     result.Found,
		Changed:   result.Changed,
		OldStatus: result.OldStatus,
		NewStatus: result.NewStatus,
		Ticket:    result.Ticket,
	})
}

// requireActor reads the logged-in identity and answers 401 when there is none.
func requireActor(c *gin.Context) (usecases.Actor, bool) {
	state := middleware.CurrentSession(c)
	if state.User == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return usecases.Actor{}, false
	}
	u := state.User
	return usecases.Actor{
		UserID: u.ID(),
		Name:   u.Name(),
		Email:  u.Email(),
		Role:   u.Role(),
	}, true
}
