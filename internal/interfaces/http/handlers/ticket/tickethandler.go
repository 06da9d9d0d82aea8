package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opendesk/internal/application/ticket/usecases"
	"opendesk/internal/interfaces/http/middleware"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/utils"
)

// Identity is the acting staff member or contact resolved by the
// identity middleware. Both nil means an anonymous email-origin actor.
type Identity struct {
	StaffID   *uint
	ContactID *uint
}

func (i Identity) IsStaff() bool {
	return i.StaffID != nil
}

type TicketHandler struct {
	addTicketUC    usecases.AddTicketExecutor
	addReplyUC     usecases.AddReplyExecutor
	editTicketUC   usecases.EditTicketExecutor
	bulkEditUC     usecases.BulkEditExecutor
	closeTicketUC  usecases.CloseTicketExecutor
	mergeTicketsUC usecases.MergeTicketsExecutor
	splitTicketUC  usecases.SplitTicketExecutor
	getTicketUC    usecases.GetTicketExecutor
	getByCodeUC    usecases.GetTicketByCodeExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	searchUC       usecases.SearchTicketsExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	addTicketUC usecases.AddTicketExecutor,
	addReplyUC usecases.AddReplyExecutor,
	editTicketUC usecases.EditTicketExecutor,
	bulkEditUC usecases.BulkEditExecutor,
	closeTicketUC usecases.CloseTicketExecutor,
	mergeTicketsUC usecases.MergeTicketsExecutor,
	splitTicketUC usecases.SplitTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	getByCodeUC usecases.GetTicketByCodeExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	searchUC usecases.SearchTicketsExecutor,
) *TicketHandler {
	return &TicketHandler{
		addTicketUC:    addTicketUC,
		addReplyUC:     addReplyUC,
		editTicketUC:   editTicketUC,
		bulkEditUC:     bulkEditUC,
		closeTicketUC:  closeTicketUC,
		mergeTicketsUC: mergeTicketsUC,
		splitTicketUC:  splitTicketUC,
		getTicketUC:    getTicketUC,
		getByCodeUC:    getByCodeUC,
		listTicketsUC:  listTicketsUC,
		searchUC:       searchUC,
		logger:         logger.NewLogger(),
	}
}

// AddTicket handles POST /tickets
func (h *TicketHandler) AddTicket(c *gin.Context) {
	var req AddTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.addTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GetTicketCommand{
		TicketID:  ticketID,
		StaffView: actorIdentity(c).IsStaff(),
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicketByCode handles GET /tickets/code/:code
func (h *TicketHandler) GetTicketByCode(c *gin.Context) {
	cmd := usecases.GetTicketByCodeCommand{
		Code:      c.Param("code"),
		ReplyCode: c.Query("reply_code"),
		StaffView: actorIdentity(c).IsStaff(),
	}

	result, err := h.getByCodeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	cmd, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// SearchTickets handles GET /tickets/search
func (h *TicketHandler) SearchTickets(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)
	cmd := usecases.SearchTicketsCommand{
		Term:     c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.searchUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AddReply handles POST /tickets/:id/replies
func (h *TicketHandler) AddReply(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add reply", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd, err := req.ToCommand(ticketID, actorIdentity(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addReplyUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Reply recorded successfully")
}

// EditTicket handles PATCH /tickets/:id
func (h *TicketHandler) EditTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for edit ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := req.ToCommand(ticketID, actorIdentity(c).StaffID)

	result, err := h.editTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// BulkEdit handles POST /tickets/bulk
func (h *TicketHandler) BulkEdit(c *gin.Context) {
	var req BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bulk edit", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.bulkEditUC.Execute(c.Request.Context(), req.ToCommand(actorIdentity(c).StaffID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk edit completed", result)
}

// CloseTicket handles POST /tickets/:id/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CloseTicketCommand{
		TicketID:  ticketID,
		ByStaffID: actorIdentity(c).StaffID,
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed successfully", result)
}

// MergeTickets handles POST /tickets/merge
func (h *TicketHandler) MergeTickets(c *gin.Context) {
	var req MergeTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merge tickets", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.MergeTicketsCommand{
		TargetID:  req.TargetID,
		SourceIDs: req.SourceIDs,
	}

	result, err := h.mergeTicketsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets merged successfully", result)
}

// SplitTicket handles POST /tickets/:id/split
func (h *TicketHandler) SplitTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SplitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for split ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.SplitTicketCommand{
		TicketID:  ticketID,
		ReplyIDs:  req.ReplyIDs,
		ByStaffID: actorIdentity(c).StaffID,
	}

	result, err := h.splitTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket split successfully")
}

func parseTicketID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}

func actorIdentity(c *gin.Context) Identity {
	var identity Identity
	if v, ok := c.Get(middleware.ContextStaffID); ok {
		if id, ok := v.(uint); ok {
			identity.StaffID = &id
		}
	}
	if v, ok := c.Get(middleware.ContextContactID); ok {
		if id, ok := v.(uint); ok {
			identity.ContactID = &id
		}
	}
	return identity
}
