package http

import (
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/finance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/shopspring/decimal"
)

type FinanceHandler interface {
	CreateSalary(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)

	CreateTransaction(w http.ResponseWriter, r *http.Request)
	UpdateTransaction(w http.ResponseWriter, r *http.Request)
	DeleteTransaction(w http.ResponseWriter, r *http.Request)
	GetTransaction(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)

	ListAuditLogs(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	salaryService  salary.SalaryService
	financeService finance.FinanceService
	auditService   audit.AuditService
}

func NewFinanceHandler(salaryService salary.SalaryService, financeService finance.FinanceService, auditService audit.AuditService) FinanceHandler {
	return &financeHandlerImpl{
		salaryService:  salaryService,
		financeService: financeService,
		auditService:   auditService,
	}
}

func (h *financeHandlerImpl) CreateSalary(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req salary.CreateSalaryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = c.UserID

	result, err := h.salaryService.CreateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary created successfully", result)
}

func (h *financeHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req salary.UpdateSalaryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id
	req.UpdatedBy = c.UserID

	result, err := h.salaryService.UpdateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated successfully", result)
}

func (h *financeHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetSalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := c.CanAccess(result.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.ListSalaries(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req finance.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = c.UserID

	result, err := h.financeService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction created successfully", result)
}

func (h *financeHandlerImpl) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req finance.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id
	req.UpdatedBy = c.UserID

	result, err := h.financeService.UpdateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction updated successfully", result)
}

func (h *financeHandlerImpl) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.financeService.DeleteTransaction(r.Context(), id, c.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction deleted successfully", nil)
}

func (h *financeHandlerImpl) GetTransaction(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.financeService.GetTransaction(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := c.CanAccess(result.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requested, err := queryID(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := finance.TransactionFilter{
		Type:      queryString(r, "type"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Params:    queryPagination(r),
	}
	if requested != nil || !c.IsAdmin() {
		userID, err := c.ScopeUserID(requested)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.UserID = &userID
	}

	result, err := h.financeService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := struct {
		Transactions []finance.TransactionResponse `json:"transactions"`
		Net          decimal.Decimal               `json:"net"`
	}{result.Transactions, result.Net}
	response.SuccessWithMeta(w, data, response.NewMeta(result.Page))
}

func (h *financeHandlerImpl) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	entityID, err := queryID(r, "entity_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	performedBy, err := queryID(r, "performed_by")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := audit.LogFilter{
		EntityType:    queryString(r, "entity_type"),
		EntityID:      entityID,
		PerformedBy:   performedBy,
		CorrelationID: queryString(r, "correlation_id"),
		Params:        queryPagination(r),
	}

	result, err := h.auditService.ListAuditLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, response.NewMeta(result.Page))
}
