package http

import (
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/workhours"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
)

type TimeBankHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	CreateEntry(w http.ResponseWriter, r *http.Request)
	Compensate(w http.ResponseWriter, r *http.Request)
	GetWorkedHours(w http.ResponseWriter, r *http.Request)
}

type timeBankHandlerImpl struct {
	timeBankService  timebank.TimeBankService
	workHoursService workhours.WorkHoursService
}

func NewTimeBankHandler(timeBankService timebank.TimeBankService, workHoursService workhours.WorkHoursService) TimeBankHandler {
	return &timeBankHandlerImpl{
		timeBankService:  timeBankService,
		workHoursService: workHoursService,
	}
}

func (h *timeBankHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	minutes, err := h.timeBankService.GetBalance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timebank.NewBalanceResponse(userID, minutes))
}

func (h *timeBankHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.timeBankService.GetBalanceSummary(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *timeBankHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	filter := timebank.EntryFilter{
		UserID:             userID,
		Type:               queryString(r, "type"),
		StartDate:          queryString(r, "start_date"),
		EndDate:            queryString(r, "end_date"),
		IncludeCompensated: queryBool(r, "include_compensated"),
		Params:             queryPagination(r),
	}

	result, err := h.timeBankService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, response.NewMeta(result.Page))
}

func (h *timeBankHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timebank.CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = c.UserID

	result, err := h.timeBankService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time bank entry created successfully", result)
}

func (h *timeBankHandlerImpl) Compensate(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body timebank.CompensateHoursRequest
	if err := decodeJSON(r, &body); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := body.ToCompensateRequest(c.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	compensated, err := h.timeBankService.CompensateHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.timeBankService.GetBalance(r.Context(), req.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Compensation processed", timebank.CompensationResponse{
		Compensated:    compensated,
		BalanceMinutes: balance,
	})
}

// GetWorkedHours reports worked, regular, overtime, missing and late minutes
// for ?start_date..?end_date.
func (h *timeBankHandlerImpl) GetWorkedHours(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	result, err := h.workHoursService.CalculateWorkedHours(
		r.Context(),
		userID,
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
