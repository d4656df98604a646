package http

import (
	"net"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
)

type TimeRecordHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
}

type timeRecordHandlerImpl struct {
	timeRecordService timerecord.TimeRecordService
	timeBankService   timebank.TimeBankService
}

func NewTimeRecordHandler(timeRecordService timerecord.TimeRecordService, timeBankService timebank.TimeBankService) TimeRecordHandler {
	return &timeRecordHandlerImpl{
		timeRecordService: timeRecordService,
		timeBankService:   timeBankService,
	}
}

// Register clocks the caller in or out.
func (h *timeRecordHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timerecord.RegisterRecordRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	req.UserID = c.UserID
	req.IPAddress = clientIP(r)

	result, err := h.timeRecordService.RegisterRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time record registered successfully", result)
}

func (h *timeRecordHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timerecord.ManualRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = c.UserID
	req.IPAddress = clientIP(r)

	result, err := h.timeRecordService.CreateManualRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual time record created successfully", result)
}

func (h *timeRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
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

	filter := timerecord.TimeRecordFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Type:      queryString(r, "type"),
		Params:    queryPagination(r),
	}
	// Admins without user_id list everyone.
	if requested != nil || !c.IsAdmin() {
		userID, err := c.ScopeUserID(requested)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.UserID = &userID
	}

	result, err := h.timeRecordService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, response.NewMeta(result.Page))
}

func (h *timeRecordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.timeRecordService.GetRecord(r.Context(), id)
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

func (h *timeRecordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timeRecordService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record deleted successfully", nil)
}

// Process runs one clock-out through the time bank processor.
func (h *timeRecordHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
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

	credited, err := h.timeBankService.ProcessTimeRecord(r.Context(), id, c.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"record_id": id,
		"credited":  credited,
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
