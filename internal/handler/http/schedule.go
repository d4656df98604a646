package http

import (
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

type ScheduleHandler interface {
	// Work Schedule
	CreateWorkSchedule(w http.ResponseWriter, r *http.Request)
	GetWorkSchedule(w http.ResponseWriter, r *http.Request)
	ListWorkSchedules(w http.ResponseWriter, r *http.Request)
	UpdateWorkSchedule(w http.ResponseWriter, r *http.Request)
	DeleteWorkSchedule(w http.ResponseWriter, r *http.Request)

	// Work Schedule Detail
	CreateWorkScheduleDetail(w http.ResponseWriter, r *http.Request)
	UpdateWorkScheduleDetail(w http.ResponseWriter, r *http.Request)
	DeleteWorkScheduleDetail(w http.ResponseWriter, r *http.Request)

	// Employee Schedule
	AssignSchedule(w http.ResponseWriter, r *http.Request)
	ListEmployeeSchedules(w http.ResponseWriter, r *http.Request)
	DeleteEmployeeSchedule(w http.ResponseWriter, r *http.Request)
	ResolveSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ==================== WORK SCHEDULE HANDLERS ====================

func (h *scheduleHandlerImpl) CreateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.CreateWorkScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = c.UserID

	result, err := h.scheduleService.CreateWorkSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule created successfully", result)
}

func (h *scheduleHandlerImpl) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.GetWorkSchedule(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListWorkSchedules(w http.ResponseWriter, r *http.Request) {
	filter := schedule.WorkScheduleFilter{
		Name:   queryString(r, "name"),
		Type:   queryString(r, "type"),
		Params: queryPagination(r),
	}
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	result, err := h.scheduleService.ListWorkSchedules(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.WorkSchedules, response.NewMeta(result.Page))
}

func (h *scheduleHandlerImpl) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.UpdateWorkScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id

	result, err := h.scheduleService.UpdateWorkSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteWorkSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.scheduleService.DeleteWorkSchedule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule deleted successfully", nil)
}

// ==================== WORK SCHEDULE DETAIL HANDLERS ====================

func (h *scheduleHandlerImpl) CreateWorkScheduleDetail(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.CreateWorkScheduleDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ScheduleID = scheduleID

	result, err := h.scheduleService.CreateWorkScheduleDetail(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule detail created successfully", result)
}

func (h *scheduleHandlerImpl) UpdateWorkScheduleDetail(w http.ResponseWriter, r *http.Request) {
	detailID, err := urlID(r, "detailID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.UpdateWorkScheduleDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = detailID

	result, err := h.scheduleService.UpdateWorkScheduleDetail(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule detail updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteWorkScheduleDetail(w http.ResponseWriter, r *http.Request) {
	detailID, err := urlID(r, "detailID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.scheduleService.DeleteWorkScheduleDetail(r.Context(), detailID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule detail deleted successfully", nil)
}

// ==================== EMPLOYEE SCHEDULE HANDLERS ====================

func (h *scheduleHandlerImpl) AssignSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.AssignSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule assigned successfully", result)
}

func (h *scheduleHandlerImpl) ListEmployeeSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	result, err := h.scheduleService.ListEmployeeSchedules(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) DeleteEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.scheduleService.DeleteEmployeeSchedule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule assignment deleted successfully", nil)
}

// ResolveSchedule answers which schedule applies to a user on ?date (YYYY-MM-DD).
func (h *scheduleHandlerImpl) ResolveSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := scopedUserID(w, r)
	if !ok {
		return
	}

	date, valid := validator.IsValidDate(r.URL.Query().Get("date"))
	if !valid {
		response.HandleError(w, schedule.ErrInvalidDateFormat)
		return
	}

	result, err := h.scheduleService.GetScheduleForDate(r.Context(), userID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule.NewScheduleForDateResponse(date, result))
}

// scopedUserID resolves ?user_id for the caller and writes the error response
// itself when the request is not allowed.
func scopedUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return 0, false
	}

	requested, err := queryID(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return 0, false
	}

	userID, err := c.ScopeUserID(requested)
	if err != nil {
		response.HandleError(w, err)
		return 0, false
	}
	return userID, true
}
