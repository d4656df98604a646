package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
)

type AbsenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &absenceHandlerImpl{absenceService: absenceService}
}

// Create files a request for the caller; admins may file for another user.
func (h *absenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req absence.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	var requested *int64
	if req.UserID != 0 {
		requested = &req.UserID
	}
	if req.UserID, err = c.ScopeUserID(requested); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.CreateAbsenceRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request created successfully", result)
}

func (h *absenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	response.Success(w, result)
}

func (h *absenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
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

	filter := absence.RequestFilter{
		Status: queryString(r, "status"),
		Type:   queryString(r, "type"),
		Params: queryPagination(r),
	}
	if requested != nil || !c.IsAdmin() {
		userID, err := c.ScopeUserID(requested)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.UserID = &userID
	}

	result, err := h.absenceService.ListAbsenceRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page))
}

func (h *absenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req absence.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = existing.ID

	result, err := h.absenceService.UpdateAbsenceRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request updated successfully", result)
}

func (h *absenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.absenceService.DeleteAbsenceRequest(r.Context(), existing.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request deleted successfully", nil)
}

func (h *absenceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.absenceService.ApproveAbsenceRequest, "Absence request approved")
}

func (h *absenceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.absenceService.RejectAbsenceRequest, "Absence request rejected")
}

func (h *absenceHandlerImpl) review(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id, reviewerID int64, notes *string) (absence.RequestResponse, error),
	message string,
) {
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

	var req absence.ReviewRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(r.Context(), id, c.UserID, req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// loadOwned fetches {id} and checks the caller may act on it.
func (h *absenceHandlerImpl) loadOwned(w http.ResponseWriter, r *http.Request) (absence.RequestResponse, bool) {
	c, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return absence.RequestResponse{}, false
	}

	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return absence.RequestResponse{}, false
	}

	result, err := h.absenceService.GetAbsenceRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return absence.RequestResponse{}, false
	}
	if err := c.CanAccess(result.UserID); err != nil {
		response.HandleError(w, err)
		return absence.RequestResponse{}, false
	}

	return result, true
}
