package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxWeeklyHours = decimal.NewFromInt(168)

type CreateWorkScheduleRequest struct {
	Name             string                            `json:"name"`
	Type             string                            `json:"type"`
	WeeklyHours      decimal.Decimal                   `json:"weekly_hours"`
	ToleranceMinutes *int                              `json:"tolerance_minutes,omitempty"`
	BreakTime        *int                              `json:"break_time,omitempty"`
	Details          []CreateWorkScheduleDetailRequest `json:"details,omitempty"`
	CreatedBy        int64                             `json:"-"`
}

func (r *CreateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if !validator.IsInSlice(r.Type, ScheduleTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ScheduleTypeValues, ", "),
		})
	}
	errs = append(errs, validateWeeklyHours(r.WeeklyHours)...)
	errs = append(errs, validateNonNegative("tolerance_minutes", r.ToleranceMinutes)...)
	errs = append(errs, validateNonNegative("break_time", r.BreakTime)...)

	seen := make(map[string]bool)
	for i := range r.Details {
		d := &r.Details[i]
		prefix := fmt.Sprintf("details[%d].", i)
		for _, e := range d.validate() {
			e.Field = prefix + e.Field
			errs = append(errs, e)
		}
		if seen[d.Weekday] {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + "weekday",
				Message: "weekday " + d.Weekday + " is listed more than once",
			})
		}
		seen[d.Weekday] = true
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkScheduleRequest struct {
	ID               int64            `json:"-"`
	Name             *string          `json:"name,omitempty"`
	Type             *string          `json:"type,omitempty"`
	WeeklyHours      *decimal.Decimal `json:"weekly_hours,omitempty"`
	ToleranceMinutes *int             `json:"tolerance_minutes,omitempty"`
	BreakTime        *int             `json:"break_time,omitempty"`
}

func (r *UpdateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, ScheduleTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ScheduleTypeValues, ", "),
		})
	}
	if r.WeeklyHours != nil {
		errs = append(errs, validateWeeklyHours(*r.WeeklyHours)...)
	}
	errs = append(errs, validateNonNegative("tolerance_minutes", r.ToleranceMinutes)...)
	errs = append(errs, validateNonNegative("break_time", r.BreakTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply copies the set fields onto ws.
func (r *UpdateWorkScheduleRequest) Apply(ws *WorkSchedule) {
	if r.Name != nil {
		ws.Name = strings.TrimSpace(*r.Name)
	}
	if r.Type != nil {
		ws.Type = ScheduleType(*r.Type)
	}
	if r.WeeklyHours != nil {
		ws.WeeklyHours = *r.WeeklyHours
	}
	if r.ToleranceMinutes != nil {
		ws.ToleranceMinutes = r.ToleranceMinutes
	}
	if r.BreakTime != nil {
		ws.BreakTime = r.BreakTime
	}
}

type WorkScheduleFilter struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
	pagination.Params

	SortBy    string `json:"sort_by"`    // name, type, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *WorkScheduleFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Type != nil && !validator.IsInSlice(*f.Type, ScheduleTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ScheduleTypeValues, ", "),
		})
	}

	if f.SortBy != "" {
		if !validator.IsInSlice(f.SortBy, []string{"name", "type", "created_at"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: name, type, created_at",
			})
		}
	} else {
		f.SortBy = "name"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateWorkScheduleDetailRequest struct {
	ScheduleID int64   `json:"-"`
	Weekday    string  `json:"weekday"`
	StartTime  string  `json:"start_time"`            // HH:MM
	EndTime    string  `json:"end_time"`              // HH:MM
	BreakStart *string `json:"break_start,omitempty"` // HH:MM
	BreakEnd   *string `json:"break_end,omitempty"`   // HH:MM
	IsWorkDay  *bool   `json:"is_work_day,omitempty"`
}

func (r *CreateWorkScheduleDetailRequest) Validate() error {
	if errs := r.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateWorkScheduleDetailRequest) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Weekday, WeekdayValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be one of: " + strings.Join(WeekdayValues, ", "),
		})
	}
	errs = append(errs, validateTimes(r.StartTime, r.EndTime, r.BreakStart, r.BreakEnd)...)

	return errs
}

// ToEntity converts a validated request.
func (r *CreateWorkScheduleDetailRequest) ToEntity(scheduleID int64) WorkScheduleDetail {
	d := WorkScheduleDetail{
		ScheduleID: scheduleID,
		Weekday:    Weekday(r.Weekday),
		IsWorkDay:  true,
	}
	d.StartTime, _ = ParseTimeOfDay(r.StartTime)
	d.EndTime, _ = ParseTimeOfDay(r.EndTime)
	d.BreakStart = parseOptionalTime(r.BreakStart)
	d.BreakEnd = parseOptionalTime(r.BreakEnd)
	if r.IsWorkDay != nil {
		d.IsWorkDay = *r.IsWorkDay
	}
	return d
}

type UpdateWorkScheduleDetailRequest struct {
	ID         int64   `json:"-"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	ClearBreak bool    `json:"clear_break,omitempty"`
	IsWorkDay  *bool   `json:"is_work_day,omitempty"`
}

// Apply merges the request onto d and validates the merged result.
func (r *UpdateWorkScheduleDetailRequest) Apply(d *WorkScheduleDetail) error {
	start := d.StartTime.String()
	end := d.EndTime.String()
	breakStart := formatOptionalTime(d.BreakStart)
	breakEnd := formatOptionalTime(d.BreakEnd)

	if r.StartTime != nil {
		start = *r.StartTime
	}
	if r.EndTime != nil {
		end = *r.EndTime
	}
	if r.ClearBreak {
		breakStart, breakEnd = nil, nil
	}
	if r.BreakStart != nil {
		breakStart = r.BreakStart
	}
	if r.BreakEnd != nil {
		breakEnd = r.BreakEnd
	}

	if errs := validateTimes(start, end, breakStart, breakEnd); len(errs) > 0 {
		return errs
	}

	d.StartTime, _ = ParseTimeOfDay(start)
	d.EndTime, _ = ParseTimeOfDay(end)
	d.BreakStart = parseOptionalTime(breakStart)
	d.BreakEnd = parseOptionalTime(breakEnd)
	if r.IsWorkDay != nil {
		d.IsWorkDay = *r.IsWorkDay
	}
	return nil
}

type AssignScheduleRequest struct {
	UserID     int64   `json:"user_id"`
	ScheduleID int64   `json:"schedule_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	Notes      string  `json:"notes"`
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.ScheduleID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}
	if len(r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request.
func (r *AssignScheduleRequest) ToEntity() EmployeeSchedule {
	start, _ := validator.IsValidDate(r.StartDate)
	a := EmployeeSchedule{
		UserID:     r.UserID,
		ScheduleID: r.ScheduleID,
		StartDate:  start,
		Notes:      r.Notes,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, _ := validator.IsValidDate(*r.EndDate)
		a.EndDate = &end
	}
	return a
}

type WorkScheduleResponse struct {
	ID               int64                        `json:"id"`
	Name             string                       `json:"name"`
	Type             string                       `json:"type"`
	WeeklyHours      decimal.Decimal              `json:"weekly_hours"`
	ToleranceMinutes *int                         `json:"tolerance_minutes,omitempty"`
	BreakTime        *int                         `json:"break_time,omitempty"`
	CreatedBy        int64                        `json:"created_by"`
	Details          []WorkScheduleDetailResponse `json:"details,omitempty"`
	CreatedAt        string                       `json:"created_at"`
	UpdatedAt        string                       `json:"updated_at"`
}

type ListWorkScheduleResponse struct {
	pagination.Page
	WorkSchedules []WorkScheduleResponse `json:"work_schedules"`
}

type WorkScheduleDetailResponse struct {
	ID              int64   `json:"id"`
	ScheduleID      int64   `json:"schedule_id"`
	Weekday         string  `json:"weekday"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	BreakStart      *string `json:"break_start,omitempty"`
	BreakEnd        *string `json:"break_end,omitempty"`
	IsWorkDay       bool    `json:"is_work_day"`
	ExpectedMinutes int     `json:"expected_minutes"`
}

type EmployeeScheduleResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	ScheduleID int64   `json:"schedule_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	Notes      string  `json:"notes"`
	CreatedAt  string  `json:"created_at"`
}

type AssignScheduleResponse struct {
	Assignment        EmployeeScheduleResponse `json:"assignment"`
	ClosedAssignments int64                    `json:"closed_assignments"`
}

type ScheduleForDateResponse struct {
	Date         string                      `json:"date"`
	Weekday      string                      `json:"weekday"`
	IsWorkingDay bool                        `json:"is_working_day"`
	Schedule     *WorkScheduleResponse       `json:"schedule,omitempty"`
	Detail       *WorkScheduleDetailResponse `json:"detail,omitempty"`
}

func NewWorkScheduleResponse(ws WorkSchedule) WorkScheduleResponse {
	resp := WorkScheduleResponse{
		ID:               ws.ID,
		Name:             ws.Name,
		Type:             string(ws.Type),
		WeeklyHours:      ws.WeeklyHours,
		ToleranceMinutes: ws.ToleranceMinutes,
		BreakTime:        ws.BreakTime,
		CreatedBy:        ws.CreatedBy,
		CreatedAt:        ws.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        ws.UpdatedAt.Format(time.RFC3339),
	}
	for _, d := range ws.Details {
		resp.Details = append(resp.Details, NewWorkScheduleDetailResponse(d))
	}
	return resp
}

func NewWorkScheduleDetailResponse(d WorkScheduleDetail) WorkScheduleDetailResponse {
	return WorkScheduleDetailResponse{
		ID:              d.ID,
		ScheduleID:      d.ScheduleID,
		Weekday:         string(d.Weekday),
		StartTime:       d.StartTime.String(),
		EndTime:         d.EndTime.String(),
		BreakStart:      formatOptionalTime(d.BreakStart),
		BreakEnd:        formatOptionalTime(d.BreakEnd),
		IsWorkDay:       d.IsWorkDay,
		ExpectedMinutes: d.ExpectedMinutes(),
	}
}

func NewEmployeeScheduleResponse(a EmployeeSchedule) EmployeeScheduleResponse {
	resp := EmployeeScheduleResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		ScheduleID: a.ScheduleID,
		StartDate:  a.StartDate.Format("2006-01-02"),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	if a.EndDate != nil {
		end := a.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func NewScheduleForDateResponse(date time.Time, s ScheduleForDate) ScheduleForDateResponse {
	resp := ScheduleForDateResponse{
		Date:         date.Format("2006-01-02"),
		Weekday:      string(WeekdayOf(date)),
		IsWorkingDay: s.IsWorkingDay(),
	}
	if s.Schedule != nil {
		ws := NewWorkScheduleResponse(*s.Schedule)
		ws.Details = nil
		resp.Schedule = &ws
	}
	if s.Detail != nil {
		d := NewWorkScheduleDetailResponse(*s.Detail)
		resp.Detail = &d
	}
	return resp
}

func validateWeeklyHours(h decimal.Decimal) validator.ValidationErrors {
	if !h.IsPositive() || h.GreaterThan(maxWeeklyHours) {
		return validator.ValidationErrors{{
			Field:   "weekly_hours",
			Message: "weekly_hours must be greater than 0 and at most 168",
		}}
	}
	return nil
}

func validateNonNegative(field string, v *int) validator.ValidationErrors {
	if v != nil && *v < 0 {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a non-negative number",
		}}
	}
	return nil
}

func validateTimes(start, end string, breakStart, breakEnd *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidTime(start); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}
	if _, ok := validator.IsValidTime(end); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time in HH:MM format",
		})
	}
	if start == end && len(errs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must differ from start_time",
		})
	}

	if (breakStart == nil) != (breakEnd == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end",
			Message: "break_start and break_end must be provided together",
		})
		return errs
	}
	if breakStart == nil {
		return errs
	}

	if _, ok := validator.IsValidTime(*breakStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start",
			Message: "break_start must be a valid time in HH:MM format",
		})
	}
	if _, ok := validator.IsValidTime(*breakEnd); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end",
			Message: "break_end must be a valid time in HH:MM format",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	s, _ := ParseTimeOfDay(start)
	e, _ := ParseTimeOfDay(end)
	bs, _ := ParseTimeOfDay(*breakStart)
	be, _ := ParseTimeOfDay(*breakEnd)
	// Day shifts must contain the break; overnight shifts are not checked.
	if e > s && (bs < s || be > e || be <= bs) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start",
			Message: "break must fall within start_time and end_time",
		})
	}

	return errs
}

func parseOptionalTime(s *string) *TimeOfDay {
	if s == nil {
		return nil
	}
	t, err := ParseTimeOfDay(*s)
	if err != nil {
		return nil
	}
	return &t
}

func formatOptionalTime(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
