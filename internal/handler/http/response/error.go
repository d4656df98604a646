package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/finance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, user.ErrUserInactive),
		errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrForeignResource):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, schedule.ErrWorkScheduleNotFound),
		errors.Is(err, schedule.ErrWorkScheduleDetailNotFound),
		errors.Is(err, schedule.ErrEmployeeScheduleNotFound),
		errors.Is(err, timerecord.ErrTimeRecordNotFound),
		errors.Is(err, timebank.ErrEntryNotFound),
		errors.Is(err, absence.ErrAbsenceRequestNotFound),
		errors.Is(err, salary.ErrSalaryNotFound),
		errors.Is(err, finance.ErrTransactionNotFound),
		errors.Is(err, audit.ErrAuditLogNotFound):
		NotFound(w, err.Error())

	// Invalid state
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, schedule.ErrWorkScheduleNameExists),
		errors.Is(err, schedule.ErrWorkScheduleInUse),
		errors.Is(err, schedule.ErrDuplicateWeekday),
		errors.Is(err, schedule.ErrOverlappingScheduleAssignment),
		errors.Is(err, schedule.ErrNoActiveSchedule),
		errors.Is(err, timerecord.ErrRecordAlreadyProcessed),
		errors.Is(err, timerecord.ErrNotClockOut),
		errors.Is(err, absence.ErrAbsenceRequestNotPending):
		Conflict(w, err.Error())

	// Time bank
	case errors.Is(err, timebank.ErrInsufficientBalance):
		InsufficientBalance(w, err.Error())

	// Validation raised below the DTO layer
	case errors.Is(err, schedule.ErrInvalidDateFormat),
		errors.Is(err, timerecord.ErrTimestampInFuture):
		ValidationError(w, map[string]string{"request": err.Error()})

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
