package user

type Permission string

const (
	// Self service
	PermissionRecordViewOwn   Permission = "time_record.view_own"
	PermissionRecordCreate    Permission = "time_record.create"
	PermissionTimeBankViewOwn Permission = "time_bank.view_own"
	PermissionAbsenceCreate   Permission = "absence.create"

	// Time records
	PermissionRecordManage  Permission = "time_record.manage"
	PermissionRecordProcess Permission = "time_record.process"

	// Schedules
	PermissionScheduleManage Permission = "schedule.manage"

	// Time bank
	PermissionTimeBankViewAll Permission = "time_bank.view_all"
	PermissionTimeBankManage  Permission = "time_bank.manage"

	// Absences
	PermissionAbsenceReview Permission = "absence.review"

	// Payroll adjacent
	PermissionFinanceManage Permission = "finance.manage"
	PermissionAuditView     Permission = "audit.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionRecordViewOwn,
		PermissionRecordCreate,
		PermissionTimeBankViewOwn,
		PermissionAbsenceCreate,
		PermissionRecordManage,
		PermissionRecordProcess,
		PermissionScheduleManage,
		PermissionTimeBankViewAll,
		PermissionTimeBankManage,
		PermissionAbsenceReview,
		PermissionFinanceManage,
		PermissionAuditView,
	},
	RoleEmployee: {
		PermissionRecordViewOwn,
		PermissionRecordCreate,
		PermissionTimeBankViewOwn,
		PermissionAbsenceCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
