package salary

import "context"

// SalaryService writes an audit row with before/after snapshots in the same
// transaction as every mutation.
type SalaryService interface {
	CreateSalary(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (SalaryResponse, error)
	GetSalary(ctx context.Context, id int64) (SalaryResponse, error)
	ListSalaries(ctx context.Context, userID int64) ([]SalaryResponse, error)
}
