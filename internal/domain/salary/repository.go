package salary

import "context"

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id int64) (Salary, error)
	GetByIDForUpdate(ctx context.Context, id int64) (Salary, error)
	Update(ctx context.Context, s Salary) (Salary, error)
	ListByUser(ctx context.Context, userID int64) ([]Salary, error)
}
