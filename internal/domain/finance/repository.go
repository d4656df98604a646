package finance

import "context"

type TransactionRepository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, id int64) (Transaction, error)
	GetByIDForUpdate(ctx context.Context, id int64) (Transaction, error)
	Update(ctx context.Context, t Transaction) (Transaction, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
}
