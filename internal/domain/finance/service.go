package finance

import "context"

type FinanceService interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	UpdateTransaction(ctx context.Context, req UpdateTransactionRequest) (TransactionResponse, error)
	DeleteTransaction(ctx context.Context, id, deletedBy int64) error
	GetTransaction(ctx context.Context, id int64) (TransactionResponse, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) (ListTransactionResponse, error)
}
