package absence

import "context"

type AbsenceService interface {
	CreateAbsenceRequest(ctx context.Context, req CreateRequest) (RequestResponse, error)
	GetAbsenceRequest(ctx context.Context, id int64) (RequestResponse, error)
	ListAbsenceRequests(ctx context.Context, filter RequestFilter) (ListRequestResponse, error)
	UpdateAbsenceRequest(ctx context.Context, req UpdateRequest) (RequestResponse, error)
	DeleteAbsenceRequest(ctx context.Context, id int64) error

	// ApproveAbsenceRequest approves a pending request. Approving a
	// compensation absence debits the time bank in the same transaction.
	ApproveAbsenceRequest(ctx context.Context, id, reviewerID int64, notes *string) (RequestResponse, error)
	RejectAbsenceRequest(ctx context.Context, id, reviewerID int64, notes *string) (RequestResponse, error)
}
