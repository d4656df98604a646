package absence

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
	// Update rewrites dates, type and reason of a pending request. It returns
	// ErrAbsenceRequestNotPending when the row has already been reviewed.
	Update(ctx context.Context, req Request) (Request, error)
	// UpdateStatus moves a pending request to status. The row is only touched
	// while it is still pending; otherwise ErrAbsenceRequestNotPending.
	UpdateStatus(ctx context.Context, id int64, status Status, reviewerID int64, reviewDate time.Time, notes *string) (Request, error)
	// Delete removes a pending request, ErrAbsenceRequestNotPending otherwise.
	Delete(ctx context.Context, id int64) error
}
