package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// caller is the authenticated user behind a request.
type caller struct {
	UserID int64
	Role   user.Role
}

func (c caller) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// ScopeUserID picks whose data a request reads. Employees are pinned to
// themselves; admins may name anyone and default to themselves.
func (c caller) ScopeUserID(requested *int64) (int64, error) {
	if requested == nil {
		return c.UserID, nil
	}
	if *requested != c.UserID && !c.IsAdmin() {
		return 0, user.ErrForeignResource
	}
	return *requested, nil
}

// CanAccess is nil when the caller may see a resource owned by ownerID.
func (c caller) CanAccess(ownerID int64) error {
	if c.IsAdmin() || c.UserID == ownerID {
		return nil
	}
	return user.ErrForeignResource
}

func callerFromRequest(r *http.Request) (caller, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return caller{}, auth.ErrInvalidToken
	}

	var id int64
	switch v := claims["user_id"].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case json.Number:
		id, err = v.Int64()
		if err != nil {
			return caller{}, auth.ErrInvalidToken
		}
	default:
		return caller{}, auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || id <= 0 {
		return caller{}, auth.ErrInvalidToken
	}

	return caller{UserID: id, Role: user.Role(role)}, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validator.ValidationErrors{{
			Field:   "body",
			Message: fmt.Sprintf("invalid request body: %v", err),
		}}
	}
	return nil
}

func urlID(r *http.Request, param string) (int64, error) {
	id, ok := validator.ParseID(chi.URLParam(r, param))
	if !ok {
		return 0, validator.ValidationErrors{{
			Field:   param,
			Message: param + " must be a positive integer",
		}}
	}
	return id, nil
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryID(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, ok := validator.ParseID(raw)
	if !ok {
		return nil, validator.ValidationErrors{{
			Field:   key,
			Message: key + " must be a positive integer",
		}}
	}
	return &id, nil
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// queryPagination reads page and limit; Normalize on the filter rejects bad values.
func queryPagination(r *http.Request) pagination.Params {
	var p pagination.Params
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		p.Limit = v
	}
	return p
}
