package pagination

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is embedded in list filters.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies defaults and returns the validation problems it found.
func (p *Params) Normalize() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if p.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if p.Page == 0 {
		p.Page = 1
	}

	if p.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	return errs
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is the metadata block returned with every list response.
type Page struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

// NewPage builds list metadata, e.g. "21-40 of 150 results".
func NewPage(p Params, total int64, returned int) Page {
	page := Page{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		Showing:    "0 results",
	}
	if p.Limit > 0 {
		page.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	if total == 0 || returned == 0 {
		return page
	}

	start := p.Offset() + 1
	end := start + returned - 1
	if end > int(total) {
		end = int(total)
	}
	page.Showing = fmt.Sprintf("%d-%d of %d results", start, end, total)
	return page
}
