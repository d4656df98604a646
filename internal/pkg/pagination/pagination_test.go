package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	p := Params{}
	errs := p.Normalize()

	assert.Empty(t, errs)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestNormalize_Rejects(t *testing.T) {
	p := Params{Page: -1, Limit: 500}
	errs := p.Normalize()

	m := errs.ToMap()
	assert.Contains(t, m, "page")
	assert.Contains(t, m, "limit")
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		total    int64
		returned int
		pages    int
		showing  string
	}{
		{"middle page", Params{Page: 2, Limit: 20}, 150, 20, 8, "21-40 of 150 results"},
		{"last partial page", Params{Page: 8, Limit: 20}, 150, 10, 8, "141-150 of 150 results"},
		{"empty", Params{Page: 1, Limit: 20}, 0, 0, 0, "0 results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.params, tt.total, tt.returned)
			assert.Equal(t, tt.pages, page.TotalPages)
			assert.Equal(t, tt.showing, page.Showing)
		})
	}
}
