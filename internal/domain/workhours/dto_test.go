package workhours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkedHoursRequest_Validate(t *testing.T) {
	req := WorkedHoursRequest{UserID: 1, StartDate: "2024-03-01", EndDate: "2024-03-31"}
	start, end, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, 30, int(end.Sub(start).Hours()/24))

	req.EndDate = "2024-02-28"
	_, _, err = req.Validate()
	assert.Error(t, err)

	req.EndDate = "2025-12-31"
	_, _, err = req.Validate()
	assert.Error(t, err)

	req = WorkedHoursRequest{UserID: 1, StartDate: "03/01/2024", EndDate: "2024-03-31"}
	_, _, err = req.Validate()
	assert.Error(t, err)
}
