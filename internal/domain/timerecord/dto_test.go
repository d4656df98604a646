package timerecord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextType(t *testing.T) {
	assert.Equal(t, RecordTypeIn, NextType(nil))
	assert.Equal(t, RecordTypeOut, NextType(&TimeRecord{Type: RecordTypeIn}))
	assert.Equal(t, RecordTypeIn, NextType(&TimeRecord{Type: RecordTypeOut}))
}

func TestManualRecordRequest_Validate(t *testing.T) {
	req := ManualRecordRequest{
		UserID:        3,
		Timestamp:     "2024-03-04T18:45:00-03:00",
		Type:          "out",
		Justification: "forgot to clock out",
	}
	require.NoError(t, req.Validate())

	req.Justification = "  "
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "justification")
}

func TestRegisterRecordRequest_Coordinates(t *testing.T) {
	lat := -23.5
	req := RegisterRecordRequest{UserID: 1, Latitude: &lat}
	assert.Error(t, req.Validate())

	lng := -46.6
	req.Longitude = &lng
	assert.NoError(t, req.Validate())

	bad := "break"
	req.Type = &bad
	assert.Error(t, req.Validate())
}

func TestTimeRecordFilter_ResolvesRange(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	start, end := "2024-03-01", "2024-03-31"
	f := TimeRecordFilter{StartDate: &start, EndDate: &end}
	require.NoError(t, f.Validate(loc))

	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), *f.From)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, loc), *f.To)
	assert.Equal(t, 1, f.Page)

	f = TimeRecordFilter{StartDate: &end, EndDate: &start}
	assert.Error(t, f.Validate(loc))
}
