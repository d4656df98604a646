package timerecord

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

type memoryRecordRepository struct {
	timerecord.TimeRecordRepository

	records []timerecord.TimeRecord
}

func (m *memoryRecordRepository) Create(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryRecordRepository) GetByID(ctx context.Context, id int64) (timerecord.TimeRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return timerecord.TimeRecord{}, pgx.ErrNoRows
}

func (m *memoryRecordRepository) GetLastByUser(ctx context.Context, userID int64) (timerecord.TimeRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			return m.records[i], nil
		}
	}
	return timerecord.TimeRecord{}, pgx.ErrNoRows
}

func (m *memoryRecordRepository) CountByTypeBetween(ctx context.Context, userID int64, recordType timerecord.RecordType, from, to time.Time) (int64, error) {
	var n int64
	for _, r := range m.records {
		if r.UserID == userID && r.Type == recordType && !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			n++
		}
	}
	return n, nil
}

func (m *memoryRecordRepository) Delete(ctx context.Context, id int64) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type resolverFunc func(ctx context.Context, userID int64, date time.Time) (schedule.ScheduleForDate, error)

func (f resolverFunc) GetScheduleForDate(ctx context.Context, userID int64, date time.Time) (schedule.ScheduleForDate, error) {
	return f(ctx, userID, date)
}

// nineToSix works 09:00-18:00 with ten minutes of tolerance, Monday to Friday.
func nineToSix(ctx context.Context, userID int64, date time.Time) (schedule.ScheduleForDate, error) {
	tolerance := 10
	start, _ := schedule.ParseTimeOfDay("09:00")
	end, _ := schedule.ParseTimeOfDay("18:00")
	detail := &schedule.WorkScheduleDetail{
		ScheduleID: 4,
		Weekday:    schedule.WeekdayOf(date),
		StartTime:  start,
		EndTime:    end,
		IsWorkDay:  date.Weekday() != time.Saturday && date.Weekday() != time.Sunday,
	}
	return schedule.ScheduleForDate{
		Schedule: &schedule.WorkSchedule{ID: 4, Name: "Comercial", ToleranceMinutes: &tolerance},
		Detail:   detail,
	}, nil
}

func newTestService(repo *memoryRecordRepository, resolver schedule.Resolver, now time.Time) *timeRecordServiceImpl {
	svc := NewTimeRecordService(repo, resolver, brt).(*timeRecordServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestRegisterRecord_AlternatesType(t *testing.T) {
	repo := &memoryRecordRepository{}
	ctx := context.Background()

	svc := newTestService(repo, resolverFunc(nineToSix), time.Date(2024, 3, 4, 8, 55, 0, 0, brt))
	first, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "in", first.Type)
	assert.False(t, first.IsLate)
	require.NotNil(t, first.ScheduleID)
	assert.Equal(t, int64(4), *first.ScheduleID)

	svc.now = func() time.Time { return time.Date(2024, 3, 4, 18, 2, 0, 0, brt) }
	second, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "out", second.Type)
	assert.False(t, second.IsLate)
}

func TestRegisterRecord_LateOnlyOnFirstClockIn(t *testing.T) {
	repo := &memoryRecordRepository{}
	ctx := context.Background()
	in := "in"

	// Within tolerance.
	svc := newTestService(repo, resolverFunc(nineToSix), time.Date(2024, 3, 5, 9, 10, 0, 0, brt))
	onTime, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 2, Type: &in})
	require.NoError(t, err)
	assert.False(t, onTime.IsLate)

	// Next day, past tolerance.
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 9, 11, 0, 0, brt) }
	late, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 2, Type: &in})
	require.NoError(t, err)
	assert.True(t, late.IsLate)

	// Returning from lunch the same day is not late.
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 13, 30, 0, 0, brt) }
	afterLunch, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 2, Type: &in})
	require.NoError(t, err)
	assert.False(t, afterLunch.IsLate)
}

func TestRegisterRecord_NoScheduleOrDayOff(t *testing.T) {
	repo := &memoryRecordRepository{}
	ctx := context.Background()
	unscheduled := resolverFunc(func(context.Context, int64, time.Time) (schedule.ScheduleForDate, error) {
		return schedule.ScheduleForDate{}, nil
	})

	svc := newTestService(repo, unscheduled, time.Date(2024, 3, 4, 11, 0, 0, 0, brt))
	resp, err := svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 3})
	require.NoError(t, err)
	assert.Nil(t, resp.ScheduleID)
	assert.False(t, resp.IsLate)

	// Saturday.
	svc = newTestService(&memoryRecordRepository{}, resolverFunc(nineToSix), time.Date(2024, 3, 9, 11, 0, 0, 0, brt))
	resp, err = svc.RegisterRecord(ctx, timerecord.RegisterRecordRequest{UserID: 3})
	require.NoError(t, err)
	require.NotNil(t, resp.ScheduleID)
	assert.False(t, resp.IsLate)
}

func TestCreateManualRecord(t *testing.T) {
	repo := &memoryRecordRepository{}
	ctx := context.Background()
	svc := newTestService(repo, resolverFunc(nineToSix), time.Date(2024, 3, 5, 12, 0, 0, 0, brt))

	resp, err := svc.CreateManualRecord(ctx, timerecord.ManualRecordRequest{
		UserID:        5,
		Timestamp:     "2024-03-04T18:45:00-03:00",
		Type:          "out",
		Justification: " forgot to clock out ",
		CreatedBy:     1,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsManual)
	require.NotNil(t, resp.Justification)
	assert.Equal(t, "forgot to clock out", *resp.Justification)
	assert.Equal(t, int64(1), resp.CreatedBy)

	_, err = svc.CreateManualRecord(ctx, timerecord.ManualRecordRequest{
		UserID:        5,
		Timestamp:     "2024-03-06T09:00:00-03:00",
		Type:          "in",
		Justification: "tomorrow",
		CreatedBy:     1,
	})
	assert.ErrorIs(t, err, timerecord.ErrTimestampInFuture)
}

func TestDeleteRecord_RefusesProcessed(t *testing.T) {
	repo := &memoryRecordRepository{records: []timerecord.TimeRecord{
		{ID: 1, UserID: 1, Type: timerecord.RecordTypeOut, ProcessedForTimeBank: true},
		{ID: 2, UserID: 1, Type: timerecord.RecordTypeIn},
	}}
	svc := newTestService(repo, resolverFunc(nineToSix), time.Now())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteRecord(ctx, 1), timerecord.ErrRecordAlreadyProcessed)
	assert.NoError(t, svc.DeleteRecord(ctx, 2))
	assert.ErrorIs(t, svc.DeleteRecord(ctx, 9), timerecord.ErrTimeRecordNotFound)
}
