package workhours

// WorkedHours aggregates a user's worked time over a date range. All values
// are whole minutes.
type WorkedHours struct {
	UserID             int64          `json:"user_id"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	TotalWorkedMinutes int64          `json:"total_worked_minutes"`
	RegularMinutes     int64          `json:"regular_minutes"`
	OvertimeMinutes    int64          `json:"overtime_minutes"`
	MissingMinutes     int64          `json:"missing_minutes"`
	LateMinutes        int64          `json:"late_minutes"`
	Days               []DayBreakdown `json:"days"`
}

// DayBreakdown is one calendar day that has at least one record.
type DayBreakdown struct {
	Date            string `json:"date"`
	Scheduled       bool   `json:"scheduled"`
	ExpectedMinutes int64  `json:"expected_minutes"`
	WorkedMinutes   int64  `json:"worked_minutes"`
	RegularMinutes  int64  `json:"regular_minutes"`
	OvertimeMinutes int64  `json:"overtime_minutes"`
	MissingMinutes  int64  `json:"missing_minutes"`
	LateMinutes     int64  `json:"late_minutes"`
}

// Add folds a day into the totals.
func (w *WorkedHours) Add(d DayBreakdown) {
	w.TotalWorkedMinutes += d.WorkedMinutes
	w.RegularMinutes += d.RegularMinutes
	w.OvertimeMinutes += d.OvertimeMinutes
	w.MissingMinutes += d.MissingMinutes
	w.LateMinutes += d.LateMinutes
	w.Days = append(w.Days, d)
}
