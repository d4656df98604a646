package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimeBankEntriesPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timebank_entries_posted_total",
		Help: "Time bank ledger entries written, by entry type.",
	}, []string{"type"})

	TimeBankCompensations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timebank_compensations_total",
		Help: "Compensation attempts, by result (compensated, nothing_consumed, insufficient_balance).",
	}, []string{"result"})

	TimeRecordsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "time_records_processed_total",
		Help: "Clock-out records run through the ledger processor, by outcome.",
	}, []string{"outcome"})

	AbsenceReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absence_reviews_total",
		Help: "Absence requests reviewed, by resulting status and absence type.",
	}, []string{"status", "type"})
)

// Compensation results.
const (
	ResultCompensated         = "compensated"
	ResultNothingConsumed     = "nothing_consumed"
	ResultInsufficientBalance = "insufficient_balance"
)

// Processor outcomes.
const (
	OutcomeOvertimePosted = "overtime_posted"
	OutcomeNoOvertime     = "no_overtime"
	OutcomeUnscheduled    = "unscheduled"
	OutcomeNoClockIn      = "no_clock_in"
	OutcomeAlreadyDone    = "already_processed"
)
