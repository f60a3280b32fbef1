package finance

import "time"

// IncomeRow is one month+category bucket of the income summary. Amounts are
// integer CLP summed over non-ignored events.
type IncomeRow struct {
	Month         time.Time `db:"month" json:"month"`
	Category      *string   `db:"category" json:"category"`
	EventCount    int       `db:"event_count" json:"event_count"`
	AttendedCount int       `db:"attended_count" json:"attended_count"`
	NoShowCount   int       `db:"no_show_count" json:"no_show_count"`
	TotalExpected int64     `db:"total_expected" json:"total_expected"`
	TotalPaid     int64     `db:"total_paid" json:"total_paid"`
}

// SummaryFilter bounds the summary on event start time. Nil fields are not
// applied.
type SummaryFilter struct {
	From     *time.Time
	To       *time.Time
	Category *string
}
