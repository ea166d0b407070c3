package models

import "time"

// LedgerStatus is a persisted download status.
type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "pending"
	LedgerActive    LedgerStatus = "active"
	LedgerDone      LedgerStatus = "done"
	LedgerFailed    LedgerStatus = "failed"
	LedgerCancelled LedgerStatus = "cancelled"
)

// StatusUpdate is a status change for one entry of one run.
type StatusUpdate struct {
	RunID      string
	EntryIndex int
	URL        string
	Title      string
	Status     LedgerStatus
	Percent    float64
	Error      string
}

// LedgerRow is one row of the downloads ledger.
type LedgerRow struct {
	ID         int64
	RunID      string
	EntryIndex int
	URL        string
	Title      string
	Status     LedgerStatus
	Percent    float64
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
