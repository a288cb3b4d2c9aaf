// Package services implements the business logic of the application: the
// cash balance, the expense ledger, savings goals, budgets, and the derived
// insight and report views.
package services

import (
	"sync"
	"time"
)

// ledgerMu serializes every balance-coupled mutation. The balance row and
// the expense ledger are read-modify-write state; each mutating operation
// holds this lock for its full span so concurrent HTTP handlers cannot
// produce lost updates or drive the balance negative between read and write.
var ledgerMu sync.Mutex

// startOfDay truncates t to its calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// today returns the current calendar day.
func today() time.Time {
	return startOfDay(time.Now())
}
