// Package sheets defines the journal export contract. The worker appends
// one row per finished session to a spreadsheet the user reads directly.
package sheets

import "context"

// JournalRow is a single line of the session journal.
type JournalRow struct {
	Date     string
	Kind     string
	OwnerID  string
	RecordID string
	Minutes  float64
	Notes    string
}

// JournalWriter appends rows to the journal sheet.
type JournalWriter interface {
	AppendJournalRow(ctx context.Context, row JournalRow) (string, error)
}
