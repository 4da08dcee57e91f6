// Package store provides the sheet-style table abstraction both the
// Submissions and Managers data live behind: ordered rows of string cells,
// a header row first, ranges addressed in A1 notation. Nothing above this
// package may assume anything about the backing technology beyond "rows are
// ordered, columns are named, there is no cross-call transaction".
package store

import "context"

// Table is one named sheet.
//
// Mutating calls (Append, UpdateRange, Clear) serialize behind a single
// per-sheet mutual-exclusion point in every implementation. That alone does
// not protect a caller who reads, decides and then writes: two such sequences
// can interleave between the read and the write and lose an update. Callers
// with read-then-write sequences must run them inside Transact.
type Table interface {
	// ReadAll returns every row, header included, in order. An empty sheet
	// yields an empty slice, not an error.
	ReadAll(ctx context.Context) ([][]string, error)

	// Append adds rows at the end of the sheet.
	Append(ctx context.Context, rows [][]string) error

	// UpdateRange overwrites the cells of an A1-notation range ("P5",
	// "A5:P5") with values, row by row. Rows beyond the current end of the
	// sheet are an error; short target rows are padded with empty cells.
	UpdateRange(ctx context.Context, a1 string, values [][]string) error

	// Clear removes every row.
	Clear(ctx context.Context) error

	// Transact runs fn against a view of the sheet while holding the sheet's
	// mutual-exclusion point for the whole call, so a read-decide-write
	// sequence inside fn cannot interleave with another writer.
	Transact(ctx context.Context, fn func(Table) error) error
}

// Sheet names used by this service.
const (
	SheetSubmissions = "Submissions"
	SheetManagers    = "Managers"
)
