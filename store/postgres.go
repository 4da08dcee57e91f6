package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// EnsureSchema creates the cell table if it does not exist yet. One relation
// holds every sheet; rows are keyed by (sheet, row_index).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS sheet_cells (
			sheet     TEXT NOT NULL,
			row_index INT  NOT NULL,
			cells     TEXT[] NOT NULL,
			PRIMARY KEY (sheet, row_index)
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create sheet_cells table: %w", err)
	}
	return nil
}

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same statements serve both direct calls and locked transactions.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type postgresTable struct {
	db    *sql.DB
	sheet string
}

// NewPostgresTable returns a Table backed by the sheet_cells relation.
// Mutations run inside a transaction holding pg_advisory_xact_lock keyed by
// the sheet name, which is the single mutual-exclusion point serializing
// concurrent writers; Transact extends that lock over read-then-write
// sequences.
func NewPostgresTable(db *sql.DB, sheet string) Table {
	return &postgresTable{db: db, sheet: sheet}
}

func (t *postgresTable) ReadAll(ctx context.Context) ([][]string, error) {
	return readAllRows(ctx, t.db, t.sheet)
}

func (t *postgresTable) Append(ctx context.Context, newRows [][]string) error {
	return t.withLock(ctx, func(tx *sql.Tx) error {
		return appendRows(ctx, tx, t.sheet, newRows)
	})
}

func (t *postgresTable) UpdateRange(ctx context.Context, a1 string, values [][]string) error {
	rng, err := ParseRange(a1)
	if err != nil {
		return err
	}
	return t.withLock(ctx, func(tx *sql.Tx) error {
		return updateRangeRows(ctx, tx, t.sheet, rng, values)
	})
}

func (t *postgresTable) Clear(ctx context.Context) error {
	return t.withLock(ctx, func(tx *sql.Tx) error {
		return clearRows(ctx, tx, t.sheet)
	})
}

func (t *postgresTable) Transact(ctx context.Context, fn func(Table) error) error {
	return t.withLock(ctx, func(tx *sql.Tx) error {
		return fn(&postgresTxTable{tx: tx, sheet: t.sheet})
	})
}

func (t *postgresTable) withLock(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for sheet %s: %w", t.sheet, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, t.sheet); err != nil {
		return fmt.Errorf("failed to lock sheet %s: %w", t.sheet, err)
	}
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// postgresTxTable is the view handed to a Transact callback. Every operation
// runs on the already-locked transaction.
type postgresTxTable struct {
	tx    *sql.Tx
	sheet string
}

func (t *postgresTxTable) ReadAll(ctx context.Context) ([][]string, error) {
	return readAllRows(ctx, t.tx, t.sheet)
}

func (t *postgresTxTable) Append(ctx context.Context, newRows [][]string) error {
	return appendRows(ctx, t.tx, t.sheet, newRows)
}

func (t *postgresTxTable) UpdateRange(ctx context.Context, a1 string, values [][]string) error {
	rng, err := ParseRange(a1)
	if err != nil {
		return err
	}
	return updateRangeRows(ctx, t.tx, t.sheet, rng, values)
}

func (t *postgresTxTable) Clear(ctx context.Context) error {
	return clearRows(ctx, t.tx, t.sheet)
}

// Transact on a transaction view reuses the lock already held.
func (t *postgresTxTable) Transact(ctx context.Context, fn func(Table) error) error {
	return fn(t)
}

func readAllRows(ctx context.Context, q querier, sheet string) ([][]string, error) {
	query := `SELECT cells FROM sheet_cells WHERE sheet = $1 ORDER BY row_index ASC`

	rows, err := q.QueryContext(ctx, query, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	out := make([][]string, 0)
	for rows.Next() {
		var cells pq.StringArray
		if scanErr := rows.Scan(&cells); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, []string(cells))
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func appendRows(ctx context.Context, q querier, sheet string, newRows [][]string) error {
	if len(newRows) == 0 {
		return nil
	}
	var next int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_index), -1) + 1 FROM sheet_cells WHERE sheet = $1`,
		sheet,
	).Scan(&next)
	if err != nil {
		return err
	}
	for i, row := range newRows {
		_, err = q.ExecContext(ctx,
			`INSERT INTO sheet_cells (sheet, row_index, cells) VALUES ($1, $2, $3)`,
			sheet, next+i, pq.Array(row),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func updateRangeRows(ctx context.Context, q querier, sheet string, rng Range, values [][]string) error {
	for i := 0; rng.StartRow+i <= rng.EndRow; i++ {
		rowIndex := rng.StartRow + i
		var vals []string
		if i < len(values) {
			vals = values[i]
		}

		var cells pq.StringArray
		err := q.QueryRowContext(ctx,
			`SELECT cells FROM sheet_cells WHERE sheet = $1 AND row_index = $2`,
			sheet, rowIndex,
		).Scan(&cells)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("sheet %s has no row %d to update", sheet, rowIndex+1)
			}
			return err
		}

		row := applyRangeUpdate([]string(cells), rng.StartCol, rng.EndCol, vals)
		_, err = q.ExecContext(ctx,
			`UPDATE sheet_cells SET cells = $3 WHERE sheet = $1 AND row_index = $2`,
			sheet, rowIndex, pq.Array(row),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func clearRows(ctx context.Context, q querier, sheet string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM sheet_cells WHERE sheet = $1`, sheet)
	return err
}

// applyRangeUpdate overwrites cells [startCol..endCol] of row with vals,
// growing the row with empty cells when the range extends past its end.
func applyRangeUpdate(row []string, startCol, endCol int, vals []string) []string {
	if endCol >= len(row) {
		grown := make([]string, endCol+1)
		copy(grown, row)
		row = grown
	}
	for c := startCol; c <= endCol; c++ {
		v := ""
		if c-startCol < len(vals) {
			v = vals[c-startCol]
		}
		row[c] = v
	}
	return row
}
