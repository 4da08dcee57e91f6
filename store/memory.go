package store

import (
	"context"
	"sync"
)

// MemoryTable is an in-process Table used by tests and local runs without a
// database. A single mutex serializes everything, including whole Transact
// callbacks.
type MemoryTable struct {
	mu   sync.Mutex
	rows [][]string

	// FailReads forces every ReadAll to return FailErr, for exercising the
	// degraded read paths.
	FailReads bool
	FailErr   error
}

func NewMemoryTable(rows ...[]string) *MemoryTable {
	t := &MemoryTable{}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return t
}

func (t *MemoryTable) ReadAll(ctx context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readAllLocked()
}

func (t *MemoryTable) Append(ctx context.Context, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendLocked(rows)
}

func (t *MemoryTable) UpdateRange(ctx context.Context, a1 string, values [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateRangeLocked(a1, values)
}

func (t *MemoryTable) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = nil
	return nil
}

func (t *MemoryTable) Transact(ctx context.Context, fn func(Table) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&memoryTxTable{table: t})
}

func (t *MemoryTable) readAllLocked() ([][]string, error) {
	if t.FailReads {
		return nil, t.FailErr
	}
	out := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, append([]string(nil), r...))
	}
	return out, nil
}

func (t *MemoryTable) appendLocked(rows [][]string) error {
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return nil
}

func (t *MemoryTable) updateRangeLocked(a1 string, values [][]string) error {
	rng, err := ParseRange(a1)
	if err != nil {
		return err
	}
	for i := 0; rng.StartRow+i <= rng.EndRow; i++ {
		rowIndex := rng.StartRow + i
		if rowIndex >= len(t.rows) {
			return ErrInvalidRange
		}
		var vals []string
		if i < len(values) {
			vals = values[i]
		}
		t.rows[rowIndex] = applyRangeUpdate(t.rows[rowIndex], rng.StartCol, rng.EndCol, vals)
	}
	return nil
}

// memoryTxTable is the view a Transact callback operates on; the parent's
// mutex is already held, so the operations go straight at the rows.
type memoryTxTable struct {
	table *MemoryTable
}

func (t *memoryTxTable) ReadAll(ctx context.Context) ([][]string, error) {
	return t.table.readAllLocked()
}

func (t *memoryTxTable) Append(ctx context.Context, rows [][]string) error {
	return t.table.appendLocked(rows)
}

func (t *memoryTxTable) UpdateRange(ctx context.Context, a1 string, values [][]string) error {
	return t.table.updateRangeLocked(a1, values)
}

func (t *memoryTxTable) Clear(ctx context.Context) error {
	t.table.rows = nil
	return nil
}

func (t *memoryTxTable) Transact(ctx context.Context, fn func(Table) error) error {
	return fn(t)
}

// Rows returns a copy of the current contents, for test assertions.
func (t *MemoryTable) Rows() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, append([]string(nil), r...))
	}
	return out
}
