package store

import (
	"context"
	"reflect"
	"strconv"
	"sync"
	"testing"
)

func TestMemoryTable_AppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()

	rows, err := table.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty sheet, got %d rows", len(rows))
	}

	if err := table.Append(ctx, [][]string{{"ID", "Name"}, {"a", "Alice"}}); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	rows, err = table.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	want := [][]string{{"ID", "Name"}, {"a", "Alice"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("ReadAll = %v, want %v", rows, want)
	}
}

func TestMemoryTable_UpdateRange(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable(
		[]string{"ID", "Name", "Status"},
		[]string{"a", "Alice", "pending"},
	)

	// Single cell update: status column of the data row.
	if err := table.UpdateRange(ctx, "C2", [][]string{{"approved"}}); err != nil {
		t.Fatalf("UpdateRange error: %v", err)
	}
	rows := table.Rows()
	if rows[1][2] != "approved" {
		t.Fatalf("status cell = %q, want approved", rows[1][2])
	}
	if rows[1][0] != "a" || rows[1][1] != "Alice" {
		t.Fatalf("other cells changed: %v", rows[1])
	}

	// Whole row overwrite, extending past the current row length.
	if err := table.UpdateRange(ctx, "A2:D2", [][]string{{"b", "Bob", "rejected", "extra"}}); err != nil {
		t.Fatalf("UpdateRange error: %v", err)
	}
	got := table.Rows()[1]
	want := []string{"b", "Bob", "rejected", "extra"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("row = %v, want %v", got, want)
	}
}

func TestMemoryTable_UpdateRangeBeyondEnd(t *testing.T) {
	table := NewMemoryTable([]string{"ID"})
	if err := table.UpdateRange(context.Background(), "A5", [][]string{{"x"}}); err == nil {
		t.Fatal("expected error updating a row past the end of the sheet")
	}
}

func TestMemoryTable_Transact(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable([]string{"ID"})

	err := table.Transact(ctx, func(sheet Table) error {
		rows, err := sheet.ReadAll(ctx)
		if err != nil {
			return err
		}
		return sheet.Append(ctx, [][]string{{"row", strconv.Itoa(len(rows))}})
	})
	if err != nil {
		t.Fatalf("Transact error: %v", err)
	}
	rows := table.Rows()
	if len(rows) != 2 || rows[1][1] != "1" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestMemoryTable_TransactSerializesReadThenWrite(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()

	// Each goroutine appends a row numbered with the row count it read.
	// With the lock held across the whole callback every count is distinct;
	// interleaved read-then-write sequences would produce duplicates.
	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = table.Transact(ctx, func(sheet Table) error {
				rows, err := sheet.ReadAll(ctx)
				if err != nil {
					return err
				}
				return sheet.Append(ctx, [][]string{{strconv.Itoa(len(rows))}})
			})
		}()
	}
	wg.Wait()

	rows := table.Rows()
	if len(rows) != writers {
		t.Fatalf("row count = %d, want %d", len(rows), writers)
	}
	seen := make(map[string]bool, writers)
	for _, row := range rows {
		if seen[row[0]] {
			t.Fatalf("duplicate row number %q: read-then-write interleaved", row[0])
		}
		seen[row[0]] = true
	}
}

func TestMemoryTable_Clear(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable([]string{"ID"}, []string{"a"})
	if err := table.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	rows, err := table.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty sheet after clear, got %d rows", len(rows))
	}
}
