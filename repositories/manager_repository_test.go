package repositories

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/store"
)

func TestManagerRepository_UpsertIntoEmptySheet(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable()
	repo := NewSheetManagerRepository(table)

	created, err := repo.Upsert(ctx, &models.Manager{ID: "pep-guardiola", Name: "Pep Guardiola"})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true on empty sheet")
	}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != models.ColManagerID {
		t.Fatalf("header missing, got %v", rows[0])
	}
}

func TestManagerRepository_UpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable()
	repo := NewSheetManagerRepository(table)

	if _, err := repo.Upsert(ctx, &models.Manager{ID: "pep-guardiola", Name: "Pep", Club: "Barca"}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if _, err := repo.Upsert(ctx, &models.Manager{ID: "jose-mourinho", Name: "Jose", Club: "Porto"}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	created, err := repo.Upsert(ctx, &models.Manager{ID: "PEP-GUARDIOLA", Name: "Pep", Club: "City"})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if created {
		t.Fatal("expected in-place replace, not append")
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("row count changed on replace: %d", len(rows))
	}

	managers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if managers[0].Club != "City" {
		t.Fatalf("club = %q, want City", managers[0].Club)
	}
}

func TestManagerRepository_ConcurrentUpsertsSameID(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable()
	repo := NewSheetManagerRepository(table)

	// Two names that slugify to the same identifier approved at once: the
	// upserts must serialize over their whole read-decide-write sequence or
	// both decide to append and the identifier ends up duplicated.
	const writers = 8
	var (
		wg           sync.WaitGroup
		createdCount int32
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := repo.Upsert(ctx, &models.Manager{
				ID:   "pep-guardiola",
				Name: "Pep Guardiola",
				Club: "Club " + strconv.Itoa(n),
			})
			if err != nil {
				t.Errorf("Upsert error: %v", err)
				return
			}
			if created {
				atomic.AddInt32(&createdCount, 1)
			}
		}(i)
	}
	wg.Wait()

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d: %v", len(rows), rows)
	}
	if createdCount != 1 {
		t.Fatalf("created count = %d, want 1", createdCount)
	}
}

func TestManagerRepository_ListDerivation(t *testing.T) {
	table := store.NewMemoryTable(
		[]string{"ID", "Name", "Club", "Type", "Points", "Games", "Avg Points"},
		[]string{"", "Arsène Wenger", "Arsenal", "", "100", "20", ""},
		[]string{"sir-alex", "Alex Ferguson", "United", "LEGEND", "120", "40", "2.5"},
		[]string{"bad-numbers", "Who Knows", "Nowhere", "elite", "abc", "0", ""},
	)
	repo := NewSheetManagerRepository(table)

	managers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(managers) != 3 {
		t.Fatalf("expected 3 managers, got %d", len(managers))
	}

	// Blank identifier falls back to the slug of the name.
	if managers[0].ID != "ars-ne-wenger" {
		t.Errorf("ID fallback = %q", managers[0].ID)
	}
	if managers[0].Type != "rising" {
		t.Errorf("default type = %q", managers[0].Type)
	}
	if managers[0].AvgPoints != 5 {
		t.Errorf("derived avg = %v, want 5", managers[0].AvgPoints)
	}

	// Explicit stored average is trusted over recomputation.
	if managers[1].Type != "legend" {
		t.Errorf("type = %q", managers[1].Type)
	}
	if managers[1].AvgPoints != 2.5 {
		t.Errorf("explicit avg = %v, want 2.5", managers[1].AvgPoints)
	}

	// Unparsable cells coerce to zero.
	if managers[2].Points != 0 || managers[2].AvgPoints != 0 {
		t.Errorf("coercion failed: %+v", managers[2])
	}
}

func TestManagerRepository_FindByIDCaseInsensitive(t *testing.T) {
	table := store.NewMemoryTable(
		models.ManagerHeader(),
		[]string{"pep-guardiola", "Pep Guardiola", "City", "", "elite", "100", "20", "5", "", "", "", "", "", "", "", ""},
	)
	repo := NewSheetManagerRepository(table)

	m, err := repo.FindByID(context.Background(), "Pep-Guardiola")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if m.Name != "Pep Guardiola" {
		t.Fatalf("name = %q", m.Name)
	}

	if _, err := repo.FindByID(context.Background(), "nobody"); !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("err = %v, want ErrManagerNotFound", err)
	}
}

func TestManagerRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable(
		models.ManagerHeader(),
		[]string{"stale", "Stale Row", "Gone FC", "", "rising", "0", "0", "0", "", "", "", "", "", "", "", ""},
	)
	repo := NewSheetManagerRepository(table)

	err := repo.ReplaceAll(ctx, []models.Manager{
		{ID: "pep-guardiola", Name: "Pep"},
		{ID: "jose-mourinho", Name: "Jose"},
	})
	if err != nil {
		t.Fatalf("ReplaceAll error: %v", err)
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "pep-guardiola" || rows[2][0] != "jose-mourinho" {
		t.Fatalf("rows = %v", rows)
	}
}
