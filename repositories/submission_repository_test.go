package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/store"
)

func newSubmission(id, name, club string, status models.SubmissionStatus) models.Submission {
	return models.Submission{
		RequestID:   id,
		Timestamp:   "2026-01-02T10:00:00Z",
		ManagerName: name,
		ClubName:    club,
		Status:      status,
	}
}

func TestSubmissionRepository_AppendWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable()
	repo := NewSheetSubmissionRepository(table)

	sub := newSubmission("sub_1_a", "Pep", "City", models.StatusPending)
	if err := repo.Append(ctx, &sub); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	sub2 := newSubmission("sub_2_b", "Jose", "Porto", models.StatusPending)
	if err := repo.Append(ctx, &sub2); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != models.ColRequestID {
		t.Fatalf("first row is not the header: %v", rows[0])
	}
}

func TestSubmissionRepository_ListEmpty(t *testing.T) {
	repo := NewSheetSubmissionRepository(store.NewMemoryTable())
	subs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected no submissions, got %d", len(subs))
	}
}

func TestSubmissionRepository_ListResolvesColumnsByHeaderName(t *testing.T) {
	// Column order differs from the canonical layout; the reader must not
	// assume fixed offsets.
	table := store.NewMemoryTable(
		[]string{"Status", "Manager Name", "Request ID", "Club Name"},
		[]string{"approved", "Pep", "sub_1_a", "City"},
	)
	repo := NewSheetSubmissionRepository(table)

	subs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.RequestID != "sub_1_a" || got.ManagerName != "Pep" || got.ClubName != "City" || got.Status != models.StatusApproved {
		t.Fatalf("mapped submission wrong: %+v", got)
	}
}

func TestSubmissionRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable()
	repo := NewSheetSubmissionRepository(table)

	sub := newSubmission("sub_1_a", "Pep", "City", models.StatusPending)
	sub.Story = "my story"
	if err := repo.Append(ctx, &sub); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	before, err := repo.UpdateStatus(ctx, "sub_1_a", models.StatusRejected)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if before.Status != models.StatusPending {
		t.Fatalf("returned submission should carry pre-update status, got %s", before.Status)
	}

	after, err := repo.FindByRequestID(ctx, "sub_1_a")
	if err != nil {
		t.Fatalf("FindByRequestID error: %v", err)
	}
	if after.Status != models.StatusRejected {
		t.Fatalf("status = %s, want rejected", after.Status)
	}
	// Only the status cell may change.
	if after.Story != "my story" || after.ManagerName != "Pep" {
		t.Fatalf("non-status fields changed: %+v", after)
	}
}

func TestSubmissionRepository_UpdateStatusNotFound(t *testing.T) {
	repo := NewSheetSubmissionRepository(store.NewMemoryTable(
		models.SubmissionHeader(),
	))
	_, err := repo.UpdateStatus(context.Background(), "sub_missing", models.StatusApproved)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("err = %v, want ErrSubmissionNotFound", err)
	}
}

func TestSubmissionRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	table := store.NewMemoryTable(
		[]string{"Status", "Request ID"}, // non-canonical order on purpose
		[]string{"pending", "sub_1_a"},
	)
	repo := NewSheetSubmissionRepository(table)

	err := repo.ReplaceAll(ctx, []models.Submission{
		newSubmission("sub_2_b", "Jose", "Porto", models.StatusApproved),
	})
	if err != nil {
		t.Fatalf("ReplaceAll error: %v", err)
	}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != models.ColRequestID {
		t.Fatalf("rewrite must restore canonical header order, got %v", rows[0])
	}
	if rows[1][0] != "sub_2_b" {
		t.Fatalf("row = %v", rows[1])
	}
}
