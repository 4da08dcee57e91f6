package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/store"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	List(ctx context.Context) ([]models.Submission, error)
	Append(ctx context.Context, sub *models.Submission) error
	FindByRequestID(ctx context.Context, requestID string) (*models.Submission, error)
	// UpdateStatus overwrites only the status cell of the matching row and
	// returns the submission as it was before the update.
	UpdateStatus(ctx context.Context, requestID string, status models.SubmissionStatus) (*models.Submission, error)
	// ReplaceAll clears the sheet and rewrites it with the canonical header
	// followed by one row per submission.
	ReplaceAll(ctx context.Context, subs []models.Submission) error
}

type sheetSubmissionRepository struct {
	table store.Table
}

func NewSheetSubmissionRepository(table store.Table) SubmissionRepository {
	return &sheetSubmissionRepository{table: table}
}

func (r *sheetSubmissionRepository) List(ctx context.Context) ([]models.Submission, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions sheet: %w", err)
	}
	if len(rows) <= 1 {
		return []models.Submission{}, nil
	}

	idx := headerIndex(rows[0])
	subs := make([]models.Submission, 0, len(rows)-1)
	for _, row := range rows[1:] {
		subs = append(subs, submissionFromRow(row, idx))
	}
	return subs, nil
}

// Append checks for the header and appends under one lock, so two first-ever
// submissions cannot both decide the sheet is headerless.
func (r *sheetSubmissionRepository) Append(ctx context.Context, sub *models.Submission) error {
	return r.table.Transact(ctx, func(sheet store.Table) error {
		rows, err := sheet.ReadAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to read submissions sheet: %w", err)
		}
		toAppend := make([][]string, 0, 2)
		if len(rows) == 0 {
			toAppend = append(toAppend, models.SubmissionHeader())
		}
		toAppend = append(toAppend, submissionToRow(sub))
		if err := sheet.Append(ctx, toAppend); err != nil {
			return fmt.Errorf("failed to append submission %s: %w", sub.RequestID, err)
		}
		return nil
	})
}

func (r *sheetSubmissionRepository) FindByRequestID(ctx context.Context, requestID string) (*models.Submission, error) {
	sub, _, _, err := r.locate(ctx, r.table, requestID)
	return sub, err
}

// UpdateStatus holds the sheet lock from locating the row to writing the
// status cell; a concurrent rewrite cannot move the row in between.
func (r *sheetSubmissionRepository) UpdateStatus(ctx context.Context, requestID string, status models.SubmissionStatus) (*models.Submission, error) {
	var sub *models.Submission
	err := r.table.Transact(ctx, func(sheet store.Table) error {
		found, rowIndex, statusCol, err := r.locate(ctx, sheet, requestID)
		if err != nil {
			return err
		}
		rng := store.Range{StartRow: rowIndex, StartCol: statusCol, EndRow: rowIndex, EndCol: statusCol}
		if err := sheet.UpdateRange(ctx, rng.A1(), [][]string{{string(status)}}); err != nil {
			return fmt.Errorf("failed to update status of %s: %w", requestID, err)
		}
		sub = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *sheetSubmissionRepository) ReplaceAll(ctx context.Context, subs []models.Submission) error {
	return r.table.Transact(ctx, func(sheet store.Table) error {
		if err := sheet.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear submissions sheet: %w", err)
		}
		rows := make([][]string, 0, len(subs)+1)
		rows = append(rows, models.SubmissionHeader())
		for i := range subs {
			rows = append(rows, submissionToRow(&subs[i]))
		}
		if err := sheet.Append(ctx, rows); err != nil {
			return fmt.Errorf("failed to rewrite submissions sheet: %w", err)
		}
		return nil
	})
}

// locate returns the submission, its zero-based sheet row index and the
// status column position.
func (r *sheetSubmissionRepository) locate(ctx context.Context, sheet store.Table, requestID string) (*models.Submission, int, int, error) {
	rows, err := sheet.ReadAll(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read submissions sheet: %w", err)
	}
	if len(rows) <= 1 {
		return nil, 0, 0, ErrSubmissionNotFound
	}

	idx := headerIndex(rows[0])
	statusCol, ok := idx[normalizeHeader(models.ColStatus)]
	if !ok {
		return nil, 0, 0, fmt.Errorf("submissions sheet has no %q column", models.ColStatus)
	}
	for i, row := range rows[1:] {
		if cell(row, idx, models.ColRequestID) == requestID {
			sub := submissionFromRow(row, idx)
			return &sub, i + 1, statusCol, nil
		}
	}
	return nil, 0, 0, ErrSubmissionNotFound
}

func submissionFromRow(row []string, idx map[string]int) models.Submission {
	return models.Submission{
		RequestID:           cell(row, idx, models.ColRequestID),
		Timestamp:           cell(row, idx, models.ColTimestamp),
		ManagerName:         cell(row, idx, models.ColManagerName),
		ClubName:            cell(row, idx, models.ColClubName),
		Division:            cell(row, idx, models.ColDivision),
		CareerHighlights:    cell(row, idx, models.ColCareerHighlights),
		FavouriteFormation:  cell(row, idx, models.ColFavouriteFormation),
		TacticalPhilosophy:  cell(row, idx, models.ColTacticalPhilosophy),
		MostMemorableMoment: cell(row, idx, models.ColMostMemorableMoment),
		MostFearedOpponent:  cell(row, idx, models.ColMostFearedOpponent),
		FutureAmbitions:     cell(row, idx, models.ColFutureAmbitions),
		Story:               cell(row, idx, models.ColStory),
		TotalPoints:         cell(row, idx, models.ColTotalPoints),
		GamesPlayed:         cell(row, idx, models.ColGamesPlayed),
		Type:                cell(row, idx, models.ColType),
		Status:              models.SubmissionStatus(cell(row, idx, models.ColStatus)),
	}
}

func submissionToRow(sub *models.Submission) []string {
	return []string{
		sub.RequestID,
		sub.Timestamp,
		sub.ManagerName,
		sub.ClubName,
		sub.Division,
		sub.CareerHighlights,
		sub.FavouriteFormation,
		sub.TacticalPhilosophy,
		sub.MostMemorableMoment,
		sub.MostFearedOpponent,
		sub.FutureAmbitions,
		sub.Story,
		sub.TotalPoints,
		sub.GamesPlayed,
		sub.Type,
		string(sub.Status),
	}
}
