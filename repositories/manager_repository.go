package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/profile"
	"github.com/Dosada05/manager-directory/store"
)

var ErrManagerNotFound = errors.New("manager not found")

type ManagerRepository interface {
	List(ctx context.Context) ([]models.Manager, error)
	// FindByID matches the stored identifier case-insensitively.
	FindByID(ctx context.Context, id string) (*models.Manager, error)
	// Upsert overwrites the whole row in place when a row with the same
	// identifier exists, otherwise appends. It reports whether a new row
	// was created. An empty sheet gets the canonical header first.
	Upsert(ctx context.Context, m *models.Manager) (created bool, err error)
	// ReplaceAll clears the sheet and rewrites it with the canonical header
	// and exactly the given records.
	ReplaceAll(ctx context.Context, managers []models.Manager) error
	// RawRows exposes the sheet contents as stored, for snapshots.
	RawRows(ctx context.Context) ([][]string, error)
}

type sheetManagerRepository struct {
	table store.Table
}

func NewSheetManagerRepository(table store.Table) ManagerRepository {
	return &sheetManagerRepository{table: table}
}

func (r *sheetManagerRepository) List(ctx context.Context) ([]models.Manager, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read managers sheet: %w", err)
	}
	if len(rows) <= 1 {
		return []models.Manager{}, nil
	}

	idx := headerIndex(rows[0])
	managers := make([]models.Manager, 0, len(rows)-1)
	for _, row := range rows[1:] {
		managers = append(managers, managerFromRow(row, idx))
	}
	return managers, nil
}

func (r *sheetManagerRepository) FindByID(ctx context.Context, id string) (*models.Manager, error) {
	managers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range managers {
		if strings.EqualFold(managers[i].ID, id) {
			return &managers[i], nil
		}
	}
	return nil, ErrManagerNotFound
}

// Upsert runs read-decide-write inside Transact: without the lock spanning
// the whole sequence, two concurrent upserts of the same identifier can both
// miss each other's row and both append, leaving duplicate identifiers.
func (r *sheetManagerRepository) Upsert(ctx context.Context, m *models.Manager) (bool, error) {
	created := false
	err := r.table.Transact(ctx, func(sheet store.Table) error {
		rows, err := sheet.ReadAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to read managers sheet: %w", err)
		}

		if len(rows) == 0 {
			toAppend := [][]string{models.ManagerHeader(), managerToRow(m)}
			if err := sheet.Append(ctx, toAppend); err != nil {
				return fmt.Errorf("failed to append manager %s: %w", m.ID, err)
			}
			created = true
			return nil
		}

		idx := headerIndex(rows[0])
		for i, row := range rows[1:] {
			if !strings.EqualFold(cell(row, idx, models.ColManagerID), m.ID) {
				continue
			}
			newRow := managerToRow(m)
			rng := store.Range{
				StartRow: i + 1,
				StartCol: 0,
				EndRow:   i + 1,
				EndCol:   len(newRow) - 1,
			}
			if err := sheet.UpdateRange(ctx, rng.A1(), [][]string{newRow}); err != nil {
				return fmt.Errorf("failed to update manager %s: %w", m.ID, err)
			}
			return nil
		}

		if err := sheet.Append(ctx, [][]string{managerToRow(m)}); err != nil {
			return fmt.Errorf("failed to append manager %s: %w", m.ID, err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *sheetManagerRepository) ReplaceAll(ctx context.Context, managers []models.Manager) error {
	return r.table.Transact(ctx, func(sheet store.Table) error {
		if err := sheet.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear managers sheet: %w", err)
		}
		rows := make([][]string, 0, len(managers)+1)
		rows = append(rows, models.ManagerHeader())
		for i := range managers {
			rows = append(rows, managerToRow(&managers[i]))
		}
		if err := sheet.Append(ctx, rows); err != nil {
			return fmt.Errorf("failed to rewrite managers sheet: %w", err)
		}
		return nil
	})
}

func (r *sheetManagerRepository) RawRows(ctx context.Context) ([][]string, error) {
	return r.table.ReadAll(ctx)
}

// managerFromRow derives the public profile from a stored row: identifier
// falls back to the slug of the name, type is normalized, numbers are
// coerced, and an explicit stored average is trusted over recomputation.
func managerFromRow(row []string, idx map[string]int) models.Manager {
	name := cell(row, idx, models.ColName)
	id := strings.TrimSpace(cell(row, idx, models.ColManagerID))
	if id == "" {
		id = profile.Slugify(name)
	}

	points := profile.ParseNumber(cell(row, idx, models.ColPoints))
	games := profile.ParseNumber(cell(row, idx, models.ColGames))

	return models.Manager{
		ID:                  id,
		Name:                name,
		Club:                cell(row, idx, models.ColClub),
		Division:            cell(row, idx, models.ColDivision),
		Type:                profile.NormalizeType(cell(row, idx, models.ColMgrType)),
		Points:              points,
		Games:               games,
		AvgPoints:           profile.AveragePoints(points, games, cell(row, idx, models.ColAvgPoints)),
		Signature:           cell(row, idx, models.ColSignature),
		CareerHighlights:    cell(row, idx, models.ColCareerHighlights),
		FavouriteFormation:  cell(row, idx, models.ColFavouriteFormation),
		TacticalPhilosophy:  cell(row, idx, models.ColTacticalPhilosophy),
		MostMemorableMoment: cell(row, idx, models.ColMostMemorableMoment),
		MostFearedOpponent:  cell(row, idx, models.ColMostFearedOpponent),
		FutureAmbitions:     cell(row, idx, models.ColFutureAmbitions),
		Story:               cell(row, idx, models.ColStory),
	}
}

func managerToRow(m *models.Manager) []string {
	return []string{
		m.ID,
		m.Name,
		m.Club,
		m.Division,
		m.Type,
		formatNumber(m.Points),
		formatNumber(m.Games),
		formatNumber(m.AvgPoints),
		m.Signature,
		m.CareerHighlights,
		m.FavouriteFormation,
		m.TacticalPhilosophy,
		m.MostMemorableMoment,
		m.MostFearedOpponent,
		m.FutureAmbitions,
		m.Story,
	}
}
