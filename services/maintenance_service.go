package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/manager-directory/metrics"
	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/profile"
	"github.com/Dosada05/manager-directory/repositories"
	"github.com/Dosada05/manager-directory/storage"
	"golang.org/x/sync/errgroup"
)

const repairTypeMinLen = 20

type RebuildResult struct {
	SubmissionsFound int    `json:"submissionsFound"`
	ApprovedCount    int    `json:"approvedCount"`
	ManagersWritten  int    `json:"managersWritten"`
	SnapshotKey      string `json:"snapshotKey,omitempty"`
}

type RepairResult struct {
	RowsRepaired int `json:"rowsRepaired"`
	TotalRows    int `json:"totalRows"`
}

type MaintenanceService interface {
	// Rebuild treats the submissions sheet as the source of truth and the
	// managers sheet as a fully derived cache: it self-repairs the
	// submissions sheet, then replaces the managers sheet with one record
	// per approved submission. Destructive and idempotent.
	Rebuild(ctx context.Context) (*RebuildResult, error)

	// Repair applies the row-level heuristics to the submissions sheet and
	// rewrites it unconditionally. Idempotent.
	Repair(ctx context.Context) (*RepairResult, error)

	// CheckDrift counts approved submissions with no published manager row.
	// Read-only; the rebuild job is the repair for non-zero drift.
	CheckDrift(ctx context.Context) (int, error)
}

type maintenanceService struct {
	submissionRepo repositories.SubmissionRepository
	managerRepo    repositories.ManagerRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
	now            func() time.Time
}

func NewMaintenanceService(
	submissionRepo repositories.SubmissionRepository,
	managerRepo repositories.ManagerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) MaintenanceService {
	return &maintenanceService{
		submissionRepo: submissionRepo,
		managerRepo:    managerRepo,
		uploader:       uploader,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *maintenanceService) Rebuild(ctx context.Context) (*RebuildResult, error) {
	var (
		subs        []models.Submission
		snapshotKey string
	)

	// The managers sheet is about to be cleared; snapshot it first so a bad
	// rebuild can be recovered by hand. Runs alongside the submissions read.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.submissionRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshotKey, err = s.snapshotManagers(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rebuild preparation failed: %w", err)
	}

	// Drop rows that duplicate the header label: the classic symptom of a
	// header row appended twice by hand.
	kept := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.RequestID == models.ColRequestID {
			continue
		}
		kept = append(kept, sub)
	}
	if err := s.submissionRepo.ReplaceAll(ctx, kept); err != nil {
		return nil, fmt.Errorf("failed to rewrite submissions sheet: %w", err)
	}

	managers := make([]models.Manager, 0, len(kept))
	for _, sub := range kept {
		if !strings.EqualFold(string(sub.Status), string(models.StatusApproved)) {
			continue
		}
		managers = append(managers, profile.ManagerFromSubmission(sub))
	}
	if err := s.managerRepo.ReplaceAll(ctx, managers); err != nil {
		return nil, fmt.Errorf("failed to rewrite managers sheet: %w", err)
	}

	metrics.MaintenanceRuns.WithLabelValues("rebuild").Inc()
	result := &RebuildResult{
		SubmissionsFound: len(kept),
		ApprovedCount:    len(managers),
		ManagersWritten:  len(managers),
		SnapshotKey:      snapshotKey,
	}
	s.logger.Info("rebuild complete",
		slog.Int("submissions_found", result.SubmissionsFound),
		slog.Int("managers_written", result.ManagersWritten),
		slog.String("snapshot_key", snapshotKey),
	)
	return result, nil
}

func (s *maintenanceService) Repair(ctx context.Context) (*RepairResult, error) {
	subs, err := s.submissionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions sheet: %w", err)
	}

	repaired := 0
	for i := range subs {
		sub := &subs[i]
		changed := false

		// A long free-text paragraph in the type column next to an empty
		// highlights column is a misfiled highlights value.
		if len(sub.Type) >= repairTypeMinLen && strings.TrimSpace(sub.CareerHighlights) == "" {
			sub.CareerHighlights = sub.Type
			sub.Type = ""
			changed = true
		}

		// A non-numeric points cell next to a numeric games cell points at
		// a column-order mistake upstream; swap them back.
		if sub.TotalPoints != "" && !profile.IsNumeric(sub.TotalPoints) && profile.IsNumeric(sub.GamesPlayed) {
			sub.TotalPoints, sub.GamesPlayed = sub.GamesPlayed, sub.TotalPoints
			changed = true
		}

		if strings.TrimSpace(string(sub.Status)) == "" {
			sub.Status = models.StatusPending
		}

		if changed {
			repaired++
		}
	}

	// Rewritten even when nothing changed, so the sheet always ends up with
	// canonical headers and column order.
	if err := s.submissionRepo.ReplaceAll(ctx, subs); err != nil {
		return nil, fmt.Errorf("failed to rewrite submissions sheet: %w", err)
	}

	metrics.MaintenanceRuns.WithLabelValues("repair").Inc()
	s.logger.Info("repair complete",
		slog.Int("rows_repaired", repaired),
		slog.Int("total_rows", len(subs)),
	)
	return &RepairResult{RowsRepaired: repaired, TotalRows: len(subs)}, nil
}

func (s *maintenanceService) CheckDrift(ctx context.Context) (int, error) {
	var (
		subs     []models.Submission
		managers []models.Manager
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.submissionRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		managers, err = s.managerRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("drift check failed: %w", err)
	}

	published := make(map[string]struct{}, len(managers))
	for _, m := range managers {
		published[strings.ToLower(m.ID)] = struct{}{}
	}

	drift := 0
	for _, sub := range subs {
		if !strings.EqualFold(string(sub.Status), string(models.StatusApproved)) {
			continue
		}
		if _, ok := published[profile.Slugify(sub.ManagerName)]; !ok {
			drift++
		}
	}
	return drift, nil
}

// snapshotManagers uploads the managers sheet as CSV before a destructive
// rewrite. With no uploader configured the snapshot is skipped.
func (s *maintenanceService) snapshotManagers(ctx context.Context) (string, error) {
	if s.uploader == nil {
		s.logger.Info("no uploader configured, skipping managers snapshot")
		return "", nil
	}

	rows, err := s.managerRepo.RawRows(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read managers sheet for snapshot: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to encode managers snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/managers_%d.csv", s.now().UTC().Unix())
	if _, err := s.uploader.Upload(ctx, key, "text/csv", &buf); err != nil {
		return "", fmt.Errorf("failed to upload managers snapshot: %w", err)
	}
	return key, nil
}
