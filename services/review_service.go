package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/manager-directory/metrics"
	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/profile"
	"github.com/Dosada05/manager-directory/repositories"
)

// Review event types broadcast to the admin dashboard.
const (
	EventSubmissionCreated  = "SUBMISSION_CREATED"
	EventSubmissionApproved = "SUBMISSION_APPROVED"
	EventSubmissionRejected = "SUBMISSION_REJECTED"
)

// ReviewNotifier pushes review lifecycle events to connected dashboard
// clients. Implemented by live.Hub.
type ReviewNotifier interface {
	BroadcastReviewEvent(eventType string, payload any)
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type ReviewInput struct {
	RequestID string `json:"id"`
	Action    string `json:"action"`
}

type ReviewResult struct {
	RequestID string                  `json:"requestId"`
	Status    models.SubmissionStatus `json:"status"`
	ManagerID string                  `json:"managerId,omitempty"`
	Created   bool                    `json:"created,omitempty"`
}

type ReviewService interface {
	Review(ctx context.Context, input ReviewInput) (*ReviewResult, error)
}

type reviewService struct {
	submissionRepo repositories.SubmissionRepository
	managerRepo    repositories.ManagerRepository
	notifier       ReviewNotifier
	logger         *slog.Logger
}

func NewReviewService(
	submissionRepo repositories.SubmissionRepository,
	managerRepo repositories.ManagerRepository,
	notifier ReviewNotifier,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		submissionRepo: submissionRepo,
		managerRepo:    managerRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *reviewService) Review(ctx context.Context, input ReviewInput) (*ReviewResult, error) {
	requestID := strings.TrimSpace(input.RequestID)
	if requestID == "" {
		return nil, ErrRequestIDRequired
	}
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if action != ActionApprove && action != ActionReject {
		return nil, ErrInvalidReviewAction
	}

	if action == ActionReject {
		sub, err := s.submissionRepo.UpdateStatus(ctx, requestID, models.StatusRejected)
		if err != nil {
			if errors.Is(err, repositories.ErrSubmissionNotFound) {
				return nil, ErrSubmissionNotFound
			}
			return nil, fmt.Errorf("failed to reject submission %s: %w", requestID, err)
		}
		sub.Status = models.StatusRejected
		metrics.ReviewsTotal.WithLabelValues(ActionReject).Inc()
		s.broadcast(EventSubmissionRejected, sub)
		return &ReviewResult{RequestID: requestID, Status: models.StatusRejected}, nil
	}

	// Approve is two-phase: mark the row, then publish the derived manager
	// record. There is no transaction spanning the two sheets; if the
	// publish fails the submission stays approved without a published row
	// and the rebuild job is the recovery path.
	sub, err := s.submissionRepo.UpdateStatus(ctx, requestID, models.StatusApproved)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to approve submission %s: %w", requestID, err)
	}

	manager := profile.ManagerFromSubmission(*sub)
	created, err := s.managerRepo.Upsert(ctx, &manager)
	if err != nil {
		s.logger.Error("publish step failed after status update, managers sheet needs a rebuild",
			slog.String("request_id", requestID),
			slog.String("manager_id", manager.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w (submission %s): %w", ErrPublishFailed, requestID, err)
	}
	if !created {
		// Two distinct names can slugify to the same identifier; the upsert
		// silently replaced the earlier row. Surface it to operators.
		s.logger.Warn("manager row replaced in place on approve",
			slog.String("manager_id", manager.ID),
			slog.String("request_id", requestID),
		)
	}

	metrics.ReviewsTotal.WithLabelValues(ActionApprove).Inc()
	s.broadcast(EventSubmissionApproved, &manager)
	return &ReviewResult{
		RequestID: requestID,
		Status:    models.StatusApproved,
		ManagerID: manager.ID,
		Created:   created,
	}, nil
}

func (s *reviewService) broadcast(eventType string, payload any) {
	if s.notifier != nil {
		s.notifier.BroadcastReviewEvent(eventType, payload)
	}
}
