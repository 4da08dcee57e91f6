package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/manager-directory/metrics"
	"github.com/Dosada05/manager-directory/models"
	"github.com/Dosada05/manager-directory/profile"
	"github.com/Dosada05/manager-directory/repositories"
	"github.com/google/uuid"
)

type SubmissionService interface {
	// Create normalizes a raw intake payload, validates it and appends one
	// pending row. It returns the generated request identifier.
	Create(ctx context.Context, payload map[string]any) (string, error)
	List(ctx context.Context) ([]models.Submission, error)
}

type submissionService struct {
	submissionRepo repositories.SubmissionRepository
	notifier       ReviewNotifier
	now            func() time.Time
}

func NewSubmissionService(submissionRepo repositories.SubmissionRepository, notifier ReviewNotifier) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		notifier:       notifier,
		now:            time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, payload map[string]any) (string, error) {
	name := profile.ResolveField(payload, profile.FieldManagerName)
	club := profile.ResolveField(payload, profile.FieldClubName)
	if strings.TrimSpace(name) == "" {
		return "", ErrManagerNameRequired
	}
	if strings.TrimSpace(club) == "" {
		return "", ErrClubNameRequired
	}

	now := s.now().UTC()
	sub := &models.Submission{
		RequestID:           newRequestID(now),
		Timestamp:           now.Format(time.RFC3339),
		ManagerName:         name,
		ClubName:            club,
		Division:            profile.ResolveField(payload, profile.FieldDivision),
		CareerHighlights:    profile.ResolveField(payload, profile.FieldCareerHighlights),
		FavouriteFormation:  profile.ResolveField(payload, profile.FieldFavouriteFormation),
		TacticalPhilosophy:  profile.ResolveField(payload, profile.FieldTacticalPhilosophy),
		MostMemorableMoment: profile.ResolveField(payload, profile.FieldMostMemorableMoment),
		MostFearedOpponent:  profile.ResolveField(payload, profile.FieldMostFearedOpponent),
		FutureAmbitions:     profile.ResolveField(payload, profile.FieldFutureAmbitions),
		Story:               profile.ResolveField(payload, profile.FieldStory),
		TotalPoints:         profile.ResolveField(payload, profile.FieldTotalPoints),
		GamesPlayed:         profile.ResolveField(payload, profile.FieldGamesPlayed),
		Type:                profile.ResolveField(payload, profile.FieldType),
		Status:              models.StatusPending,
	}

	if err := s.submissionRepo.Append(ctx, sub); err != nil {
		return "", fmt.Errorf("failed to store submission: %w", err)
	}

	metrics.SubmissionsCreated.Inc()
	if s.notifier != nil {
		s.notifier.BroadcastReviewEvent(EventSubmissionCreated, sub)
	}
	return sub.RequestID, nil
}

func (s *submissionService) List(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.submissionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// newRequestID builds "sub_<epoch-millis>_<random-suffix>".
func newRequestID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("sub_%d_%s", now.UnixMilli(), suffix)
}
