package progress

import (
	"context"
	"errors"
	"time"
)

// ErrLessonNotFound is returned when a submission references an unknown lesson.
var ErrLessonNotFound = errors.New("lesson not found")

type (
	Repository interface {
		// UpsertProgress inserts or overwrites the row keyed on
		// (UserID, LessonID), keeping the original row ID on overwrite.
		UpsertProgress(ctx context.Context, prg Progress) (Progress, error)
		// QueryProgressByUser returns the user's rows joined with their
		// lesson, subtopic and subject, most recently updated first
		// (ties broken by lesson ID).
		QueryProgressByUser(ctx context.Context, userID string) ([]Progress, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record upserts the user's progress for a lesson.
func (svc *Service) Record(ctx context.Context, userID string, np NewProgress) (Progress, error) {
	prg := Progress{
		UserID:    userID,
		LessonID:  np.LessonID,
		Completed: np.Completed,
		Score:     np.Score,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpsertProgress(ctx, prg)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string) ([]Progress, error) {
	return svc.repo.QueryProgressByUser(ctx, userID)
}
