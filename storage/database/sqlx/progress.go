package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/catalog"
	"github.com/tshimanga/elimu/core/progress"
)

const fkViolation = "23503"

type progressRepository struct {
	db core.DBExecutor
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db core.DBExecutor) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) UpsertProgress(ctx context.Context, prg progress.Progress) (progress.Progress, error) {
	if _, err := uuid.Parse(prg.LessonID); err != nil {
		return progress.Progress{}, progress.ErrLessonNotFound
	}

	// single statement so concurrent submissions for the same (user, lesson)
	// can never produce two rows or drop an update
	query := `
		INSERT INTO progress (id, user_id, lesson_id, completed, score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, lesson_id) DO UPDATE SET
			completed  = EXCLUDED.completed,
			score      = EXCLUDED.score,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, lesson_id, completed, score, updated_at`

	var saved progress.Progress
	err := repo.db.GetContext(ctx, &saved, query,
		uuid.New().String(), prg.UserID, prg.LessonID, prg.Completed, prg.Score, prg.UpdatedAt.UTC())
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && string(pqErr.Code) == fkViolation {
			return progress.Progress{}, progress.ErrLessonNotFound
		}
		return progress.Progress{}, errors.Wrap(err, "upserting progress")
	}
	return saved, nil
}

func (repo progressRepository) QueryProgressByUser(ctx context.Context, userID string) ([]progress.Progress, error) {
	query := `
		SELECT p.id, p.user_id, p.lesson_id, p.completed, p.score, p.updated_at,
		       l.id, l.title, l.content, l.subtopic_id,
		       st.id, st.name, st.subject_id,
		       s.id, s.name, s.description, s.icon, s.color
		FROM progress p
		JOIN lesson l ON l.id = p.lesson_id
		JOIN subtopic st ON st.id = l.subtopic_id
		JOIN subject s ON s.id = st.subject_id
		WHERE p.user_id = $1
		ORDER BY p.updated_at DESC, p.lesson_id`

	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	defer func() { _ = rows.Close() }()

	prgs := make([]progress.Progress, 0)
	for rows.Next() {
		var prg progress.Progress
		var lsn catalog.Lesson
		var st catalog.Subtopic
		var subj catalog.Subject
		err = rows.Scan(
			&prg.ID, &prg.UserID, &prg.LessonID, &prg.Completed, &prg.Score, &prg.UpdatedAt,
			&lsn.ID, &lsn.Title, &lsn.Content, &lsn.SubtopicID,
			&st.ID, &st.Name, &st.SubjectID,
			&subj.ID, &subj.Name, &subj.Description, &subj.Icon, &subj.Color,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scanning progress")
		}
		st.Subject = &subj
		lsn.Subtopic = &st
		prg.Lesson = &lsn
		prgs = append(prgs, prg)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	return prgs, nil
}
