package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tshimanga/elimu/core/progress"
)

type progressRepository struct {
	db      *progressTable
	catalog *catalogRepository
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress, catalog: &catalogRepository{db: db.catalog}}
}

func progressKey(userID, lessonID string) string {
	return userID + "\x00" + lessonID
}

func (repo *progressRepository) UpsertProgress(ctx context.Context, prg progress.Progress) (progress.Progress, error) {
	if _, err := repo.catalog.GetLesson(ctx, prg.LessonID); err != nil {
		return progress.Progress{}, progress.ErrLessonNotFound
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := progressKey(prg.UserID, prg.LessonID)
	if orig, ok := repo.db.table[key]; ok {
		prg.ID = orig.ID
	} else {
		prg.ID = uuid.New().String()
	}
	repo.db.table[key] = &prg
	return prg, nil
}

func (repo *progressRepository) QueryProgressByUser(ctx context.Context, userID string) ([]progress.Progress, error) {
	repo.db.mutex.RLock()
	rows := make([]progress.Progress, 0)
	for _, prg := range repo.db.table {
		if prg.UserID == userID {
			rows = append(rows, *prg)
		}
	}
	repo.db.mutex.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
		}
		return rows[i].LessonID < rows[j].LessonID
	})

	repo.catalog.db.mutex.RLock()
	defer repo.catalog.db.mutex.RUnlock()
	for i := range rows {
		les, st, subj, err := repo.catalog.findLesson(rows[i].LessonID)
		if err != nil {
			continue // lesson removed since recording
		}
		les.Quizzes = nil
		stCopy := st
		subjCopy := subj
		stCopy.Subject = &subjCopy
		les.Subtopic = &stCopy
		lesCopy := les
		rows[i].Lesson = &lesCopy
	}
	return rows, nil
}
