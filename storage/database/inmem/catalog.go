package inmemdb

import (
	"context"

	"github.com/tshimanga/elimu/core/catalog"
)

type catalogRepository struct {
	db *catalogTable
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db.catalog}
}

func (repo *catalogRepository) QuerySubjects(ctx context.Context) ([]catalog.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subjects := make([]catalog.Subject, 0, len(repo.db.subjects))
	for _, subj := range repo.db.subjects {
		s := *subj
		s.SubtopicCount = len(subj.Subtopics)
		s.Subtopics = nil
		subjects = append(subjects, s)
	}
	return subjects, nil
}

func (repo *catalogRepository) GetSubject(ctx context.Context, id string) (catalog.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, subj := range repo.db.subjects {
		if subj.ID != id {
			continue
		}
		s := *subj
		s.SubtopicCount = len(subj.Subtopics)
		s.Subtopics = make([]catalog.Subtopic, 0, len(subj.Subtopics))
		for _, st := range subj.Subtopics {
			stCopy := st
			stCopy.Lessons = make([]catalog.Lesson, 0, len(st.Lessons))
			for _, les := range st.Lessons {
				lesCopy := les
				lesCopy.Quizzes = nil
				stCopy.Lessons = append(stCopy.Lessons, lesCopy)
			}
			s.Subtopics = append(s.Subtopics, stCopy)
		}
		return s, nil
	}
	return catalog.Subject{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetLesson(ctx context.Context, id string) (catalog.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	les, _, _, err := repo.findLesson(id)
	if err != nil {
		return catalog.Lesson{}, err
	}
	return les, nil
}

// findLesson returns a deep copy of the lesson and its parent subtopic
// and subject. Callers must hold the read lock.
func (repo *catalogRepository) findLesson(id string) (catalog.Lesson, catalog.Subtopic, catalog.Subject, error) {
	for _, subj := range repo.db.subjects {
		for _, st := range subj.Subtopics {
			for _, les := range st.Lessons {
				if les.ID != id {
					continue
				}
				lesCopy := les
				lesCopy.Quizzes = make([]catalog.Quiz, 0, len(les.Quizzes))
				for _, qz := range les.Quizzes {
					qzCopy := qz
					if qzCopy.Questions == nil {
						qzCopy.Questions = make([]catalog.Question, 0)
					}
					lesCopy.Quizzes = append(lesCopy.Quizzes, qzCopy)
				}
				stCopy := st
				stCopy.Lessons = nil
				subjCopy := *subj
				subjCopy.Subtopics = nil
				return lesCopy, stCopy, subjCopy, nil
			}
		}
	}
	return catalog.Lesson{}, catalog.Subtopic{}, catalog.Subject{}, catalog.ErrNotFound
}
