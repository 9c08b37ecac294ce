package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/catalog"
)

type catalogRepository struct {
	db core.DBExecutor
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db core.DBExecutor) *catalogRepository {
	return &catalogRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to catalog.ErrNotFound
func (repo catalogRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return catalog.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo catalogRepository) QuerySubjects(ctx context.Context) ([]catalog.Subject, error) {
	query := `
		SELECT s.id, s.name, s.description, s.icon, s.color, COUNT(st.id) AS subtopic_count
		FROM subject s
		LEFT JOIN subtopic st ON st.subject_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at, s.id`

	subjects := make([]catalog.Subject, 0)
	if err := repo.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo catalogRepository) GetSubject(ctx context.Context, id string) (catalog.Subject, error) {
	if _, err := uuid.Parse(id); err != nil {
		return catalog.Subject{}, catalog.ErrNotFound
	}

	var subj catalog.Subject
	query := `SELECT id, name, description, icon, color FROM subject WHERE id = $1`
	if err := repo.db.GetContext(ctx, &subj, query, id); err != nil {
		return catalog.Subject{}, repo.trapNoRowsErr(err, "finding subject by ID")
	}

	subj.Subtopics = make([]catalog.Subtopic, 0)
	query = `SELECT id, name, subject_id FROM subtopic WHERE subject_id = $1 ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &subj.Subtopics, query, id); err != nil {
		return catalog.Subject{}, errors.Wrap(err, "querying subtopics")
	}
	subj.SubtopicCount = len(subj.Subtopics)
	if subj.SubtopicCount == 0 {
		return subj, nil
	}

	stIDs := make([]string, 0, len(subj.Subtopics))
	for i := range subj.Subtopics {
		subj.Subtopics[i].Lessons = make([]catalog.Lesson, 0)
		stIDs = append(stIDs, subj.Subtopics[i].ID)
	}

	var lessons []catalog.Lesson
	query = `SELECT id, title, content, subtopic_id FROM lesson WHERE subtopic_id = ANY($1) ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &lessons, query, pq.Array(stIDs)); err != nil {
		return catalog.Subject{}, errors.Wrap(err, "querying lessons")
	}

	bySubtopic := make(map[string]int, len(subj.Subtopics))
	for i, st := range subj.Subtopics {
		bySubtopic[st.ID] = i
	}
	for _, l := range lessons {
		i := bySubtopic[l.SubtopicID]
		subj.Subtopics[i].Lessons = append(subj.Subtopics[i].Lessons, l)
	}
	return subj, nil
}

func (repo catalogRepository) GetLesson(ctx context.Context, id string) (catalog.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return catalog.Lesson{}, catalog.ErrNotFound
	}

	var lesson catalog.Lesson
	query := `SELECT id, title, content, subtopic_id FROM lesson WHERE id = $1`
	if err := repo.db.GetContext(ctx, &lesson, query, id); err != nil {
		return catalog.Lesson{}, repo.trapNoRowsErr(err, "finding lesson by ID")
	}

	lesson.Quizzes = make([]catalog.Quiz, 0)
	query = `SELECT id, title, lesson_id FROM quiz WHERE lesson_id = $1 ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &lesson.Quizzes, query, id); err != nil {
		return catalog.Lesson{}, errors.Wrap(err, "querying quizzes")
	}
	if len(lesson.Quizzes) == 0 {
		return lesson, nil
	}

	qzIDs := make([]string, 0, len(lesson.Quizzes))
	for i := range lesson.Quizzes {
		lesson.Quizzes[i].Questions = make([]catalog.Question, 0)
		qzIDs = append(qzIDs, lesson.Quizzes[i].ID)
	}

	type questionRow struct {
		ID      string         `db:"id"`
		Text    string         `db:"text"`
		Options pq.StringArray `db:"options"`
		Answer  int            `db:"answer"`
		QuizID  string         `db:"quiz_id"`
	}
	var qRows []questionRow
	query = `SELECT id, text, options, answer, quiz_id FROM question WHERE quiz_id = ANY($1) ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &qRows, query, pq.Array(qzIDs)); err != nil {
		return catalog.Lesson{}, errors.Wrap(err, "querying questions")
	}

	byQuiz := make(map[string]int, len(lesson.Quizzes))
	for i, qz := range lesson.Quizzes {
		byQuiz[qz.ID] = i
	}
	for _, qr := range qRows {
		i := byQuiz[qr.QuizID]
		lesson.Quizzes[i].Questions = append(lesson.Quizzes[i].Questions, catalog.Question{
			ID:      qr.ID,
			Text:    qr.Text,
			Options: qr.Options,
			Answer:  qr.Answer,
			QuizID:  qr.QuizID,
		})
	}
	return lesson, nil
}
