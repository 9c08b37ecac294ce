package catalog_test

import (
	"context"
	"testing"

	"github.com/tshimanga/elimu/core/catalog"
	inmemdb "github.com/tshimanga/elimu/storage/database/inmem"
	testutil "github.com/tshimanga/elimu/tests"
)

func setup(t *testing.T) (*catalog.Service, []catalog.Subject) {
	t.Helper()

	db := inmemdb.NewDB()
	subjects := testutil.LoadCatalog(t, db)
	return catalog.NewService(inmemdb.NewCatalogRepository(db)), subjects
}

func TestService_QuerySubjects(t *testing.T) {
	svc, fixture := setup(t)

	subjects, err := svc.QuerySubjects(context.Background())
	if err != nil {
		t.Fatalf("QuerySubjects() failed: %v", err)
	}
	if len(subjects) != len(fixture) {
		t.Fatalf("subjects = %d, want %d", len(subjects), len(fixture))
	}
	// insertion order is preserved
	for i := range fixture {
		if subjects[i].ID != fixture[i].ID {
			t.Errorf("subjects[%d].ID = %s, want %s", i, subjects[i].ID, fixture[i].ID)
		}
	}
	// the listing carries counts, not subtrees
	if subjects[0].SubtopicCount != 2 {
		t.Errorf("SubtopicCount = %d, want 2", subjects[0].SubtopicCount)
	}
	if subjects[0].Subtopics != nil {
		t.Error("listing should not include subtopics")
	}
}

func TestService_GetSubject(t *testing.T) {
	svc, fixture := setup(t)
	maths := fixture[0]

	subj, err := svc.GetSubject(context.Background(), maths.ID)
	if err != nil {
		t.Fatalf("GetSubject() failed: %v", err)
	}
	if len(subj.Subtopics) != 2 {
		t.Fatalf("subtopics = %d, want 2", len(subj.Subtopics))
	}
	if got := subj.Subtopics[0].Lessons; len(got) != 1 {
		t.Fatalf("lessons = %d, want 1", len(got))
	}
	// lessons stop at the lesson level here, no quiz subtree
	if subj.Subtopics[0].Lessons[0].Quizzes != nil {
		t.Error("subject detail should not include quizzes")
	}
	// a subtopic with no lessons keeps an empty, non-nil slice
	if subj.Subtopics[1].Lessons == nil {
		t.Error("empty subtopic lessons should be non-nil")
	}
}

func TestService_GetSubject_notFound(t *testing.T) {
	svc, _ := setup(t)

	if _, err := svc.GetSubject(context.Background(), "00000000-0000-0000-0000-000000000000"); err != catalog.ErrNotFound {
		t.Errorf("GetSubject() error = %v, want %v", err, catalog.ErrNotFound)
	}
}

func TestService_GetLesson(t *testing.T) {
	svc, fixture := setup(t)
	lesson := fixture[0].Subtopics[0].Lessons[0]

	les, err := svc.GetLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson() failed: %v", err)
	}
	if len(les.Quizzes) != 1 {
		t.Fatalf("quizzes = %d, want 1", len(les.Quizzes))
	}
	quiz := les.Quizzes[0]
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Answer != 1 || q.Options[q.Answer] != "-5" {
		t.Errorf("question answer = %d (%v)", q.Answer, q.Options)
	}
}

func TestService_GetLesson_emptyQuizzes(t *testing.T) {
	svc, fixture := setup(t)
	lesson := fixture[1].Subtopics[0].Lessons[0]

	les, err := svc.GetLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson() failed: %v", err)
	}
	if les.Quizzes == nil {
		t.Error("quizzes should be an empty slice, not nil")
	}
	if les.HasQuizzes() {
		t.Error("HasQuizzes() = true for a quiz-less lesson")
	}
}

func TestService_GetLesson_notFound(t *testing.T) {
	svc, _ := setup(t)

	if _, err := svc.GetLesson(context.Background(), "00000000-0000-0000-0000-000000000000"); err != catalog.ErrNotFound {
		t.Errorf("GetLesson() error = %v, want %v", err, catalog.ErrNotFound)
	}
}
