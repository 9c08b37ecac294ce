// Package testutil holds helpers shared by the test suites.
package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/catalog"
	"github.com/tshimanga/elimu/core/user"
	inmemdb "github.com/tshimanga/elimu/storage/database/inmem"
)

// NewConfig builds a self-contained test config; nothing is read from
// the environment so suites behave the same everywhere.
func NewConfig() *core.Config {
	return &core.Config{
		TestMode:         true,
		Env:              "TEST",
		Build:            "test",
		AppName:          "Elimu",
		SecretKey:        "test-secret",
		DefaultFromEmail: mail.Address{Name: "Elimu", Address: "noreply@test.local"},
		Server: core.ServerConfig{
			Addr:               ":0",
			WebRoot:            "web",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
		},
	}
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      user.RoleStudent,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// LoadCatalog fills db with a small fixed catalog and returns the
// subjects in insertion order. The first subject carries the full
// subtree down to a question; the second has an empty-lesson subtopic.
func LoadCatalog(t *testing.T, db *inmemdb.DB) []catalog.Subject {
	t.Helper()

	maths := catalog.Subject{
		ID:          "11111111-1111-1111-1111-111111111111",
		Name:        "Mathematics",
		Description: "The study of numbers, shapes, and patterns.",
		Icon:        "calculator",
		Color:       "blue",
	}
	numbers := catalog.Subtopic{
		ID:        "22222222-2222-2222-2222-222222222222",
		Name:      "Numbers & Operations",
		SubjectID: maths.ID,
	}
	integers := catalog.Lesson{
		ID:         "33333333-3333-3333-3333-333333333333",
		Title:      "Introduction to Integers",
		Content:    "Integers are whole numbers that can be positive, negative, or zero.",
		SubtopicID: numbers.ID,
	}
	quiz := catalog.Quiz{
		ID:       "44444444-4444-4444-4444-444444444444",
		Title:    "Integers Quiz",
		LessonID: integers.ID,
		Questions: []catalog.Question{
			{
				ID:      "55555555-5555-5555-5555-555555555555",
				Text:    "Which of the following is an integer?",
				Options: []string{"1.5", "-5", "2/3", "0.75"},
				Answer:  1,
				QuizID:  "44444444-4444-4444-4444-444444444444",
			},
		},
	}
	integers.Quizzes = []catalog.Quiz{quiz}
	numbers.Lessons = []catalog.Lesson{integers}

	algebra := catalog.Subtopic{
		ID:        "66666666-6666-6666-6666-666666666666",
		Name:      "Algebra",
		SubjectID: maths.ID,
	}
	maths.Subtopics = []catalog.Subtopic{numbers, algebra}

	science := catalog.Subject{
		ID:          "77777777-7777-7777-7777-777777777777",
		Name:        "Science",
		Description: "The systematic study of the physical and natural world.",
		Icon:        "beaker",
		Color:       "green",
	}
	physics := catalog.Subtopic{
		ID:        "88888888-8888-8888-8888-888888888888",
		Name:      "Physics",
		SubjectID: science.ID,
	}
	laws := catalog.Lesson{
		ID:         "99999999-9999-9999-9999-999999999999",
		Title:      "Newtons Laws of Motion",
		Content:    "1. An object at rest stays at rest. 2. F = ma.",
		SubtopicID: physics.ID,
		Quizzes:    []catalog.Quiz{}, // a lesson with no quiz yet
	}
	physics.Lessons = []catalog.Lesson{laws}
	science.Subtopics = []catalog.Subtopic{physics}

	db.AddSubject(maths)
	db.AddSubject(science)
	return []catalog.Subject{maths, science}
}
