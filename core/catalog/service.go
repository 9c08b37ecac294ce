package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type (
	Repository interface {
		// QuerySubjects returns all subjects, each annotated with its subtopic count.
		QuerySubjects(ctx context.Context) ([]Subject, error)
		// GetSubject returns a subject with nested subtopics and their lessons.
		GetSubject(ctx context.Context, id string) (Subject, error)
		// GetLesson returns a lesson with nested quizzes and their questions.
		GetLesson(ctx context.Context, id string) (Lesson, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QuerySubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *Service) GetSubject(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *Service) GetLesson(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLesson(ctx, id)
}
