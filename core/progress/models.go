package progress

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/catalog"
)

// Progress records a user's completion state for one lesson.
// At most one row exists per (UserID, LessonID); the repository upsert
// enforces this, not the service.
type Progress struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	LessonID  string    `json:"lessonId" db:"lesson_id"`
	Completed bool      `json:"completed" db:"completed"`
	Score     int       `json:"score" db:"score"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // UTC

	// Lesson (with its subtopic and subject) is populated on the
	// per-user listing for display purposes only.
	Lesson *catalog.Lesson `json:"lesson,omitempty" db:"-"`
}

// NewProgress is a progress submission for the authenticated user.
type NewProgress struct {
	LessonID  string `json:"lessonId" validate:"required"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score" validate:"min=0,max=100"`
}

func (np *NewProgress) Validate(validate *validator.Validate) error {
	np.LessonID = core.CleanString(np.LessonID)
	return validate.Struct(np)
}
