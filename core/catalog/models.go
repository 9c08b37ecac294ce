package catalog

// The catalog hierarchy is read-only at runtime: subjects own subtopics,
// subtopics own lessons, lessons own quizzes, quizzes own questions.
// Rows only ever come from migrations and seeding.

type Subject struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	Icon          string     `json:"icon" db:"icon"`
	Color         string     `json:"color" db:"color"`
	SubtopicCount int        `json:"subtopicCount" db:"subtopic_count"`
	Subtopics     []Subtopic `json:"subtopics,omitempty" db:"-"`
}

type Subtopic struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	SubjectID string   `json:"subjectId" db:"subject_id"`
	Lessons   []Lesson `json:"lessons,omitempty" db:"-"`
	Subject   *Subject `json:"subject,omitempty" db:"-"`
}

type Lesson struct {
	ID         string `json:"id" db:"id"`
	Title      string `json:"title" db:"title"`
	Content    string `json:"content" db:"content"`
	SubtopicID string `json:"subtopicId" db:"subtopic_id"`
	// Quizzes is always non-nil on the lesson detail path so an empty
	// quiz list serializes as [] rather than disappearing.
	Quizzes  []Quiz    `json:"quizzes" db:"-"`
	Subtopic *Subtopic `json:"subtopic,omitempty" db:"-"`
}

// HasQuizzes reports whether a "take quiz" affordance makes sense for the lesson.
func (l Lesson) HasQuizzes() bool { return len(l.Quizzes) > 0 }

type Quiz struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	LessonID  string     `json:"lessonId" db:"lesson_id"`
	Questions []Question `json:"questions" db:"-"`
}

type Question struct {
	ID   string `json:"id" db:"id"`
	Text string `json:"text" db:"text"`
	// Options is an ordered sequence; Answer indexes into it. Whether the
	// index is in range is a data-entry concern, the system never checks it.
	Options []string `json:"options" db:"-"`
	Answer  int      `json:"answer" db:"answer"`
	QuizID  string   `json:"quizId" db:"quiz_id"`
}
