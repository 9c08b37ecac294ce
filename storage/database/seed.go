package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tshimanga/elimu/core/catalog"
	"github.com/tshimanga/elimu/core/user"
)

// demo student account
const (
	DemoUserEmail    = "student@example.com"
	DemoUserName     = "John Doe"
	DemoUserPassword = "password123"
)

type (
	seedQuestion struct {
		text    string
		options []string
		answer  int
	}
	seedQuiz struct {
		title     string
		questions []seedQuestion
	}
	seedLesson struct {
		title   string
		content string
		quizzes []seedQuiz
	}
	seedSubtopic struct {
		name    string
		lessons []seedLesson
	}
	seedSubject struct {
		name        string
		description string
		icon        string
		color       string
		subtopics   []seedSubtopic
	}
)

var demoSubjects = []seedSubject{
	{
		name:        "Mathematics",
		description: "The study of numbers, shapes, and patterns.",
		icon:        "calculator",
		color:       "blue",
		subtopics: []seedSubtopic{
			{
				name: "Numbers & Operations",
				lessons: []seedLesson{
					{
						title:   "Introduction to Integers",
						content: "Integers are whole numbers that can be positive, negative, or zero. They do not include fractions or decimals.",
						quizzes: []seedQuiz{
							{
								title: "Integers Quiz",
								questions: []seedQuestion{
									{
										text:    "Which of the following is an integer?",
										options: []string{"1.5", "-5", "2/3", "0.75"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Algebra"},
			{name: "Geometry"},
			{name: "Trigonometry"},
			{name: "Calculus"},
			{name: "Statistics & Probability"},
		},
	},
	{
		name:        "Science",
		description: "The systematic study of the structure and behavior of the physical and natural world.",
		icon:        "beaker",
		color:       "green",
		subtopics: []seedSubtopic{
			{
				name: "Physics",
				lessons: []seedLesson{
					{
						title:   "Newtons Laws of Motion",
						content: "1. An object at rest stays at rest. 2. F = ma. 3. Every action has an equal and opposite reaction.",
						quizzes: []seedQuiz{
							{
								title: "Physics Quiz",
								questions: []seedQuestion{
									{
										text:    "What is the formula for force?",
										options: []string{"F = m/a", "F = ma", "F = a/m", "F = m+a"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Chemistry"},
			{name: "Biology"},
			{name: "Earth Science"},
			{name: "Environmental Science"},
		},
	},
	{
		name:        "English",
		description: "Language, literature, and communication skills.",
		icon:        "book",
		color:       "purple",
		subtopics: []seedSubtopic{
			{
				name: "Grammar",
				lessons: []seedLesson{
					{
						title:   "Parts of Speech",
						content: "Nouns, Verbs, Adjectives, Adverbs, Pronouns, Prepositions, Conjunctions, and Interjections are the 8 parts of speech.",
						quizzes: []seedQuiz{
							{
								title: "Grammar Quiz",
								questions: []seedQuestion{
									{
										text:    "Which of these is a verb?",
										options: []string{"Apple", "Running", "Beautiful", "Quickly"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Vocabulary"},
			{name: "Reading Comprehension"},
			{name: "Writing Skills"},
			{name: "Literature"},
		},
	},
	{
		name:        "History",
		description: "The study of past events, particularly in human affairs.",
		icon:        "landmark",
		color:       "amber",
		subtopics: []seedSubtopic{
			{
				name: "Ancient History",
				lessons: []seedLesson{
					{
						title:   "The Indus Valley Civilization",
						content: "The Indus Valley Civilization was a Bronze Age civilization in the northwestern regions of South Asia.",
						quizzes: []seedQuiz{
							{
								title: "History Quiz",
								questions: []seedQuestion{
									{
										text:    "Which river was central to the Indus Valley Civilization?",
										options: []string{"Nile", "Indus", "Ganges", "Amazon"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Medieval History"},
			{name: "Modern History"},
			{name: "World History"},
			{name: "Civics"},
		},
	},
	{
		name:        "Geography",
		description: "The study of the physical features of the earth and its atmosphere.",
		icon:        "globe",
		color:       "emerald",
		subtopics: []seedSubtopic{
			{
				name: "Physical Geography",
				lessons: []seedLesson{
					{
						title:   "Internal Structure of the Earth",
						content: "The Earth consists of three main layers: the crust, the mantle, and the core.",
						quizzes: []seedQuiz{
							{
								title: "Geography Quiz",
								questions: []seedQuestion{
									{
										text:    "What is the outermost layer of the Earth?",
										options: []string{"Core", "Mantle", "Crust", "Magma"},
										answer:  2,
									},
								},
							},
						},
					},
				},
			},
			{name: "Human Geography"},
			{name: "Maps & Skills"},
			{name: "Climate & Weather"},
		},
	},
	{
		name:        "ICT / Computer Science",
		description: "Technology, computing, and digital literacy.",
		icon:        "cpu",
		color:       "indigo",
		subtopics: []seedSubtopic{
			{
				name: "Computer Basics",
				lessons: []seedLesson{
					{
						title:   "Introduction to Hardware",
						content: "Hardware refers to the physical components of a computer system, such as the CPU, RAM, and storage.",
						quizzes: []seedQuiz{
							{
								title: "ICT Quiz",
								questions: []seedQuestion{
									{
										text:    "What does CPU stand for?",
										options: []string{"Central Processing Unit", "Computer Personal Unit", "Central Process Utility", "Common Power Unit"},
										answer:  0,
									},
								},
							},
						},
					},
				},
			},
			{name: "Internet & Safety"},
			{name: "Programming Basics"},
			{name: "Data & Databases"},
			{name: "AI Fundamentals"},
		},
	},
	{
		name:        "General Knowledge (GK)",
		description: "Broad knowledge across various fields.",
		icon:        "lightbulb",
		color:       "yellow",
		subtopics: []seedSubtopic{
			{
				name: "World Facts",
				lessons: []seedLesson{
					{
						title:   "Seven Wonders of the World",
						content: "The Seven Wonders of the Ancient World is a list of remarkable constructions of classical antiquity.",
						quizzes: []seedQuiz{
							{
								title: "GK Quiz",
								questions: []seedQuestion{
									{
										text:    "Which of these is one of the Seven Wonders?",
										options: []string{"Eiffel Tower", "Great Wall of China", "Statue of Liberty", "Burj Khalifa"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Current Affairs"},
			{name: "Science & Tech GK"},
			{name: "Sports GK"},
			{name: "Logical Reasoning"},
		},
	},
	{
		name:        "Languages",
		description: "Study of different world languages.",
		icon:        "languages",
		color:       "pink",
		subtopics: []seedSubtopic{
			{
				name: "Grammar",
				lessons: []seedLesson{
					{
						title:   "Noun Genders",
						content: "In many languages, nouns have genders (masculine, feminine, neuter).",
						quizzes: []seedQuiz{
							{
								title: "Languages Quiz",
								questions: []seedQuestion{
									{
										text:    "What is \"gender\" in the context of grammar?",
										options: []string{"A type of verb", "A category for nouns", "A punctuation mark", "A tense"},
										answer:  1,
									},
								},
							},
						},
					},
				},
			},
			{name: "Speaking"},
			{name: "Listening"},
			{name: "Writing"},
		},
	},
	{
		name:        "Life Skills",
		description: "Essential skills for personal growth and career.",
		icon:        "user-check",
		color:       "cyan",
		subtopics: []seedSubtopic{
			{
				name: "Financial Literacy",
				lessons: []seedLesson{
					{
						title:   "Introduction to Budgeting",
						content: "Budgeting is the process of creating a plan to spend your money.",
						quizzes: []seedQuiz{
							{
								title: "Life Skills Quiz",
								questions: []seedQuestion{
									{
										text:    "What is a budget?",
										options: []string{"A spending plan", "A bank account", "A type of loan", "A credit card"},
										answer:  0,
									},
								},
							},
						},
					},
				},
			},
			{name: "Critical Thinking"},
			{name: "Health & Wellness"},
			{name: "Career Awareness"},
		},
	},
}

// DemoCatalog builds the demo subjects with fresh IDs and all parent
// references wired. Handy for loading the in-memory repositories.
func DemoCatalog() []catalog.Subject {
	subjects := make([]catalog.Subject, 0, len(demoSubjects))
	for _, s := range demoSubjects {
		subj := catalog.Subject{
			ID:          uuid.New().String(),
			Name:        s.name,
			Description: s.description,
			Icon:        s.icon,
			Color:       s.color,
		}
		for _, st := range s.subtopics {
			subt := catalog.Subtopic{
				ID:        uuid.New().String(),
				Name:      st.name,
				SubjectID: subj.ID,
				Lessons:   make([]catalog.Lesson, 0, len(st.lessons)),
			}
			for _, l := range st.lessons {
				les := catalog.Lesson{
					ID:         uuid.New().String(),
					Title:      l.title,
					Content:    l.content,
					SubtopicID: subt.ID,
					Quizzes:    make([]catalog.Quiz, 0, len(l.quizzes)),
				}
				for _, q := range l.quizzes {
					qz := catalog.Quiz{
						ID:        uuid.New().String(),
						Title:     q.title,
						LessonID:  les.ID,
						Questions: make([]catalog.Question, 0, len(q.questions)),
					}
					for _, ques := range q.questions {
						qz.Questions = append(qz.Questions, catalog.Question{
							ID:      uuid.New().String(),
							Text:    ques.text,
							Options: ques.options,
							Answer:  ques.answer,
							QuizID:  qz.ID,
						})
					}
					les.Quizzes = append(les.Quizzes, qz)
				}
				subt.Lessons = append(subt.Lessons, les)
			}
			subj.Subtopics = append(subj.Subtopics, subt)
		}
		subjects = append(subjects, subj)
	}
	return subjects
}

// DemoUser builds the demo student account with its password hashed.
func DemoUser() (user.User, error) {
	usr := user.User{
		ID:    uuid.New().String(),
		Email: DemoUserEmail,
		Name:  DemoUserName,
		Role:  user.RoleStudent,
	}
	if err := usr.SetPassword(DemoUserPassword); err != nil {
		return user.User{}, errors.Wrap(err, "hashing demo password")
	}
	return usr, nil
}

// Seed loads the demo catalog and the demo student account.
// It is safe to run repeatedly: existing subjects keep their subtree
// untouched and the demo account is never overwritten.
func Seed(ctx context.Context, db *sqlx.DB) error {
	usr, err := DemoUser()
	if err != nil {
		return err
	}
	query := `INSERT INTO "user" (id, email, name, role, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (email) DO NOTHING`
	if _, err = db.ExecContext(ctx, query, usr.ID, usr.Email, usr.Name, usr.Role, usr.PasswordHash); err != nil {
		return errors.Wrap(err, "seeding demo user")
	}

	// created_at drives the catalog listing order, so rows get explicit
	// increasing timestamps matching their fixture position.
	base := time.Now().UTC()
	n := 0
	next := func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}

	for _, subj := range DemoCatalog() {
		var exists bool
		query = `SELECT EXISTS (SELECT 1 FROM subject WHERE name = $1)`
		if err = db.GetContext(ctx, &exists, query, subj.Name); err != nil {
			return errors.Wrapf(err, "checking subject %q", subj.Name)
		}
		if exists {
			continue
		}

		query = `INSERT INTO subject (id, name, description, icon, color, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err = db.ExecContext(ctx, query, subj.ID, subj.Name, subj.Description, subj.Icon, subj.Color, next()); err != nil {
			return errors.Wrapf(err, "seeding subject %q", subj.Name)
		}
		for _, subt := range subj.Subtopics {
			query = `INSERT INTO subtopic (id, name, subject_id, created_at) VALUES ($1, $2, $3, $4)`
			if _, err = db.ExecContext(ctx, query, subt.ID, subt.Name, subt.SubjectID, next()); err != nil {
				return errors.Wrapf(err, "seeding subtopic %q", subt.Name)
			}
			for _, les := range subt.Lessons {
				query = `INSERT INTO lesson (id, title, content, subtopic_id, created_at) VALUES ($1, $2, $3, $4, $5)`
				if _, err = db.ExecContext(ctx, query, les.ID, les.Title, les.Content, les.SubtopicID, next()); err != nil {
					return errors.Wrapf(err, "seeding lesson %q", les.Title)
				}
				for _, qz := range les.Quizzes {
					query = `INSERT INTO quiz (id, title, lesson_id, created_at) VALUES ($1, $2, $3, $4)`
					if _, err = db.ExecContext(ctx, query, qz.ID, qz.Title, qz.LessonID, next()); err != nil {
						return errors.Wrapf(err, "seeding quiz %q", qz.Title)
					}
					for _, ques := range qz.Questions {
						query = `INSERT INTO question (id, text, options, answer, quiz_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
						if _, err = db.ExecContext(ctx, query, ques.ID, ques.Text, pq.Array(ques.Options), ques.Answer, ques.QuizID, next()); err != nil {
							return errors.Wrap(err, "seeding question")
						}
					}
				}
			}
		}
	}
	return nil
}
