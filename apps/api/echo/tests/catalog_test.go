package tests

import (
	"net/http"
	"testing"

	"github.com/tshimanga/elimu/core/catalog"
)

// subjectListing shapes a fixture subject the way the listing endpoint
// returns it: a count instead of the subtree.
func subjectListing(s catalog.Subject) catalog.Subject {
	s.SubtopicCount = len(s.Subtopics)
	s.Subtopics = nil
	return s
}

// subjectDetail shapes a fixture subject the way the detail endpoint
// returns it: subtopics and lessons, but no quiz subtree.
func subjectDetail(s catalog.Subject) catalog.Subject {
	s.SubtopicCount = len(s.Subtopics)
	subtopics := make([]catalog.Subtopic, len(s.Subtopics))
	for i, st := range s.Subtopics {
		lessons := make([]catalog.Lesson, len(st.Lessons))
		for j, les := range st.Lessons {
			les.Quizzes = nil
			lessons[j] = les
		}
		st.Lessons = lessons
		subtopics[i] = st
	}
	s.Subtopics = subtopics
	return s
}

func Test_catalogApi_querySubjects(t *testing.T) {
	app := setup(t)

	tt := httpTest{
		name: "Get all", method: http.MethodGet, path: "/api/subjects", wantCode: http.StatusOK,
		wantData: marchallObj(t, []catalog.Subject{
			subjectListing(catalogFixture[0]),
			subjectListing(catalogFixture[1]),
		}),
	}
	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_catalogApi_retrieveSubject(t *testing.T) {
	app := setup(t)

	notFound := marchallObj(t, httpErr{Error: "not found"})
	tests := []httpTest{
		{
			name: "Found", path: "/api/subjects/" + catalogFixture[0].ID, wantCode: http.StatusOK,
			wantData: marchallObj(t, subjectDetail(catalogFixture[0])),
		},
		{
			name: "Unknown ID", path: "/api/subjects/12121212-1212-1212-1212-121212121212",
			wantCode: http.StatusNotFound, wantData: notFound,
		},
		{
			name: "Malformed ID", path: "/api/subjects/lol",
			wantCode: http.StatusNotFound, wantData: notFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_retrieveLesson(t *testing.T) {
	app := setup(t)

	withQuiz := catalogFixture[0].Subtopics[0].Lessons[0]
	withoutQuiz := catalogFixture[1].Subtopics[0].Lessons[0]

	notFound := marchallObj(t, httpErr{Error: "not found"})
	tests := []httpTest{
		{
			name: "Found with quizzes", path: "/api/lessons/" + withQuiz.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, withQuiz),
		},
		{
			// a lesson with no quiz still serializes "quizzes": []
			name: "Found without quizzes", path: "/api/lessons/" + withoutQuiz.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, withoutQuiz),
		},
		{
			name: "Unknown ID", path: "/api/lessons/12121212-1212-1212-1212-121212121212",
			wantCode: http.StatusNotFound, wantData: notFound,
		},
		{
			name: "Malformed ID", path: "/api/lessons/lol",
			wantCode: http.StatusNotFound, wantData: notFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
