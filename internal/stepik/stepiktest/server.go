// Package stepiktest serves canned Stepik API records over httptest.
package stepiktest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/klytics/coursegrid/internal/stepik"
)

// Fixture holds the records the fake API knows about, keyed by id.
type Fixture struct {
	Courses  map[int]stepik.Course
	Sections map[int]stepik.Section
	Units    map[int]stepik.Unit
	Lessons  map[int]stepik.Lesson
}

// Server is a fake Stepik API. Unknown ids answer with an empty result array,
// the same as the real API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	fixture  Fixture
	requests []string
}

// NewServer starts a fake API. Callers must Close it.
func NewServer(f Fixture) *Server {
	s := &Server{fixture: f}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Requests returns the request paths served so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Path)
	s.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var body any
	switch parts[0] {
	case "courses":
		body = map[string][]stepik.Course{"courses": lookup(s.fixture.Courses, id)}
	case "sections":
		body = map[string][]stepik.Section{"sections": lookup(s.fixture.Sections, id)}
	case "units":
		body = map[string][]stepik.Unit{"units": lookup(s.fixture.Units, id)}
	case "lessons":
		body = map[string][]stepik.Lesson{"lessons": lookup(s.fixture.Lessons, id)}
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func lookup[T any](m map[int]T, id int) []T {
	v, ok := m[id]
	if !ok {
		return []T{}
	}
	return []T{v}
}

// TwoSections returns a course (id 1) with two sections whose lessons add up
// to 4 and 7 sessions with the default 10/30 limits.
func TwoSections() Fixture {
	return Fixture{
		Courses: map[int]stepik.Course{
			1: {ID: 1, Title: "Go Basics", Sections: []int{10, 20}},
		},
		Sections: map[int]stepik.Section{
			10: {ID: 10, Title: "Intro", Units: []int{100, 101}},
			20: {ID: 20, Title: "Deep Dive", Units: []int{200, 201, 202}},
		},
		Units: map[int]stepik.Unit{
			100: {ID: 100, Lesson: 1000},
			101: {ID: 101, Lesson: 1001},
			200: {ID: 200, Lesson: 2000},
			201: {ID: 201, Lesson: 2001},
			202: {ID: 202, Lesson: 2002},
		},
		Lessons: map[int]stepik.Lesson{
			1000: {ID: 1000, Title: "Hello", TimeToComplete: 300},   // 1
			1001: {ID: 1001, Title: "Types", TimeToComplete: 5400},  // 3
			2000: {ID: 2000, Title: "Maps", TimeToComplete: 3600},   // 2
			2001: {ID: 2001, Title: "Slices", TimeToComplete: 7200}, // 4
			2002: {ID: 2002, Title: "Errors", TimeToComplete: 1800}, // 1
		},
	}
}
