// Package lmstest runs an in-memory LMS API over httptest for client tests.
// It serves the same routes, status codes and role checks as the real API.
package lmstest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-classroom/internal/auth"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/rbac"
)

// Origin is the browser origin the API allows cross-site calls from.
const Origin = "http://localhost:5173"

// Request is one request the server saw.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type user struct {
	ID       int64
	Username string
	Role     lms.Role
	hash     []byte
}

type assignment struct {
	courseID int64
	lms.Assignment
}

type submission struct {
	assignmentID int64
	lms.Submission
}

type Server struct {
	*httptest.Server
	Auth *auth.AuthService
	Now  func() time.Time

	mu          sync.Mutex
	seq         int64
	users       map[int64]*user
	courses     []*lms.Course
	lessons     map[int64][]lms.Lesson
	assignments []*assignment
	submissions []*submission
	enrolled    map[int64][]int64 // student id -> course ids
	requests    []Request
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Auth:     auth.NewAuthService("lmstest-secret"),
		Now:      func() time.Time { return time.Now().UTC() },
		users:    map[int64]*user{},
		lessons:  map[int64][]lms.Lesson{},
		enrolled: map[int64][]int64{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root clients should be configured with.
func (s *Server) BaseURL() string { return s.URL + "/api" }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, s.record)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{Origin},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(s.Auth))

			pr.With(rbac.Require(rbac.PermCourseView)).Get("/courses", s.listCourses)
			pr.With(rbac.Require(rbac.PermCourseView)).Get("/courses/{courseID}", s.getCourse)
			pr.With(rbac.Require(rbac.PermCourseCreate)).Post("/courses", s.createCourse)
			pr.With(rbac.Require(rbac.PermLessonCreate)).Post("/courses/{courseID}/lessons", s.createLesson)
			pr.With(rbac.Require(rbac.PermAssignmentCreate)).Post("/courses/{courseID}/assignments", s.createAssignment)

			pr.With(rbac.Require(rbac.PermEnrollmentViewOwn)).Get("/enrollments/my", s.myCourses)
			pr.With(rbac.Require(rbac.PermEnrollmentCreate)).Post("/enrollments/{courseID}", s.enroll)

			pr.With(rbac.Require(rbac.PermSubmissionCreate)).Post("/assignments/{assignmentID}/submit", s.submit)
			pr.With(rbac.Require(rbac.PermSubmissionViewAll)).Get("/assignments/{assignmentID}/submissions", s.listSubmissions)
			pr.With(rbac.Require(rbac.PermSubmissionGrade)).Put("/assignments/{assignmentID}/submissions/{submissionID}/grade", s.grade)

			pr.With(rbac.Require(rbac.PermGradeViewOwn)).Get("/grades/my", s.myGrades)
			pr.With(rbac.Require(rbac.PermGradebookView)).Get("/grades/course/{courseID}", s.gradebook)
		})
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count is the number of requests seen for method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ---- seeding ----

func (s *Server) nextID() int64 {
	s.seq++
	return s.seq
}

// AddUser registers an account and returns its id.
func (s *Server) AddUser(username, password string, role lms.Role) int64 {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{ID: s.nextID(), Username: username, Role: role, hash: hash}
	s.users[u.ID] = u
	return u.ID
}

// Token signs a bearer token for an existing user without a login round trip.
func (s *Server) Token(userID int64) string {
	s.mu.Lock()
	u := s.users[userID]
	s.mu.Unlock()
	tok, err := s.Auth.IssueJWT(strconv.FormatInt(u.ID, 10), u.Username, string(u.Role))
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) AddCourse(title, description, instructor string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &lms.Course{ID: s.nextID(), Title: title, Description: description, InstructorName: instructor}
	s.courses = append(s.courses, c)
	return c.ID
}

func (s *Server) AddLesson(courseID int64, title, content string, order int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := lms.Lesson{ID: s.nextID(), Title: title, Content: content, Order: order}
	s.lessons[courseID] = append(s.lessons[courseID], l)
	return l.ID
}

func (s *Server) AddAssignment(courseID int64, title string, maxPoints float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &assignment{courseID: courseID, Assignment: lms.Assignment{ID: s.nextID(), Title: title, MaxPoints: maxPoints}}
	s.assignments = append(s.assignments, a)
	return a.ID
}

func (s *Server) AddSubmission(assignmentID, studentID int64, content string, at time.Time, grade *float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &submission{assignmentID: assignmentID, Submission: lms.Submission{
		ID:              s.nextID(),
		StudentID:       studentID,
		StudentUsername: s.users[studentID].Username,
		SubmittedAt:     lms.Time{Time: at},
		Content:         content,
		Grade:           grade,
	}}
	s.submissions = append(s.submissions, sub)
	return sub.ID
}

func (s *Server) Enroll(studentID, courseID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrolled[studentID] = append(s.enrolled[studentID], courseID)
}

// Grade returns the stored grade of a submission.
func (s *Server) Grade(submissionID int64) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.submissions {
		if sub.ID == submissionID {
			return sub.Grade
		}
	}
	return nil
}

// Course returns the stored course detail, as the API would serve it.
func (s *Server) Course(courseID int64) (lms.CourseDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courseDetail(courseID)
}
