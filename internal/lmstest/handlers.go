package lmstest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-classroom/internal/auth"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// caller resolves the token subject; call with s.mu held.
func (s *Server) caller(r *http.Request) *user {
	id, err := strconv.ParseInt(auth.SubjectFromContext(r.Context()), 10, 64)
	if err != nil {
		return nil
	}
	return s.users[id]
}

// POST /api/auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.Username == req.Username {
			found = u
			break
		}
	}
	s.mu.Unlock()
	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	tok, err := s.Auth.IssueJWT(strconv.FormatInt(found.ID, 10), found.Username, string(found.Role))
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	render.JSON(w, r, map[string]string{"token": tok, "username": found.Username, "role": string(found.Role)})
}

// GET /api/courses
func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]lms.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, *c)
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

func (s *Server) courseDetail(courseID int64) (lms.CourseDetail, bool) {
	for _, c := range s.courses {
		if c.ID != courseID {
			continue
		}
		d := lms.CourseDetail{Course: *c, Lessons: []lms.Lesson{}, Assignments: []lms.Assignment{}}
		d.Lessons = append(d.Lessons, s.lessons[courseID]...)
		for _, a := range s.assignments {
			if a.courseID == courseID {
				d.Assignments = append(d.Assignments, a.Assignment)
			}
		}
		return d, true
	}
	return lms.CourseDetail{}, false
}

// GET /api/courses/{courseID}
func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	d, found := s.courseDetail(id)
	s.mu.Unlock()
	if !found {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, d)
}

// POST /api/courses
func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil || strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	me := s.caller(r)
	c := &lms.Course{ID: s.nextID(), Title: req.Title, Description: req.Description, InstructorName: me.Username}
	s.courses = append(s.courses, c)
	s.mu.Unlock()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// POST /api/courses/{courseID}/lessons
func (s *Server) createLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil || strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	if _, found := s.courseDetail(id); !found {
		s.mu.Unlock()
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	l := lms.Lesson{ID: s.nextID(), Title: req.Title, Content: req.Content, Order: len(s.lessons[id]) + 1}
	s.lessons[id] = append(s.lessons[id], l)
	s.mu.Unlock()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, l)
}

// POST /api/courses/{courseID}/assignments
func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	var req lms.Assignment
	if err := render.DecodeJSON(r.Body, &req); err != nil || strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	if _, found := s.courseDetail(id); !found {
		s.mu.Unlock()
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	req.ID = s.nextID()
	s.assignments = append(s.assignments, &assignment{courseID: id, Assignment: req})
	s.mu.Unlock()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, req)
}

// GET /api/enrollments/my
func (s *Server) myCourses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	me := s.caller(r)
	out := []lms.MyCourse{}
	for _, cid := range s.enrolled[me.ID] {
		if d, ok := s.courseDetail(cid); ok {
			out = append(out, lms.MyCourse{CourseID: d.ID, Title: d.Title, Description: d.Description})
		}
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

// POST /api/enrollments/{courseID}
func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.courseDetail(id); !found {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	me := s.caller(r)
	for _, cid := range s.enrolled[me.ID] {
		if cid == id {
			http.Error(w, "already enrolled", http.StatusConflict)
			return
		}
	}
	s.enrolled[me.ID] = append(s.enrolled[me.ID], id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) findAssignment(id int64) *assignment {
	for _, a := range s.assignments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// POST /api/assignments/{assignmentID}/submit
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "assignmentID")
	if !ok {
		http.Error(w, "bad assignment id", http.StatusBadRequest)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findAssignment(id) == nil {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	me := s.caller(r)
	s.submissions = append(s.submissions, &submission{assignmentID: id, Submission: lms.Submission{
		ID:              s.nextID(),
		StudentID:       me.ID,
		StudentUsername: me.Username,
		SubmittedAt:     lms.Time{Time: s.Now()},
		Content:         req.Content,
	}})
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/assignments/{assignmentID}/submissions
func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "assignmentID")
	if !ok {
		http.Error(w, "bad assignment id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	out := []lms.Submission{}
	for _, sub := range s.submissions {
		if sub.assignmentID == id {
			out = append(out, sub.Submission)
		}
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

// PUT /api/assignments/{assignmentID}/submissions/{submissionID}/grade
func (s *Server) grade(w http.ResponseWriter, r *http.Request) {
	aid, ok1 := idParam(r, "assignmentID")
	sid, ok2 := idParam(r, "submissionID")
	if !ok1 || !ok2 {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	var req struct {
		Grade *float64 `json:"grade"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil || req.Grade == nil {
		http.Error(w, "grade required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.submissions {
		if sub.ID == sid && sub.assignmentID == aid {
			g := *req.Grade
			sub.Grade = &g
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "submission not found", http.StatusNotFound)
}

// GET /api/grades/my
func (s *Server) myGrades(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	me := s.caller(r)
	out := []lms.MyGrade{}
	for _, sub := range s.submissions {
		if sub.StudentID != me.ID {
			continue
		}
		a := s.findAssignment(sub.assignmentID)
		d, _ := s.courseDetail(a.courseID)
		out = append(out, lms.MyGrade{
			CourseID:        d.ID,
			CourseTitle:     d.Title,
			AssignmentID:    a.ID,
			AssignmentTitle: a.Title,
			Grade:           sub.Grade,
			MaxPoints:       a.MaxPoints,
			SubmittedAt:     sub.SubmittedAt,
		})
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}

// GET /api/grades/course/{courseID}
func (s *Server) gradebook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	out := []lms.GradebookEntry{}
	for _, sub := range s.submissions {
		a := s.findAssignment(sub.assignmentID)
		if a == nil || a.courseID != id {
			continue
		}
		out = append(out, lms.GradebookEntry{
			StudentID:       sub.StudentID,
			StudentUsername: sub.StudentUsername,
			AssignmentID:    a.ID,
			AssignmentTitle: a.Title,
			Grade:           sub.Grade,
			MaxPoints:       a.MaxPoints,
			SubmittedAt:     sub.SubmittedAt,
		})
	}
	s.mu.Unlock()
	render.JSON(w, r, out)
}
