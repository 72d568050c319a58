package lms

// Role labels issued by the API at login.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
	RoleAdmin      Role = "Admin"
)

// IsStaff reports whether the role manages course content and grades.
func (r Role) IsStaff() bool { return r == RoleInstructor || r == RoleAdmin }

type Course struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	InstructorName string `json:"instructorName"`
}

type CourseDetail struct {
	Course
	Lessons     []Lesson     `json:"lessons"`
	Assignments []Assignment `json:"assignments"`
}

type Lesson struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"` // HTML
	Order   int    `json:"order"`
}

type Assignment struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"` // HTML
	DueDate     *Time   `json:"dueDate,omitempty"`
	MaxPoints   float64 `json:"maxPoints"`
}

// Submission is one student's hand-in for an assignment. Grade stays nil
// until an instructor sets it.
type Submission struct {
	ID              int64    `json:"id"`
	StudentID       int64    `json:"studentId"`
	StudentUsername string   `json:"studentUsername"`
	SubmittedAt     Time     `json:"submittedAt"`
	Content         string   `json:"content,omitempty"`
	Grade           *float64 `json:"grade,omitempty"`
}

// MyCourse is an enrollment row of the signed-in student.
type MyCourse struct {
	CourseID    int64  `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type MyGrade struct {
	CourseID        int64    `json:"courseId"`
	CourseTitle     string   `json:"courseTitle"`
	AssignmentID    int64    `json:"assignmentId"`
	AssignmentTitle string   `json:"assignmentTitle"`
	Grade           *float64 `json:"grade,omitempty"`
	MaxPoints       float64  `json:"maxPoints"`
	SubmittedAt     Time     `json:"submittedAt"`
}

// GradebookEntry is the flattened student x assignment x submission x grade
// row of a course gradebook. Read-side only.
type GradebookEntry struct {
	StudentID       int64    `json:"studentId"`
	StudentUsername string   `json:"studentUsername"`
	AssignmentID    int64    `json:"assignmentId"`
	AssignmentTitle string   `json:"assignmentTitle"`
	Grade           *float64 `json:"grade,omitempty"`
	MaxPoints       float64  `json:"maxPoints"`
	SubmittedAt     Time     `json:"submittedAt"`
}

// Points is a helper for optional grade literals.
func Points(v float64) *float64 { return &v }
