// Package console renders the LMS views as plain-text tables. Each view
// fetches through the API gateway, gates itself on the signed-in role and
// writes to Out.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/gradebook"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/rbac"
	"github.com/mind-engage/mindengage-classroom/internal/session"
)

// Gateway is the part of *api.Client the views use.
type Gateway interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
	ListCourses(ctx context.Context) ([]lms.Course, error)
	GetCourse(ctx context.Context, courseID int64) (lms.CourseDetail, error)
	CreateCourse(ctx context.Context, req api.CreateCourseRequest) (lms.Course, error)
	CreateLesson(ctx context.Context, courseID int64, req api.CreateLessonRequest) (lms.Lesson, error)
	CreateAssignment(ctx context.Context, courseID int64, req api.CreateAssignmentRequest) (lms.Assignment, error)
	ListMyCourses(ctx context.Context) ([]lms.MyCourse, error)
	Enroll(ctx context.Context, courseID int64) error
	SubmitAssignment(ctx context.Context, assignmentID int64, req api.SubmitAssignmentRequest) error
	ListSubmissions(ctx context.Context, assignmentID int64) ([]lms.Submission, error)
	GradeSubmission(ctx context.Context, assignmentID, submissionID int64, grade int) error
	ListMyGrades(ctx context.Context) ([]lms.MyGrade, error)
	CourseGradebook(ctx context.Context, courseID int64) ([]lms.GradebookEntry, error)
}

var _ Gateway = (*api.Client)(nil)

type Console struct {
	API     Gateway
	Session *session.Store
	Exports gradebook.Sink
	Out     io.Writer
	Now     func() time.Time
	// Loc is the zone timestamps are shown in; nil means time.Local.
	Loc *time.Location
}

func New(gw Gateway, sess *session.Store, exports gradebook.Sink) *Console {
	return &Console{API: gw, Session: sess, Exports: exports, Out: os.Stdout, Now: time.Now}
}

// require returns the session when one exists and its role holds perm.
// perm may be empty for views any signed-in user can open.
func (c *Console) require(perm string) (session.Session, error) {
	sess, err := c.Session.Require()
	if err != nil {
		return session.Session{}, err
	}
	if perm != "" {
		if err := rbac.Check(string(sess.Role), perm); err != nil {
			return session.Session{}, err
		}
	}
	return sess, nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.Out, s)
}

func (c *Console) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
}

func row(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

// localTime renders t in the console zone, or "-" when unset.
func (c *Console) localTime(t lms.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(c.loc()).Format("2006-01-02 15:04:05")
}

func (c *Console) loc() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// score renders "<grade> / <max>" or the fallback when ungraded.
func score(grade *float64, max float64, ungraded string) string {
	if grade == nil {
		return ungraded
	}
	return points(*grade) + " / " + points(max)
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
