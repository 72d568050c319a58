package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/config"
	"github.com/mind-engage/mindengage-classroom/internal/console"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/lmstest"
	"github.com/mind-engage/mindengage-classroom/internal/session"
	"github.com/mind-engage/mindengage-classroom/internal/storage"
)

type fixture struct {
	srv       *lmstest.Server
	cli       *commandLine
	out       *bytes.Buffer
	in        *bytes.Buffer
	stateDir  string
	exportDir string

	course, hw int64
	alice      int64
	sub        int64
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := lmstest.New(t)
	f := &fixture{srv: srv, out: &bytes.Buffer{}, in: &bytes.Buffer{}, stateDir: t.TempDir(), exportDir: t.TempDir()}

	items, err := storage.NewFSStore(f.stateDir)
	require.NoError(t, err)
	exports, err := storage.NewFSStore(f.exportDir)
	require.NoError(t, err)
	sess := session.NewStore(items)
	sess.Restore(context.Background())

	c := console.New(api.New(api.Config{BaseURL: srv.BaseURL(), Tokens: sess}), sess, exports)
	c.Out = f.out
	c.Loc = time.UTC
	c.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	f.cli = &commandLine{console: c, in: f.in, out: f.out}

	srv.AddUser("teacher", "s3cret", lms.RoleInstructor)
	f.alice = srv.AddUser("alice", "pw", lms.RoleStudent)
	f.course = srv.AddCourse("Algebra", "", "teacher")
	f.hw = srv.AddAssignment(f.course, "HW1", 10)
	f.sub = srv.AddSubmission(f.hw, f.alice, "x", time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC), nil)
	return f
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func (f *fixture) runTests(t *testing.T, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.out.Reset()
			err := f.cli.run(context.Background(), append([]string{"lmsctl"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, err.Error())
				}
			default:
				assert.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, f.out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	f := setup(t)
	f.runTests(t, []cliTest{
		{name: "no command", args: nil, wantErr: errHelp, wantOut: "Usage: lmsctl"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "help flag", args: []string{"courses", "-h"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"courses", "-nope"}, wantErrStr: "flag provided but not defined: -nope"},
		{name: "login: no username", args: []string{"login"}, wantErr: errHelp},
		{name: "enroll: no course", args: []string{"enroll"}, wantErr: errHelp},
		{name: "course: no id", args: []string{"course"}, wantErr: errHelp},
		{name: "grade: no submission", args: []string{"grade", "-assignment", "1"}, wantErr: errHelp},
		{name: "gradebook: no course", args: []string{"gradebook"}, wantErr: errHelp},
	})
	assert.Empty(t, f.srv.Requests())
}

func Test_commandLine_signedOut(t *testing.T) {
	f := setup(t)
	f.runTests(t, []cliTest{
		{name: "whoami", args: []string{"whoami"}, wantOut: "Not signed in."},
		{name: "courses", args: []string{"courses"}, wantErr: session.ErrLoginRequired},
		{name: "gradebook", args: []string{"gradebook", "-course", "1"}, wantErr: session.ErrLoginRequired},
		{name: "bad login", args: []string{"login", "-username", "teacher", "-password", "x"}, wantErrStr: "Invalid credentials: 401 Unauthorized (invalid credentials)"},
	})
}

func Test_commandLine_instructor(t *testing.T) {
	f := setup(t)
	course := f.srv.AddCourse("Empty", "", "teacher")
	hw := id(f.hw)
	f.runTests(t, []cliTest{
		{name: "login", args: []string{"login", "-username", "teacher", "-password", "s3cret"}, wantOut: "Signed in as teacher (Instructor)"},
		{name: "whoami", args: []string{"whoami"}, wantOut: "Signed in as teacher (Instructor)"},
		{name: "courses", args: []string{"courses"}, wantOut: "Algebra"},
		{name: "create course", args: []string{"create-course", "-title", "Geometry"}, wantOut: "Created course"},
		{name: "create course: blank", args: []string{"create-course", "-title", " "}, wantErrStr: "title must not be blank"},
		{name: "create lesson", args: []string{"create-lesson", "-course", id(course), "-title", "Intro", "-content", "**hi**"}, wantOut: "Created lesson"},
		{name: "create assignment", args: []string{"create-assignment", "-course", id(course), "-title", "Quiz", "-due", "2024-06-01"}, wantOut: "Created assignment"},
		{name: "course", args: []string{"course", "-id", id(course)}, wantOut: "] Quiz (max 100, due 2024-06-01 00:00:00)"},
		{name: "submissions", args: []string{"submissions", "-assignment", hw}, wantOut: "Not graded"},
		{name: "grade: ignored", args: []string{"grade", "-assignment", hw, "-submission", id(f.sub), "-grade", "abc"}},
		{name: "grade", args: []string{"grade", "-assignment", hw, "-submission", id(f.sub), "-grade", "9"}, wantOut: "Saved grade 9"},
		{name: "gradebook", args: []string{"gradebook", "-course", id(f.course), "-export"}, wantOut: "90.0%"},
		{name: "my grades", args: []string{"my-grades"}, wantOut: "only available for students"},
		{name: "submit: forbidden", args: []string{"submit", "-assignment", hw, "-content", "x"}, wantErrStr: "Instructor accounts are not allowed to create submission"},
		{name: "logout", args: []string{"logout"}, wantOut: "Signed out."},
	})

	d, ok := f.srv.Course(course)
	require.True(t, ok)
	require.Len(t, d.Lessons, 1)
	assert.Equal(t, "<p><strong>hi</strong></p>", d.Lessons[0].Content)

	files, err := os.ReadDir(f.exportDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "gradebook_course_"+id(f.course)+"_1714564800000.csv", files[0].Name())

	b, err := os.ReadFile(filepath.Join(f.stateDir, session.StorageKey))
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":null,"username":null,"role":null}`, string(b))
}

func Test_commandLine_student(t *testing.T) {
	f := setup(t)
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("pw"), nil }
	defer func() { readPasswordFunc = orig }()
	f.in.WriteString("answer from stdin")

	f.runTests(t, []cliTest{
		{name: "login prompts", args: []string{"login", "-username", "alice"}, wantOut: "Enter password:\nSigned in as alice (Student)"},
		{name: "courses", args: []string{"courses"}, wantOut: "Not enrolled"},
		{name: "my courses: none", args: []string{"my-courses"}, wantOut: "You are not enrolled in any courses yet."},
		{name: "enroll", args: []string{"enroll", "-course", id(f.course)}, wantOut: "Enrolled in course"},
		{name: "courses: enrolled", args: []string{"courses"}, wantOut: "In progress"},
		{name: "submit", args: []string{"submit", "-assignment", id(f.hw), "-content-file", "-"}, wantOut: "Submission received."},
		{name: "my grades", args: []string{"my-grades"}, wantOut: "Pending"},
		{name: "gradebook: forbidden", args: []string{"gradebook", "-course", id(f.course)}, wantErrStr: "Student accounts are not allowed to view gradebook"},
	})

	n := 0
	for _, r := range f.srv.Requests() {
		if r.Method == "POST" && strings.HasSuffix(r.Path, "/submit") {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestOpenItems(t *testing.T) {
	ctx := context.Background()
	for _, driver := range []string{config.StorageFile, config.StorageSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Config{StorageDriver: driver, StateDir: filepath.Join(t.TempDir(), "state")}
			items, closeFn, err := openItems(ctx, cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			s := session.NewStore(items)
			require.NoError(t, s.Login(ctx, "tok", "alice", lms.RoleStudent))
			again := session.NewStore(items).Restore(ctx)
			assert.Equal(t, "alice", again.Username)

			require.NoError(t, items.RemoveItem(ctx, session.StorageKey))
			assert.False(t, session.NewStore(items).Restore(ctx).IsAuthenticated())
		})
	}
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
