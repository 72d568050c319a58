package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mind-engage/mindengage-classroom/internal/console"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	stdinFd          = func() int { return int(os.Stdin.Fd()) }

	errHelp = errors.New("help provided")
)

type commandLine struct {
	console *console.Console
	in      io.Reader
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: lmsctl [glog flags] COMMAND [flags]")
	fmt.Fprintln(cli.out, "Commands:")
	fmt.Fprintln(cli.out, "  login -username NAME [-password PASS]    sign in (password is prompted when omitted)")
	fmt.Fprintln(cli.out, "  logout                                   forget the stored session")
	fmt.Fprintln(cli.out, "  whoami                                   show the signed-in user")
	fmt.Fprintln(cli.out, "  courses                                  list courses")
	fmt.Fprintln(cli.out, "  create-course -title T [-description D]  create a course")
	fmt.Fprintln(cli.out, "  my-courses                               list the courses you are enrolled in")
	fmt.Fprintln(cli.out, "  enroll -course ID                        enroll in a course")
	fmt.Fprintln(cli.out, "  course -id ID                            show lessons and assignments")
	fmt.Fprintln(cli.out, "  create-lesson -course ID -title T        add a lesson (Markdown body)")
	fmt.Fprintln(cli.out, "  create-assignment -course ID -title T    add an assignment (Markdown body)")
	fmt.Fprintln(cli.out, "  submit -assignment ID                    hand in an answer")
	fmt.Fprintln(cli.out, "  submissions -assignment ID               list submissions")
	fmt.Fprintln(cli.out, "  grade -assignment ID -submission ID -grade N")
	fmt.Fprintln(cli.out, "  my-grades                                list your grades")
	fmt.Fprintln(cli.out, "  gradebook -course ID [-assignment ID|all] [-student ID|all] [-export]")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse maps -h to errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func usage(fs *flag.FlagSet) error {
	fs.Usage()
	return errHelp
}

// body returns text, or the contents of file ("-" reads stdin).
func (cli *commandLine) body(text, file string) (string, error) {
	switch file {
	case "":
		return text, nil
	case "-":
		b, err := io.ReadAll(cli.in)
		return string(b), err
	default:
		b, err := os.ReadFile(file)
		return string(b), err
	}
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	c := cli.console
	cmd, rest := args[1], args[2:]
	fs := cli.flagSet(cmd)

	switch cmd {
	case "login":
		username := fs.String("username", "", "Your username.")
		password := fs.String("password", "", "Your password. Prompted when omitted.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if strings.TrimSpace(*username) == "" {
			return usage(fs)
		}
		pwd := *password
		if pwd == "" {
			fmt.Fprint(cli.out, "Enter password:")
			b, err := readPasswordFunc(stdinFd())
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			if len(b) == 0 {
				return usage(fs)
			}
			pwd = string(b)
		}
		return c.Login(ctx, *username, pwd)

	case "logout":
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.Logout(ctx)

	case "whoami":
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.Whoami()

	case "courses":
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.Courses(ctx)

	case "create-course":
		title := fs.String("title", "", "Course title.")
		desc := fs.String("description", "", "Course description.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.CreateCourse(ctx, *title, *desc)

	case "my-courses":
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.MyCourses(ctx)

	case "enroll":
		courseID := fs.Int64("course", 0, "Course id.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *courseID == 0 {
			return usage(fs)
		}
		return c.Enroll(ctx, *courseID)

	case "course":
		courseID := fs.Int64("id", 0, "Course id.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *courseID == 0 {
			return usage(fs)
		}
		return c.CourseDetail(ctx, *courseID)

	case "create-lesson":
		courseID := fs.Int64("course", 0, "Course id.")
		title := fs.String("title", "", "Lesson title. Nothing is created when blank.")
		content := fs.String("content", "", "Lesson body in Markdown.")
		contentFile := fs.String("content-file", "", "Read the body from this file (- for stdin).")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *courseID == 0 {
			return usage(fs)
		}
		md, err := cli.body(*content, *contentFile)
		if err != nil {
			return err
		}
		return c.CreateLesson(ctx, *courseID, *title, md)

	case "create-assignment":
		courseID := fs.Int64("course", 0, "Course id.")
		title := fs.String("title", "", "Assignment title. Nothing is created when blank.")
		desc := fs.String("description", "", "Assignment body in Markdown.")
		descFile := fs.String("description-file", "", "Read the body from this file (- for stdin).")
		due := fs.String("due", "", "Due date, e.g. 2024-06-01T17:00.")
		maxPoints := fs.Float64("max-points", console.DefaultMaxPoints, "Maximum points.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *courseID == 0 {
			return usage(fs)
		}
		md, err := cli.body(*desc, *descFile)
		if err != nil {
			return err
		}
		return c.CreateAssignment(ctx, *courseID, console.AssignmentInput{
			Title:       *title,
			Description: md,
			DueDate:     *due,
			MaxPoints:   *maxPoints,
		})

	case "submit":
		assignmentID := fs.Int64("assignment", 0, "Assignment id.")
		content := fs.String("content", "", "Your answer.")
		contentFile := fs.String("content-file", "", "Read the answer from this file (- for stdin).")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *assignmentID == 0 {
			return usage(fs)
		}
		answer, err := cli.body(*content, *contentFile)
		if err != nil {
			return err
		}
		return c.Submit(ctx, *assignmentID, answer)

	case "submissions":
		assignmentID := fs.Int64("assignment", 0, "Assignment id.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *assignmentID == 0 {
			return usage(fs)
		}
		return c.Submissions(ctx, *assignmentID)

	case "grade":
		assignmentID := fs.Int64("assignment", 0, "Assignment id.")
		submissionID := fs.Int64("submission", 0, "Submission id.")
		grade := fs.String("grade", "", "Grade; input not starting with a whole number is ignored.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *assignmentID == 0 || *submissionID == 0 {
			return usage(fs)
		}
		return c.SaveGrade(ctx, *assignmentID, *submissionID, *grade)

	case "my-grades":
		if err := parse(fs, rest); err != nil {
			return err
		}
		return c.MyGrades(ctx)

	case "gradebook":
		courseID := fs.Int64("course", 0, "Course id.")
		assignment := fs.String("assignment", "all", "Only this assignment id.")
		student := fs.String("student", "all", "Only this student id.")
		export := fs.Bool("export", false, "Write the filtered rows as CSV to the export directory.")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if *courseID == 0 {
			return usage(fs)
		}
		return c.Gradebook(ctx, *courseID, console.GradebookQuery{
			Assignment: *assignment,
			Student:    *student,
			Export:     *export,
		})

	default:
		cli.printUsage()
		return errHelp
	}
}
