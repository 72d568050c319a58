package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-classroom/internal/gradebook"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/rbac"
)

// Submissions lists what students handed in for an assignment.
func (c *Console) Submissions(ctx context.Context, assignmentID int64) error {
	if _, err := c.require(rbac.PermSubmissionViewAll); err != nil {
		return err
	}
	subs, err := c.API.ListSubmissions(ctx, assignmentID)
	if err != nil {
		return err
	}
	c.printf("Submissions for assignment %d\n", assignmentID)
	if len(subs) == 0 {
		c.println("No submissions yet.")
		return nil
	}
	tw := c.table()
	row(tw, "ID", "STUDENT", "SUBMITTED", "GRADE", "CONTENT")
	for _, s := range subs {
		grade := "Not graded"
		if s.Grade != nil {
			grade = points(*s.Grade)
		}
		row(tw, id(s.ID), s.StudentUsername, c.localTime(s.SubmittedAt), grade,
			strings.ReplaceAll(plainText(s.Content), "\n", " "))
	}
	return tw.Flush()
}

// SaveGrade grades a submission. Input that does not start with an integer
// is dropped without a request or a message.
func (c *Console) SaveGrade(ctx context.Context, assignmentID, submissionID int64, raw string) error {
	if _, err := c.require(rbac.PermSubmissionGrade); err != nil {
		return err
	}
	grade, ok := gradebook.ParseGrade(raw)
	if !ok {
		return nil
	}
	if err := c.API.GradeSubmission(ctx, assignmentID, submissionID, grade); err != nil {
		return err
	}
	c.printf("Saved grade %d for submission %d.\n", grade, submissionID)
	return nil
}

// MyGrades lists the signed-in student's submissions and grades.
func (c *Console) MyGrades(ctx context.Context) error {
	sess, err := c.Session.Require()
	if err != nil {
		return err
	}
	if sess.Role != lms.RoleStudent {
		c.println("My grades is only available for students.")
		return nil
	}
	grades, err := c.API.ListMyGrades(ctx)
	if err != nil {
		return err
	}
	if len(grades) == 0 {
		c.println("You don't have any graded submissions yet.")
		return nil
	}
	c.println("My grades")
	tw := c.table()
	row(tw, "COURSE", "ASSIGNMENT", "SUBMITTED", "GRADE")
	for _, g := range grades {
		row(tw, g.CourseTitle, g.AssignmentTitle, c.localTime(g.SubmittedAt), score(g.Grade, g.MaxPoints, "Pending"))
	}
	return tw.Flush()
}

// GradebookQuery holds the gradebook view's filter menus and export action.
// Filter values are "all" or an id.
type GradebookQuery struct {
	Assignment string
	Student    string
	Export     bool
}

// Gradebook shows a course's submissions under the query's filters with a
// per-student summary of graded items, and optionally exports them as CSV.
func (c *Console) Gradebook(ctx context.Context, courseID int64, q GradebookQuery) error {
	if _, err := c.require(rbac.PermGradebookView); err != nil {
		return err
	}
	var f gradebook.Filter
	var err error
	if f.AssignmentID, err = gradebook.ParseIDFilter(q.Assignment); err != nil {
		return err
	}
	if f.StudentID, err = gradebook.ParseIDFilter(q.Student); err != nil {
		return err
	}

	entries, err := c.API.CourseGradebook(ctx, courseID)
	if err != nil {
		return err
	}
	filtered := gradebook.Apply(entries, f)

	c.printf("Gradebook for course %d\n", courseID)
	c.printf("Assignment filter: %s\n", menu("All assignments", gradebook.AssignmentOptions(entries)))
	c.printf("Student filter: %s\n", menu("All students", gradebook.StudentOptions(entries)))

	c.println("\nStudent summary (graded items only)")
	summaries := gradebook.Summarize(filtered)
	if len(summaries) == 0 {
		c.println("No graded submissions yet for the current filters.")
	} else {
		tw := c.table()
		row(tw, "STUDENT", "TOTAL POINTS", "MAX POINTS", "% IN COURSE")
		for _, s := range summaries {
			pct := "N/A"
			if s.Percent != nil {
				pct = fmt.Sprintf("%.1f%%", *s.Percent)
			}
			row(tw, s.StudentUsername, fmt.Sprintf("%.1f", s.TotalEarned), fmt.Sprintf("%.1f", s.TotalMax), pct)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	c.println("\nAll submissions (current filters)")
	if len(filtered) == 0 {
		c.println("No submissions for the current filters.")
	} else {
		tw := c.table()
		row(tw, "STUDENT", "ASSIGNMENT", "SUBMITTED", "GRADE")
		for _, e := range filtered {
			row(tw, e.StudentUsername, e.AssignmentTitle, c.localTime(e.SubmittedAt), score(e.Grade, e.MaxPoints, "Pending"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !q.Export {
		return nil
	}
	key, err := gradebook.Export(c.Exports, courseID, filtered, c.Now())
	if err != nil {
		return err
	}
	if key == "" {
		return nil
	}
	if loc, ok := c.Exports.(locator); ok {
		if u, err := loc.SignedURL(key); err == nil {
			key = u
		}
	}
	c.printf("\nExported %s\n", key)
	return nil
}

// locator is implemented by sinks that can say where an export landed.
type locator interface {
	SignedURL(key string) (string, error)
}

// menu renders a filter's choices as "all=<allLabel>, <id>=<label>, ...".
func menu(allLabel string, opts []gradebook.Option) string {
	parts := []string{gradebook.AllValue + "=" + allLabel}
	for _, o := range opts {
		parts = append(parts, fmt.Sprintf("%d=%s", o.ID, o.Label))
	}
	return strings.Join(parts, ", ")
}
