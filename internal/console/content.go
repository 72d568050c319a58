package console

import (
	"context"
	"strings"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/rbac"
)

// DefaultMaxPoints is the max points of a new assignment unless set.
const DefaultMaxPoints = 100

// CreateLesson adds a lesson whose Markdown body is stored as HTML. A blank
// title does nothing.
func (c *Console) CreateLesson(ctx context.Context, courseID int64, title, body string) error {
	if _, err := c.require(rbac.PermLessonCreate); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return nil
	}
	content, err := MarkdownToHTML(body)
	if err != nil {
		return err
	}
	l, err := c.API.CreateLesson(ctx, courseID, api.CreateLessonRequest{Title: title, Content: content})
	if err != nil {
		return err
	}
	c.printf("Created lesson %d: %s\n", l.ID, l.Title)
	return nil
}

type AssignmentInput struct {
	Title       string
	Description string // Markdown
	DueDate     string // empty for none
	MaxPoints   float64
}

// CreateAssignment adds an assignment. A blank title does nothing.
func (c *Console) CreateAssignment(ctx context.Context, courseID int64, in AssignmentInput) error {
	if _, err := c.require(rbac.PermAssignmentCreate); err != nil {
		return err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil
	}
	desc, err := MarkdownToHTML(in.Description)
	if err != nil {
		return err
	}
	req := api.CreateAssignmentRequest{Title: in.Title, Description: desc, MaxPoints: in.MaxPoints}
	if in.DueDate != "" {
		due, err := lms.ParseTime(in.DueDate)
		if err != nil {
			return err
		}
		req.DueDate = &due
	}
	a, err := c.API.CreateAssignment(ctx, courseID, req)
	if err != nil {
		return err
	}
	c.printf("Created assignment %d: %s\n", a.ID, a.Title)
	return nil
}

// Submit sends the student's answer for an assignment.
func (c *Console) Submit(ctx context.Context, assignmentID int64, content string) error {
	if _, err := c.require(rbac.PermSubmissionCreate); err != nil {
		return err
	}
	if err := c.API.SubmitAssignment(ctx, assignmentID, api.SubmitAssignmentRequest{Content: content}); err != nil {
		return err
	}
	c.println("Submission received.")
	return nil
}
