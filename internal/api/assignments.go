package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

type SubmitAssignmentRequest struct {
	Content string `json:"content,omitempty"`
}

type gradeRequest struct {
	Grade int `json:"grade"`
}

// POST /assignments/{id}/submit
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID int64, req SubmitAssignmentRequest) error {
	return c.do(ctx, "Failed to submit assignment", http.MethodPost,
		fmt.Sprintf("/assignments/%d/submit", assignmentID), req, nil)
}

// GET /assignments/{id}/submissions
func (c *Client) ListSubmissions(ctx context.Context, assignmentID int64) ([]lms.Submission, error) {
	var out []lms.Submission
	err := c.do(ctx, "Failed to load submissions", http.MethodGet,
		fmt.Sprintf("/assignments/%d/submissions", assignmentID), nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PUT /assignments/{id}/submissions/{submissionId}/grade
func (c *Client) GradeSubmission(ctx context.Context, assignmentID, submissionID int64, grade int) error {
	return c.do(ctx, "Failed to save grade", http.MethodPut,
		fmt.Sprintf("/assignments/%d/submissions/%d/grade", assignmentID, submissionID), gradeRequest{Grade: grade}, nil)
}
