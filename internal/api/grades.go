package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

// GET /grades/my
func (c *Client) ListMyGrades(ctx context.Context) ([]lms.MyGrade, error) {
	var out []lms.MyGrade
	if err := c.do(ctx, "Failed to load grades", http.MethodGet, "/grades/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GET /grades/course/{id}
func (c *Client) CourseGradebook(ctx context.Context, courseID int64) ([]lms.GradebookEntry, error) {
	var out []lms.GradebookEntry
	err := c.do(ctx, "Failed to load gradebook", http.MethodGet, fmt.Sprintf("/grades/course/%d", courseID), nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
