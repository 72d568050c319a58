package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

// GET /enrollments/my
func (c *Client) ListMyCourses(ctx context.Context) ([]lms.MyCourse, error) {
	var out []lms.MyCourse
	if err := c.do(ctx, "Failed to load my courses", http.MethodGet, "/enrollments/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// POST /enrollments/{courseId}
func (c *Client) Enroll(ctx context.Context, courseID int64) error {
	return c.do(ctx, "Failed to enroll", http.MethodPost, fmt.Sprintf("/enrollments/%d", courseID), nil, nil)
}
