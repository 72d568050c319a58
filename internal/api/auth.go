package api

import (
	"context"
	"net/http"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/validate"
)

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Role     lms.Role `json:"role"`
}

// POST /auth/login
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return LoginResponse{}, err
	}
	var out LoginResponse
	if err := c.do(ctx, "Invalid credentials", http.MethodPost, "/auth/login", req, &out); err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" {
		return LoginResponse{}, &RequestError{Op: "Invalid credentials", Message: "empty token in login response"}
	}
	return out, nil
}
