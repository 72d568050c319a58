package rbac

import (
	"context"
	"fmt"
	"strings"
)

type Checker struct {
	RolePermissions map[string][]string
}

// NewChecker uses RolePermissions when rp is nil.
func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

func (c *Checker) Has(role, perm string) bool {
	for _, p := range c.RolePermissions[role] {
		if matchPerm(p, perm) {
			return true
		}
	}
	return false
}

// ForbiddenError is returned by Check when a role lacks a permission.
type ForbiddenError struct {
	Role string
	Perm string
}

func (e *ForbiddenError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("not allowed to %s", action(e.Perm))
	}
	return fmt.Sprintf("%s accounts are not allowed to %s", e.Role, action(e.Perm))
}

// Check is Has as an error.
func (c *Checker) Check(role, perm string) error {
	if c.Has(role, perm) {
		return nil
	}
	return &ForbiddenError{Role: role, Perm: perm}
}

// action renders "submission:view-all" as "view-all submission".
func action(perm string) string {
	res, verb, ok := strings.Cut(perm, ":")
	if !ok {
		return perm
	}
	return verb + " " + res
}

func matchPerm(pattern, perm string) bool {
	if pattern == "*" || pattern == perm {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(perm, strings.TrimSuffix(pattern, "*"))
	}
	return false
}

// ---- role in context ----

type ctxKey struct{}

var ctxKeyRole = ctxKey{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRole).(string); ok {
		return v
	}
	return ""
}
