package rbac

import (
	"net/http"
)

var defaultChecker = NewChecker(nil)

// Check returns a *ForbiddenError when role lacks perm under the default policy.
func Check(role, perm string) error { return defaultChecker.Check(role, perm) }

// Require enforces a single permission.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !defaultChecker.Has(role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
