package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-classroom/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("7", "ana", "Instructor")
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", c.Subject)
	assert.Equal(t, "Instructor", c.Role)

	_, err = NewAuthService("other-secret").Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	a := NewAuthService("s")
	a.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }
	tok, err := a.IssueJWT("7", "ana", "Student")
	require.NoError(t, err)

	_, err = NewAuthService("s").Parse(tok)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	a := NewAuthService("s")
	tok, err := a.IssueJWT("7", "ana", "Student")
	require.NoError(t, err)

	info, ok := Inspect(tok)
	require.True(t, ok)
	assert.Equal(t, "7", info.Subject)
	assert.Equal(t, "ana", info.Name)
	assert.Equal(t, "Student", info.Role)
	assert.Equal(t, "mindengage-classroom", info.Issuer)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(9*time.Hour)))
}

func TestInspectASPNetClaims(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimNameURI: "bob",
		claimRoleURI: []string{"Instructor", "Admin"},
		"exp":        1700000000,
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	info, ok := Inspect(tok)
	require.True(t, ok)
	assert.Equal(t, "bob", info.Name)
	assert.Equal(t, "Instructor", info.Role)
	assert.Equal(t, int64(1700000000), info.ExpiresAt.Unix())
}

func TestInspectOpaque(t *testing.T) {
	_, ok := Inspect("not-a-jwt")
	assert.False(t, ok)
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("s")
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := a.IssueJWT("3", "cy", "Admin")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", gotSub)
	assert.Equal(t, "Admin", gotRole)
}
