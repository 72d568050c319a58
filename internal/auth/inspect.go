package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// TokenInfo is what a client can read from a bearer token without the
// signing key.
type TokenInfo struct {
	Subject   string
	Name      string
	Role      string
	Issuer    string
	ExpiresAt time.Time // zero when the token carries no exp
}

func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// ASP.NET Core issues role and name under these claim URIs.
const (
	claimRoleURI = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	claimNameURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
)

type rawClaims struct {
	Sub     string      `mapstructure:"sub"`
	Iss     string      `mapstructure:"iss"`
	Exp     float64     `mapstructure:"exp"`
	Role    interface{} `mapstructure:"role"`
	RoleURI interface{} `mapstructure:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role"`
	Name    string      `mapstructure:"unique_name"`
	NameURI string      `mapstructure:"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"`
}

// Inspect decodes the claims of a JWT without verifying its signature.
// ok is false for opaque (non-JWT) tokens.
func Inspect(token string) (TokenInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}
	var raw rawClaims
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return TokenInfo{}, false
	}
	if err := dec.Decode(map[string]interface{}(claims)); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{
		Subject: raw.Sub,
		Issuer:  raw.Iss,
		Name:    firstNonEmpty(raw.Name, raw.NameURI),
		Role:    firstNonEmpty(firstString(raw.Role), firstString(raw.RoleURI)),
	}
	if raw.Exp > 0 {
		info.ExpiresAt = time.Unix(int64(raw.Exp), 0)
	}
	return info, true
}

// firstString reads a claim that may be a string or a list of strings.
func firstString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
