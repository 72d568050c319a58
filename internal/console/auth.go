package console

import (
	"context"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/auth"
)

// Login exchanges credentials for a token and persists the session.
func (c *Console) Login(ctx context.Context, username, password string) error {
	resp, err := c.API.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := c.Session.Login(ctx, resp.Token, resp.Username, resp.Role); err != nil {
		return err
	}
	c.printf("Signed in as %s (%s)\n", resp.Username, resp.Role)
	return nil
}

func (c *Console) Logout(ctx context.Context) error {
	if err := c.Session.Logout(ctx); err != nil {
		return err
	}
	c.println("Signed out.")
	return nil
}

// Whoami shows the stored session and, for JWTs, what the token claims. The
// token's user and role are listed only when they differ from the session.
func (c *Console) Whoami() error {
	sess := c.Session.Current()
	if !sess.IsAuthenticated() {
		c.println("Not signed in.")
		return nil
	}
	name := sess.Username
	if name == "" {
		name = "(unknown user)"
	}
	if sess.Role != "" {
		c.printf("Signed in as %s (%s)\n", name, sess.Role)
	} else {
		c.printf("Signed in as %s\n", name)
	}

	info, ok := auth.Inspect(sess.Token)
	if !ok {
		return nil
	}
	tw := c.table()
	if info.Subject != "" {
		row(tw, "Subject:", info.Subject)
	}
	if info.Name != "" && info.Name != sess.Username {
		row(tw, "Token user:", info.Name)
	}
	if info.Role != "" && info.Role != string(sess.Role) {
		row(tw, "Token role:", info.Role)
	}
	if info.Issuer != "" {
		row(tw, "Issuer:", info.Issuer)
	}
	if !info.ExpiresAt.IsZero() {
		exp := info.ExpiresAt.In(c.loc()).Format("2006-01-02 15:04:05")
		if info.Expired(c.Now()) {
			exp += " (expired)"
		}
		row(tw, "Expires:", exp)
	}
	return tw.Flush()
}
