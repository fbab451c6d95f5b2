package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/carpark/internal/client/client"
	"github.com/dmitrijs2005/carpark/internal/client/view"
)

// Refresh fetches the snapshot. A 401 switches to the login view; any other
// failure leaves the panels as they are.
func (c *Controller) Refresh(ctx context.Context) error {
	s, err := c.api.State(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			c.ShowLogin()
			return err
		}
		return c.fail(ctx, "refresh", err, "Failed to load state")
	}
	c.applyState(s)
	return nil
}

func (c *Controller) ShowLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	view.ShowLogin(c.page)
}

// SetLoginUsername fills the username field of the login form.
func (c *Controller) SetLoginUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.LoginUsername = username
}

// LastUsername returns the remembered login name, or "".
func (c *Controller) LastUsername(ctx context.Context) string {
	if c.prefs == nil {
		return ""
	}
	v, err := c.prefs.Get(ctx, LastUsernameKey)
	if err != nil {
		c.log.Warn(ctx, "read last username", "error", err)
		return ""
	}
	return string(v)
}

func (c *Controller) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	c.SetLoginUsername(username)

	if err := c.api.Login(ctx, username, password); err != nil {
		return c.fail(ctx, "login", err, "Login failed")
	}

	c.SetLoginUsername("")
	c.banner.Info("Login successful")

	if c.prefs != nil {
		if err := c.prefs.Set(ctx, LastUsernameKey, []byte(username)); err != nil {
			c.log.Warn(ctx, "save last username", "error", err)
		}
	}

	return c.Refresh(ctx)
}

// Logout always ends on the login view, whatever the server answered.
func (c *Controller) Logout(ctx context.Context) error {
	defer c.ShowLogin()

	if err := c.api.Logout(ctx); err != nil {
		return c.fail(ctx, "logout", err, "Logout failed")
	}
	c.banner.Info("Logged out")
	return nil
}
