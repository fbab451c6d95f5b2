package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/carpark/internal/client/client"
	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/client/view"
	"github.com/dmitrijs2005/carpark/internal/common"
)

// NewUserForm is the add-user modal.
type NewUserForm struct {
	Username string
	Password string
	Confirm  string
	Role     string
}

// PasswordChangeForm is the own-password form.
type PasswordChangeForm struct {
	Current string
	New     string
	Confirm string
}

func (c *Controller) confirmed(ctx context.Context, prompt string) bool {
	if c.confirm == nil {
		return false
	}
	return c.confirm.Confirm(ctx, prompt)
}

func (c *Controller) UpdateRate(ctx context.Context, rate string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return c.fail(ctx, "rate", invalid("Enter a valid rate"), "")
	}

	s, err := c.api.UpdateRate(ctx, r)
	if err != nil {
		return c.fail(ctx, "rate", err, "Failed to update rate")
	}
	c.banner.Info("Rate updated")
	c.applyState(s)
	return nil
}

// ResetCapacity wipes the lot down to an empty park of the given size after
// the operator confirms.
func (c *Controller) ResetCapacity(ctx context.Context, capacity string) error {
	n, ok := parseInteger(capacity)
	if !ok || n <= 0 {
		return c.fail(ctx, "setup", invalid("Capacity must be positive integer"), "")
	}
	if !c.confirmed(ctx, "This will reset the car park. Continue?") {
		return nil
	}

	s, err := c.api.Setup(ctx, n)
	if err != nil {
		return c.fail(ctx, "setup", err, "Failed to reset park")
	}
	c.banner.Info("Car park reset")
	c.applyState(s)
	return nil
}

func (c *Controller) Save(ctx context.Context) error {
	if err := c.api.Save(ctx); err != nil {
		return c.fail(ctx, "save", err, "Failed to save state")
	}
	c.banner.Info("State saved")
	return nil
}

func (c *Controller) Load(ctx context.Context) error {
	s, err := c.api.Load(ctx)
	if err != nil {
		return c.fail(ctx, "load", err, "Failed to load state")
	}
	c.banner.Info("State loaded")
	c.applyState(s)
	return nil
}

func (c *Controller) OpenUsersModal(ctx context.Context) error {
	c.mu.Lock()
	c.page.Users.Open = true
	c.mu.Unlock()
	return c.LoadUsers(ctx)
}

func (c *Controller) CloseUsersModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Users.Open = false
}

// LoadUsers fills the users table. Failures become an error row in the table
// and never reach the banner.
func (c *Controller) LoadUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn(ctx, "list users", "error", err)
		view.RenderUsersError(c.page, "Failed to load users: "+messageFor(err, err.Error()))
		return err
	}
	view.RenderUsers(c.page, users)
	return nil
}

func (c *Controller) OpenAddUserModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.AddUserOpen = true
}

func (c *Controller) CloseAddUserModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.AddUserOpen = false
}

func validateNewPassword(password, confirm string) error {
	if password != confirm {
		return invalid("Passwords do not match")
	}
	if password == "" {
		return invalid("Password required")
	}
	return nil
}

func (c *Controller) CreateUser(ctx context.Context, form NewUserForm) error {
	username := strings.TrimSpace(form.Username)
	if username == "" {
		return c.fail(ctx, "create user", invalid("Username required"), "")
	}
	if err := validateNewPassword(form.Password, form.Confirm); err != nil {
		return c.fail(ctx, "create user", err, "")
	}
	role := strings.ToLower(strings.TrimSpace(form.Role))
	if role == "" {
		role = common.DefaultUserRole
	}

	req := models.CreateUserRequest{Username: username, Password: form.Password, Role: role}
	if err := c.api.CreateUser(ctx, req); err != nil {
		return c.fail(ctx, "create user", err, "Failed to create user")
	}

	c.banner.Info("User created")
	c.CloseAddUserModal()
	_ = c.LoadUsers(ctx)
	return nil
}

func (c *Controller) ChangeOwnPassword(ctx context.Context, form PasswordChangeForm) error {
	if err := validateNewPassword(form.New, form.Confirm); err != nil {
		return c.fail(ctx, "change password", err, "")
	}

	if err := c.api.ChangePassword(ctx, form.Current, form.New); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			c.banner.Error("Current password incorrect")
			return err
		}
		return c.fail(ctx, "change password", err, "Failed to change password")
	}
	c.banner.Info("Password changed")
	return nil
}

// OpenResetPasswordModal binds the reset form to username.
func (c *Controller) OpenResetPasswordModal(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetPasswordUsername = username
	c.page.ResetPassword = view.ResetPasswordForm{Open: true, Username: username}
}

func (c *Controller) CloseResetPasswordModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetPasswordUsername = ""
	c.page.ResetPassword = view.ResetPasswordForm{}
}

func (c *Controller) SubmitResetPassword(ctx context.Context, password, confirm string) error {
	c.mu.Lock()
	username := c.resetPasswordUsername
	c.mu.Unlock()

	if username == "" {
		return c.fail(ctx, "reset password", invalid("User not selected"), "")
	}
	if err := validateNewPassword(password, confirm); err != nil {
		return c.fail(ctx, "reset password", err, "")
	}

	if err := c.api.ResetPassword(ctx, username, password); err != nil {
		return c.fail(ctx, "reset password", err, "Failed to reset password")
	}
	c.banner.Info(fmt.Sprintf("Password reset for %s", username))
	c.CloseResetPasswordModal()
	return nil
}

// DeleteUser removes an account after the operator confirms, then reloads
// the list.
func (c *Controller) DeleteUser(ctx context.Context, username string) error {
	if !c.confirmed(ctx, fmt.Sprintf("Delete user %q?", username)) {
		return nil
	}
	if err := c.api.DeleteUser(ctx, username); err != nil {
		return c.fail(ctx, "delete user", err, "Failed to delete user")
	}
	c.banner.Info("User deleted")
	_ = c.LoadUsers(ctx)
	return nil
}
