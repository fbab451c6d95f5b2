package dashboard

import "context"

// Action names carried by the table and search-hit buttons.
const (
	ActionComment       = "comment"
	ActionRemove        = "remove"
	ActionResetPassword = "reset-password"
	ActionDeleteUser    = "delete-user"
)

// Action is a click on a row button. Target is the spot for car actions and
// the username for user actions.
type Action struct {
	Name   string
	Target string
}

type actionFunc func(ctx context.Context, target string) error

func (c *Controller) actionTable() map[string]actionFunc {
	return map[string]actionFunc{
		ActionComment: c.OpenCommentModal,
		ActionRemove: func(_ context.Context, spot string) error {
			c.OpenRemoveModal(spot)
			return nil
		},
		ActionResetPassword: func(_ context.Context, username string) error {
			c.OpenResetPasswordModal(username)
			return nil
		},
		ActionDeleteUser: c.DeleteUser,
	}
}

// Dispatch routes a row action to its handler. Unknown names are ignored.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	fn, ok := c.actions[a.Name]
	if !ok {
		c.log.Debug(ctx, "unknown action ignored", "action", a.Name)
		return nil
	}
	return fn(ctx, a.Target)
}

// Actions lists the declared action names.
func (c *Controller) Actions() []string {
	return []string{ActionComment, ActionRemove, ActionResetPassword, ActionDeleteUser}
}
