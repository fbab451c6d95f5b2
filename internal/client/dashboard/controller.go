package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/carpark/internal/client/client"
	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/client/view"
	"github.com/dmitrijs2005/carpark/internal/logging"
)

// Confirmer asks the human operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Preferences is local key/value storage for client-side settings.
type Preferences interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LastUsernameKey is the preference holding the last successful login name.
const LastUsernameKey = "last_username"

type Controller struct {
	api     client.Client
	banner  *Banner
	confirm Confirmer
	prefs   Preferences
	log     logging.Logger

	mu    sync.Mutex
	page  *view.Page
	state *models.State

	currentRate           float64
	amountTouched         bool
	commentSpot           int
	commentBound          bool
	resetPasswordUsername string

	actions map[string]actionFunc
}

type Option func(*Controller)

func WithPreferences(p Preferences) Option {
	return func(c *Controller) { c.prefs = p }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func NewController(api client.Client, banner *Banner, confirm Confirmer, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		banner:  banner,
		confirm: confirm,
		log:     logging.Nop(),
		page:    view.NewPage(),
	}
	for _, o := range opts {
		o(c)
	}
	c.actions = c.actionTable()
	return c
}

func (c *Controller) Banner() *Banner {
	return c.banner
}

// Page returns a copy of the current page.
func (c *Controller) Page() view.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.page
}

// State returns the last rendered snapshot, or nil before the first render.
// Callers must not modify it.
func (c *Controller) State() *models.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// render must be called with c.mu held.
func (c *Controller) render(s *models.State) {
	c.state = s
	c.currentRate = s.RatePerHour
	c.amountTouched = false
	view.Render(c.page, s)
}

func (c *Controller) applyState(s *models.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(s)
}

func (c *Controller) fail(ctx context.Context, op string, err error, fallback string) error {
	msg := messageFor(err, fallback)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		c.log.Warn(ctx, "request failed", "op", op, "error", err)
	}
	c.banner.Error(msg)
	return err
}
