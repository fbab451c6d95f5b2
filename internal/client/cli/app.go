package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/carpark/internal/client/client"
	"github.com/dmitrijs2005/carpark/internal/client/config"
	"github.com/dmitrijs2005/carpark/internal/client/dashboard"
	"github.com/dmitrijs2005/carpark/internal/client/storage"
	"github.com/dmitrijs2005/carpark/internal/client/view"
	"github.com/dmitrijs2005/carpark/internal/logging"
)

// settingsStore is the local settings database as the settings commands see it.
type settingsStore interface {
	Settings(ctx context.Context) (map[string][]byte, error)
	Forget(ctx context.Context, keys ...string) error
}

type App struct {
	cfg  *config.Config
	log  logging.Logger
	ctrl *dashboard.Controller
	in   LineReader
	out  io.Writer
	now  func() time.Time

	settings settingsStore

	closers []func() error
}

// NewApp wires the local store, the API gateway and the dashboard controller
// to the terminal.
func NewApp(ctx context.Context, cfg *config.Config, stdin *os.File, out io.Writer) (*App, error) {
	log, flush, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.ServerURL, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	in, err := NewLineReader(stdin, out, cfg.HistoryFile)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := newApp(cfg, log, api, in, out, dashboard.WithPreferences(store.Metadata))
	a.settings = store
	a.closers = append(a.closers, in.Close, store.Close, flush)
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, api client.Client, in LineReader, out io.Writer, opts ...dashboard.Option) *App {
	banner := dashboard.NewBanner(cfg.ToastDuration)
	opts = append(opts, dashboard.WithLogger(log))
	a := &App{
		cfg: cfg,
		log: log,
		in:  in,
		out: out,
		now: time.Now,
	}
	a.ctrl = dashboard.NewController(api, banner, confirmer{in: in}, opts...)
	banner.Subscribe(a.notify)
	return a
}

func (a *App) notify(n dashboard.Notification) {
	fmt.Fprintf(a.out, "[%s] %s\n", n.Severity, n.Message)
}

func (a *App) status() string {
	p := a.ctrl.Page()
	if !p.DashboardVisible {
		return ""
	}
	return fmt.Sprintf(" (%s)", p.Summary.User)
}

func (a *App) printPage() {
	p := a.ctrl.Page()
	if err := view.WriteText(a.out, &p); err != nil {
		a.log.Warn(context.Background(), "print page", "error", err)
	}
}

// Run loads the initial state and serves commands until exit.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the carpark dashboard (type 'help' for commands)")

	_ = a.ctrl.Refresh(ctx)
	a.printPage()

	runREPL(ctx, a.commands(), a.status, a.in)
	return nil
}

func (a *App) Close() {
	a.ctrl.Banner().Stop()
	for _, c := range a.closers {
		_ = c()
	}
	a.closers = nil
}
