package dashboard

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// DefaultBannerDuration is how long a notification stays visible.
const DefaultBannerDuration = 4 * time.Second

type Notification struct {
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Banner is the single transient notification area. A new notification
// replaces the visible one and restarts the hide timer.
type Banner struct {
	mu        sync.Mutex
	duration  time.Duration
	current   Notification
	visible   bool
	timer     *time.Timer
	gen       uint64
	listeners []func(Notification)
	now       func() time.Time
}

func NewBanner(duration time.Duration) *Banner {
	if duration <= 0 {
		duration = DefaultBannerDuration
	}
	return &Banner{duration: duration, now: time.Now}
}

// Subscribe registers fn to be called synchronously with every notification.
func (b *Banner) Subscribe(fn func(Notification)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Banner) Info(msg string)  { b.Show(msg, SeverityInfo) }
func (b *Banner) Error(msg string) { b.Show(msg, SeverityError) }

func (b *Banner) Show(msg string, sev Severity) {
	b.mu.Lock()
	n := Notification{Message: msg, Severity: sev, ShownAt: b.now()}
	b.current = n
	b.visible = true
	b.gen++
	gen := b.gen
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.duration, func() { b.hide(gen) })
	listeners := append([]func(Notification){}, b.listeners...)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(n)
	}
}

func (b *Banner) hide(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen == b.gen {
		b.visible = false
	}
}

// Current returns the visible notification, if any.
func (b *Banner) Current() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.visible
}

// Stop cancels a pending hide.
func (b *Banner) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
}
