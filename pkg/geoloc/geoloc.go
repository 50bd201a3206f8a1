// Package geoloc bridges the platform location feed to the rest of the
// application. The feed is a small JSON file a platform bridge keeps up
// to date with the device's latest fix; this package watches it and
// retains only the most recent reading. It is advisory only: nothing
// else in the application blocks on it.
package geoloc

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Fix is a single location reading from the feed.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the form copied into a task's location field.
func (f Fix) String() string {
	return fmt.Sprintf("%.5f, %.5f", f.Latitude, f.Longitude)
}

// AuthState is the provider's authorization state.
type AuthState int

const (
	// Unauthorized is the initial state, before any permission request.
	Unauthorized AuthState = iota

	// Authorized means the feed is readable; updates may be started.
	Authorized

	// Denied means the feed is not accessible to this process.
	Denied
)

func (s AuthState) String() string {
	switch s {
	case Unauthorized:
		return "unauthorized"
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Provider watches the location feed and holds the last known fix.
// Safe for concurrent use: fix delivery happens on a watcher goroutine
// while readers come from the UI loop.
type Provider struct {
	feedPath string
	log      *slog.Logger

	mu       sync.RWMutex
	state    AuthState
	updating bool
	fix      *Fix
	fixSubs  []func(Fix)
	authSubs []func(AuthState)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a provider for the given feed file. No permission is
// requested and no watching starts until the caller asks for it.
func New(feedPath string, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		feedPath: feedPath,
		log:      log,
		state:    Unauthorized,
	}
}

// AuthState returns the current authorization state.
func (p *Provider) AuthState() AuthState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// CurrentLocation returns the last known fix. The second return value
// is false while no fix has been delivered yet; callers must treat that
// as the steady "no location yet" case. Never blocks.
func (p *Provider) CurrentLocation() (Fix, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.fix == nil {
		return Fix{}, false
	}
	return *p.fix, true
}

// Subscribe registers fn to run whenever a new fix arrives. fn is
// called from the watcher goroutine.
func (p *Provider) Subscribe(fn func(Fix)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fixSubs = append(p.fixSubs, fn)
}

// SubscribeAuth registers fn to run on authorization-state changes.
func (p *Provider) SubscribeAuth(fn func(AuthState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authSubs = append(p.authSubs, fn)
}

// RequestPermission asks for access to the feed. The outcome arrives
// asynchronously through the authorization state, not a return value.
func (p *Provider) RequestPermission() {
	go func() {
		next := Denied
		if f, err := os.Open(p.feedPath); err == nil {
			f.Close()
			next = Authorized
		} else if os.IsNotExist(err) {
			// A missing feed file is fine as long as its directory is
			// readable; the bridge may simply not have written yet.
			if _, derr := os.ReadDir(filepath.Dir(p.feedPath)); derr == nil {
				next = Authorized
			}
		}
		p.setState(next)
	}()
}

func (p *Provider) setState(next AuthState) {
	p.mu.Lock()
	changed := p.state != next
	p.state = next
	subs := make([]func(AuthState), len(p.authSubs))
	copy(subs, p.authSubs)
	p.mu.Unlock()

	if !changed {
		return
	}
	p.log.Info("authorization state changed", "state", next.String())
	for _, fn := range subs {
		fn(next)
	}
}

// StartUpdating begins streaming fixes from the feed. Only legal while
// Authorized; returns an error otherwise. The feed is read once
// immediately so a pre-existing fix becomes available right away.
func (p *Provider) StartUpdating() error {
	p.mu.Lock()
	if p.state != Authorized {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("geoloc: cannot start updating while %s", state)
	}
	if p.updating {
		p.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("geoloc: create watcher: %w", err)
	}
	// Watch the directory, not the file: bridges replace the feed
	// atomically via rename, which would drop a file-level watch.
	if err := watcher.Add(filepath.Dir(p.feedPath)); err != nil {
		watcher.Close()
		p.mu.Unlock()
		return fmt.Errorf("geoloc: watch feed directory: %w", err)
	}

	p.watcher = watcher
	p.done = make(chan struct{})
	p.updating = true
	done := p.done
	p.mu.Unlock()

	p.readFeed()
	go p.watchLoop(watcher, done)
	p.log.Info("location updates started", "feed", p.feedPath)
	return nil
}

// StopUpdating stops the stream. The last known fix stays available.
func (p *Provider) StopUpdating() {
	p.mu.Lock()
	if !p.updating {
		p.mu.Unlock()
		return
	}
	p.updating = false
	close(p.done)
	watcher := p.watcher
	p.watcher = nil
	p.mu.Unlock()

	watcher.Close()
	p.log.Info("location updates stopped")
}

func (p *Provider) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != p.feedPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				p.readFeed()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Delivery failure: log and keep the last known fix.
			p.log.Warn("location watch error", "error", err)
		}
	}
}

// readFeed decodes the feed file into the last-known-fix slot. Any
// failure is logged and leaves the previous fix untouched.
func (p *Provider) readFeed() {
	raw, err := os.ReadFile(p.feedPath)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Warn("read location feed failed", "error", err)
		}
		return
	}
	var fix Fix
	if err := json.Unmarshal(raw, &fix); err != nil {
		p.log.Warn("decode location feed failed", "error", err)
		return
	}

	p.mu.Lock()
	p.fix = &fix
	subs := make([]func(Fix), len(p.fixSubs))
	copy(subs, p.fixSubs)
	p.mu.Unlock()

	p.log.Debug("location fix updated", "fix", fix.String())
	for _, fn := range subs {
		fn(fix)
	}
}
