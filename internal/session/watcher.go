// Package session keeps the set of signed-in sessions of the API process and
// lets other components observe sign-in, sign-out and expiry.
//
// Sessions live in memory only: restarting the process signs everybody out.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/juju/clock"
)

type EventKind string

const (
	EventSignedIn  EventKind = "signed_in"
	EventSignedOut EventKind = "signed_out"
	EventExpired   EventKind = "expired"
)

type Event struct {
	Kind    EventKind
	Session entities.Session
}

type Listener func(Event)

// Watcher is the observable session registry. It reports Loading until Start
// is called; Stop ends the expiry sweeper.
type Watcher struct {
	clock      clock.Clock
	sweepEvery time.Duration

	mu        sync.RWMutex
	sessions  map[string]entities.Session
	listeners map[int]Listener
	nextID    int
	loading   bool

	cancel context.CancelFunc
	done   chan struct{}
}

var _ interfaces.ISessionStore = (*Watcher)(nil)

func NewWatcher(clk clock.Clock, sweepEvery time.Duration) *Watcher {
	if clk == nil {
		clk = clock.WallClock
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	return &Watcher{
		clock:      clk,
		sweepEvery: sweepEvery,
		sessions:   map[string]entities.Session{},
		listeners:  map[int]Listener{},
		loading:    true,
	}
}

// Start marks the watcher ready and runs the sweeper until ctx is done or
// Stop is called. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	w.done = done
	w.loading = false
	w.mu.Unlock()

	log.Printf("[session][watcher] started sweep_every=%s", w.sweepEvery)
	go w.loop(ctx, done)
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Printf("[session][watcher] stopped")
}

// loop owns done; a later Start allocates its own channel.
func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.clock.After(w.sweepEvery):
			if n := w.Sweep(); n > 0 {
				log.Printf("[session][watcher] swept expired=%d", n)
			}
		}
	}
}

// Loading reports whether Start has not been called yet.
func (w *Watcher) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}

// Subscribe registers l for every later event. The returned func removes it.
func (w *Watcher) Subscribe(l Listener) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = l
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

func (w *Watcher) SignIn(s entities.Session) {
	w.mu.Lock()
	w.sessions[s.TokenID] = s
	w.mu.Unlock()
	w.emit(Event{Kind: EventSignedIn, Session: s})
}

// SignOut reports false when the token had no active session.
func (w *Watcher) SignOut(tokenID string) bool {
	w.mu.Lock()
	s, ok := w.sessions[tokenID]
	delete(w.sessions, tokenID)
	w.mu.Unlock()

	if ok {
		w.emit(Event{Kind: EventSignedOut, Session: s})
	}
	return ok
}

// Current returns the active session for tokenID. Expired sessions are not
// returned even before the sweeper removes them.
func (w *Watcher) Current(tokenID string) (entities.Session, bool) {
	w.mu.RLock()
	s, ok := w.sessions[tokenID]
	w.mu.RUnlock()

	if !ok || !w.clock.Now().Before(s.ExpiresAt) {
		return entities.Session{}, false
	}
	return s, true
}

// Sweep drops expired sessions and returns how many were dropped.
func (w *Watcher) Sweep() int {
	now := w.clock.Now()

	w.mu.Lock()
	var expired []entities.Session
	for id, s := range w.sessions {
		if !now.Before(s.ExpiresAt) {
			expired = append(expired, s)
			delete(w.sessions, id)
		}
	}
	w.mu.Unlock()

	for _, s := range expired {
		w.emit(Event{Kind: EventExpired, Session: s})
	}
	return len(expired)
}

func (w *Watcher) ActiveCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sessions)
}

// emit runs listeners outside the lock so they may call back into the watcher.
func (w *Watcher) emit(e Event) {
	w.mu.RLock()
	listeners := make([]Listener, 0, len(w.listeners))
	for _, l := range w.listeners {
		listeners = append(listeners, l)
	}
	w.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
}

// LogListener writes every event to the standard logger.
func LogListener(e Event) {
	log.Printf("[session][event] kind=%s user_id=%s token_id=%s", e.Kind, e.Session.UserID, e.Session.TokenID)
}
