// Package poller implements the client-side payment status watcher: it
// repeatedly queries the redirect-status projection until the payment reaches
// a terminal state, the wait ceiling is hit, or too many requests fail in a
// row, and then performs a single navigation to the result page.
package poller

import (
	"context"
	"log"
	"sync"
	"time"
)

// State is the watcher's lifecycle. Checking is the initial state before the
// first response; Pending while the gateway has not resolved; the other three
// are final.
type State string

const (
	StateChecking  State = "checking"
	StatePending   State = "pending"
	StateCompleted State = "completed"
	StateTimeout   State = "timeout"
	StateError     State = "error"
)

// Subject identifies what is being polled: a transaction/gateway payment id,
// or the external reference when ByReference is set.
type Subject struct {
	ID          string
	ByReference bool
}

// Result is one projection response.
type Result struct {
	Ready       bool
	Status      string
	Reference   string
	RedirectURL string
}

// StatusFetcher performs one status query.
type StatusFetcher interface {
	Fetch(ctx context.Context, subject Subject) (Result, error)
}

// Navigator receives the one-time navigation once a terminal state is
// observed.
type Navigator interface {
	Navigate(url string)
}

// Config carries the polling parameters. Zero values fall back to the
// defaults used by the web client: 2s interval, 5min ceiling, 5 consecutive
// failures.
type Config struct {
	Interval     time.Duration
	MaxWait      time.Duration
	FailureLimit int
}

const (
	defaultInterval     = 2 * time.Second
	defaultMaxWait      = 5 * time.Minute
	defaultFailureLimit = 5
)

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.MaxWait <= 0 {
		c.MaxWait = defaultMaxWait
	}
	if c.FailureLimit <= 0 {
		c.FailureLimit = defaultFailureLimit
	}
	return c
}

// maxAttempts is ceil(MaxWait / Interval): the request budget before the
// watcher gives up with StateTimeout.
func (c Config) maxAttempts() int {
	n := int(c.MaxWait / c.Interval)
	if c.MaxWait%c.Interval != 0 {
		n++
	}
	return n
}

// Watcher drives the polling loop. One watcher per subject; polls are
// strictly sequential (the next is scheduled only after the previous
// response, success or failure, has been handled), so there is never more
// than one in-flight request.
type Watcher struct {
	fetcher   StatusFetcher
	navigator Navigator
	cfg       Config

	mu      sync.Mutex
	state   State
	settled bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(fetcher StatusFetcher, navigator Navigator, cfg Config) *Watcher {
	return &Watcher{
		fetcher:   fetcher,
		navigator: navigator,
		cfg:       cfg.withDefaults(),
		state:     StateChecking,
		stopCh:    make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Stop tears the watcher down. Safe to call multiple times and concurrently
// with Run; a running Run returns promptly with the state it had.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Run blocks until a final state is reached, the context is cancelled, or
// Stop is called. It returns the state the watcher ended in; the error is
// non-nil only for context cancellation or the failure-threshold case.
func (w *Watcher) Run(ctx context.Context, subject Subject) (State, error) {
	maxAttempts := w.cfg.maxAttempts()
	attempts := 0
	failures := 0
	var lastErr error

	// First poll fires immediately; the interval applies between polls.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[payment][poller] cancelled subject=%s attempts=%d", subject.ID, attempts)
			return w.State(), ctx.Err()
		case <-w.stopCh:
			log.Printf("[payment][poller] stopped subject=%s attempts=%d", subject.ID, attempts)
			return w.State(), nil
		case <-timer.C:
		}

		if attempts >= maxAttempts {
			log.Printf("[payment][poller] timeout subject=%s attempts=%d", subject.ID, attempts)
			w.setState(StateTimeout)
			return StateTimeout, nil
		}
		attempts++

		res, err := w.fetcher.Fetch(ctx, subject)
		if err != nil {
			failures++
			lastErr = err
			log.Printf("[payment][poller] fetch failed subject=%s attempt=%d consecutive_failures=%d err=%v", subject.ID, attempts, failures, err)
			if failures >= w.cfg.FailureLimit {
				w.setState(StateError)
				return StateError, lastErr
			}
		} else {
			failures = 0
			if res.Ready {
				log.Printf("[payment][poller] completed subject=%s status=%s attempts=%d", subject.ID, res.Status, attempts)
				w.navigateOnce(res)
				w.setState(StateCompleted)
				return StateCompleted, nil
			}
			w.setState(StatePending)
		}

		timer.Reset(w.cfg.Interval)
	}
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// navigateOnce fires the navigation exactly once, even if a late response
// observes ready again after navigation already began.
func (w *Watcher) navigateOnce(res Result) {
	w.mu.Lock()
	if w.settled {
		w.mu.Unlock()
		return
	}
	w.settled = true
	w.mu.Unlock()

	if w.navigator != nil && res.RedirectURL != "" {
		w.navigator.Navigate(res.RedirectURL)
	}
}
