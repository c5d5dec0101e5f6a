// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package correction implements the debounced correction-check pipeline.
package correction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ollama"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrSuperseded reports that newer input invalidated the check before
	// its result could be applied.
	ErrSuperseded = errors.New("correction check superseded by newer input")

	// ErrThrottled reports that the client-side rate limit suppressed the
	// check. Like ErrSuperseded it is silent: no suggestion, no error UI.
	ErrThrottled = errors.New("correction check rate limited")
)

// =============================================================================
// BACKEND
// =============================================================================

// Backend is the generative-text service that judges corrections.
// *ollama.Client satisfies it; tests substitute fakes.
type Backend interface {
	CorrectionCheck(ctx context.Context, prev, typed string) (*ollama.CorrectionResult, error)
}

// =============================================================================
// CHECKER
// =============================================================================

// Config holds tunables for the checker.
type Config struct {
	// QuietPeriod is how long input must stay unchanged before a check
	// fires (default: 600ms).
	QuietPeriod time.Duration

	// MinChars is the minimum rune count of typed text worth checking
	// (default: 3). One or two characters are never a useful correction.
	MinChars int

	// RatePerSec caps how many checks may be issued per second across all
	// keystrokes (default: 2). Guards against pathological quiet-period
	// configs; normal typing never hits it.
	RatePerSec float64
}

// DefaultConfig returns the default checker configuration.
func DefaultConfig() Config {
	return Config{
		QuietPeriod: 600 * time.Millisecond,
		MinChars:    3,
		RatePerSec:  2,
	}
}

// Checker owns the debounce state for correction checks. One Checker serves
// one input box. Methods are safe for concurrent use; Bubble Tea calls
// Observe from the update loop while Check runs in command goroutines.
type Checker struct {
	mu      sync.Mutex
	gen     uint64
	backend Backend
	config  Config
	limiter *rate.Limiter

	// In-flight request cancellation. At most one check is outstanding;
	// a late-finishing check must not clear a newer check's entry, so the
	// slot holds a token rather than a bare CancelFunc.
	cancelMu sync.Mutex
	inflight *inflight
}

// inflight tokens tie a stored cancel function to the request that owns it.
type inflight struct {
	cancel context.CancelFunc
}

// NewChecker creates a checker with the given backend and config.
func NewChecker(backend Backend, config Config) *Checker {
	if config.QuietPeriod <= 0 {
		config.QuietPeriod = 600 * time.Millisecond
	}
	if config.MinChars <= 0 {
		config.MinChars = 3
	}
	if config.RatePerSec <= 0 {
		config.RatePerSec = 2
	}
	return &Checker{
		backend: backend,
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSec), 1),
	}
}

// SetQuietPeriod updates the quiet period (config live reload).
func (c *Checker) SetQuietPeriod(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.config.QuietPeriod = d
	c.mu.Unlock()
}

// =============================================================================
// PENDING TICKET
// =============================================================================

// Pending identifies one scheduled check. The generation ties the ticket to
// the keystroke that created it; any later Observe or Invalidate makes the
// ticket stale.
type Pending struct {
	Gen       uint64
	Delay     time.Duration
	MessageID string
	Prev      string
	Typed     string
}

// =============================================================================
// OBSERVE / INVALIDATE
// =============================================================================

// Observe records a keystroke. It always invalidates the previous pending or
// in-flight check. When prev exists and typed is worth checking, it returns
// a Pending ticket and true; the caller should call Check after ticket.Delay.
func (c *Checker) Observe(prev *model.Message, typed string) (Pending, bool) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	quiet := c.config.QuietPeriod
	minChars := c.config.MinChars
	c.mu.Unlock()

	// Newer input always cancels whatever is outstanding.
	c.cancelInFlight()

	typed = norm.NFC.String(strings.TrimSpace(typed))
	if prev == nil || prev.IsEmpty() || typed == "" {
		return Pending{}, false
	}
	if len([]rune(typed)) < minChars {
		return Pending{}, false
	}

	return Pending{
		Gen:       gen,
		Delay:     quiet,
		MessageID: prev.ID,
		Prev:      prev.Content,
		Typed:     typed,
	}, true
}

// Invalidate discards any pending or in-flight check. Used when a message is
// sent, the input is cleared, or a suggestion is accepted or dismissed.
func (c *Checker) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
	c.cancelInFlight()
}

// Current reports whether the generation is still the latest.
func (c *Checker) Current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

// =============================================================================
// CHECK
// =============================================================================

// Check issues the correction request for a ticket whose quiet period has
// elapsed. It returns ErrSuperseded when the ticket went stale before or
// during the request, ErrThrottled when the rate limit suppressed it, and
// the backend's error otherwise. A non-nil suggestion is only returned when
// the ticket survived the round trip.
func (c *Checker) Check(p Pending) (*model.Suggestion, error) {
	if !c.Current(p.Gen) {
		return nil, ErrSuperseded
	}
	if !c.limiter.Allow() {
		return nil, ErrThrottled
	}

	ctx, cancel := context.WithCancel(context.Background())
	token := c.setInFlight(cancel)
	defer c.clearInFlight(token)

	result, err := c.backend.CorrectionCheck(ctx, p.Prev, p.Typed)

	// Re-check after the round trip: the reply may have raced a keystroke.
	if !c.Current(p.Gen) {
		return nil, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	return model.NewSuggestion(p.MessageID, p.Prev, result.CorrectedText, result.IsCorrection), nil
}

// =============================================================================
// IN-FLIGHT CANCELLATION
// =============================================================================

// setInFlight stores the cancel function for the outgoing request and
// returns the token identifying it.
func (c *Checker) setInFlight(fn context.CancelFunc) *inflight {
	token := &inflight{cancel: fn}
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	c.inflight = token
	return token
}

// cancelInFlight cancels the outstanding request, if any.
// Safe to call multiple times or with nothing in flight.
func (c *Checker) cancelInFlight() {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
}

// clearInFlight releases the token's context and removes the slot entry only
// when the token still owns it. A newer request's entry is left alone.
func (c *Checker) clearInFlight(token *inflight) {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	token.cancel()
	if c.inflight == token {
		c.inflight = nil
	}
}
