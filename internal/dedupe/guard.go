package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache is the key-value capability the guard needs: a single read and a
// single TTL'd write. Which store implements it is irrelevant here.
type Cache interface {
	// Get returns the value under key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// SetWithTTL stores value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
}

// Guard ensures a side effect fires at most once per recurring occurrence.
// A marker is written to the cache only after the side effect succeeds and
// expires at the next cutover following the occurrence, so a new cycle's
// trigger finds no marker.
//
// The check and the write are separate cache calls, not an atomic
// set-if-absent: two triggers racing before either marker write can both run
// the side effect. Duplicate triggers here are human-driven and weekly, so
// the race is accepted rather than guarded.
type Guard struct {
	cache    Cache
	workflow string
	cutover  func(time.Time) time.Time
	now      func() time.Time
}

// Option configures optional Guard parameters.
type Option func(*Guard)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a Guard for the named workflow. cutover maps an occurrence
// date to the instant its cycle ends.
func NewGuard(cache Cache, workflow string, cutover func(time.Time) time.Time, opts ...Option) *Guard {
	g := &Guard{
		cache:    cache,
		workflow: workflow,
		cutover:  cutover,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Key returns the cache key scoping the guard to one occurrence.
func (g *Guard) Key(occurrence time.Time) string {
	return g.workflow + ":" + occurrence.Format("2006-01-02")
}

// Run executes fn at most once for the given occurrence. It reports whether
// fn ran: false with a nil error means the occurrence was already satisfied
// and the duplicate was suppressed. fn failures propagate and leave no
// marker, so the next trigger retries naturally.
func (g *Guard) Run(ctx context.Context, occurrence time.Time, fn func(context.Context) error) (bool, error) {
	key := g.Key(occurrence)

	sentAt, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("dedupe.Guard.Run: read marker: %w", err)
	}
	if ok {
		log.Info().Str("key", key).Str("sent_at", sentAt).Msg("side effect already performed this cycle, skipping")
		return false, nil
	}

	if runErr := fn(ctx); runErr != nil {
		return false, fmt.Errorf("dedupe.Guard.Run: %w", runErr)
	}

	now := g.now()
	expiry := g.cutover(occurrence)
	ttl := expiry.Sub(now)
	if ttl <= 0 {
		log.Warn().
			Str("key", key).
			Time("expiry", expiry).
			Msg("computed marker expiry is in the past, not writing marker")
		return true, nil
	}

	if setErr := g.cache.SetWithTTL(ctx, key, now.UTC().Format(time.RFC3339), ttl); setErr != nil {
		// The side effect succeeded; a failed marker write only risks a
		// duplicate on the next trigger.
		log.Error().Err(setErr).Str("key", key).Msg("failed to write dedupe marker")
		return true, nil
	}

	log.Info().Str("key", key).Dur("ttl", ttl).Msg("dedupe marker written")

	return true, nil
}
