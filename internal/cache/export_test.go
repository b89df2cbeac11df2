package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestExport_HitBeforeExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewExport(10*time.Minute, clock.Now)

	c.Set("11122233344455", "titre\n")
	clock.Advance(9 * time.Minute)

	content, ok := c.Get("11122233344455")
	if !ok {
		t.Fatal("expected a hit before expiry")
	}
	if content != "titre\n" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestExport_MissAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewExport(10*time.Minute, clock.Now)

	c.Set("k", "v")
	clock.Advance(10 * time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Error("expected a miss at exactly maxAge")
	}
	// The expired entry is evicted, not resurrected.
	if _, ok := c.Get("k"); ok {
		t.Error("expected the entry gone after eviction")
	}
}

func TestExport_MissForUnknownKey(t *testing.T) {
	c := NewExport(time.Minute, nil)
	if _, ok := c.Get("absent"); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestExport_SetRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewExport(10*time.Minute, clock.Now)

	c.Set("k", "v1")
	clock.Advance(9 * time.Minute)
	c.Set("k", "v2")
	clock.Advance(9 * time.Minute)

	content, ok := c.Get("k")
	if !ok || content != "v2" {
		t.Errorf("expected refreshed entry v2, got %q (hit=%v)", content, ok)
	}
}

func TestExport_Headers(t *testing.T) {
	c := NewExport(600*time.Second, nil)

	hit := c.HitHeaders()
	if hit["Cache-Control"] != "max-age=600" || hit["X-Cache"] != "HIT" {
		t.Errorf("unexpected hit headers %v", hit)
	}
	miss := c.MissHeaders()
	if miss["Cache-Control"] != "max-age=600" || miss["X-Cache"] != "MISS" {
		t.Errorf("unexpected miss headers %v", miss)
	}
}
