package cache

import (
	"context"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *clock) {
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUCache_Eviction(t *testing.T) {
	c, _ := newTestCache(2, time.Hour)

	c.Set("/templates/layout.html", "layout")
	c.Set("/templates/pages/dashboard.html", "dashboard")
	c.Get("/templates/layout.html")
	c.Set("/templates/pages/auth/login.html", "login")

	if _, ok := c.Get("/templates/pages/dashboard.html"); ok {
		t.Error("least recently used entry was not evicted")
	}
	if v, ok := c.Get("/templates/layout.html"); !ok || v != "layout" {
		t.Errorf("Get(layout) = %q, %v", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	clk.t = clk.t.Add(30 * time.Second)
	c.Set("b", "3")
	clk.t = clk.t.Add(45 * time.Second)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry returned")
	}
	if n := c.CleanExpired(); n != 0 {
		t.Errorf("CleanExpired() = %d, want 0", n)
	}
	if v, ok := c.Get("b"); !ok || v != "3" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}

	clk.t = clk.t.Add(time.Minute)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
}

func TestLRUCache_DeletePurge(t *testing.T) {
	c, _ := newTestCache(0, time.Hour)
	c.Set("a", "1")
	c.Delete("a")
	c.Delete("missing")
	if c.Size() != 0 {
		t.Errorf("Size() = %d after delete", c.Size())
	}

	c.Set("b", "2")
	c.Purge()
	if _, ok := c.Get("b"); ok || c.Size() != 0 {
		t.Error("Purge() left entries")
	}
}

func TestManager_StopsWithContext(t *testing.T) {
	c, clk := newTestCache(5, time.Millisecond)
	c.Set("a", "1")
	clk.t = clk.t.Add(time.Second)

	m := NewManager(nil)
	m.Register(c)
	if n := m.CleanAll(); n != 1 {
		t.Errorf("CleanAll() = %d, want 1", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx, time.Millisecond)
	cancel()
	m.Wait()
}
