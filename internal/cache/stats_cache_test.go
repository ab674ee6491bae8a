package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/ndrewpacheco/warbler/internal/model"
)

func newTestCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatsCache(client, 30*time.Second), mr
}

func TestStatsCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	if _, ok, err := c.GetStats(ctx, 1); err != nil || ok {
		t.Fatalf("GetStats() on empty cache = ok %v, err %v", ok, err)
	}

	want := model.UserStats{Messages: 3, Following: 2, Followers: 1}
	if err := c.SetStats(ctx, 1, want); err != nil {
		t.Fatalf("SetStats() error: %v", err)
	}

	got, ok, err := c.GetStats(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("GetStats() = ok %v, err %v", ok, err)
	}
	if got != want {
		t.Errorf("GetStats() = %+v, want %+v", got, want)
	}

	if ttl := mr.TTL("warbler:stats:1"); ttl != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", ttl)
	}

	mr.FastForward(31 * time.Second)
	if _, ok, _ := c.GetStats(ctx, 1); ok {
		t.Error("stats survived their TTL")
	}
}

func TestStatsCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	for _, id := range []uint{1, 2, 3} {
		if err := c.SetStats(ctx, id, model.UserStats{Messages: int64(id)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Invalidate(ctx, 1, 2); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() with no ids error: %v", err)
	}

	for id, want := range map[uint]bool{1: false, 2: false, 3: true} {
		if _, ok, _ := c.GetStats(ctx, id); ok != want {
			t.Errorf("user %d cached = %v, want %v", id, ok, want)
		}
	}
}

func TestStatsCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	if err := mr.Set("warbler:stats:9", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.GetStats(ctx, 9); err == nil {
		t.Error("GetStats() on a corrupt entry should fail")
	}
}
