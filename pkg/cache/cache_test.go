package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pinboard/pkg/observability"
	"github.com/matzehuels/pinboard/pkg/slide"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "design:1"); hit {
		t.Error("empty cache reported a hit")
	}
	if err := c.Set(ctx, "design:1", []byte(`{"ok":true}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "design:1")
	if err != nil || !hit || string(data) != `{"ok":true}` {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "design:1"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "design:1"); hit {
		t.Error("deleted key still hits")
	}
	if err := c.Delete(ctx, "design:1"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported a hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry was not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want a clean miss", hit, err)
	}
}

func TestFileCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	n, size, err := c.Stats()
	if err != nil || n != 3 || size == 0 {
		t.Errorf("Stats() = %d, %d, %v; want 3 entries", n, size, err)
	}
	removed, err := c.Clear()
	if err != nil || removed != 3 {
		t.Errorf("Clear() = %d, %v; want 3", removed, err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats() after Clear = %d entries", n)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if n := len(Hash(nil)); n != 64 {
		t.Errorf("len(Hash) = %d, want 64", n)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := DesignKeyOpts{MaxIterations: 10000, Weights: slide.DefaultWeights}

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"deterministic", k.DesignKey(3, 7, base), k.DesignKey(3, 7, base), true},
		{"id", k.DesignKey(3, 7, base), k.DesignKey(3, 8, base), false},
		{"pins", k.DesignKey(3, 7, base), k.DesignKey(4, 7, base), false},
		{"iterations", k.DesignKey(3, 7, base), k.DesignKey(3, 7, DesignKeyOpts{MaxIterations: 5, Weights: base.Weights}), false},
		{"weights", k.DesignKey(3, 7, base), k.DesignKey(3, 7, DesignKeyOpts{MaxIterations: 10000, Weights: slide.Weights{D0: 1, D1: 1, D2: 1}}), false},
		{"type", k.DesignKey(3, 7, DesignKeyOpts{}), k.NetlistKey(3, 7), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a == tt.b) != tt.same {
				t.Errorf("keys %q and %q: same = %v, want %v", tt.a, tt.b, tt.a == tt.b, tt.same)
			}
		})
	}

	if got := k.DesignKey(3, 7, base); !strings.HasPrefix(got, "design:") {
		t.Errorf("DesignKey = %q, want design: prefix", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "ci:")
	plain := NewDefaultKeyer()

	if got, want := scoped.NetlistKey(2, 1), "ci:"+plain.NetlistKey(2, 1); got != want {
		t.Errorf("NetlistKey = %q, want %q", got, want)
	}
	if got := scoped.DesignKey(2, 1, DesignKeyOpts{}); !strings.HasPrefix(got, "ci:design:") {
		t.Errorf("DesignKey = %q, want ci:design: prefix", got)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"design:abc":      "design",
		"ci:netlist:abc":  "netlist",
		"a:b:design:ff00": "design",
		"nocolon":         "unknown",
	}
	for key, want := range tests {
		if got := KeyType(key); got != want {
			t.Errorf("KeyType(%q) = %q, want %q", key, got, want)
		}
	}
}

type recordingHooks struct {
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnCacheHit(_ context.Context, kt string)  { h.events = append(h.events, "hit:"+kt) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, kt string) { h.events = append(h.events, "miss:"+kt) }
func (h *recordingHooks) OnCacheSet(_ context.Context, kt string, _ int) {
	h.events = append(h.events, "set:"+kt)
}

func TestInstrument(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c := Instrument(fc)
	if Instrument(c) != c {
		t.Error("Instrument should not wrap twice")
	}

	key := NewDefaultKeyer().DesignKey(3, 1, DesignKeyOpts{})
	c.Get(ctx, key)
	c.Set(ctx, key, []byte("x"), 0)
	c.Get(ctx, key)

	want := []string{"miss:design", "set:design", "hit:design"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrBackend)
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("Retryable(ErrBackend) = %v, want retryable wrapping ErrBackend", err)
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("message = %q, want %q", err.Error(), ErrBackend.Error())
	}
	if IsRetryable(ErrBackend) {
		t.Error("bare error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"permanent error", 5, permanent, 1, permanent},
		{"recovers", 1, Retryable(ErrBackend), 2, nil},
		{"gives up", 5, Retryable(ErrBackend), 3, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, time.Second, func() error {
		return Retryable(ErrBackend)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisOptions{URL: "http://not-redis"})
	if err == nil || !strings.Contains(err.Error(), "parse redis url") {
		t.Errorf("err = %v, want a parse error", err)
	}
}

func TestRedisClearNeedsPrefix(t *testing.T) {
	c := newRedisCache(nil, "")
	if _, err := c.Clear(context.Background()); err == nil {
		t.Error("Clear without prefix should fail")
	}
}
