package cache

import (
	"math"
	"strconv"
	"testing"
)

func TestNewLabelCache(t *testing.T) {
	c := NewLabelCache(100)
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if NewLabelCache(0).Capacity() != DefaultCapacity {
		t.Errorf("expected default capacity %d", DefaultCapacity)
	}
}

func TestGetOrFormat(t *testing.T) {
	c := NewLabelCache(10)
	calls := 0
	format := func() string {
		calls++
		return "101.50"
	}

	key := c.Key(AxisPrice, 0, 20, 101.5)
	if got := c.GetOrFormat(key, format); got != "101.50" {
		t.Errorf("expected 101.50, got %q", got)
	}
	if got := c.GetOrFormat(key, func() string { calls++; return "other" }); got != "101.50" {
		t.Errorf("expected cached 101.50, got %q", got)
	}
	if calls != 1 {
		t.Errorf("expected formatter called once, got %d", calls)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected hit rate 0.5, got %v", stats.HitRate)
	}
}

func TestQuantizationAbsorbsJitter(t *testing.T) {
	c := NewLabelCache(10)
	a := c.Key(AxisTime, 1, 3600, 1700000000.0000000001)
	b := c.Key(AxisTime, 1, 3600.00000000001, 1700000000)
	if a != b {
		t.Errorf("expected jittered keys to match: %+v vs %+v", a, b)
	}
	if c.Key(AxisTime, 1, 3600, 1) == c.Key(AxisPrice, 1, 3600, 1) {
		t.Error("keys on different axes must differ")
	}
	if c.Key(AxisTime, 1, 3600, 1) == c.Key(AxisTime, 2, 3600, 1) {
		t.Error("keys with different source modes must differ")
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{1.5, 1_500_000_000},
		{-2.25, -2_250_000_000},
		{math.Inf(1), math.MaxInt64},
		{math.Inf(-1), math.MinInt64},
		{1e30, math.MaxInt64},
		{math.NaN(), math.MinInt64},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInvalidateAllForcesReformat(t *testing.T) {
	c := NewLabelCache(10)
	old := c.Key(AxisPrice, 0, 10, 5)
	c.GetOrFormat(old, func() string { return "5.00" })

	c.InvalidateAll()
	if c.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", c.Generation())
	}
	if c.Len() != 0 {
		t.Errorf("expected no entries after invalidation, got %d", c.Len())
	}
	if _, ok := c.Lookup(old); ok {
		t.Error("stale key must be absent")
	}

	calls := 0
	got := c.GetOrFormat(old, func() string { calls++; return "5.0" })
	if calls != 1 || got != "5.0" {
		t.Errorf("stale key must re-invoke formatter, calls=%d got=%q", calls, got)
	}
	// Stored under the current generation.
	if _, ok := c.Lookup(c.Key(AxisPrice, 0, 10, 5)); !ok {
		t.Error("expected re-formatted entry under current generation")
	}
}

func TestEviction(t *testing.T) {
	c := NewLabelCache(4)
	for i := 0; i < 4; i++ {
		v := float64(i)
		c.GetOrFormat(c.Key(AxisPrice, 0, 1, v), func() string { return strconv.Itoa(i) })
	}
	// Touch entry 0 so that it is the most recently used.
	c.GetOrFormat(c.Key(AxisPrice, 0, 1, 0), func() string { return "x" })

	c.GetOrFormat(c.Key(AxisPrice, 0, 1, 99), func() string { return "99" })
	if c.Len() > 4 {
		t.Errorf("expected at most 4 entries after eviction, got %d", c.Len())
	}
	if _, ok := c.Lookup(c.Key(AxisPrice, 0, 1, 99)); !ok {
		t.Error("new entry must survive eviction")
	}
	if _, ok := c.Lookup(c.Key(AxisPrice, 0, 1, 0)); !ok {
		t.Error("recently used entry must survive eviction")
	}
	if c.Stats().Evictions == 0 {
		t.Error("expected evictions to be counted")
	}
}

func TestStatsAreReadOnly(t *testing.T) {
	c := NewLabelCache(10)
	key := c.Key(AxisTime, 0, 1, 1)
	c.GetOrFormat(key, func() string { return "a" })
	_ = c.Stats()
	_ = c.Stats()
	if c.Len() != 1 {
		t.Errorf("Stats changed contents: len=%d", c.Len())
	}
	c.ResetStats()
	s := c.Stats()
	if s.Hits != 0 || s.Misses != 0 || s.Len != 1 {
		t.Errorf("ResetStats: got %+v", s)
	}
}

func TestAxisString(t *testing.T) {
	if AxisCrosshairPrice.String() != "crosshair_price" {
		t.Errorf("unexpected %q", AxisCrosshairPrice.String())
	}
	if Axis(42).String() != "unknown" {
		t.Errorf("unexpected %q", Axis(42).String())
	}
}

func BenchmarkGetOrFormatHit(b *testing.B) {
	c := NewLabelCache(0)
	key := c.Key(AxisPrice, 0, 100, 42.5)
	c.GetOrFormat(key, func() string { return "42.50" })
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.GetOrFormat(key, func() string { return "42.50" })
	}
}
