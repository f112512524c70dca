package cache

import (
	"math"

	"github.com/gogpu/ggchart/internal/logging"
)

// DefaultCapacity is the soft limit used when NewLabelCache gets capacity <= 0.
const DefaultCapacity = 8192

// quantScale is the number of grid steps per logical unit (nano units).
const quantScale = 1e9

// Axis identifies which axis a label belongs to.
type Axis uint8

const (
	// AxisTime labels ticks on the time axis.
	AxisTime Axis = iota
	// AxisPrice labels ticks on the price axis.
	AxisPrice
	// AxisCrosshairTime labels the crosshair on the time axis.
	AxisCrosshairTime
	// AxisCrosshairPrice labels the crosshair on the price axis.
	AxisCrosshairPrice
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisTime:
		return "time"
	case AxisPrice:
		return "price"
	case AxisCrosshairTime:
		return "crosshair_time"
	case AxisCrosshairPrice:
		return "crosshair_price"
	default:
		return "unknown"
	}
}

// Key identifies one formatted label.
// Build keys with LabelCache.Key so the quantization and generation match.
type Key struct {
	Generation uint64
	Axis       Axis
	SourceMode uint8
	SpanQ      int64
	ValueQ     int64
}

// Quantize rounds v to the cache grid, saturating at the int64 bounds.
// NaN maps to math.MinInt64.
func Quantize(v float64) int64 {
	if math.IsNaN(v) {
		return math.MinInt64
	}
	q := math.Round(v * quantScale)
	if q >= math.MaxInt64 {
		return math.MaxInt64
	}
	if q <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(q)
}

type labelEntry struct {
	text  string
	atime int64
}

// LabelCache is a generation-keyed store of formatted label text.
//
// It is not safe for concurrent use.
type LabelCache struct {
	entries    map[Key]*labelEntry
	softLimit  int
	tick       int64
	generation uint64

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewLabelCache creates a cache holding about softLimit entries.
// If softLimit <= 0, DefaultCapacity is used.
func NewLabelCache(softLimit int) *LabelCache {
	if softLimit <= 0 {
		softLimit = DefaultCapacity
	}
	return &LabelCache{
		entries:   make(map[Key]*labelEntry),
		softLimit: softLimit,
	}
}

// Generation returns the current generation.
func (c *LabelCache) Generation() uint64 {
	return c.generation
}

// Key returns the quantized key for a label under the current generation.
func (c *LabelCache) Key(axis Axis, sourceMode uint8, span, value float64) Key {
	return Key{
		Generation: c.generation,
		Axis:       axis,
		SourceMode: sourceMode,
		SpanQ:      Quantize(span),
		ValueQ:     Quantize(value),
	}
}

// GetOrFormat returns the cached text for key, or calls format and stores
// its result. Keys from an older generation are treated as absent and the
// result is stored under the current generation.
func (c *LabelCache) GetOrFormat(key Key, format func() string) string {
	if key.Generation == c.generation {
		if e, ok := c.entries[key]; ok {
			c.tick++
			e.atime = c.tick
			c.hits++
			return e.text
		}
	}

	c.misses++
	text := format()

	key.Generation = c.generation
	c.tick++
	c.entries[key] = &labelEntry{text: text, atime: c.tick}
	if len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return text
}

// Lookup returns the cached text for key without formatting.
// It does not update hit or miss counters.
func (c *LabelCache) Lookup(key Key) (string, bool) {
	if key.Generation != c.generation {
		return "", false
	}
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	return e.text, true
}

// InvalidateAll bumps the generation and drops every entry.
func (c *LabelCache) InvalidateAll() {
	c.generation++
	c.entries = make(map[Key]*labelEntry)
	c.tick = 0
	logging.Logger().Debug("label cache invalidated", "generation", c.generation)
}

// Len returns the number of live entries.
func (c *LabelCache) Len() int {
	return len(c.entries)
}

// Capacity returns the soft limit.
func (c *LabelCache) Capacity() int {
	return c.softLimit
}

// Stats returns a snapshot of the cache counters.
func (c *LabelCache) Stats() Stats {
	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Len:        len(c.entries),
		Capacity:   c.softLimit,
		Hits:       c.hits,
		Misses:     c.misses,
		HitRate:    hitRate,
		Evictions:  c.evictions,
		Generation: c.generation,
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *LabelCache) ResetStats() {
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// evictOldest removes the least recently used quarter of the entries.
func (c *LabelCache) evictOldest() {
	targetSize := c.softLimit * 3 / 4
	if targetSize < 1 {
		targetSize = 1
	}
	toEvict := len(c.entries) - targetSize
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   Key
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, atime: e.atime})
	}

	// Partial selection sort: only the oldest toEvict entries are ordered.
	for i := 0; i < toEvict && i < len(all); i++ {
		minIdx := i
		for j := i + 1; j < len(all); j++ {
			if all[j].atime < all[minIdx].atime {
				minIdx = j
			}
		}
		all[i], all[minIdx] = all[minIdx], all[i]
		delete(c.entries, all[i].key)
		c.evictions++
	}
}

// Stats contains label cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits is the number of GetOrFormat calls served from the cache.
	Hits uint64
	// Misses is the number of GetOrFormat calls that invoked the formatter.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first lookup.
	HitRate float64
	// Evictions is the number of entries dropped by the soft limit.
	Evictions uint64
	// Generation is the current generation.
	Generation uint64
}
