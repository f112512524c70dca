// Package cache provides the generation-keyed label cache used by ggchart.
//
// LabelCache maps a quantized (generation, axis, source mode, visible span,
// value) key to formatted label text:
//
//	lc := cache.NewLabelCache(0)
//	key := lc.Key(cache.AxisPrice, 0, span, price)
//	text := lc.GetOrFormat(key, func() string { return format(price) })
//
// InvalidateAll bumps the generation so every previously issued key is
// treated as absent. Values and spans are rounded to a 1e-9 grid so that
// floating-point jitter between frames maps to the same entry.
//
// # Thread Safety
//
// LabelCache has no internal locking. It expects a single writer; hosts
// that share a cache across goroutines must serialize access.
package cache
