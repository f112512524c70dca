package interaction

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/gogpu/ggchart/coord"
)

func bruteNearest(times []float64, target float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, t := range times {
		if d := math.Abs(t - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func TestNearestSample(t *testing.T) {
	times := []float64{0, 10, 20, 30, 40}
	tests := []struct {
		name   string
		target float64
		want   int
	}{
		{"exact", 20, 2},
		{"before first", -100, 0},
		{"after last", 1e9, 4},
		{"closer left", 13, 1},
		{"closer right", 17, 2},
		{"tie prefers earlier", 15, 1},
		{"positive infinity", math.Inf(1), 4},
		{"negative infinity", math.Inf(-1), 0},
		{"nan", math.NaN(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestSample(times, tt.target); got != tt.want {
				t.Errorf("NearestSample(%v) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
	if got := NearestSample(nil, 1); got != -1 {
		t.Errorf("NearestSample(nil) = %d, want -1", got)
	}
	if got := NearestSample([]float64{7}, 100); got != 0 {
		t.Errorf("NearestSample(single) = %d, want 0", got)
	}
}

func TestNearestSampleDuplicates(t *testing.T) {
	times := []float64{1, 1, 1, 3, 3, 8}
	for _, target := range []float64{0, 1, 1.5, 2, 2.5, 3, 5.5, 7, 9} {
		if got, want := NearestSample(times, target), bruteNearest(times, target); got != want {
			t.Errorf("NearestSample(%v) = %d, want %d", target, got, want)
		}
	}
}

func TestNearestSampleMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(300)
		times := make([]float64, n)
		for i := range times {
			times[i] = math.Round(rng.Float64()*1000) / 4
		}
		sort.Float64s(times)
		for q := 0; q < 50; q++ {
			target := rng.Float64()*300 - 25
			want := bruteNearest(times, target)
			if got := NearestSample(times, target); got != want {
				t.Fatalf("round %d: NearestSample(%v) = %d, want %d", round, target, got, want)
			}
			hint := rng.Intn(n+10) - 5
			if got := NearestSampleFrom(times, target, hint); got != want {
				t.Fatalf("round %d: NearestSampleFrom(%v, hint %d) = %d, want %d", round, target, hint, got, want)
			}
		}
	}
}

func TestCrosshairLifecycle(t *testing.T) {
	var c Crosshair
	snapper := SnapperFunc(func(x, y float64) (Snap, bool) {
		return Snap{Index: 3, Time: 30, Price: 99, X: 300, Y: 40}, true
	})

	if err := c.PointerMove(10, 20, snapper); err != nil {
		t.Fatal(err)
	}
	if x, y, ok := c.Pointer(); !ok || x != 10 || y != 20 {
		t.Errorf("Pointer() = %v, %v, %v, want 10, 20, true", x, y, ok)
	}
	if _, ok := c.Snap(); ok {
		t.Error("normal mode has a snap")
	}

	if changed, _ := c.SetMode(CrosshairMagnet); !changed {
		t.Error("SetMode(Magnet) changed = false")
	}
	_ = c.PointerMove(290, 50, snapper)
	snap, ok := c.Snap()
	if !ok || snap.Index != 3 {
		t.Errorf("Snap() = %+v, %v, want index 3", snap, ok)
	}
	if x, y, _ := c.Position(); x != 300 || y != 40 {
		t.Errorf("Position() = %v, %v, want snap point", x, y)
	}

	_, _ = c.SetMode(CrosshairNormal)
	if _, ok := c.Snap(); ok {
		t.Error("snap survived switch to normal")
	}

	_, _ = c.SetMode(CrosshairHidden)
	if _, _, ok := c.Pointer(); ok {
		t.Error("pointer survived switch to hidden")
	}
	_ = c.PointerMove(5, 5, snapper)
	if _, _, ok := c.Pointer(); ok {
		t.Error("hidden mode recorded a pointer")
	}

	_, _ = c.SetMode(CrosshairNormal)
	_ = c.PointerMove(1, 2, nil)
	c.PointerLeave()
	if _, _, ok := c.Pointer(); ok {
		t.Error("pointer survived PointerLeave")
	}

	if changed, _ := c.SetMode(CrosshairNormal); changed {
		t.Error("SetMode(same) changed = true")
	}
	if _, err := c.SetMode(CrosshairMode(9)); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("SetMode(9) = %v, want ErrInvalidInput", err)
	}
	if err := c.PointerMove(math.NaN(), 0, nil); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("PointerMove(NaN) = %v, want ErrInvalidInput", err)
	}
}

func TestMagnetWithoutSnapper(t *testing.T) {
	var c Crosshair
	_, _ = c.SetMode(CrosshairMagnet)
	_ = c.PointerMove(1, 1, nil)
	if _, ok := c.Snap(); ok {
		t.Error("nil snapper produced a snap")
	}
	if _, _, ok := c.Pointer(); !ok {
		t.Error("pointer not recorded")
	}
}

func TestParseCrosshairMode(t *testing.T) {
	for m := CrosshairNormal; m <= CrosshairHidden; m++ {
		if got, err := ParseCrosshairMode(m.String()); err != nil || got != m {
			t.Errorf("ParseCrosshairMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseCrosshairMode("sticky"); err == nil {
		t.Error("ParseCrosshairMode(sticky) succeeded")
	}
}

func TestKineticConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  KineticConfig
		ok   bool
	}{
		{"default", DefaultKineticConfig(), true},
		{"decay zero", KineticConfig{Decay: 0, StopVelocity: 1, Dt: 1}, false},
		{"decay one", KineticConfig{Decay: 1, StopVelocity: 1, Dt: 1}, false},
		{"stop zero", KineticConfig{Decay: 0.5, StopVelocity: 0, Dt: 1}, false},
		{"dt nan", KineticConfig{Decay: 0.5, StopVelocity: 1, Dt: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok != (err == nil) {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestKineticStepsAndStops(t *testing.T) {
	k, err := NewKinetic(KineticConfig{Decay: 0.5, StopVelocity: 10, Dt: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := k.Step(); ok {
		t.Error("idle Step() ok = true")
	}
	if err := k.Start(100); err != nil {
		t.Fatal(err)
	}

	want := []float64{10, 5, 2.5, 1.25}
	for i, w := range want {
		d, ok := k.Step()
		if !ok || d != w {
			t.Errorf("step %d = %v, %v, want %v", i, d, ok, w)
		}
	}
	if k.Active() {
		t.Errorf("Active() = true after velocity fell to %v", k.Velocity())
	}

	if err := k.Start(math.Inf(1)); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("Start(Inf) = %v, want ErrInvalidInput", err)
	}
	_ = k.Start(0)
	if k.Active() {
		t.Error("Start(0) activated")
	}
}

func TestKineticReplayDeterministic(t *testing.T) {
	run := func() []float64 {
		k, _ := NewKinetic(DefaultKineticConfig())
		_ = k.Start(-1234.5)
		var out []float64
		for {
			d, ok := k.Step()
			if !ok {
				return out
			}
			out = append(out, d)
		}
	}
	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("replay lengths %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWheelNormalizeAcrossDevices(t *testing.T) {
	devices := map[string][]float64{
		"mouse":    {120},
		"eighths":  {15, 15, 15, 15, 15, 15, 15, 15},
		"thirds":   {40, 40, 40},
		"uneven":   {7, 50, 63},
		"overshot": {100, 30, -10},
	}
	for name, deltas := range devices {
		t.Run(name, func(t *testing.T) {
			var w Wheel
			total := 0.0
			for _, d := range deltas {
				n, err := w.Normalize(d)
				if err != nil {
					t.Fatal(err)
				}
				total += n
			}
			if total != 1 || w.Pending() != 0 {
				t.Errorf("total = %v pending = %v, want 1, 0", total, w.Pending())
			}
		})
	}

	var w Wheel
	if n, _ := w.Normalize(-360); n != -3 {
		t.Errorf("Normalize(-360) = %v, want -3", n)
	}
	if n, _ := w.Normalize(60); n != 0 || w.Pending() != 0.5 {
		t.Errorf("Normalize(60) = %v pending %v, want 0, 0.5", n, w.Pending())
	}
	w.Reset()
	if w.Pending() != 0 {
		t.Error("Reset() kept pending")
	}
	if _, err := w.Normalize(math.NaN()); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("Normalize(NaN) = %v, want ErrInvalidInput", err)
	}
}

func TestZoomFactor(t *testing.T) {
	in, _ := ZoomFactor(-1, 0.1)
	if math.Abs(in-1.1) > 1e-12 {
		t.Errorf("ZoomFactor(-1) = %v, want 1.1", in)
	}
	out, _ := ZoomFactor(1, 0.1)
	if math.Abs(out*1.1-1) > 1e-12 {
		t.Errorf("ZoomFactor(1) = %v, want 1/1.1", out)
	}
	if f, _ := ZoomFactor(0, 0.1); f != 1 {
		t.Errorf("ZoomFactor(0) = %v, want 1", f)
	}
	if _, err := ZoomFactor(1, 0); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("ZoomFactor(ratio 0) = %v, want ErrInvalidInput", err)
	}
}

func TestPanDelta(t *testing.T) {
	d, err := PanDelta(2, 500, 0.1)
	if err != nil || d != 100 {
		t.Errorf("PanDelta() = %v, %v, want 100", d, err)
	}
	if _, err := PanDelta(1, 500, -1); err == nil {
		t.Error("PanDelta(negative ratio) succeeded")
	}
}

func TestPinchFactor(t *testing.T) {
	tests := []struct {
		in     float64
		want   float64
		ok     bool
		errNil bool
	}{
		{1.5, 1.5, true, true},
		{1, 1, false, true},
		{0, 0, false, false},
		{-2, 0, false, false},
		{math.NaN(), 0, false, false},
	}
	for _, tt := range tests {
		got, ok, err := PinchFactor(tt.in)
		if got != tt.want || ok != tt.ok || (err == nil) != tt.errNil {
			t.Errorf("PinchFactor(%v) = %v, %v, %v", tt.in, got, ok, err)
		}
	}
}

func TestStatePanLifecycle(t *testing.T) {
	s, err := NewState(DefaultKineticConfig(), CrosshairMagnet)
	if err != nil {
		t.Fatal(err)
	}
	if s.Crosshair.Mode() != CrosshairMagnet {
		t.Errorf("crosshair mode = %v, want magnet", s.Crosshair.Mode())
	}
	_ = s.Kinetic.Start(500)
	s.PanStart()
	if s.Mode() != ModePanning || s.Kinetic.Active() {
		t.Errorf("after PanStart mode = %v kinetic = %v", s.Mode(), s.Kinetic.Active())
	}
	s.PanEnd()
	if s.Mode() != ModeIdle {
		t.Errorf("after PanEnd mode = %v", s.Mode())
	}
	if _, err := NewState(KineticConfig{}, CrosshairNormal); err == nil {
		t.Error("NewState(zero config) succeeded")
	}
}
