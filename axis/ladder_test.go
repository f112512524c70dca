package axis

import (
	"math"
	"reflect"
	"testing"
)

func candValues(cs []candidate) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.value
	}
	return out
}

func candMajors(cs []candidate) []float64 {
	var out []float64
	for _, c := range cs {
		if c.major {
			out = append(out, c.value)
		}
	}
	return out
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw, step, decade float64
	}{
		{1, 1, 10},
		{0.3, 0.5, 1},
		{2.5, 5, 10},
		{7, 10, 100},
		{180, 200, 1000},
		{0.0012, 0.002, 0.01},
	}
	for _, tt := range tests {
		step, decade := niceStep(tt.raw)
		if math.Abs(step-tt.step) > 1e-12*tt.step || math.Abs(decade-tt.decade) > 1e-12*tt.decade {
			t.Errorf("niceStep(%v) = (%v, %v), want (%v, %v)", tt.raw, step, decade, tt.step, tt.decade)
		}
	}
}

func TestLinearLadder(t *testing.T) {
	got := linearLadder(0, 10, 6)
	if want := []float64{0, 2, 4, 6, 8, 10}; !reflect.DeepEqual(candValues(got), want) {
		t.Fatalf("values = %v, want %v", candValues(got), want)
	}
	if want := []float64{0, 10}; !reflect.DeepEqual(candMajors(got), want) {
		t.Errorf("majors = %v, want %v", candMajors(got), want)
	}
}

func TestLinearLadderDecimalSteps(t *testing.T) {
	got := candValues(linearLadder(0.1, 0.35, 6))
	want := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
}

func TestLinearLadderDegenerate(t *testing.T) {
	for _, r := range [][2]float64{{1, 1}, {2, 1}, {0, math.Inf(1)}, {math.NaN(), 1}} {
		if got := linearLadder(r[0], r[1], 5); got != nil {
			t.Errorf("linearLadder(%v, %v) = %v, want nil", r[0], r[1], got)
		}
	}
}

func TestLogLadder(t *testing.T) {
	got := logLadder(43.5, 229.7, 14)
	if want := []float64{50, 100, 200}; !reflect.DeepEqual(candValues(got), want) {
		t.Fatalf("values = %v, want %v", candValues(got), want)
	}
	if want := []float64{100}; !reflect.DeepEqual(candMajors(got), want) {
		t.Errorf("majors = %v, want %v", candMajors(got), want)
	}
}

func TestLogLadderThinning(t *testing.T) {
	tests := []struct {
		name     string
		maxTicks int
		want     []float64
	}{
		{"one five", 13, []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 1e4, 5e4, 1e5, 5e5, 1e6}},
		{"decades", 7, []float64{1, 10, 100, 1000, 1e4, 1e5, 1e6}},
		{"every third decade", 3, []float64{1, 1000, 1e6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candValues(logLadder(1, 1e6, tt.maxTicks))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("logLadder = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogLadderFallsBackToLinear(t *testing.T) {
	got := candValues(logLadder(120, 180, 10))
	want := []float64{120, 130, 140, 150, 160, 170, 180}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("logLadder = %v, want %v", got, want)
	}
}

func TestLogLadderRejectsNonPositive(t *testing.T) {
	if got := logLadder(0, 10, 5); got != nil {
		t.Errorf("logLadder(0, 10) = %v, want nil", got)
	}
}

func TestUTCLadder(t *testing.T) {
	got := utcLadder(0, 2*secondsPerDay, 5, 0, nil)
	if want := []float64{0, 43200, 86400, 129600, 172800}; !reflect.DeepEqual(candValues(got), want) {
		t.Fatalf("values = %v, want %v", candValues(got), want)
	}
	if want := []float64{0, 86400, 172800}; !reflect.DeepEqual(candMajors(got), want) {
		t.Errorf("majors = %v, want %v", candMajors(got), want)
	}
}

func TestUTCLadderOffset(t *testing.T) {
	got := utcLadder(0, secondsPerDay, 3, 3600, nil)
	if want := []float64{39600, 82800}; !reflect.DeepEqual(candValues(got), want) {
		t.Fatalf("values = %v, want %v", candValues(got), want)
	}
	if want := []float64{82800}; !reflect.DeepEqual(candMajors(got), want) {
		t.Errorf("majors = %v, want %v (local midnight)", candMajors(got), want)
	}
}

func TestUTCLadderSessionMajors(t *testing.T) {
	s := &Session{StartMinute: 9*60 + 30, EndMinute: 16 * 60}
	got := utcLadder(9*3600, 17*3600, 17, 0, s)
	majors := candMajors(got)
	want := []float64{9*3600 + 1800, 16 * 3600}
	if !reflect.DeepEqual(majors, want) {
		t.Errorf("majors = %v, want %v", majors, want)
	}
}

func TestSession(t *testing.T) {
	day := Session{StartMinute: 570, EndMinute: 960}
	night := Session{StartMinute: 22 * 60, EndMinute: 2 * 60}
	tests := []struct {
		name   string
		s      Session
		minute int
		want   bool
	}{
		{"day inside", day, 600, true},
		{"day start", day, 570, true},
		{"day outside", day, 1000, false},
		{"night late", night, 23 * 60, true},
		{"night early", night, 60, true},
		{"night outside", night, 12 * 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Contains(tt.minute); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.minute, got, tt.want)
			}
		})
	}
	if !day.IsBoundary(570, 0) || day.IsBoundary(570, 1) || day.IsBoundary(571, 0) {
		t.Error("IsBoundary mismatch")
	}
}
