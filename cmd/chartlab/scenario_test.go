package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/coord"
)

const lineScenario = `
width: 900
height: 400
crosshair: magnet
price:
  mode: linear
  format: fixed
  precision: 1
data:
  points:
    - {time: 0, value: 10}
    - {time: 1, value: 11}
    - {time: 2, value: 12}
    - {time: 3, value: 13}
    - {time: 4, value: 14}
    - {time: 5, value: 15}
    - {time: 6, value: 16}
    - {time: 7, value: 17}
    - {time: 8, value: 18}
    - {time: 9, value: 19}
steps:
  - visible: {start: 0, end: 9}
  - autoscale: true
  - pointer: {x: 420, y: 50}
`

func TestReplayLineScenario(t *testing.T) {
	s, err := parseScenario([]byte(lineScenario))
	if err != nil {
		t.Fatalf("parseScenario: %v", err)
	}
	e, err := s.replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	r, err := buildReport(e)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if r.Visible != [2]float64{0, 9} {
		t.Errorf("visible = %v, want [0 9]", r.Visible)
	}
	if r.Crosshair == nil {
		t.Fatal("crosshair missing")
	}
	if r.Crosshair.Index == nil || *r.Crosshair.Index != 4 {
		t.Errorf("snap index = %v, want 4", r.Crosshair.Index)
	}
	if r.Crosshair.Price != "14.0" {
		t.Errorf("crosshair price = %q, want 14.0", r.Crosshair.Price)
	}
	if len(r.TimeTicks) == 0 || len(r.PriceTicks) == 0 {
		t.Errorf("expected ticks on both axes, got %d and %d", len(r.TimeTicks), len(r.PriceTicks))
	}
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := parseScenario([]byte("width: 100\nheigth: 50\n"))
	if err == nil {
		t.Error("expected an error for a misspelled field")
	}
}

func TestParseScenarioDefaults(t *testing.T) {
	s, err := parseScenario([]byte("steps: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 800 || s.Height != 400 {
		t.Errorf("size = %vx%v, want 800x400", s.Width, s.Height)
	}
}

func TestStepErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty step", "steps:\n  - {}\n", errEmptyStep},
		{"fit without data", "steps:\n  - fit: true\n", ggchart.ErrNoData},
		{"log on zero domain", "steps:\n  - mode: log\n", ggchart.ErrModeTransitionRejected},
		{"bad zoom", "steps:\n  - zoom: {amount: 0, pixel: 10}\n", ggchart.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScenario([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			_, err = s.replay()
			if !errors.Is(err, tt.want) {
				t.Errorf("replay error = %v, want %v", err, tt.want)
			}
			if err != nil && !strings.HasPrefix(err.Error(), "step 1:") {
				t.Errorf("error %q should name the step", err)
			}
		})
	}
}

func TestScenarioOptionErrors(t *testing.T) {
	for _, doc := range []string{
		"price: {mode: cubic}\n",
		"price: {base: sometimes}\n",
		"price: {format: roman}\n",
		"time: {format: lunar}\n",
		"crosshair: laser\n",
		"locale: \"not a locale!\"\n",
		"measurer: ruler\n",
	} {
		s, err := parseScenario([]byte(doc))
		if err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
		if _, err := s.build(); err == nil {
			t.Errorf("%q: expected an error", doc)
		}
	}
}

func TestScenarioMeasurer(t *testing.T) {
	for name, want := range map[string]string{
		"face":     "*axis.FaceMeasurer",
		"shaping":  "*axis.ShapingMeasurer",
		"estimate": "axis.EstimateMeasurer",
	} {
		m, err := newMeasurer(name)
		if err != nil {
			t.Fatalf("newMeasurer(%q): %v", name, err)
		}
		if got := fmt.Sprintf("%T", m); got != want {
			t.Errorf("newMeasurer(%q) = %s, want %s", name, got, want)
		}
		if w := m.Width("1234.5"); w <= 0 {
			t.Errorf("%s: Width() = %v, want > 0", name, w)
		}
	}

	s, err := parseScenario([]byte("measurer: shaping\n" + lineScenario))
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	r, err := buildReport(e)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if r.Crosshair == nil || r.Crosshair.Price != "14.0" {
		t.Errorf("crosshair = %+v, want price 14.0", r.Crosshair)
	}
	if len(r.TimeTicks) == 0 || len(r.PriceTicks) == 0 {
		t.Errorf("expected ticks on both axes, got %d and %d", len(r.TimeTicks), len(r.PriceTicks))
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	g := &Generator{Kind: "candles", Count: 50, Start: 1000, Step: 60, Price: 100, Seed: 7}
	_, a := g.generate()
	_, b := g.generate()
	if len(a) != 50 {
		t.Fatalf("got %d candles, want 50", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("candle %d differs: %+v vs %+v", i, a[i], b[i])
		}
		c := a[i]
		if c.Low > min(c.Open, c.Close) || c.High < max(c.Open, c.Close) {
			t.Errorf("candle %d has inconsistent range: %+v", i, c)
		}
		if want := 1000 + float64(i)*60; c.Time != want {
			t.Errorf("candle %d time = %v, want %v", i, c.Time, want)
		}
	}

	pts, candles := (&Generator{Kind: "points", Count: 3}).generate()
	if len(pts) != 3 || len(candles) != 0 {
		t.Errorf("points generator returned %d points, %d candles", len(pts), len(candles))
	}
}

func TestGeneratedCandleScenario(t *testing.T) {
	doc := `
price: {mode: percentage, base: first_visible_data}
time: {format: utc_adaptive}
data:
  generate: {kind: candles, count: 300, start: 1699920000, step: 60, seed: 3}
steps:
  - fit: true
  - autoscale: true
  - wheel: {amount: -240, pixel: 400}
  - kinetic: {velocity: 900, ticks: 120}
  - append_candle: {time: 1699938000, open: 100, high: 101, low: 99, close: 100.5}
`
	s, err := parseScenario([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	d := e.Diagnostics()
	if d.Candles != 301 {
		t.Errorf("candles = %d, want 301", d.Candles)
	}
	if d.PriceMode != coord.PriceModePercentage {
		t.Errorf("price mode = %v, want percentage", d.PriceMode)
	}
	if d.KineticActive {
		t.Error("kinetic pan should have settled")
	}
}

func TestWriteReports(t *testing.T) {
	s, err := parseScenario([]byte(lineScenario))
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.replay()
	if err != nil {
		t.Fatal(err)
	}
	r, err := buildReport(e)
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := writeText(&text, r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "crosshair") || !strings.Contains(text.String(), "14.0") {
		t.Errorf("text report missing crosshair:\n%s", text.String())
	}

	var out bytes.Buffer
	if err := writeYAML(&out, r); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := yaml.Unmarshal(out.Bytes(), &back); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if len(back.PriceTicks) != len(r.PriceTicks) {
		t.Errorf("price ticks = %d after decoding, want %d", len(back.PriceTicks), len(r.PriceTicks))
	}
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "line.yaml")
	if err := os.WriteFile(path, []byte(lineScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	orig := ggchart.Logger()
	t.Cleanup(func() { ggchart.SetLogger(orig) })

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"validate", []string{"validate", path}, "ok (3 steps)", false},
		{"run yaml", []string{"run", "-o", "yaml", path}, "price_ticks:", false},
		{"run text", []string{"run", path}, "label cache", false},
		{"log file", []string{"--log-level", "debug", "--log-file", filepath.Join(dir, "chartlab.log"), "validate", path}, "ok", false},
		{"bad output", []string{"run", "-o", "xml", path}, "", true},
		{"bad level", []string{"--log-level", "loud", "validate", path}, "", true},
		{"bad format", []string{"--log-format", "xml", "validate", path}, "", true},
		{"missing file", []string{"run", filepath.Join(dir, "nope.yaml")}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logLevel, logFormat, logFile = "warn", "text", ""
			cmd := newRootCmd()
			var out, errOut bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}
