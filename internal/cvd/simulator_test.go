package cvd

import (
	"context"
	"errors"
	"testing"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

// flakyModel fails for one colour and delegates otherwise.
type flakyModel struct {
	fail colour.Color
}

func (m flakyModel) Name() string { return "flaky" }

func (m flakyModel) Simulate(c colour.Color, d Deficiency) (colour.Color, error) {
	if c.Equal(m.fail) {
		return colour.Color{}, ErrDomain
	}
	return NewPerceptualModel().Simulate(c, d)
}

type brokenModel struct{}

func (brokenModel) Name() string { return "broken" }

func (brokenModel) Simulate(colour.Color, Deficiency) (colour.Color, error) {
	return colour.Color{}, errors.New("model not loaded")
}

func testPalette() *colour.Palette {
	return colour.NewPalette(colour.RGB(255, 0, 0), colour.RGB(0, 128, 0), colour.RGB(0, 0, 255), colour.White, colour.Black)
}

func TestNewSimulatorModes(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		want     Mode
		degraded bool
	}{
		{name: "builtin", opts: nil, want: ModePerceptual},
		{name: "forced fallback", opts: []Option{WithBackend(BackendFallback)}, want: ModeFallback, degraded: true},
		{name: "plugin without path", opts: []Option{WithBackend(BackendPlugin)}, want: ModeFallback, degraded: true},
		{name: "plugin missing binary", opts: []Option{WithBackend(BackendPlugin), WithPluginPath("/nonexistent/vision-plugin")}, want: ModeFallback, degraded: true},
		{name: "model failing probe", opts: []Option{WithModel(brokenModel{})}, want: ModeFallback, degraded: true},
		{name: "unknown backend", opts: []Option{WithBackend("gpu")}, want: ModeFallback, degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.opts...)
			defer s.Close()

			if got := s.Mode(); got != tt.want {
				t.Errorf("Mode() = %s, want %s", got, tt.want)
			}
			if (s.Degraded() != nil) != tt.degraded {
				t.Errorf("Degraded() = %v, want degraded=%v", s.Degraded(), tt.degraded)
			}
		})
	}
}

func TestSimulatePreservesOrder(t *testing.T) {
	p := testPalette()
	results, err := New(WithWorkers(2)).Simulate(context.Background(), p, Deuteranopia)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if len(results) != p.Len() {
		t.Fatalf("got %d results, want %d", len(results), p.Len())
	}
	for i, r := range results {
		if r.Original != p.Entries[i].Color {
			t.Errorf("results[%d].Original = %s, want %s", i, r.Original, p.Entries[i].Color)
		}
		if r.Deficiency != Deuteranopia {
			t.Errorf("results[%d].Deficiency = %s", i, r.Deficiency)
		}
		if r.ModeUsed != ModePerceptual {
			t.Errorf("results[%d].ModeUsed = %s, want perceptual", i, r.ModeUsed)
		}
	}
}

func TestSimulateFallbackMode(t *testing.T) {
	s := New(WithBackend(BackendFallback))
	results, err := s.Simulate(context.Background(), testPalette(), Protanopia)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	for _, r := range results {
		if r.ModeUsed != ModeFallback {
			t.Errorf("%s ModeUsed = %s, want fallback", r.Original.Hex(), r.ModeUsed)
		}
		want, _ := FallbackModel{}.Simulate(r.Original, Protanopia)
		if r.Simulated != want {
			t.Errorf("%s Simulated = %s, want %s", r.Original.Hex(), r.Simulated, want)
		}
	}
}

func TestSimulatePerColourRetry(t *testing.T) {
	failing := colour.RGB(0, 0, 255)
	s := New(WithModel(flakyModel{fail: failing}))
	if s.Mode() != ModePerceptual {
		t.Fatalf("Mode() = %s, want perceptual", s.Mode())
	}

	results, err := s.Simulate(context.Background(), testPalette(), Tritanopia)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	for _, r := range results {
		if r.Original.Equal(failing) {
			if r.ModeUsed != ModeFallback {
				t.Errorf("failed colour ModeUsed = %s, want fallback", r.ModeUsed)
			}
			if r.FallbackReason == "" {
				t.Error("failed colour has no FallbackReason")
			}
			want, _ := FallbackModel{}.Simulate(failing, Tritanopia)
			if r.Simulated != want {
				t.Errorf("failed colour Simulated = %s, want %s", r.Simulated, want)
			}
			continue
		}
		if r.ModeUsed != ModePerceptual || r.FallbackReason != "" {
			t.Errorf("%s ModeUsed = %s reason %q, want perceptual", r.Original.Hex(), r.ModeUsed, r.FallbackReason)
		}
	}
}

func TestSimulateAll(t *testing.T) {
	all, err := New().SimulateAll(context.Background(), testPalette())
	if err != nil {
		t.Fatalf("SimulateAll() error = %v", err)
	}
	for _, d := range AllDeficiencies {
		if len(all[d]) != 5 {
			t.Errorf("SimulateAll()[%s] has %d results, want 5", d, len(all[d]))
		}
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Simulate(ctx, testPalette(), Protanopia); !errors.Is(err, context.Canceled) {
		t.Errorf("Simulate() error = %v, want context.Canceled", err)
	}
}

func TestSimulatorRatio(t *testing.T) {
	s := New()
	for _, d := range AllDeficiencies {
		if r := s.Ratio(colour.Black, colour.White, d); r < 18 {
			t.Errorf("Ratio(black, white, %s) = %v, want near 21", d, r)
		}
	}

	// Red and green become hard to tell apart for a deuteranope.
	red, green := colour.RGB(220, 50, 47), colour.RGB(60, 160, 60)
	if s.Ratio(red, green, Deuteranopia) >= colour.Ratio(red, green)+1 {
		t.Errorf("deuteranopia should not raise red/green contrast substantially")
	}
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"builtin", "plugin", "fallback"} {
		if _, err := ParseBackend(name); err != nil {
			t.Errorf("ParseBackend(%q) error = %v", name, err)
		}
	}
	if _, err := ParseBackend("gpu"); err == nil {
		t.Error("ParseBackend(gpu) expected error")
	}
}
