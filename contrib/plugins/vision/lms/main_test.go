package main

import (
	"context"
	"testing"

	"github.com/marianadeem755/VisionChroma-pro/pkg/visionplugin"
)

func TestLMSPluginSimulate(t *testing.T) {
	p := &LMSPlugin{}
	req := visionplugin.SimulateRequest{
		Deficiency: "protanopia",
		Severity:   1,
		Colors:     []visionplugin.RGB{{R: 255}, {R: 128, G: 128, B: 128}},
	}

	out, err := p.Simulate(context.Background(), req)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Simulate() returned %d colours, want 2", len(out))
	}
	if out[0] == req.Colors[0] {
		t.Error("pure red should change under protanopia")
	}
}

func TestLMSPluginUnknownDeficiency(t *testing.T) {
	_, err := (&LMSPlugin{}).Simulate(context.Background(), visionplugin.SimulateRequest{Deficiency: "none"})
	if err == nil {
		t.Error("Simulate() expected error for unknown deficiency")
	}
}
