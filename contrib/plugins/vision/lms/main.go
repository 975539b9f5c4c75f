// lms - LMS cone-space vision model (visionchroma vision plugin)
//
// Serves the Viénot/Brettel dichromat projection out of process over the
// go-plugin RPC protocol. It is a reference for writing vision plugins and
// a way to exercise the plugin backend end to end.
//
// Build:
//   go build -o visionchroma-lms ./contrib/plugins/vision/lms
//
// Usage:
//   visionchroma analyze page.json --vision-backend plugin --vision-plugin ./visionchroma-lms

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/pkg/visionplugin"
)

// LMSPlugin implements visionplugin.VisionModel.
type LMSPlugin struct{}

// Simulate runs the perceptual model over every requested colour.
func (p *LMSPlugin) Simulate(ctx context.Context, req visionplugin.SimulateRequest) ([]visionplugin.RGB, error) {
	d, err := cvd.ParseDeficiency(req.Deficiency)
	if err != nil {
		return nil, err
	}
	model := &cvd.PerceptualModel{Severity: req.Severity}

	out := make([]visionplugin.RGB, len(req.Colors))
	for i, c := range req.Colors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim, err := model.Simulate(colour.RGB(c.R, c.G, c.B), d)
		if err != nil {
			return nil, err
		}
		out[i] = visionplugin.RGB{R: sim.R, G: sim.G, B: sim.B}
	}
	return out, nil
}

// GetMetadata returns plugin metadata.
func (p *LMSPlugin) GetMetadata() visionplugin.PluginInfo {
	return visionplugin.PluginInfo{
		Name:            "lms",
		Version:         "0.1.0",
		ProtocolVersion: visionplugin.ProtocolVersion,
		Description:     "Viénot/Brettel LMS dichromat projection",
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		if err := visionplugin.WriteInfo(os.Stdout, &LMSPlugin{}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	visionplugin.Serve(&LMSPlugin{})
}
