package visionplugin

import (
	"context"
)

// VisionModel is the interface vision model plugins implement.
type VisionModel interface {
	// Simulate returns the perceived colour for each requested colour, in
	// request order. The result must have the same length as req.Colors.
	Simulate(ctx context.Context, req SimulateRequest) ([]RGB, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
