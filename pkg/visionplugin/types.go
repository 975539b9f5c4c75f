package visionplugin

// RGB is an opaque sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// SimulateRequest asks a model to simulate a batch of colours.
type SimulateRequest struct {
	// Deficiency is one of "protanopia", "deuteranopia" or "tritanopia".
	Deficiency string `json:"deficiency"`
	// Severity in [0,1]; 1 is complete loss of the cone type.
	Severity float64 `json:"severity"`
	Colors   []RGB   `json:"colors"`
}

// PluginInfo contains metadata about a vision model plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}
