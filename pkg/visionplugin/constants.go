// Package visionplugin provides the public API for out-of-process colour
// vision models used by visionchroma's CVD simulator.
package visionplugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current vision plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "1.0.0"

	// PluginName is the key a vision model is dispensed under.
	PluginName = "vision"
)

// Handshake is the handshake configuration for the go-plugin protocol.
// Hosts refuse binaries that do not present this cookie.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1, // Major version from ProtocolVersion
	MagicCookieKey:   "VISIONCHROMA_PLUGIN",
	MagicCookieValue: "vision_model",
}

// PluginMap returns the plugin set a host passes to go-plugin when
// dispensing a vision model.
func PluginMap() map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &VisionModelRPC{},
	}
}
