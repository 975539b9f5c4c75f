package visionplugin

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a go-plugin server. It blocks until the host
// disconnects.
func Serve(impl VisionModel) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &VisionModelRPC{Impl: impl},
		},
	})
}

// WriteInfo writes impl's metadata as indented JSON, for the --plugin-info
// convention.
func WriteInfo(w io.Writer, impl VisionModel) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(impl.GetMetadata()); err != nil {
		return fmt.Errorf("encoding plugin info: %w", err)
	}
	return nil
}
