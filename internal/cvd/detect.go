package cvd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/marianadeem755/VisionChroma-pro/pkg/visionplugin"
)

// pluginInfoTimeout bounds the --plugin-info query.
const pluginInfoTimeout = 5 * time.Second

// QueryPluginInfo runs a vision plugin with --plugin-info and checks that it
// speaks a compatible protocol version.
func QueryPluginInfo(ctx context.Context, path string) (visionplugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, pluginInfoTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--plugin-info") // #nosec G204 -- path comes from user configuration
	output, err := cmd.Output()
	if err != nil {
		return visionplugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info visionplugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return visionplugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info: %w", err)
	}
	if err := visionplugin.CheckCompatible(info.ProtocolVersion); err != nil {
		return info, fmt.Errorf("plugin %s: %w", info.Name, err)
	}
	return info, nil
}
