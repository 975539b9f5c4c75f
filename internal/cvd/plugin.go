package cvd

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/security"
	"github.com/marianadeem755/VisionChroma-pro/pkg/visionplugin"
)

// DefaultPluginTimeout bounds each call into a vision plugin.
const DefaultPluginTimeout = 5 * time.Second

// remoteModel is the client side of a vision plugin.
type remoteModel interface {
	Simulate(ctx context.Context, req visionplugin.SimulateRequest) ([]visionplugin.RGB, error)
	GetMetadata() (visionplugin.PluginInfo, error)
}

// PluginModel runs a perceptual model out of process over go-plugin.
type PluginModel struct {
	client   *plugin.Client
	remote   remoteModel
	info     visionplugin.PluginInfo
	severity float64
	timeout  time.Duration
}

// NewPluginModel launches the plugin binary at path and dispenses its
// vision model. The caller must Close the model.
func NewPluginModel(path string, severity float64, logger hclog.Logger) (*PluginModel, error) {
	if path == "" {
		return nil, fmt.Errorf("no vision plugin path configured")
	}
	if err := security.ValidateExecutable(path); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	info, err := QueryPluginInfo(context.Background(), path)
	if err != nil {
		return nil, err
	}
	logger.Debug("vision plugin found", "name", info.Name, "version", info.Version, "protocol", info.ProtocolVersion)

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  visionplugin.Handshake,
		Plugins:          visionplugin.PluginMap(),
		Cmd:              exec.Command(path), // #nosec G204 -- path comes from user configuration
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger.Named("plugin"),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(visionplugin.PluginName)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	remote, ok := raw.(*visionplugin.VisionModelRPCClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}

	m := newPluginModel(remote, severity)
	m.client = client
	return m, nil
}

func newPluginModel(remote remoteModel, severity float64) *PluginModel {
	m := &PluginModel{remote: remote, severity: severity, timeout: DefaultPluginTimeout}
	if info, err := remote.GetMetadata(); err == nil {
		m.info = info
	}
	return m
}

// Name implements ColorVisionModel.
func (m *PluginModel) Name() string {
	if m.info.Name == "" {
		return "plugin"
	}
	return "plugin:" + m.info.Name
}

// Info returns the metadata reported by the plugin.
func (m *PluginModel) Info() visionplugin.PluginInfo {
	return m.info
}

// Simulate implements ColorVisionModel.
func (m *PluginModel) Simulate(c colour.Color, d Deficiency) (colour.Color, error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	out, err := m.remote.Simulate(ctx, visionplugin.SimulateRequest{
		Deficiency: string(d),
		Severity:   m.severity,
		Colors:     []visionplugin.RGB{{R: c.R, G: c.G, B: c.B}},
	})
	if err != nil {
		return colour.Color{}, fmt.Errorf("plugin %s: %w", m.Name(), err)
	}
	if len(out) != 1 {
		return colour.Color{}, fmt.Errorf("plugin %s returned %d colours, want 1", m.Name(), len(out))
	}
	return colour.RGB(out[0].R, out[0].G, out[0].B), nil
}

// Close stops the plugin process.
func (m *PluginModel) Close() error {
	if m.client != nil {
		m.client.Kill()
	}
	return nil
}
