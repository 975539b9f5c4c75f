package visionplugin

import (
	"context"
	"fmt"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// VisionModelRPC implements the go-plugin Plugin interface for vision models.
type VisionModelRPC struct {
	plugin.Plugin
	Impl VisionModel
}

// Server returns an RPC server for this plugin.
func (p *VisionModelRPC) Server(*plugin.MuxBroker) (any, error) {
	return &VisionModelRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *VisionModelRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &VisionModelRPCClient{client: c}, nil
}

// VisionModelRPCServer is the RPC server implementation for vision models.
type VisionModelRPCServer struct {
	Impl VisionModel
}

// Simulate implements the RPC method for colour simulation.
func (s *VisionModelRPCServer) Simulate(req SimulateRequest, resp *[]RGB) error {
	out, err := s.Impl.Simulate(context.Background(), req)
	if err != nil {
		return err
	}
	if len(out) != len(req.Colors) {
		return &RPCError{Message: fmt.Sprintf("model returned %d colours for %d inputs", len(out), len(req.Colors))}
	}
	*resp = out
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *VisionModelRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// VisionModelRPCClient is the RPC client implementation for vision models.
type VisionModelRPCClient struct {
	client *rpc.Client
}

// NewRPCClient wraps an established net/rpc client.
func NewRPCClient(c *rpc.Client) *VisionModelRPCClient {
	return &VisionModelRPCClient{client: c}
}

// Simulate calls the remote Simulate method.
func (c *VisionModelRPCClient) Simulate(ctx context.Context, req SimulateRequest) ([]RGB, error) {
	var out []RGB
	call := c.client.Go("Plugin.Simulate", req, &out, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-call.Done:
		if res.Error != nil {
			return nil, res.Error
		}
	}
	if len(out) != len(req.Colors) {
		return nil, &RPCError{Message: fmt.Sprintf("plugin returned %d colours for %d inputs", len(out), len(req.Colors))}
	}
	return out, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *VisionModelRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
