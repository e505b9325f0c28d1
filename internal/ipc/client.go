package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Tamer.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rules retrieves the active rule set.
func (c *Client) Rules() (*RulesResponse, error) {
	var resp RulesResponse
	if err := c.client.Call("Tamer.Rules", RulesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reload forces an immediate rule refresh plus enforcement pass.
func (c *Client) Reload() (*ReloadResponse, error) {
	var resp ReloadResponse
	if err := c.client.Call("Tamer.Reload", ReloadRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cycle forces an immediate enforcement pass.
func (c *Client) Cycle() (*CycleResponse, error) {
	var resp CycleResponse
	if err := c.client.Call("Tamer.Cycle", CycleRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogTail returns log lines from the daemon.
func (c *Client) LogTail(req LogTailRequest) (*LogTailResponse, error) {
	var resp LogTailResponse
	if err := c.client.Call("Tamer.LogTail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop the enforcement loop.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Tamer.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
