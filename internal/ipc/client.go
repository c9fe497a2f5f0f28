package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

const DefaultTimeout = 5 * time.Second

// Client queries a running manager over its socket.
type Client struct {
	socketPath string
	timeout    time.Duration
	conn       net.Conn
	reader     *bufio.Reader
}

// NewClient creates a client for the given socket path.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{socketPath: socketPath, timeout: timeout}
}

// Close closes the connection, if open.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// request sends one request and waits for its response.
func (c *Client) request(ctx context.Context, method string, params map[string]any) (*Response, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetDeadline(deadline)
	}

	req := NewRequest(uuid.New().String(), method, params)
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var env MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if env.Response == nil {
		return nil, fmt.Errorf("response envelope missing body")
	}
	return env.Response, nil
}

// Ping tests connectivity.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	resp, err := c.request(ctx, "ping", nil)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("manager error: %s", resp.GetError())
	}
	return resp.Result, nil
}

// ManagerInfo retrieves name, version and pid of the running manager.
func (c *Client) ManagerInfo(ctx context.Context) (map[string]any, error) {
	resp, err := c.request(ctx, "getManagerInfo", nil)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("manager error: %s", resp.GetError())
	}
	return resp.Result, nil
}

// Dump retrieves the full manager state snapshot.
func (c *Client) Dump(ctx context.Context) (*Snapshot, error) {
	resp, err := c.request(ctx, "dump", nil)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("manager error: %s", resp.GetError())
	}
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	return &snap, nil
}
