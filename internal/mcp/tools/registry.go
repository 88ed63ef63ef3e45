package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/pkg/logging"
)

// Observer is told about every tool call.
type Observer interface {
	ObserveTool(tool string, err error)
}

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server   *sdkmcp.Server
	logger   *logging.Logger
	observer Observer
	now      func() time.Time

	pending []func(*registry)
	names   []string
}

// WithLogger sets the logger handed to every tool
func WithLogger(l *logging.Logger) Option {
	return func(reg *registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// WithObserver records the outcome of every call
func WithObserver(o Observer) Option {
	return func(reg *registry) {
		reg.observer = o
	}
}

// WithClock sets a custom clock
func WithClock(now func() time.Time) Option {
	return func(reg *registry) {
		if now != nil {
			reg.now = now
		}
	}
}

// Register applies the provided tool options and returns the names of the
// registered tools in registration order.
func Register(server *sdkmcp.Server, opts ...Option) []string {
	reg := &registry{
		server: server,
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	for _, add := range reg.pending {
		add(reg)
	}
	return reg.names
}

// add queues a registration until every option has been applied.
func (reg *registry) add(fn func(*registry)) {
	reg.pending = append(reg.pending, fn)
}

// addTool registers h under tool.Name with call logging and observation.
func addTool[In any](reg *registry, tool *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, any]) {
	name := tool.Name
	logger := reg.logger
	observer := reg.observer

	sdkmcp.AddTool(reg.server, tool, func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)
		if err != nil {
			logger.Warn("tool call failed", "tool", name, "err", err, "elapsed", time.Since(start))
		} else {
			logger.Debug("tool call completed", "tool", name, "elapsed", time.Since(start))
		}
		if observer != nil {
			observer.ObserveTool(name, err)
		}
		return res, out, err
	})
	reg.names = append(reg.names, name)
}
