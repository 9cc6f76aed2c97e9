package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"evplan/internal/config"
	"evplan/internal/datastore"
	"evplan/internal/stats"
)

// Server exposes the marketplace aggregates as MCP tools.
type Server struct {
	cfg      *config.AppConfig
	provider *datastore.Provider
	opts     stats.Options
	now      func() time.Time
	mcp      *mcp.Server
}

// NewServer creates a new MCP server over the provider's dataset and registers every tool.
func NewServer(cfg *config.AppConfig, provider *datastore.Provider, version string) *Server {
	s := &Server{
		cfg:      cfg,
		provider: provider,
		opts:     cfg.StatsOptions(),
		now:      time.Now,
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{Name: "evplan", Version: version}, nil)
	s.registerTools()
	return s
}

// Serve runs the MCP session over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Interface("dataset", s.provider.Store().Count()).Msg("MCP server listening on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport. Used for in-process clients.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func (s *Server) store() *datastore.Store {
	return s.provider.Store()
}
