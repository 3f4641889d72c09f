// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with read-only record tools, backup status, and the dataset resource

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/autoseguro/internal/staleness"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BackupStatusReader reports the age of the last backup.
type BackupStatusReader interface {
	Status() (staleness.Status, error)
}

// Server wraps MCP server with the record repository.
type Server struct {
	mcp        *mcp.Server
	repo       storage.Repository
	backups    BackupStatusReader
	staleAfter int
}

// NewServer creates MCP server with all capabilities.
func NewServer(repo storage.Repository, backups BackupStatusReader, staleAfterDays int) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if backups == nil {
		return nil, fmt.Errorf("backup status reader is required")
	}
	if staleAfterDays <= 0 {
		staleAfterDays = staleness.DefaultThresholdDays
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "autoseguro",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:        mcpServer,
		repo:       repo,
		backups:    backups,
		staleAfter: staleAfterDays,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
