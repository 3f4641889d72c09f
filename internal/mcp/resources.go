// ABOUTME: MCP resource definitions
// ABOUTME: Exposes the complete dataset as a read-only JSON document

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DatasetURI is the URI of the dataset resource.
const DatasetURI = "autoseguro://dataset"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        DatasetURI,
		Description: "All clients, vehicles, policies and claims",
		URI:         DatasetURI,
		MIMEType:    "application/json",
	}, s.handleDatasetResource)
}

func (s *Server) handleDatasetResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ds, err := s.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	jsonBytes, _ := json.MarshalIndent(ds, "", "  ") //nolint:errchkjson // dataset is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      DatasetURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
