// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides record lookups, dashboard counters, and backup status for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListClientsTool()
	s.registerListVehiclesTool()
	s.registerListPoliciesTool()
	s.registerListClaimsTool()
	s.registerFindVehicleTool()
	s.registerDatasetStatsTool()
	s.registerBackupStatusTool()
}

func textResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// ListClientsInput defines input for list_clients tool.
type ListClientsInput struct {
	Query string `json:"query,omitempty"`
}

// ListClientsOutput defines output for list_clients tool.
type ListClientsOutput struct {
	Clients []models.Client `json:"clients"`
	Count   int             `json:"count"`
}

func (s *Server) registerListClientsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_clients",
		Description: "List insured clients. Optionally filter by a name or CPF fragment.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringProp("Case-insensitive fragment of the client's name or CPF"),
			},
		},
	}, s.handleListClients)
}

func (s *Server) handleListClients(_ context.Context, _ *mcp.CallToolRequest, input ListClientsInput) (*mcp.CallToolResult, ListClientsOutput, error) {
	clients, err := s.repo.ListClients()
	if err != nil {
		return nil, ListClientsOutput{}, fmt.Errorf("failed to list clients: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(input.Query))
	out := ListClientsOutput{Clients: []models.Client{}}
	for _, c := range clients {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(c.CPF, q) {
			continue
		}
		out.Clients = append(out.Clients, c)
	}
	out.Count = len(out.Clients)

	return textResult(out), out, nil
}

// VehicleOutput is a vehicle with its owner's name resolved.
type VehicleOutput struct {
	models.Vehicle
	Owner string `json:"owner"`
}

// ListVehiclesInput defines input for list_vehicles tool.
type ListVehiclesInput struct {
	ClientID string `json:"client_id,omitempty"`
}

// ListVehiclesOutput defines output for list_vehicles tool.
type ListVehiclesOutput struct {
	Vehicles []VehicleOutput `json:"vehicles"`
	Count    int             `json:"count"`
}

func (s *Server) registerListVehiclesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_vehicles",
		Description: "List insured vehicles with their owners. Optionally restrict to one client.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"client_id": stringProp("Only vehicles owned by this client id"),
			},
		},
	}, s.handleListVehicles)
}

func (s *Server) handleListVehicles(_ context.Context, _ *mcp.CallToolRequest, input ListVehiclesInput) (*mcp.CallToolResult, ListVehiclesOutput, error) {
	ds, err := s.repo.Load()
	if err != nil {
		return nil, ListVehiclesOutput{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	out := ListVehiclesOutput{Vehicles: []VehicleOutput{}}
	for _, v := range ds.Vehicles {
		if input.ClientID != "" && v.ClientID != input.ClientID {
			continue
		}
		out.Vehicles = append(out.Vehicles, VehicleOutput{Vehicle: v, Owner: ds.ClientName(v.ClientID)})
	}
	out.Count = len(out.Vehicles)

	return textResult(out), out, nil
}

// PolicyOutput is a policy with its references resolved.
type PolicyOutput struct {
	models.Policy
	Client  string `json:"client"`
	Vehicle string `json:"vehicle"`
}

// ListPoliciesInput defines input for list_policies tool.
type ListPoliciesInput struct {
	VehiclePlate string `json:"vehicle_plate,omitempty"`
}

// ListPoliciesOutput defines output for list_policies tool.
type ListPoliciesOutput struct {
	Policies []PolicyOutput `json:"policies"`
	Count    int            `json:"count"`
}

func (s *Server) registerListPoliciesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_policies",
		Description: "List insurance policies. Optionally restrict to one vehicle plate.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"vehicle_plate": stringProp("Only policies covering this plate (e.g., 'ABC-1234')"),
			},
		},
	}, s.handleListPolicies)
}

func (s *Server) handleListPolicies(_ context.Context, _ *mcp.CallToolRequest, input ListPoliciesInput) (*mcp.CallToolResult, ListPoliciesOutput, error) {
	ds, err := s.repo.Load()
	if err != nil {
		return nil, ListPoliciesOutput{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	out := ListPoliciesOutput{Policies: policiesFor(ds, input.VehiclePlate)}
	out.Count = len(out.Policies)

	return textResult(out), out, nil
}

func policiesFor(ds *models.Dataset, plate string) []PolicyOutput {
	out := []PolicyOutput{}
	for _, p := range ds.Policies {
		if plate != "" && !strings.EqualFold(p.VehiclePlate, plate) {
			continue
		}
		out = append(out, PolicyOutput{Policy: p, Client: ds.ClientName(p.ClientID), Vehicle: ds.VehicleLabel(p.VehiclePlate)})
	}
	return out
}

// ClaimOutput is a claim with its references resolved.
type ClaimOutput struct {
	models.Claim
	Client  string `json:"client"`
	Vehicle string `json:"vehicle"`
}

// ListClaimsInput defines input for list_claims tool.
type ListClaimsInput struct {
	Status string `json:"status,omitempty"`
}

// ListClaimsOutput defines output for list_claims tool.
type ListClaimsOutput struct {
	Claims []ClaimOutput `json:"claims"`
	Count  int           `json:"count"`
}

func (s *Server) registerListClaimsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_claims",
		Description: "List claims. Optionally filter by status: pending, review, or completed.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"status": stringProp("Claim status: pending (Pendente), review (Em análise) or completed (Concluído)"),
			},
		},
	}, s.handleListClaims)
}

func (s *Server) handleListClaims(_ context.Context, _ *mcp.CallToolRequest, input ListClaimsInput) (*mcp.CallToolResult, ListClaimsOutput, error) {
	var want models.ClaimStatus
	if input.Status != "" {
		st, err := models.ParseClaimStatus(input.Status)
		if err != nil {
			return nil, ListClaimsOutput{}, err
		}
		want = st
	}

	ds, err := s.repo.Load()
	if err != nil {
		return nil, ListClaimsOutput{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	out := ListClaimsOutput{Claims: []ClaimOutput{}}
	for _, c := range claimsFor(ds, "") {
		if want != "" && c.Status != want {
			continue
		}
		out.Claims = append(out.Claims, c)
	}
	out.Count = len(out.Claims)

	return textResult(out), out, nil
}

func claimsFor(ds *models.Dataset, plate string) []ClaimOutput {
	out := []ClaimOutput{}
	for _, c := range ds.Claims {
		if plate != "" && !strings.EqualFold(c.VehiclePlate, plate) {
			continue
		}
		out = append(out, ClaimOutput{Claim: c, Client: ds.ClientName(c.ClientID), Vehicle: ds.VehicleLabel(c.VehiclePlate)})
	}
	return out
}

// FindVehicleInput defines input for find_vehicle tool.
type FindVehicleInput struct {
	Plate string `json:"plate"`
}

// FindVehicleOutput defines output for find_vehicle tool.
type FindVehicleOutput struct {
	Vehicle  VehicleOutput  `json:"vehicle"`
	Policies []PolicyOutput `json:"policies"`
	Claims   []ClaimOutput  `json:"claims"`
}

func (s *Server) registerFindVehicleTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "find_vehicle",
		Description: "Look up a vehicle by plate, with its owner, policies and claims.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"plate": stringProp("License plate (e.g., 'ABC-1234')"),
			},
			"required": []string{"plate"},
		},
	}, s.handleFindVehicle)
}

func (s *Server) handleFindVehicle(_ context.Context, _ *mcp.CallToolRequest, input FindVehicleInput) (*mcp.CallToolResult, FindVehicleOutput, error) {
	plate := strings.ToUpper(strings.TrimSpace(input.Plate))
	if plate == "" {
		return nil, FindVehicleOutput{}, fmt.Errorf("plate is required")
	}

	v, err := s.repo.GetVehicleByPlate(plate)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, FindVehicleOutput{}, fmt.Errorf("vehicle '%s' not found", plate)
	}
	if err != nil {
		return nil, FindVehicleOutput{}, fmt.Errorf("failed to find vehicle: %w", err)
	}

	ds, err := s.repo.Load()
	if err != nil {
		return nil, FindVehicleOutput{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	out := FindVehicleOutput{
		Vehicle:  VehicleOutput{Vehicle: *v, Owner: ds.ClientName(v.ClientID)},
		Policies: policiesFor(ds, v.Plate),
		Claims:   claimsFor(ds, v.Plate),
	}
	return textResult(out), out, nil
}

// EmptyInput is empty but required for type.
type EmptyInput struct{}

func (s *Server) registerDatasetStatsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "dataset_stats",
		Description: "Dashboard counters: clients, vehicles, active policies and open claims.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleDatasetStats)
}

func (s *Server) handleDatasetStats(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, models.Stats, error) {
	ds, err := s.repo.Load()
	if err != nil {
		return nil, models.Stats{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	out := ds.Stats()
	return textResult(out), out, nil
}

// BackupStatusOutput defines output for backup_status tool.
type BackupStatusOutput struct {
	LastBackup    *time.Time `json:"last_backup,omitempty"`
	DaysSince     int        `json:"days_since"`
	HasBackup     bool       `json:"has_backup"`
	Stale         bool       `json:"stale"`
	ThresholdDays int        `json:"threshold_days"`
}

func (s *Server) registerBackupStatusTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "backup_status",
		Description: "When the last spreadsheet backup was made and whether it is overdue. days_since is -1 when no backup exists.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleBackupStatus)
}

func (s *Server) handleBackupStatus(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, BackupStatusOutput, error) {
	st, err := s.backups.Status()
	if err != nil {
		return nil, BackupStatusOutput{}, fmt.Errorf("failed to read backup status: %w", err)
	}

	out := BackupStatusOutput{
		LastBackup:    st.LastBackup,
		DaysSince:     st.DaysSince,
		HasBackup:     st.HasBackup(),
		Stale:         !st.HasBackup() || st.IsStale(s.staleAfter),
		ThresholdDays: s.staleAfter,
	}
	return textResult(out), out, nil
}
