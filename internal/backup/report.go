// ABOUTME: Text exports of the dataset: versioned YAML snapshot and markdown report
// ABOUTME: YAML snapshots can be restored; markdown is for reading and printing

package backup

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harper/autoseguro/internal/models"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the current YAML snapshot format version.
const SnapshotVersion = "1.0"

// snapshotTool identifies files written by this program.
const snapshotTool = "autoseguro"

// Snapshot represents the YAML backup format.
type Snapshot struct {
	Version    string           `yaml:"version"`
	ExportedAt time.Time        `yaml:"exported_at"`
	Tool       string           `yaml:"tool"`
	Clients    []models.Client  `yaml:"clients"`
	Vehicles   []models.Vehicle `yaml:"vehicles"`
	Policies   []models.Policy  `yaml:"policies"`
	Claims     []models.Claim   `yaml:"claims"`
}

// ExportYAML exports the dataset as a versioned YAML snapshot.
func ExportYAML(ds *models.Dataset, now time.Time) ([]byte, error) {
	ds = ds.Clone()
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC(),
		Tool:       snapshotTool,
		Clients:    ds.Clients,
		Vehicles:   ds.Vehicles,
		Policies:   ds.Policies,
		Claims:     ds.Claims,
	}
	return yaml.Marshal(snap)
}

// ParseYAML parses a YAML snapshot, checking version and tool.
func ParseYAML(data []byte) (*models.Dataset, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrMalformed, err)
	}

	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version: %s (expected %s)", ErrInvalidStructure, snap.Version, SnapshotVersion)
	}
	if snap.Tool != snapshotTool {
		return nil, fmt.Errorf("%w: wrong tool: %s (expected %s)", ErrInvalidStructure, snap.Tool, snapshotTool)
	}

	ds := &models.Dataset{
		Clients:  snap.Clients,
		Vehicles: snap.Vehicles,
		Policies: snap.Policies,
		Claims:   snap.Claims,
	}
	ds.Normalize()
	return ds, nil
}

// ImportYAML restores a YAML snapshot, replacing the whole dataset. Like a
// workbook import it counts as a fresh backup point.
func (e *Engine) ImportYAML(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: r})
	if err != nil {
		return fmt.Errorf("%w: read file: %w", ErrImportFailed, err)
	}
	ds, err := ParseYAML(data)
	if err != nil {
		return err
	}
	if err := e.store.Replace(ds); err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	if err := e.tracker.RecordBackup(e.now()); err != nil {
		return fmt.Errorf("%w: dataset replaced but %w", ErrImportFailed, err)
	}
	return nil
}

// ExportMarkdown renders the dataset as a markdown report with references
// resolved to names.
func ExportMarkdown(ds *models.Dataset, now time.Time) []byte {
	var sb strings.Builder

	now = now.UTC()
	sb.WriteString(fmt.Sprintf("# AutoSeguro Report - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	st := ds.Stats()
	sb.WriteString(fmt.Sprintf("%d clients, %d vehicles, %d policies, %d open claims\n\n",
		st.TotalClients, st.TotalVehicles, st.ActivePolicies, st.OpenClaims))

	sb.WriteString("## Clients\n\n")
	if len(ds.Clients) == 0 {
		sb.WriteString("No clients registered.\n\n")
	} else {
		sb.WriteString("| Name | CPF | Email | Phone |\n")
		sb.WriteString("|------|-----|-------|-------|\n")
		for _, c := range ds.Clients {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", cell(c.Name), cell(c.CPF), cell(c.Email), cell(c.Phone)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Vehicles\n\n")
	if len(ds.Vehicles) == 0 {
		sb.WriteString("No vehicles registered.\n\n")
	} else {
		sb.WriteString("| Plate | Model | Year | Color | Owner |\n")
		sb.WriteString("|-------|-------|------|-------|-------|\n")
		for _, v := range ds.Vehicles {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(v.Plate), cell(v.Model), cell(v.Year), cell(v.Color), cell(ds.ClientName(v.ClientID))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Policies\n\n")
	if len(ds.Policies) == 0 {
		sb.WriteString("No policies registered.\n\n")
	} else {
		sb.WriteString("| Vehicle | Client | Start | End | Value |\n")
		sb.WriteString("|---------|--------|-------|-----|-------|\n")
		for _, p := range ds.Policies {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(p.VehiclePlate), cell(ds.ClientName(p.ClientID)), cell(p.StartDate), cell(p.EndDate), cell(p.Value)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Claims\n\n")
	if len(ds.Claims) == 0 {
		sb.WriteString("No claims registered.\n")
	} else {
		sb.WriteString("| Date | Vehicle | Client | Status | Description |\n")
		sb.WriteString("|------|---------|--------|--------|-------------|\n")
		for _, c := range ds.Claims {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(c.Date), cell(c.VehiclePlate), cell(ds.ClientName(c.ClientID)), cell(string(c.Status)), cell(c.Description)))
		}
	}

	return []byte(sb.String())
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
