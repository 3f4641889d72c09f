// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for records, dashboard counters, and backup age

package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/staleness"
)

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatClient formats a client for terminal display.
func FormatClient(c *models.Client) string {
	if c == nil {
		return faint("(no client)")
	}
	return fmt.Sprintf("%s %s  cpf %s  %s  %s",
		faint(shortID(c.ID)),
		color.GreenString(c.Name),
		orDash(c.CPF),
		orDash(c.Email),
		orDash(c.Phone))
}

// FormatVehicle formats a vehicle with its owner's name.
func FormatVehicle(ds *models.Dataset, v *models.Vehicle) string {
	if v == nil {
		return faint("(no vehicle)")
	}
	return fmt.Sprintf("%s %s - %s (%s, %s) %s",
		faint(shortID(v.ID)),
		color.CyanString(v.Plate),
		orDash(v.Model),
		orDash(v.Year),
		orDash(v.Color),
		faint("owner: "+ds.ClientName(v.ClientID)))
}

// FormatPolicy formats a policy with the covered vehicle and client.
func FormatPolicy(ds *models.Dataset, p *models.Policy) string {
	if p == nil {
		return faint("(no policy)")
	}
	return fmt.Sprintf("%s %s  %s  %s → %s  %s",
		faint(shortID(p.ID)),
		color.CyanString(ds.VehicleLabel(p.VehiclePlate)),
		ds.ClientName(p.ClientID),
		orDash(p.StartDate),
		orDash(p.EndDate),
		color.GreenString(orDash(p.Value)))
}

// FormatClaim formats a claim with its status highlighted.
func FormatClaim(ds *models.Dataset, c *models.Claim) string {
	if c == nil {
		return faint("(no claim)")
	}
	return fmt.Sprintf("%s %s  %s  %s  [%s]  %s",
		faint(shortID(c.ID)),
		orDash(c.Date),
		color.CyanString(ds.VehicleLabel(c.VehiclePlate)),
		ds.ClientName(c.ClientID),
		FormatClaimStatus(c.Status),
		orDash(c.Description))
}

// FormatClaimStatus colors a claim status by workflow stage.
func FormatClaimStatus(s models.ClaimStatus) string {
	switch s {
	case models.StatusPending:
		return color.YellowString(string(s))
	case models.StatusUnderReview:
		return color.CyanString(string(s))
	case models.StatusCompleted:
		return color.GreenString(string(s))
	default:
		return color.RedString(orDash(string(s)))
	}
}

// FormatStats formats the dashboard counters.
func FormatStats(s models.Stats) string {
	return fmt.Sprintf("Clients: %s  Vehicles: %s  Active policies: %s  Open claims: %s",
		color.GreenString("%d", s.TotalClients),
		color.GreenString("%d", s.TotalVehicles),
		color.GreenString("%d", s.ActivePolicies),
		color.YellowString("%d", s.OpenClaims))
}

// FormatBackupStatus describes the last backup, warning when it is missing
// or older than threshold days.
func FormatBackupStatus(st staleness.Status, threshold int) string {
	if !st.HasBackup() {
		return color.YellowString("⚠ No backup has been made yet. Run 'autoseguro backup'.")
	}

	when := st.LastBackup.Local().Format("2006-01-02 15:04")
	age := formatDays(st.DaysSince)
	if st.IsStale(threshold) {
		return color.YellowString("⚠ Last backup %s (%s). Run 'autoseguro backup'.", when, age)
	}
	return fmt.Sprintf("%s Last backup %s %s",
		color.GreenString("✓"), when, faint("("+age+")"))
}

func formatDays(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// shortID trims UUIDs to their first block for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	return formatDays(int(diff.Hours() / 24))
}
