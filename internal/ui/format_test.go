// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for records, counters, and backup age

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/staleness"
)

func TestFormatClient(t *testing.T) {
	ds := models.Seed()
	output := FormatClient(&ds.Clients[0])
	if !strings.Contains(output, "João Silva") {
		t.Error("expected output to contain client name")
	}
	if !strings.Contains(output, "123.456.789-00") {
		t.Error("expected output to contain cpf")
	}
}

func TestFormatClient_ShortensUUID(t *testing.T) {
	id := uuid.New().String()
	output := FormatClient(&models.Client{ID: id, Name: "Ana"})
	if strings.Contains(output, id) {
		t.Errorf("expected shortened id, got %q", output)
	}
	if !strings.Contains(output, id[:8]) {
		t.Errorf("expected id prefix %s, got %q", id[:8], output)
	}
}

func TestFormatClient_Nil(t *testing.T) {
	if output := FormatClient(nil); !strings.Contains(output, "no client") {
		t.Errorf("expected nil client message, got %q", output)
	}
}

func TestFormatVehicle(t *testing.T) {
	ds := models.Seed()
	output := FormatVehicle(ds, &ds.Vehicles[0])
	for _, want := range []string{"ABC-1234", "Toyota Corolla", "2022", "Prata", "João Silva"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestFormatVehicle_DanglingOwner(t *testing.T) {
	ds := models.Seed()
	v := models.Vehicle{ID: "2", Plate: "XYZ-0001", ClientID: "404"}
	output := FormatVehicle(ds, &v)
	if !strings.Contains(output, models.UnknownClient) {
		t.Errorf("expected placeholder for missing owner, got %q", output)
	}
	if !strings.Contains(output, "-") {
		t.Error("expected dashes for empty fields")
	}
}

func TestFormatPolicy(t *testing.T) {
	ds := models.Seed()
	output := FormatPolicy(ds, &ds.Policies[0])
	for _, want := range []string{"ABC-1234 - Toyota Corolla", "João Silva", "2024-01-01", "2025-01-01", "R$ 2.500,00"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestFormatClaim(t *testing.T) {
	ds := models.Seed()
	output := FormatClaim(ds, &ds.Claims[0])
	for _, want := range []string{"2024-02-15", "Em análise", "Colisão traseira"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestFormatClaim_DanglingVehicle(t *testing.T) {
	ds := models.NewDataset()
	c := models.Claim{ID: "1", VehiclePlate: "ZZZ-9999", Status: models.StatusPending}
	output := FormatClaim(ds, &c)
	if !strings.Contains(output, models.UnknownVehicle) {
		t.Errorf("expected vehicle placeholder, got %q", output)
	}
}

func TestFormatClaimStatus(t *testing.T) {
	for _, s := range models.ClaimStatuses {
		if output := FormatClaimStatus(s); !strings.Contains(output, string(s)) {
			t.Errorf("expected %q in %q", s, output)
		}
	}
	if output := FormatClaimStatus(""); output == "" {
		t.Error("expected a marker for an empty status")
	}
}

func TestFormatStats(t *testing.T) {
	output := FormatStats(models.Stats{TotalClients: 3, TotalVehicles: 4, ActivePolicies: 2, OpenClaims: 1})
	for _, want := range []string{"Clients: 3", "Vehicles: 4", "Active policies: 2", "Open claims: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in %q", want, output)
		}
	}
}

func TestFormatBackupStatus(t *testing.T) {
	last := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   staleness.Status
		contains string
	}{
		{"never", staleness.Status{DaysSince: staleness.NeverBackedUp}, "No backup has been made yet"},
		{"today", staleness.Status{LastBackup: &last, DaysSince: 0}, "today"},
		{"fresh", staleness.Status{LastBackup: &last, DaysSince: 6}, "6 days ago"},
		{"stale", staleness.Status{LastBackup: &last, DaysSince: 7}, "Run 'autoseguro backup'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output := FormatBackupStatus(tc.status, 7)
			if !strings.Contains(output, tc.contains) {
				t.Errorf("expected %q in %q", tc.contains, output)
			}
		})
	}

	fresh := FormatBackupStatus(staleness.Status{LastBackup: &last, DaysSince: 6}, 7)
	if strings.Contains(fresh, "Run 'autoseguro backup'") {
		t.Errorf("fresh backup should not warn, got %q", fresh)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		contains string
	}{
		{"just_now", 30 * time.Second, "just now"},
		{"one_minute", 1 * time.Minute, "1 minute ago"},
		{"five_minutes", 5 * time.Minute, "5 minutes ago"},
		{"one_hour", 1 * time.Hour, "1 hour ago"},
		{"two_hours", 2 * time.Hour, "2 hours ago"},
		{"one_day", 25 * time.Hour, "1 day ago"},
		{"multiple_days", 72 * time.Hour, "3 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := time.Now().Add(-tc.duration)
			result := FormatRelativeTime(tm)
			if !strings.Contains(result, tc.contains) {
				t.Errorf("FormatRelativeTime for %v: expected to contain %q, got %q", tc.duration, tc.contains, result)
			}
		})
	}
}

func TestFormatRelativeTime_FutureTime(t *testing.T) {
	futureTime := time.Now().Add(1 * time.Hour)
	result := FormatRelativeTime(futureTime)
	if !strings.Contains(result, "future") {
		t.Errorf("expected future time message, got %q", result)
	}
}

func TestFormatRelativeTime_EdgeCases(t *testing.T) {
	// Test just under one minute
	tm := time.Now().Add(-59 * time.Second)
	result := FormatRelativeTime(tm)
	if !strings.Contains(result, "just now") {
		t.Errorf("59 seconds ago should be 'just now', got %q", result)
	}

	// Test exactly one minute
	tm = time.Now().Add(-60 * time.Second)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "minute") {
		t.Errorf("60 seconds ago should contain 'minute', got %q", result)
	}

	// Test 59 minutes
	tm = time.Now().Add(-59 * time.Minute)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "59 minutes") {
		t.Errorf("59 minutes ago should be '59 minutes ago', got %q", result)
	}

	// Test 23 hours
	tm = time.Now().Add(-23 * time.Hour)
	result = FormatRelativeTime(tm)
	if !strings.Contains(result, "23 hours") {
		t.Errorf("23 hours ago should be '23 hours ago', got %q", result)
	}
}
