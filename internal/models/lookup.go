// ABOUTME: Reference lookups across collections and dashboard statistics
// ABOUTME: Dangling references resolve to placeholders instead of errors

package models

// Placeholders shown when a reference points at a record that no longer exists.
const (
	UnknownClient  = "Cliente não encontrado"
	UnknownVehicle = "Veículo não encontrado"
)

// FindClient returns the client with the given id.
func (d *Dataset) FindClient(id string) (*Client, bool) {
	for i := range d.Clients {
		if d.Clients[i].ID == id {
			return &d.Clients[i], true
		}
	}
	return nil, false
}

// FindVehicle returns the vehicle with the given id.
func (d *Dataset) FindVehicle(id string) (*Vehicle, bool) {
	for i := range d.Vehicles {
		if d.Vehicles[i].ID == id {
			return &d.Vehicles[i], true
		}
	}
	return nil, false
}

// FindVehicleByPlate returns the first vehicle with the given plate.
func (d *Dataset) FindVehicleByPlate(plate string) (*Vehicle, bool) {
	for i := range d.Vehicles {
		if d.Vehicles[i].Plate == plate {
			return &d.Vehicles[i], true
		}
	}
	return nil, false
}

// FindPolicy returns the policy with the given id.
func (d *Dataset) FindPolicy(id string) (*Policy, bool) {
	for i := range d.Policies {
		if d.Policies[i].ID == id {
			return &d.Policies[i], true
		}
	}
	return nil, false
}

// FindClaim returns the claim with the given id.
func (d *Dataset) FindClaim(id string) (*Claim, bool) {
	for i := range d.Claims {
		if d.Claims[i].ID == id {
			return &d.Claims[i], true
		}
	}
	return nil, false
}

// ClientName resolves a client id to a display name.
func (d *Dataset) ClientName(id string) string {
	if c, ok := d.FindClient(id); ok {
		return c.Name
	}
	return UnknownClient
}

// VehicleLabel resolves a plate to "plate - model".
func (d *Dataset) VehicleLabel(plate string) string {
	if v, ok := d.FindVehicleByPlate(plate); ok {
		return v.Plate + " - " + v.Model
	}
	return UnknownVehicle
}

// VehiclesOf returns the vehicles owned by a client.
func (d *Dataset) VehiclesOf(clientID string) []Vehicle {
	var out []Vehicle
	for _, v := range d.Vehicles {
		if v.ClientID == clientID {
			out = append(out, v)
		}
	}
	return out
}

// Stats holds the dashboard counters.
type Stats struct {
	TotalClients   int `json:"total_clients"`
	TotalVehicles  int `json:"total_vehicles"`
	ActivePolicies int `json:"active_policies"`
	OpenClaims     int `json:"open_claims"`
}

// Stats computes dashboard counters. Every stored policy counts as active;
// a claim is open until it is Completed.
func (d *Dataset) Stats() Stats {
	s := Stats{
		TotalClients:   len(d.Clients),
		TotalVehicles:  len(d.Vehicles),
		ActivePolicies: len(d.Policies),
	}
	for _, c := range d.Claims {
		if c.Status != StatusCompleted {
			s.OpenClaims++
		}
	}
	return s
}
