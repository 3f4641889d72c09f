// ABOUTME: Per-collection CRUD on top of the record store
// ABOUTME: Create assigns ids, update replaces on id match, delete filters by id

package storage

import (
	"fmt"

	"github.com/harper/autoseguro/internal/models"
)

// upsert replaces the element whose id matches, or appends it.
func upsert[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// remove drops the element with the given id and reports whether it existed.
func remove[T any](items []T, target string, id func(T) string) ([]T, bool) {
	out := items[:0]
	found := false
	for _, it := range items {
		if id(it) == target {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

func clientID(c models.Client) string   { return c.ID }
func vehicleID(v models.Vehicle) string { return v.ID }
func policyID(p models.Policy) string   { return p.ID }
func claimID(c models.Claim) string     { return c.ID }

// --- Clients ---

// ListClients returns all clients in stored order.
func (s *Store) ListClients() ([]models.Client, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	return ds.Clients, nil
}

// GetClient retrieves a client by id.
func (s *Store) GetClient(id string) (*models.Client, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if c, ok := ds.FindClient(id); ok {
		return c, nil
	}
	return nil, ErrNotFound
}

// SaveClient creates the client (assigning an id when empty) or replaces the
// stored client with the same id.
func (s *Store) SaveClient(c *models.Client) error {
	if c.ID == "" {
		c.ID = models.NewID()
	}
	return s.Update(func(ds *models.Dataset) error {
		ds.Clients = upsert(ds.Clients, *c, clientID)
		return nil
	})
}

// DeleteClient removes a client. Vehicles, policies and claims pointing at it
// are left in place.
func (s *Store) DeleteClient(id string) error {
	return s.Update(func(ds *models.Dataset) error {
		var ok bool
		if ds.Clients, ok = remove(ds.Clients, id, clientID); !ok {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// --- Vehicles ---

// ListVehicles returns all vehicles in stored order.
func (s *Store) ListVehicles() ([]models.Vehicle, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	return ds.Vehicles, nil
}

// GetVehicle retrieves a vehicle by id.
func (s *Store) GetVehicle(id string) (*models.Vehicle, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if v, ok := ds.FindVehicle(id); ok {
		return v, nil
	}
	return nil, ErrNotFound
}

// GetVehicleByPlate retrieves a vehicle by plate.
func (s *Store) GetVehicleByPlate(plate string) (*models.Vehicle, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if v, ok := ds.FindVehicleByPlate(plate); ok {
		return v, nil
	}
	return nil, ErrNotFound
}

// SaveVehicle creates or replaces a vehicle.
func (s *Store) SaveVehicle(v *models.Vehicle) error {
	if v.ID == "" {
		v.ID = models.NewID()
	}
	return s.Update(func(ds *models.Dataset) error {
		ds.Vehicles = upsert(ds.Vehicles, *v, vehicleID)
		return nil
	})
}

// DeleteVehicle removes a vehicle.
func (s *Store) DeleteVehicle(id string) error {
	return s.Update(func(ds *models.Dataset) error {
		var ok bool
		if ds.Vehicles, ok = remove(ds.Vehicles, id, vehicleID); !ok {
			return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// --- Policies ---

// ListPolicies returns all policies in stored order.
func (s *Store) ListPolicies() ([]models.Policy, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	return ds.Policies, nil
}

// GetPolicy retrieves a policy by id.
func (s *Store) GetPolicy(id string) (*models.Policy, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if p, ok := ds.FindPolicy(id); ok {
		return p, nil
	}
	return nil, ErrNotFound
}

// SavePolicy creates or replaces a policy.
func (s *Store) SavePolicy(p *models.Policy) error {
	if p.ID == "" {
		p.ID = models.NewID()
	}
	return s.Update(func(ds *models.Dataset) error {
		ds.Policies = upsert(ds.Policies, *p, policyID)
		return nil
	})
}

// DeletePolicy removes a policy.
func (s *Store) DeletePolicy(id string) error {
	return s.Update(func(ds *models.Dataset) error {
		var ok bool
		if ds.Policies, ok = remove(ds.Policies, id, policyID); !ok {
			return fmt.Errorf("policy %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// --- Claims ---

// ListClaims returns all claims in stored order.
func (s *Store) ListClaims() ([]models.Claim, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	return ds.Claims, nil
}

// GetClaim retrieves a claim by id.
func (s *Store) GetClaim(id string) (*models.Claim, error) {
	ds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if c, ok := ds.FindClaim(id); ok {
		return c, nil
	}
	return nil, ErrNotFound
}

// SaveClaim creates or replaces a claim. New claims default to Pending.
func (s *Store) SaveClaim(c *models.Claim) error {
	if c.ID == "" {
		c.ID = models.NewID()
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	return s.Update(func(ds *models.Dataset) error {
		ds.Claims = upsert(ds.Claims, *c, claimID)
		return nil
	})
}

// DeleteClaim removes a claim.
func (s *Store) DeleteClaim(id string) error {
	return s.Update(func(ds *models.Dataset) error {
		var ok bool
		if ds.Claims, ok = remove(ds.Claims, id, claimID); !ok {
			return fmt.Errorf("claim %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
