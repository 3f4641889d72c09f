// ABOUTME: Repository interfaces for insurance record storage
// ABOUTME: Enables testability of callers such as the MCP server

package storage

import "github.com/harper/autoseguro/internal/models"

// ClientRepository defines operations for managing clients.
type ClientRepository interface {
	ListClients() ([]models.Client, error)
	GetClient(id string) (*models.Client, error)
	SaveClient(c *models.Client) error
	DeleteClient(id string) error
}

// VehicleRepository defines operations for managing vehicles.
type VehicleRepository interface {
	ListVehicles() ([]models.Vehicle, error)
	GetVehicle(id string) (*models.Vehicle, error)
	GetVehicleByPlate(plate string) (*models.Vehicle, error)
	SaveVehicle(v *models.Vehicle) error
	DeleteVehicle(id string) error
}

// PolicyRepository defines operations for managing policies.
type PolicyRepository interface {
	ListPolicies() ([]models.Policy, error)
	GetPolicy(id string) (*models.Policy, error)
	SavePolicy(p *models.Policy) error
	DeletePolicy(id string) error
}

// ClaimRepository defines operations for managing claims.
type ClaimRepository interface {
	ListClaims() ([]models.Claim, error)
	GetClaim(id string) (*models.Claim, error)
	SaveClaim(c *models.Claim) error
	DeleteClaim(id string) error
}

// DatasetRepository loads and replaces the complete dataset.
type DatasetRepository interface {
	Load() (*models.Dataset, error)
	Replace(ds *models.Dataset) error
}

// Repository combines all record operations.
type Repository interface {
	ClientRepository
	VehicleRepository
	PolicyRepository
	ClaimRepository
	DatasetRepository
}
