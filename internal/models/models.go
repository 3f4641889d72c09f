// ABOUTME: Core data models for clients, vehicles, policies, and claims
// ABOUTME: Provides the Dataset aggregate, the seed dataset, and id generation

package models

import (
	"github.com/google/uuid"
)

// ClaimStatus is the processing state of a claim.
type ClaimStatus string

// Claim statuses as stored in the dataset and in backup workbooks.
const (
	StatusPending     ClaimStatus = "Pendente"
	StatusUnderReview ClaimStatus = "Em análise"
	StatusCompleted   ClaimStatus = "Concluído"
)

// ClaimStatuses lists every valid claim status in workflow order.
var ClaimStatuses = []ClaimStatus{StatusPending, StatusUnderReview, StatusCompleted}

// Valid reports whether s is one of the known claim statuses.
func (s ClaimStatus) Valid() bool {
	for _, known := range ClaimStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Client is an insured person.
type Client struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	CPF   string `json:"cpf" yaml:"cpf"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// Vehicle is a car owned by a client. Plate is the natural key used by
// policies and claims.
type Vehicle struct {
	ID       string `json:"id" yaml:"id"`
	Plate    string `json:"plate" yaml:"plate"`
	Model    string `json:"model" yaml:"model"`
	Year     string `json:"year" yaml:"year"`
	Color    string `json:"color" yaml:"color"`
	ClientID string `json:"clientId" yaml:"clientId"`
}

// Policy is an insurance policy covering one vehicle.
type Policy struct {
	ID           string `json:"id" yaml:"id"`
	VehiclePlate string `json:"vehiclePlate" yaml:"vehiclePlate"`
	ClientID     string `json:"clientId" yaml:"clientId"`
	StartDate    string `json:"startDate" yaml:"startDate"`
	EndDate      string `json:"endDate" yaml:"endDate"`
	Value        string `json:"value" yaml:"value"`
}

// Claim is an incident reported against a vehicle.
type Claim struct {
	ID           string      `json:"id" yaml:"id"`
	VehiclePlate string      `json:"vehiclePlate" yaml:"vehiclePlate"`
	ClientID     string      `json:"clientId" yaml:"clientId"`
	Date         string      `json:"date" yaml:"date"`
	Description  string      `json:"description" yaml:"description"`
	Status       ClaimStatus `json:"status" yaml:"status"`
}

// Dataset is the complete set of records. It is always persisted, exported
// and imported as one unit.
type Dataset struct {
	Clients  []Client  `json:"clients" yaml:"clients"`
	Vehicles []Vehicle `json:"vehicles" yaml:"vehicles"`
	Policies []Policy  `json:"policies" yaml:"policies"`
	Claims   []Claim   `json:"claims" yaml:"claims"`
}

// NewDataset returns an empty dataset with non-nil collections.
func NewDataset() *Dataset {
	return &Dataset{
		Clients:  []Client{},
		Vehicles: []Vehicle{},
		Policies: []Policy{},
		Claims:   []Claim{},
	}
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (d *Dataset) Normalize() {
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Vehicles == nil {
		d.Vehicles = []Vehicle{}
	}
	if d.Policies == nil {
		d.Policies = []Policy{}
	}
	if d.Claims == nil {
		d.Claims = []Claim{}
	}
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Clients:  append([]Client{}, d.Clients...),
		Vehicles: append([]Vehicle{}, d.Vehicles...),
		Policies: append([]Policy{}, d.Policies...),
		Claims:   append([]Claim{}, d.Claims...),
	}
	return c
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.New().String()
}

// Seed returns the dataset a brand-new installation starts with.
func Seed() *Dataset {
	return &Dataset{
		Clients: []Client{
			{
				ID:    "1",
				Name:  "João Silva",
				CPF:   "123.456.789-00",
				Email: "joao@email.com",
				Phone: "(11) 99999-9999",
			},
		},
		Vehicles: []Vehicle{
			{
				ID:       "1",
				Plate:    "ABC-1234",
				Model:    "Toyota Corolla",
				Year:     "2022",
				Color:    "Prata",
				ClientID: "1",
			},
		},
		Policies: []Policy{
			{
				ID:           "1",
				VehiclePlate: "ABC-1234",
				ClientID:     "1",
				StartDate:    "2024-01-01",
				EndDate:      "2025-01-01",
				Value:        "R$ 2.500,00",
			},
		},
		Claims: []Claim{
			{
				ID:           "1",
				VehiclePlate: "ABC-1234",
				ClientID:     "1",
				Date:         "2024-02-15",
				Description:  "Colisão traseira na Av. Principal",
				Status:       StatusUnderReview,
			},
		},
	}
}
