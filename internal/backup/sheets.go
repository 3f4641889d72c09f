// ABOUTME: Sheet layouts mapping each record collection to a workbook sheet
// ABOUTME: Header row carries the field names; one row per record follows

package backup

import "github.com/harper/autoseguro/internal/models"

// Sheet names, in workbook order.
const (
	SheetClients  = "clients"
	SheetVehicles = "vehicles"
	SheetPolicies = "policies"
	SheetClaims   = "claims"
)

// SheetNames lists the required sheets in workbook order.
var SheetNames = []string{SheetClients, SheetVehicles, SheetPolicies, SheetClaims}

// row is one decoded record keyed by field name.
type row map[string]string

// sheetCodec converts one collection of a dataset to and from rows.
type sheetCodec interface {
	name() string
	fields() []string
	rows(ds *models.Dataset) [][]string
	load(ds *models.Dataset, rows []row, strict bool) error
}

// sheet implements sheetCodec for records of type T.
type sheet[T any] struct {
	sheetName string
	header    []string
	get       func(ds *models.Dataset) []T
	set       func(ds *models.Dataset, items []T)
	toRow     func(item T) []string
	fromRow   func(r row) T
	validate  func(item *T) error
}

func (s *sheet[T]) name() string     { return s.sheetName }
func (s *sheet[T]) fields() []string { return s.header }

func (s *sheet[T]) rows(ds *models.Dataset) [][]string {
	items := s.get(ds)
	out := make([][]string, 0, len(items))
	for _, it := range items {
		out = append(out, s.toRow(it))
	}
	return out
}

func (s *sheet[T]) load(ds *models.Dataset, rows []row, strict bool) error {
	items := make([]T, 0, len(rows))
	for i, r := range rows {
		item := s.fromRow(r)
		if strict {
			if err := s.validate(&item); err != nil {
				// Row 1 is the header.
				return structureErr(s.sheetName, "row %d: %v", i+2, err)
			}
		}
		items = append(items, item)
	}
	s.set(ds, items)
	return nil
}

var sheets = []sheetCodec{
	&sheet[models.Client]{
		sheetName: SheetClients,
		header:    []string{"id", "name", "cpf", "email", "phone"},
		get:       func(ds *models.Dataset) []models.Client { return ds.Clients },
		set:       func(ds *models.Dataset, items []models.Client) { ds.Clients = items },
		toRow: func(c models.Client) []string {
			return []string{c.ID, c.Name, c.CPF, c.Email, c.Phone}
		},
		fromRow: func(r row) models.Client {
			return models.Client{ID: r["id"], Name: r["name"], CPF: r["cpf"], Email: r["email"], Phone: r["phone"]}
		},
		validate: models.ValidateClient,
	},
	&sheet[models.Vehicle]{
		sheetName: SheetVehicles,
		header:    []string{"id", "plate", "model", "year", "color", "clientId"},
		get:       func(ds *models.Dataset) []models.Vehicle { return ds.Vehicles },
		set:       func(ds *models.Dataset, items []models.Vehicle) { ds.Vehicles = items },
		toRow: func(v models.Vehicle) []string {
			return []string{v.ID, v.Plate, v.Model, v.Year, v.Color, v.ClientID}
		},
		fromRow: func(r row) models.Vehicle {
			return models.Vehicle{ID: r["id"], Plate: r["plate"], Model: r["model"], Year: r["year"], Color: r["color"], ClientID: r["clientId"]}
		},
		validate: models.ValidateVehicle,
	},
	&sheet[models.Policy]{
		sheetName: SheetPolicies,
		header:    []string{"id", "vehiclePlate", "clientId", "startDate", "endDate", "value"},
		get:       func(ds *models.Dataset) []models.Policy { return ds.Policies },
		set:       func(ds *models.Dataset, items []models.Policy) { ds.Policies = items },
		toRow: func(p models.Policy) []string {
			return []string{p.ID, p.VehiclePlate, p.ClientID, p.StartDate, p.EndDate, p.Value}
		},
		fromRow: func(r row) models.Policy {
			return models.Policy{ID: r["id"], VehiclePlate: r["vehiclePlate"], ClientID: r["clientId"], StartDate: r["startDate"], EndDate: r["endDate"], Value: r["value"]}
		},
		validate: models.ValidatePolicy,
	},
	&sheet[models.Claim]{
		sheetName: SheetClaims,
		header:    []string{"id", "vehiclePlate", "clientId", "date", "description", "status"},
		get:       func(ds *models.Dataset) []models.Claim { return ds.Claims },
		set:       func(ds *models.Dataset, items []models.Claim) { ds.Claims = items },
		toRow: func(c models.Claim) []string {
			return []string{c.ID, c.VehiclePlate, c.ClientID, c.Date, c.Description, string(c.Status)}
		},
		fromRow: func(r row) models.Claim {
			return models.Claim{ID: r["id"], VehiclePlate: r["vehiclePlate"], ClientID: r["clientId"], Date: r["date"], Description: r["description"], Status: models.ClaimStatus(r["status"])}
		},
		validate: models.ValidateClaim,
	},
}
