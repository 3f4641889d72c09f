// ABOUTME: Field validation for records entered by hand or imported in strict mode
// ABOUTME: Checks presence and format of dates, money values, tax ids, and statuses

package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the stored format of every date field.
const DateLayout = "2006-01-02"

var (
	cpfRegex   = regexp.MustCompile(`^(\d{3}\.\d{3}\.\d{3}-\d{2}|\d{11})$`)
	yearRegex  = regexp.MustCompile(`^\d{4}$`)
	moneyRegex = regexp.MustCompile(`^R\$\s?\d{1,3}(\.\d{3})*,\d{2}$`)
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: "cannot be empty"}
	}
	return nil
}

func validDate(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return &FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return nil
}

// ValidateClient checks a client record.
func ValidateClient(c *Client) error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if !cpfRegex.MatchString(c.CPF) {
		return &FieldError{Field: "cpf", Message: "must look like 123.456.789-00"}
	}
	return nil
}

// ValidateVehicle checks a vehicle record.
func ValidateVehicle(v *Vehicle) error {
	if err := required("plate", v.Plate); err != nil {
		return err
	}
	if !yearRegex.MatchString(v.Year) {
		return &FieldError{Field: "year", Message: "must be a four digit year"}
	}
	return nil
}

// ValidatePolicy checks a policy record.
func ValidatePolicy(p *Policy) error {
	if err := required("vehiclePlate", p.VehiclePlate); err != nil {
		return err
	}
	if err := validDate("startDate", p.StartDate); err != nil {
		return err
	}
	if err := validDate("endDate", p.EndDate); err != nil {
		return err
	}
	// Same layout, so lexical order is chronological.
	if p.EndDate < p.StartDate {
		return &FieldError{Field: "endDate", Message: "cannot be before startDate"}
	}
	if !moneyRegex.MatchString(p.Value) {
		return &FieldError{Field: "value", Message: "must look like R$ 2.500,00"}
	}
	return nil
}

// ValidateClaim checks a claim record.
func ValidateClaim(c *Claim) error {
	if err := required("vehiclePlate", c.VehiclePlate); err != nil {
		return err
	}
	if err := validDate("date", c.Date); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return &FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	return nil
}

// ParseClaimStatus accepts a stored status value or one of the English
// aliases pending, review, completed (case-insensitive).
func ParseClaimStatus(s string) (ClaimStatus, error) {
	if st := ClaimStatus(s); st.Valid() {
		return st, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendente":
		return StatusPending, nil
	case "review", "underreview", "under-review", "em análise", "em analise":
		return StatusUnderReview, nil
	case "completed", "done", "concluído", "concluido":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown claim status %q (use pending, review, or completed)", s)
}
