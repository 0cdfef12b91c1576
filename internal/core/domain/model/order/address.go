package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Address is the structured delivery destination of an order.
// It is a value object captured at checkout.
type Address struct {
	label      string
	line       string
	city       string
	postalCode string
	phone      string
}

// NewAddress creates a validated delivery address.
// The street line and city are required; label, postal code, and phone are
// optional.
func NewAddress(label, line, city, postalCode, phone string) (Address, error) {
	addr := Address{
		label:      label,
		postalCode: postalCode,
		phone:      phone,
	}

	if err := errors.Join(
		addr.setLine(line),
		addr.setCity(city),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Label returns the buyer's name for this address ("Home", "Office").
func (a Address) Label() string {
	return a.label
}

// Line returns the street address.
func (a Address) Line() string {
	return a.line
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Phone returns the contact phone number.
func (a Address) Phone() string {
	return a.phone
}

// Text renders the address as a single line for geocoding and display.
func (a Address) Text() string {
	if a.postalCode == "" {
		return fmt.Sprintf("%s, %s", a.line, a.city)
	}
	return fmt.Sprintf("%s, %s, %s", a.line, a.city, a.postalCode)
}

func (a *Address) setLine(line string) error {
	if line == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	a.line = line
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
