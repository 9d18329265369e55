package models

import (
	"fmt"
	"strings"
)

// Department identifies one municipal utility vertical. Every record in the
// system is owned by exactly one department.
type Department string

const (
	DepartmentElectricity Department = "electricity"
	DepartmentGas         Department = "gas"
	DepartmentWater       Department = "water"
)

// Departments returns all supported departments.
func Departments() []Department {
	return []Department{DepartmentElectricity, DepartmentGas, DepartmentWater}
}

// ParseDepartment normalises a path segment into a Department.
func ParseDepartment(raw string) (Department, error) {
	switch Department(strings.ToLower(strings.TrimSpace(raw))) {
	case DepartmentElectricity:
		return DepartmentElectricity, nil
	case DepartmentGas:
		return DepartmentGas, nil
	case DepartmentWater:
		return DepartmentWater, nil
	default:
		return "", fmt.Errorf("unknown department %q", raw)
	}
}

// Valid reports whether the department is one of the supported verticals.
func (d Department) Valid() bool {
	_, err := ParseDepartment(string(d))
	return err == nil
}

// ApplicationPrefix returns the human-readable number prefix for
// applications, e.g. EL-2026-00042.
func (d Department) ApplicationPrefix() string {
	switch d {
	case DepartmentElectricity:
		return "EL"
	case DepartmentGas:
		return "GA"
	case DepartmentWater:
		return "WA"
	default:
		return "XX"
	}
}

// ComplaintPrefix returns the number prefix for complaints.
func (d Department) ComplaintPrefix() string {
	switch d {
	case DepartmentElectricity:
		return "EC"
	case DepartmentGas:
		return "GC"
	case DepartmentWater:
		return "WC"
	default:
		return "XC"
	}
}

// ReceiptPrefix returns the number prefix for payment receipts.
func (d Department) ReceiptPrefix() string {
	switch d {
	case DepartmentElectricity:
		return "ER"
	case DepartmentGas:
		return "GR"
	case DepartmentWater:
		return "WR"
	default:
		return "XR"
	}
}

// DisplayName returns the department label used on receipts and
// notifications.
func (d Department) DisplayName() string {
	switch d {
	case DepartmentElectricity:
		return "Electricity Department"
	case DepartmentGas:
		return "Gas Department"
	case DepartmentWater:
		return "Water Department"
	default:
		return string(d)
	}
}
