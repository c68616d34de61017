package domain

import "time"

// ARMStatusOperational is the status assigned to newly registered workstations.
const ARMStatusOperational = "operational"

// ARM represents an inventoried workstation tracked by the service desk.
// Status is a free-form string; "operational" is the only value the system
// assigns on its own.
type ARM struct {
	ID              string
	InventoryNumber string
	Name            string
	Location        string
	User            string
	Department      string
	Status          string
	Characteristics map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
