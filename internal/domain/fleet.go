package domain

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a truck or tractor that trips are assigned to.
type Unit struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Make      string    `json:"make,omitempty"`
	Model     string    `json:"model,omitempty"`
	Plate     string    `json:"plate,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Driver is a person who runs trips and books expenses against them.
type Driver struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
