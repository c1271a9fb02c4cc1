package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant assigns a user to a room for a stay. A tenant is active while
// MoveOutDate is nil.
type Tenant struct {
	CreatedAt         time.Time `json:"created_at"`
	MoveInDate        Date      `json:"move_in_date"`
	MoveOutDate       *Date     `json:"move_out_date"`
	ContactNumber     *string   `json:"contact_number"`
	UserID            int64     `json:"user_id"`
	RoomID            int64     `json:"room_id"`
	ID                int64     `json:"id"`
	NumberOfOccupants int       `json:"number_of_occupants"`
}

// IsActive reports whether the tenant has not moved out.
func (t Tenant) IsActive() bool {
	return t.MoveOutDate == nil
}

// TenantDetails is a tenant joined with its user and room.
type TenantDetails struct {
	Tenant
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	RoomName    string           `json:"room_name"`
	BaseRent    *decimal.Decimal `json:"base_rent,omitempty"`
	InternetFee *decimal.Decimal `json:"internet_fee,omitempty"`
}

// TenantPatch carries a partial tenant update. Nil fields are left unchanged.
type TenantPatch struct {
	ContactNumber     *string
	NumberOfOccupants *int
	MoveOutDate       *Date
}

// Apply returns a copy of t with the patch merged in.
func (p TenantPatch) Apply(t Tenant) Tenant {
	if p.ContactNumber != nil {
		t.ContactNumber = p.ContactNumber
	}
	if p.NumberOfOccupants != nil {
		t.NumberOfOccupants = *p.NumberOfOccupants
	}
	if p.MoveOutDate != nil {
		d := *p.MoveOutDate
		t.MoveOutDate = &d
	}
	return t
}

// NewTenant describes a tenant account to create together with its user.
type NewTenant struct {
	MoveInDate        Date
	ContactNumber     *string
	Name              string
	Email             string
	PasswordHash      string
	RoomID            int64
	NumberOfOccupants int
}
