package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the occupancy state of a room.
type RoomStatus string

const (
	RoomStatusVacant   RoomStatus = "vacant"
	RoomStatusOccupied RoomStatus = "occupied"
)

// IsValid reports whether s is a known room status.
func (s RoomStatus) IsValid() bool {
	return s == RoomStatusVacant || s == RoomStatusOccupied
}

// Room is a rentable unit. Status follows tenant assignment and removal.
type Room struct {
	CreatedAt   time.Time       `json:"created_at"`
	RoomName    string          `json:"room_name"`
	Status      RoomStatus      `json:"status"`
	BaseRent    decimal.Decimal `json:"base_rent"`
	InternetFee decimal.Decimal `json:"internet_fee"`
	ID          int64           `json:"id"`
}

// RoomPatch carries a partial room update. Nil fields are left unchanged.
type RoomPatch struct {
	RoomName    *string
	BaseRent    *decimal.Decimal
	InternetFee *decimal.Decimal
	Status      *RoomStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p RoomPatch) IsEmpty() bool {
	return p.RoomName == nil && p.BaseRent == nil && p.InternetFee == nil && p.Status == nil
}

// Apply returns a copy of r with the patch merged in.
func (p RoomPatch) Apply(r Room) Room {
	if p.RoomName != nil {
		r.RoomName = *p.RoomName
	}
	if p.BaseRent != nil {
		r.BaseRent = *p.BaseRent
	}
	if p.InternetFee != nil {
		r.InternetFee = *p.InternetFee
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}
