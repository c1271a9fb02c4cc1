package models

import (
	"github.com/shopspring/decimal"
)

// MonthlyIncome is one month of the income report.
type MonthlyIncome struct {
	Total      decimal.Decimal `json:"total"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Month      int             `json:"month"`
	PaidCount  int             `json:"paid_count"`
}

// UnpaidBill is an outstanding bill with its remaining balance.
type UnpaidBill struct {
	Bill
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	RoomName         string          `json:"room_name"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// UtilityUsage is one meter reading with its derived electricity usage and
// the water fee billed for that room and period, if any.
type UtilityUsage struct {
	PreviousReading *decimal.Decimal `json:"previous_reading"`
	CurrentReading  *decimal.Decimal `json:"current_reading"`
	Usage           *decimal.Decimal `json:"usage"`
	RatePerKwh      *decimal.Decimal `json:"rate_per_kwh"`
	ElectricityCost *decimal.Decimal `json:"electricity_cost"`
	WaterFee        *decimal.Decimal `json:"water_fee"`
	RoomName        string           `json:"room_name"`
	RoomID          int64            `json:"room_id"`
	Month           int              `json:"month"`
	Year            int              `json:"year"`
}

// DashboardStats is the admin landing-page snapshot.
type DashboardStats struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalUnpaid   decimal.Decimal `json:"total_unpaid"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	OccupiedRooms int             `json:"occupied_rooms"`
	VacantRooms   int             `json:"vacant_rooms"`
}
