package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterReading holds one room's utility inputs for a billing period.
// Every input is independently optional.
type MeterReading struct {
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
	PreviousReading         *decimal.Decimal `json:"previous_reading"`
	CurrentReading          *decimal.Decimal `json:"current_reading"`
	RatePerKwh              *decimal.Decimal `json:"rate_per_kwh"`
	WaterNumberOfPeople     *int             `json:"water_number_of_people"`
	WaterFeePerHead         *decimal.Decimal `json:"water_fee_per_head"`
	InternetNumberOfDevices *int             `json:"internet_number_of_devices"`
	InternetFeePerDevice    *decimal.Decimal `json:"internet_fee_per_device"`
	ID                      int64            `json:"id"`
	RoomID                  int64            `json:"room_id"`
	Month                   int              `json:"month"`
	Year                    int              `json:"year"`
}

// MeterReadingPatch is a partial meter reading submission. A nil field
// keeps the stored value; a set field, zero included, replaces it.
type MeterReadingPatch struct {
	PreviousReading         *decimal.Decimal
	CurrentReading          *decimal.Decimal
	RatePerKwh              *decimal.Decimal
	WaterNumberOfPeople     *int
	WaterFeePerHead         *decimal.Decimal
	InternetNumberOfDevices *int
	InternetFeePerDevice    *decimal.Decimal
}

// HasElectricityReading reports whether either meter value is submitted.
func (p MeterReadingPatch) HasElectricityReading() bool {
	return p.PreviousReading != nil || p.CurrentReading != nil
}

// Apply merges the patch field by field into a copy of r.
func (p MeterReadingPatch) Apply(r MeterReading) MeterReading {
	r.PreviousReading = coalesceDecimal(p.PreviousReading, r.PreviousReading)
	r.CurrentReading = coalesceDecimal(p.CurrentReading, r.CurrentReading)
	r.RatePerKwh = coalesceDecimal(p.RatePerKwh, r.RatePerKwh)
	r.WaterNumberOfPeople = coalesceInt(p.WaterNumberOfPeople, r.WaterNumberOfPeople)
	r.WaterFeePerHead = coalesceDecimal(p.WaterFeePerHead, r.WaterFeePerHead)
	r.InternetNumberOfDevices = coalesceInt(p.InternetNumberOfDevices, r.InternetNumberOfDevices)
	r.InternetFeePerDevice = coalesceDecimal(p.InternetFeePerDevice, r.InternetFeePerDevice)
	return r
}

func coalesceDecimal(incoming, stored *decimal.Decimal) *decimal.Decimal {
	if incoming == nil {
		return stored
	}
	v := *incoming
	return &v
}

func coalesceInt(incoming, stored *int) *int {
	if incoming == nil {
		return stored
	}
	v := *incoming
	return &v
}
