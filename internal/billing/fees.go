// Package billing holds the pure billing rules: fee derivation from room
// configuration and meter readings, payment-driven bill status, and meter
// reading validation. Nothing in here touches storage.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/models"
)

// CurrencyPlaces is the scale at which fees are stored and summed.
const CurrencyPlaces = 2

// FeeBreakdown is the derived charge set for one bill.
type FeeBreakdown struct {
	RoomFee        decimal.Decimal
	InternetFee    decimal.Decimal
	WaterFee       decimal.Decimal
	ElectricityFee decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeFees derives a bill's fees from the room's base rent and the
// period's meter reading. A nil reading charges the room fee only.
//
// Each fee is rounded to CurrencyPlaces before summing, so TotalAmount is
// always the exact sum of the stored fees.
func ComputeFees(baseRent decimal.Decimal, reading *models.MeterReading) FeeBreakdown {
	fees := FeeBreakdown{
		RoomFee:        roundCurrency(baseRent),
		InternetFee:    decimal.Zero,
		WaterFee:       decimal.Zero,
		ElectricityFee: decimal.Zero,
	}

	if reading != nil {
		fees.ElectricityFee = roundCurrency(ElectricityFee(reading))
		fees.WaterFee = roundCurrency(perUnitFee(reading.WaterNumberOfPeople, reading.WaterFeePerHead))
		fees.InternetFee = roundCurrency(perUnitFee(reading.InternetNumberOfDevices, reading.InternetFeePerDevice))
	}

	fees.TotalAmount = fees.RoomFee.
		Add(fees.InternetFee).
		Add(fees.WaterFee).
		Add(fees.ElectricityFee)

	return fees
}

// ElectricityUsage returns current minus previous, or nil when either
// reading is missing. Negative usage is returned as-is.
func ElectricityUsage(r *models.MeterReading) *decimal.Decimal {
	if r == nil || r.PreviousReading == nil || r.CurrentReading == nil {
		return nil
	}
	usage := r.CurrentReading.Sub(*r.PreviousReading)
	return &usage
}

// ElectricityCost returns usage times rate, or nil when any of the three
// inputs is missing.
func ElectricityCost(r *models.MeterReading) *decimal.Decimal {
	usage := ElectricityUsage(r)
	if usage == nil || r.RatePerKwh == nil {
		return nil
	}
	cost := usage.Mul(*r.RatePerKwh)
	return &cost
}

// ElectricityFee is ElectricityCost with missing inputs charged as zero.
func ElectricityFee(r *models.MeterReading) decimal.Decimal {
	if cost := ElectricityCost(r); cost != nil {
		return *cost
	}
	return decimal.Zero
}

func perUnitFee(count *int, rate *decimal.Decimal) decimal.Decimal {
	if count == nil || rate == nil {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(*count)))
}

func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}
