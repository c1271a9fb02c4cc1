package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValueTooLarge is returned for amounts that do not fit the storage
// columns once rounded.
var ErrValueTooLarge = errors.New("value exceeds the supported range")

// Exclusive upper bounds of the NUMERIC(10,2) money and reading columns and
// the NUMERIC(10,4) rate column.
var (
	MaxAmount = decimal.New(1, 8)
	MaxRate   = decimal.New(1, 6)
)

// RatePlaces is the scale at which per-kWh rates are stored.
const RatePlaces = 4

// CheckAmount rejects a money or reading value whose rounded form would
// overflow storage.
func CheckAmount(field string, v decimal.Decimal) error {
	return checkRange(field, v, CurrencyPlaces, MaxAmount)
}

// CheckRate is CheckAmount for per-kWh rates.
func CheckRate(field string, v decimal.Decimal) error {
	return checkRange(field, v, RatePlaces, MaxRate)
}

// CheckFees verifies every derived fee and the total fit storage.
func CheckFees(f FeeBreakdown) error {
	for _, c := range []struct {
		field string
		value decimal.Decimal
	}{
		{"room_fee", f.RoomFee},
		{"internet_fee", f.InternetFee},
		{"water_fee", f.WaterFee},
		{"electricity_fee", f.ElectricityFee},
		{"total_amount", f.TotalAmount},
	} {
		if err := CheckAmount(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(field string, v decimal.Decimal, places int32, limit decimal.Decimal) error {
	if v.Round(places).Abs().GreaterThanOrEqual(limit) {
		return fmt.Errorf("%w: %s must be less than %s", ErrValueTooLarge, field, limit.String())
	}
	return nil
}
