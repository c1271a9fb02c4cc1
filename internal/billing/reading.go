package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/models"
)

// Validation errors for meter readings. Callers map them to
// invalid-argument failures.
var (
	ErrInvalidPeriod      = errors.New("invalid billing period")
	ErrReadingDecreased   = errors.New("current reading cannot be less than previous reading")
	ErrRateRequired       = errors.New("rate required when providing readings")
	ErrNegativeMeterValue = errors.New("meter values cannot be negative")
)

// MinYear and MaxYear bound the accepted billing year.
const (
	MinYear = 2000
	MaxYear = 9999
)

// ValidatePeriod checks month is 1-12 and year is in range.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidPeriod, month)
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year must be between %d and %d, got %d", ErrInvalidPeriod, MinYear, MaxYear, year)
	}
	return nil
}

// ValidatePatch checks a submission on its own, before it is merged with
// any stored reading.
func ValidatePatch(p models.MeterReadingPatch) error {
	checks := []struct {
		field    string
		negative bool
	}{
		{"previous_reading", p.PreviousReading != nil && p.PreviousReading.IsNegative()},
		{"current_reading", p.CurrentReading != nil && p.CurrentReading.IsNegative()},
		{"rate_per_kwh", p.RatePerKwh != nil && p.RatePerKwh.IsNegative()},
		{"water_number_of_people", p.WaterNumberOfPeople != nil && *p.WaterNumberOfPeople < 0},
		{"water_fee_per_head", p.WaterFeePerHead != nil && p.WaterFeePerHead.IsNegative()},
		{"internet_number_of_devices", p.InternetNumberOfDevices != nil && *p.InternetNumberOfDevices < 0},
		{"internet_fee_per_device", p.InternetFeePerDevice != nil && p.InternetFeePerDevice.IsNegative()},
	}
	for _, c := range checks {
		if c.negative {
			return fmt.Errorf("%w: %s", ErrNegativeMeterValue, c.field)
		}
	}

	for _, c := range []struct {
		field string
		value *decimal.Decimal
		check func(string, decimal.Decimal) error
	}{
		{"previous_reading", p.PreviousReading, CheckAmount},
		{"current_reading", p.CurrentReading, CheckAmount},
		{"rate_per_kwh", p.RatePerKwh, CheckRate},
		{"water_fee_per_head", p.WaterFeePerHead, CheckAmount},
		{"internet_fee_per_device", p.InternetFeePerDevice, CheckAmount},
	} {
		if c.value == nil {
			continue
		}
		if err := c.check(c.field, *c.value); err != nil {
			return err
		}
	}

	if p.PreviousReading != nil && p.CurrentReading != nil &&
		p.CurrentReading.LessThan(*p.PreviousReading) {
		return fmt.Errorf("%w: previous %s, current %s",
			ErrReadingDecreased, p.PreviousReading.String(), p.CurrentReading.String())
	}

	return nil
}

// ValidateMerged checks the record that would be stored after a patch is
// applied. A submitted electricity reading needs a rate, either submitted
// alongside it or already stored.
func ValidateMerged(p models.MeterReadingPatch, merged models.MeterReading) error {
	if p.HasElectricityReading() && merged.RatePerKwh == nil {
		return ErrRateRequired
	}

	if merged.PreviousReading != nil && merged.CurrentReading != nil &&
		merged.CurrentReading.LessThan(*merged.PreviousReading) {
		return fmt.Errorf("%w: previous %s, current %s",
			ErrReadingDecreased, merged.PreviousReading.String(), merged.CurrentReading.String())
	}

	return nil
}
