// Package validate cross-checks the arithmetic of an extracted ride's
// financial fields. It never modifies the ride and treats absent (zero)
// inputs as "nothing to check" rather than as errors.
package validate

import (
	"fmt"
	"math"

	"github.com/ridetally/rides-tracker/internal/entity"
)

// Tolerance allows one currency unit of rounding drift per check.
const Tolerance = 1.0

// TaxRate is the fixed 19% IVA applied to the commission, not the fare.
const TaxRate = 0.19

// Financial recomputes the derived monetary fields and reports every
// inconsistency beyond Tolerance. Checks accumulate independently; the
// record is valid iff no check failed.
func Financial(ride *entity.ExtractedRide) (bool, []string) {
	var errs []string

	if ride.TotalReceived > 0 && ride.TotalPaid > 0 {
		expected := ride.TotalReceived - ride.TotalPaid
		if math.Abs(ride.NetIncome-expected) > Tolerance {
			errs = append(errs, fmt.Sprintf("net income mismatch: expected %v, got %v", expected, ride.NetIncome))
		}
	}

	if ride.Fare > 0 && ride.CommissionPct > 0 {
		expected := ride.Fare * (ride.CommissionPct / 100)
		if math.Abs(ride.Commission-expected) > Tolerance {
			errs = append(errs, fmt.Sprintf("commission mismatch: expected %.2f, got %v", expected, ride.Commission))
		}
	}

	if ride.Commission > 0 {
		expected := ride.Commission * TaxRate
		if math.Abs(ride.Tax-expected) > Tolerance {
			errs = append(errs, fmt.Sprintf("IVA mismatch: expected %.2f, got %v", expected, ride.Tax))
		}
	}

	if ride.Commission > 0 || ride.Tax > 0 {
		expected := ride.Commission + ride.Tax
		if math.Abs(ride.TotalPaid-expected) > Tolerance {
			errs = append(errs, fmt.Sprintf("total paid mismatch: expected %.2f, got %v", expected, ride.TotalPaid))
		}
	}

	return len(errs) == 0, errs
}
