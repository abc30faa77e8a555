package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ridetally/rides-tracker/internal/entity"
)

func consistentRide() *entity.ExtractedRide {
	r := entity.NewRide("")
	r.Fare = 15000
	r.CommissionPct = 9.5
	r.Commission = 1425
	r.Tax = 270.75
	r.TotalPaid = 1695.75
	r.TotalReceived = 15000
	r.NetIncome = 13304.25
	return r
}

func TestFinancial_ConsistentRide(t *testing.T) {
	valid, errs := Financial(consistentRide())

	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestFinancial_NetIncomeMismatch(t *testing.T) {
	r := consistentRide()
	r.NetIncome = 5000

	valid, errs := Financial(r)

	assert.False(t, valid)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "net income mismatch")
	assert.Contains(t, errs[0], "13304.25")
}

func TestFinancial_CommissionMismatch(t *testing.T) {
	r := consistentRide()
	r.Commission = 3000
	// Keep dependent fields consistent with the wrong commission so only
	// the commission check fires against the fare.
	r.Tax = 570
	r.TotalPaid = 3570
	r.NetIncome = 11430

	valid, errs := Financial(r)

	assert.False(t, valid)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "commission mismatch")
}

func TestFinancial_TaxAndTotalMismatch(t *testing.T) {
	r := consistentRide()
	r.Tax = 500
	r.TotalPaid = 2000

	valid, errs := Financial(r)

	assert.False(t, valid)
	// Net, IVA, and total paid all drift; each check reports independently.
	assert.Len(t, errs, 3)
}

func TestFinancial_WithinTolerance(t *testing.T) {
	r := consistentRide()
	r.NetIncome += 0.9
	r.Tax += 0.5

	valid, errs := Financial(r)

	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestFinancial_SparseRideHasNothingToCheck(t *testing.T) {
	r := entity.NewRide("")
	r.NetIncome = 12000

	valid, errs := Financial(r)

	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestFinancial_CancelledRideAllZero(t *testing.T) {
	r := entity.NewRide("")

	valid, errs := Financial(r)

	assert.True(t, valid)
	assert.Empty(t, errs)
}
