package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// completedReceipt mirrors the layout of a real two-section receipt: income
// ("Recibí") first, deductions ("Pagué") after, net at the bottom.
const completedReceipt = `Mié., 10 dic 2025
07:52 a.m.

E) Daniela
★★★★★

Duración Distancia
20 min. 6,4 km

Cra 49 #93-40, Medellín

Recibí
Tarifa 18.000,00 COP
Pago en efectivo 18.000,00 COP
Total recibido 18.000,00 COP

Pagué
9,5% de pagos por el servicio 1.710,00 COP
IVA del pago del servicio 324,90 COP
Total pagado 2.034,90 COP

Mis ingresos 15.965,10 COP`

func TestParseFinancial_TwoSectionReceipt(t *testing.T) {
	fin := parseFinancial(Clean(completedReceipt))

	assert.InDelta(t, 18000, fin.amounts[labelFare], 1e-9)
	assert.InDelta(t, 18000, fin.amounts[labelTotalReceived], 1e-9)
	assert.InDelta(t, 1710, fin.amounts[labelCommission], 1e-9)
	assert.InDelta(t, 324.90, fin.amounts[labelTax], 1e-9)
	assert.InDelta(t, 2034.90, fin.amounts[labelTotalPaid], 1e-9)
	assert.InDelta(t, 15965.10, fin.amounts[labelNetIncome], 1e-9)
	assert.InDelta(t, 9.5, fin.commissionPct, 1e-9)
}

func TestParseFinancial_TokenBeforeAnyLabelIsUnassigned(t *testing.T) {
	fin := parseFinancial("18.000,00 COP\nTarifa")

	assert.Empty(t, fin.amounts)
}

func TestParseFinancial_EachLabelClaimedOnce(t *testing.T) {
	// Two tokens after the same single label: the second stays unassigned
	// instead of overwriting the first.
	fin := parseFinancial("Mis ingresos 15.000,00 COP y 20.000,00 COP")

	assert.Len(t, fin.amounts, 1)
	assert.InDelta(t, 15000, fin.amounts[labelNetIncome], 1e-9)
}

func TestParseFinancial_NoPercentToken(t *testing.T) {
	fin := parseFinancial("Tarifa 10.000,00 COP")

	assert.Zero(t, fin.commissionPct)
	assert.InDelta(t, 10000, fin.amounts[labelFare], 1e-9)
}

func TestParseFinancial_PrefixCurrencyNotation(t *testing.T) {
	fin := parseFinancial("Tarifa COP 12.500,00")

	assert.InDelta(t, 12500, fin.amounts[labelFare], 1e-9)
}
