package parser

import "regexp"

// finLabel identifies one of the six monetary section labels.
type finLabel int

const (
	labelNetIncome finLabel = iota // "Mis ingresos"
	labelFare                      // "Tarifa"
	labelTotalReceived             // "Total recibido"
	labelCommission                // "pagos por el servicio"
	labelTax                       // "IVA del pago"
	labelTotalPaid                 // "Total pagado"
)

var labelPatterns = map[finLabel]*regexp.Regexp{
	labelNetIncome:     reNetIncomeLabel,
	labelFare:          reFareLabel,
	labelTotalReceived: reTotalReceivedLabel,
	labelCommission:    reCommissionLabel,
	labelTax:           reTaxLabel,
	labelTotalPaid:     reTotalPaidLabel,
}

// assignmentPriority is a design contract, not an optimization: receipts
// interleave the "Recibí" and "Pagué" sections, so each amount binds to the
// first label in this exact order that precedes it in the text and is still
// unclaimed. Reordering the list changes which value a token binds to.
var assignmentPriority = []finLabel{
	labelTotalPaid,
	labelTax,
	labelCommission,
	labelTotalReceived,
	labelFare,
	labelNetIncome,
}

type financials struct {
	amounts       map[finLabel]float64
	commissionPct float64 // 0 when no percentage token was found
}

// parseFinancial locates the six section labels, then walks every
// currency token in text order and assigns it by position.
func parseFinancial(text string) financials {
	out := financials{amounts: make(map[finLabel]float64, len(labelPatterns))}

	offsets := make(map[finLabel]int, len(labelPatterns))
	for label, re := range labelPatterns {
		offsets[label] = -1
		if loc := re.FindStringIndex(text); loc != nil {
			offsets[label] = loc[0]
		}
	}

	if m := rePercent.FindStringSubmatch(text); m != nil {
		if pct, ok := parsePercent(m[1]); ok {
			out.commissionPct = pct
		}
	}

	for _, m := range reCurrency.FindAllStringSubmatchIndex(text, -1) {
		tok := currencyToken(text, m)
		value, ok := ParseAmount(tok)
		if !ok {
			continue
		}
		pos := m[0]
		for _, label := range assignmentPriority {
			off := offsets[label]
			if off < 0 || pos <= off {
				continue
			}
			if _, claimed := out.amounts[label]; claimed {
				continue
			}
			out.amounts[label] = value
			break
		}
	}
	return out
}

// currencyToken returns whichever capture group matched: group 1 for
// "18.000,00 COP", group 2 for "COP 18.000,00".
func currencyToken(text string, m []int) string {
	if m[2] >= 0 {
		return text[m[2]:m[3]]
	}
	if m[4] >= 0 {
		return text[m[4]:m[5]]
	}
	return ""
}
