package parser

import (
	"regexp"
	"time"
)

// The extractor battery. Every pattern runs against the whole cleaned text
// except the address/name heuristics, which are line-oriented.
var (
	// "mar, 2 dic 2025" or "2 dic 2025"; the weekday abbreviation is optional.
	reDate = regexp.MustCompile(`(?i)(?:(?:lun|mar|mi[eé]|jue|vie|s[aá]b|dom)[,.]?\s*)?(\d{1,2})\s+(ene|feb|mar|abr|may|jun|jul|ago|sep|oct|nov|dic)\s+(\d{4})`)

	// "07:52 a.m." or "04:01 p.m.", periods optional.
	reTime = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)`)

	// "20 min." or "1 hr.", optionally preceded by its label.
	reDuration = regexp.MustCompile(`(?i)(?:duraci[oó]n)?\s*(\d+)\s*(min|hr)\.?`)

	// "6,4 km" or "715 metro". OCR may render the decimal separator as a
	// comma, a period, or a bare space, so the separator is part of the
	// captured token.
	reDistance = regexp.MustCompile(`(?i)(?:distancia)?\s*(\d+[,.\s]?\d*)\s*(km|metro)`)

	// Amounts appear both as "18.000,00 COP" and "COP 18.000,00".
	reCurrency = regexp.MustCompile(`(?i)(?:([\d.,]+)\s*COP\b|COP\s*([\d.,]+))`)

	// "9.5%" or "9,5%".
	rePercent = regexp.MustCompile(`([\d.,]+)\s*%`)

	reCancelledByPassenger = regexp.MustCompile(`(?i)pasajero\s+cancel[oó]`)
	rePaymentCash          = regexp.MustCompile(`(?i)pago\s+en\s+efectivo`)
	rePaymentNequi         = regexp.MustCompile(`(?i)nequi`)
)

// Section labels anchoring the financial amounts.
var (
	reNetIncomeLabel     = regexp.MustCompile(`(?i)mis\s+ingresos`)
	reFareLabel          = regexp.MustCompile(`(?i)\btarifa\b`)
	reTotalReceivedLabel = regexp.MustCompile(`(?i)total\s+recibido`)
	reCommissionLabel    = regexp.MustCompile(`(?i)(?:pagos?\s+por\s+el\s+servicio|9[,.]5\s*%)`)
	reTaxLabel           = regexp.MustCompile(`(?i)iva\s+(?:del\s+)?pago`)
	reTotalPaidLabel     = regexp.MustCompile(`(?i)total\s+pagado`)
)

// Line heuristics for destination and passenger name.
var (
	reAddressPrefix = regexp.MustCompile(`(?i)^(?:cl|cra|carrera|calle|av|universidad|edificio|centro)`)
	reAddressNumber = regexp.MustCompile(`#\s*\d+`)
	reNameArtifact  = regexp.MustCompile(`^[A-Z0-9]\)\s*`)
	reNameLine      = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+)?$`)
)

// Clean-step patterns.
var (
	reBlankLines  = regexp.MustCompile(`\n\s*\n+`)
	reInlineSpace = regexp.MustCompile(`[^\S\n]+`)
	// A standalone "0,00" token; bounded so amounts like "18.000,00" are
	// left alone.
	reLoneZero = regexp.MustCompile(`(^|[^0-9])0,00([^0-9]|$)`)
)

// spanishMonths maps receipt month abbreviations to calendar months.
var spanishMonths = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,
}
