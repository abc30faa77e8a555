// Package parser turns raw receipt OCR text into a structured ride record.
// It is a pure function of the text: no I/O, no state, and no failure path —
// at worst it returns a record with default fields and near-zero confidence.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/entity"
)

// Per-field confidence constants, written only when the extractor matched.
const (
	confDate        = 0.95
	confTime        = 0.95
	confDuration    = 0.9
	confDistance    = 0.9
	confPassenger   = 0.8
	confDestination = 0.7
	confFinancial   = 0.9
	confPayKnown    = 0.95
	// "other" is itself informative, so its default carries weight.
	confPayOther = 0.5
)

const cancelledByPassengerReason = "El pasajero canceló"

// Parse extracts a structured ride from raw OCR text.
func Parse(rawText string) *entity.ExtractedRide {
	ride := entity.NewRide(rawText)
	conf := &ride.FieldConfidences

	text := Clean(rawText)
	lines := strings.Split(text, "\n")

	if d, ok := parseDate(text); ok {
		ride.Date = &d
		conf.Date = confDate
	}
	if tm, ok := parseClock(text); ok {
		ride.Time = tm
		conf.Time = confTime
	}
	if du, ok := parseDuration(text); ok {
		ride.Duration = &du
		conf.Duration = confDuration
	}
	if di, ok := parseDistance(text); ok {
		ride.Distance = &di
		conf.Distance = confDistance
	}

	if reCancelledByPassenger.MatchString(text) {
		ride.Status = constants.StatusCancelledByPassenger
		ride.CancellationReason = cancelledByPassengerReason
	}

	ride.PaymentMethod, ride.PaymentMethodLabel, conf.PaymentMethod = parsePaymentMethod(text)

	fin := parseFinancial(text)
	ride.NetIncome = fin.amounts[labelNetIncome]
	ride.Fare = fin.amounts[labelFare]
	ride.TotalReceived = fin.amounts[labelTotalReceived]
	ride.Commission = fin.amounts[labelCommission]
	ride.Tax = fin.amounts[labelTax]
	ride.TotalPaid = fin.amounts[labelTotalPaid]
	if fin.commissionPct > 0 {
		ride.CommissionPct = fin.commissionPct
	}
	conf.NetIncome = financialConf(ride.NetIncome)
	conf.Fare = financialConf(ride.Fare)
	conf.TotalReceived = financialConf(ride.TotalReceived)
	conf.Commission = financialConf(ride.Commission)
	conf.Tax = financialConf(ride.Tax)
	conf.TotalPaid = financialConf(ride.TotalPaid)

	ride.DestinationAddress, ride.PassengerName = parsePassengerAndDestination(lines)
	if ride.PassengerName != "" {
		conf.PassengerName = confPassenger
	}
	if ride.DestinationAddress != "" {
		conf.DestinationAddress = confDestination
	}

	if rating, ok := parseRating(text); ok {
		ride.RatingGiven = &rating
	}

	ride.ExtractionConfidence = conf.OverallConfidence()
	return ride
}

// Clean collapses blank-line runs to one newline, collapses non-newline
// whitespace runs to one space, and fixes the lone "0,00" OCR artifact
// before any pattern runs.
func Clean(text string) string {
	text = reBlankLines.ReplaceAllString(text, "\n")
	text = reInlineSpace.ReplaceAllString(text, " ")
	text = reLoneZero.ReplaceAllString(text, "${1}0.00${2}")
	return strings.TrimSpace(text)
}

func financialConf(v float64) float64 {
	if v > 0 {
		return confFinancial
	}
	return 0
}

func parseDate(text string) (time.Time, bool) {
	m := reDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := spanishMonths[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31 feb); reject such dates.
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// parseClock converts a 12-hour receipt time to 24-hour "HH:MM".
func parseClock(text string) (string, bool) {
	m := reTime.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 12 {
		return "", false
	}
	period := strings.ReplaceAll(strings.ToLower(m[3]), ".", "")
	if period == "pm" && hour != 12 {
		hour += 12
	} else if period == "am" && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%s", hour, m[2]), true
}

func parseDuration(text string) (entity.Duration, bool) {
	m := reDuration.FindStringSubmatch(text)
	if m == nil {
		return entity.Duration{}, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return entity.Duration{}, false
	}
	unit := constants.DurationMinutes
	if strings.EqualFold(m[2], "hr") {
		unit = constants.DurationHours
	}
	return entity.Duration{Value: value, Unit: unit}, true
}

func parseDistance(text string) (entity.Distance, bool) {
	m := reDistance.FindStringSubmatch(text)
	if m == nil {
		return entity.Distance{}, false
	}
	raw := m[1]
	value, err := strconv.ParseFloat(strings.NewReplacer(",", ".", " ", ".").Replace(raw), 64)
	if err != nil {
		return entity.Distance{}, false
	}
	unit := constants.DistanceKilometers
	if strings.EqualFold(m[2], "metro") {
		unit = constants.DistanceMeters
	}
	if unit == constants.DistanceKilometers {
		// Dropped-decimal recovery, tuned to short urban rides. The
		// separator check runs on the raw capture, which keeps a trailing
		// space for "15 km" but not for a bare "15km" token.
		hasSep := strings.ContainsAny(raw, ",. ")
		switch {
		case value >= 20:
			value /= 10
		case value >= 10 && !hasSep:
			value /= 10
		}
	}
	return entity.Distance{Value: value, Unit: unit}, true
}

// parsePaymentMethod prefers the wallet keyword over the cash phrase when
// both appear in the text.
func parsePaymentMethod(text string) (constants.PaymentMethod, string, float64) {
	if rePaymentNequi.MatchString(text) {
		return constants.PaymentNequi, "Nequi", confPayKnown
	}
	if rePaymentCash.MatchString(text) {
		return constants.PaymentCash, "Pago en efectivo", confPayKnown
	}
	return constants.PaymentOther, "Otro", confPayOther
}

func parseRating(text string) (int, bool) {
	stars := strings.Count(text, "★") + strings.Count(text, "⭐")
	if stars > 0 {
		if stars > 5 {
			stars = 5
		}
		return stars, true
	}
	// "Calificaste" implies a rating even when the glyphs were lost.
	if strings.Contains(strings.ToLower(text), "calificaste") {
		return 5, true
	}
	return 0, false
}

// skipKeywords marks lines that are labels, currency, or section text and
// therefore can never be a passenger name.
var skipKeywords = []string{
	"duración", "distancia", "recib", "pagu", "tarifa",
	"total", "calific", "soporte", "ingresos", "cop",
	"pago", "nequi", "efectivo", "iva", "servicio",
}

// parsePassengerAndDestination scans the cleaned lines once: the first
// address-looking line becomes the destination, the first short capitalized
// name line becomes the passenger.
func parsePassengerAndDestination(lines []string) (destination, passenger string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < 2 {
			continue
		}

		if destination == "" {
			if reAddressPrefix.MatchString(line) || reAddressNumber.MatchString(line) {
				destination = line
			}
		}

		if passenger == "" {
			lower := strings.ToLower(line)
			skip := false
			for _, kw := range skipKeywords {
				if strings.Contains(lower, kw) {
					skip = true
					break
				}
			}
			if skip {
				continue
			}
			// Strip OCR prefix artifacts like "E) " before matching.
			cleaned := strings.TrimSpace(reNameArtifact.ReplaceAllString(line, ""))
			if reNameLine.MatchString(cleaned) && utf8.RuneCountInString(cleaned) > 3 {
				passenger = cleaned
			}
		}
	}
	return destination, passenger
}
