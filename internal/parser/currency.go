package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// A single dot with one or two trailing digits reads as a decimal point
// (post-clean "0.00" renders that way); any other dot groups thousands.
var reDotDecimal = regexp.MustCompile(`^\d+\.\d{1,2}$`)

// ParseAmount parses a currency token in Colombian notation: dots group
// thousands and the comma is the decimal separator ("1.234.567,89").
// Spaces inside the token are OCR artifacts and are removed. US-notation
// tokens like "15,000.00" misparse by design; this parser is
// Colombian-first and the receipts never mix conventions.
func ParseAmount(tok string) (float64, bool) {
	tok = strings.ReplaceAll(strings.TrimSpace(tok), " ", "")
	tok = strings.Trim(tok, ".,")
	if tok == "" {
		return 0, false
	}
	switch {
	case strings.Contains(tok, ","):
		parts := strings.Split(tok, ",")
		if len(parts) != 2 {
			return 0, false
		}
		tok = strings.ReplaceAll(parts[0], ".", "") + "." + parts[1]
	case strings.Contains(tok, "."):
		if !reDotDecimal.MatchString(tok) {
			tok = strings.ReplaceAll(tok, ".", "")
		}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parsePercent parses a percentage token such as "9,5" or "9.5".
func parsePercent(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(tok), ",", "."), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
