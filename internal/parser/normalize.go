package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxAmount is the largest whole-peso amount the engine accepts. Anything
// above it is treated as an unrelated identifier, not a price.
const MaxAmount = 100_000_000

var (
	reMilSuffix = regexp.MustCompile(`(\d+)\s*mil\b`)
	reNonDigit  = regexp.MustCompile(`[^0-9]`)

	// Chilean phone shapes: 9-digit mobile, or 11/12 digits carrying the 56
	// country code.
	rePhoneDigits = regexp.MustCompile(`^(?:9\d{8}|56\d{9,10})$`)
)

// NormalizeAmount converts a raw numeric-ish fragment into a validated
// whole-peso amount. Every amount strategy funnels through here so that
// rounding and rejection semantics stay consistent.
//
// Steps, in order: expand a "mil" word suffix ("30 mil" -> 30000), strip
// non-digits, reject phone-shaped or longer-than-8-digit strings (RUTs,
// booking ids), parse, reject non-positive values, scale sub-1000 values by
// 1000 (clinic shorthand: "50" means 50.000), and range-check the result.
func NormalizeAmount(raw string) (int, bool) {
	s := strings.ToLower(raw)
	if reMilSuffix.MatchString(s) {
		s = reMilSuffix.ReplaceAllString(s, "${1}000")
	}

	digits := reNonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	if rePhoneDigits.MatchString(digits) {
		return 0, false
	}
	if len(digits) > 8 {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n < 1000 {
		n *= 1000
	}
	if n > MaxAmount || n > math.MaxInt32 {
		return 0, false
	}
	return n, true
}

// coerceText turns an optional raw field into NFC-normalized text. Absent
// fields become the empty string; the engine never errors on missing input.
func coerceText(s *string) string {
	if s == nil {
		return ""
	}
	return norm.NFC.String(*s)
}

// parseDecimal parses a decimal that may use a comma separator. Returns false
// for non-positive values.
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
