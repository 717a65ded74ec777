package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Currency = "MWK"
	scale    = 100
)

var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.English)

// ToMinorUnits converts decimal input such as "25.5" into integer minor units (2550).
func ToMinorUnits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	minor := math.Round(f * scale)
	if minor > math.MaxInt64/2 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	return int64(minor), nil
}

// Format renders minor units as "MWK 1,250.75", dropping the fraction for whole amounts.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	major, cents := minor/scale, minor%scale
	grouped := printer.Sprintf("%v", number.Decimal(major))
	if cents == 0 {
		return fmt.Sprintf("%s%s %s", sign, Currency, grouped)
	}
	return fmt.Sprintf("%s%s %s.%02d", sign, Currency, grouped, cents)
}

// Decimal is the inverse of ToMinorUnits for form prefill: 2550 -> "25.50".
func Decimal(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/scale, minor%scale)
}
