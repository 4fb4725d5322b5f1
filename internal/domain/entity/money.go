package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// Monetary values are carried as int64 cents internally and exchanged
// with callers as strings with exactly two decimal places.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a non-negative decimal string and converts it to cents.
// The conversion is purely string based to avoid floating point drift:
// "10" -> 1000, "10.5" -> 1050, "10.50" -> 1050.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// FormatCents converts cents to a decimal string.
// 1015 becomes "10.15", -250 becomes "-2.50".
func FormatCents(cents int64) string {
	isNegative := cents < 0
	if isNegative {
		cents = -cents
	}

	amountStr := strconv.FormatInt(cents, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// PercentOf applies an integer percentage rate to an amount in cents,
// truncating any sub-cent remainder. Used for affiliate and referral
// commission: PercentOf(10000, 10) == 1000.
func PercentOf(cents int64, rate int64) int64 {
	if rate <= 0 || cents <= 0 {
		return 0
	}
	return cents * rate / 100
}
