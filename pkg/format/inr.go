// Package format renders amounts for people rather than machines.
package format

import (
	"strconv"
	"strings"
)

// Missing is printed for absent amounts.
const Missing = "-"

// INR renders an amount with Indian digit grouping, e.g. 1250000 as ₹12,50,000.
func INR(amount *int64) string {
	if amount == nil {
		return Missing
	}
	return INRValue(*amount)
}

// INRValue is INR for a known amount.
func INRValue(amount int64) string {
	sign := ""
	digits := strconv.FormatInt(amount, 10)
	if amount < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := make([]string, 0, len(head)/2+2)
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

// Int renders an optional integer, e.g. a rank.
func Int(v *int64) string {
	if v == nil {
		return Missing
	}
	return strconv.FormatInt(*v, 10)
}
