package core

import (
	"fmt"
	"time"
)

// DateLayout is the application wire format for all business dates.
// Purchases and invoices exchange dates as dd/MM/yyyy strings.
const DateLayout = "02/01/2006"

// ParseAppDate parses a dd/MM/yyyy string.
func ParseAppDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatAppDate renders t in the application wire format.
func FormatAppDate(t time.Time) string {
	return t.Format(DateLayout)
}
