package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidLabel      = errors.New("invalid month label")
	ErrInvalidMonthIndex = errors.New("invalid month index")
)

// Short month names as they appear in the upload templates (Indonesian
// locale: Mei, Agu, Okt, Des). Index is month-of-year minus one.
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

var monthIndex = func() map[string]int {
	idx := make(map[string]int, len(monthNames))
	for i, name := range monthNames {
		idx[name] = i
	}
	return idx
}()

// Parse decodes a compact label like "Jul-24" into a Month. Two-digit years
// pivot at 70: 70..99 map to 1970..1999, everything else to 2000+.
func Parse(label string) (Month, error) {
	name, rawYear, ok := strings.Cut(label, "-")
	if !ok {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	idx, ok := monthIndex[name]
	if !ok {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 0 {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if year < 100 {
		if year >= 70 {
			year += 1900
		} else {
			year += 2000
		}
	}
	return Month{Year: year, M: time.Month(idx + 1)}, nil
}

// Format encodes a Month as its compact label ("Jul-24"). The month-of-year
// check is unreachable for Months built through this package.
func Format(m Month) (string, error) {
	idx := int(m.M) - 1
	if idx < 0 || idx >= len(monthNames) {
		return "", fmt.Errorf("%w: %d", ErrInvalidMonthIndex, idx)
	}
	return fmt.Sprintf("%s-%02d", monthNames[idx], m.Year%100), nil
}
