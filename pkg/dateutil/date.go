package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

var (
	ErrEmptyDate    = errors.New("Date string cannot be empty")
	ErrBadFormat    = errors.New("Date must be in DD/MM/YYYY format")
	ErrDayRange     = errors.New("Day must be between 1 and 31")
	ErrMonthRange   = errors.New("Month must be between 1 and 12")
	ErrYearRange    = errors.New("Year must be between 1900 and 2100")
	ErrInvalidDate  = errors.New("Invalid date")
	ErrBadTimestamp = errors.New("Invalid timestamp")
)

// DateStringToTimestamp converts a DD/MM/YYYY string to epoch milliseconds
// (midnight UTC). Calendar-invalid combinations such as 31/02 are rejected.
func DateStringToTimestamp(dateString string) (int64, error) {
	trimmed := strings.TrimSpace(dateString)
	if trimmed == "" {
		return 0, ErrEmptyDate
	}

	match := dateRegex.FindStringSubmatch(trimmed)
	if match == nil {
		return 0, ErrBadFormat
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	if day < 1 || day > 31 {
		return 0, ErrDayRange
	}
	if month < 1 || month > 12 {
		return 0, ErrMonthRange
	}
	if year < 1900 || year > 2100 {
		return 0, ErrYearRange
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range components (31/02 becomes 02/03 or
	// 03/03), so a changed component means the combination was invalid.
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return 0, ErrInvalidDate
	}

	return date.UnixMilli(), nil
}

// TimestampToDateString converts epoch milliseconds to a DD/MM/YYYY string.
func TimestampToDateString(timestamp int64) (string, error) {
	date := time.UnixMilli(timestamp).UTC()
	if date.Year() < 1 || date.Year() > 9999 {
		return "", ErrBadTimestamp
	}
	return fmt.Sprintf("%02d/%02d/%04d", date.Day(), int(date.Month()), date.Year()), nil
}

// DateStringToISO converts a DD/MM/YYYY string to an RFC 3339 string.
func DateStringToISO(dateString string) (string, error) {
	timestamp, err := DateStringToTimestamp(dateString)
	if err != nil {
		return "", err
	}
	return time.UnixMilli(timestamp).UTC().Format(time.RFC3339), nil
}

// ISOToDateString converts an RFC 3339 string to a DD/MM/YYYY string.
func ISOToDateString(isoString string) (string, error) {
	parsed, err := time.Parse(time.RFC3339, isoString)
	if err != nil {
		return "", ErrBadTimestamp
	}
	return TimestampToDateString(parsed.UnixMilli())
}

