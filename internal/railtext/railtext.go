// Package railtext decodes the ad-hoc delimited text formats used by
// legacy rail data feeds: a record separator splits the payload into
// records, a field separator splits each record into fields. Sources
// routinely truncate trailing empty fields, so all field access is
// positional and tolerant of short records.
package railtext

import (
	"strconv"
	"strings"
)

// dayNames is the fixed Sun-first ordering used by run-day bitmasks.
var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Decode splits raw into records on recordSep and each record into
// fields on fieldSep. Records with fewer than minFields fields are
// skipped silently.
func Decode(raw, recordSep, fieldSep string, minFields int) [][]string {
	if raw == "" {
		return nil
	}

	var records [][]string
	for _, record := range strings.Split(raw, recordSep) {
		fields := strings.Split(record, fieldSep)
		if len(fields) < minFields {
			continue
		}
		records = append(records, fields)
	}
	return records
}

// SkipFirstSegment drops everything up to and including the first
// record separator. Legacy feeds prepend a non-data segment (header or
// fare block) that must be discarded unconditionally.
func SkipFirstSegment(raw, recordSep string) string {
	if i := strings.Index(raw, recordSep); i >= 0 {
		return raw[i+len(recordSep):]
	}
	return ""
}

// Field returns the trimmed field at index i, or "" when the record is
// too short.
func Field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// FieldFloat parses the field at index i as a float, returning 0 for
// missing, empty, or non-numeric values.
func FieldFloat(fields []string, i int) float64 {
	v, err := strconv.ParseFloat(Field(fields, i), 64)
	if err != nil {
		return 0
	}
	return v
}

// FieldInt parses the field at index i as an integer, returning 0 for
// missing, empty, or non-numeric values.
func FieldInt(fields []string, i int) int {
	v, err := strconv.Atoi(Field(fields, i))
	if err != nil {
		return 0
	}
	return v
}

// FieldDay parses the field at index i as an elapsed-day counter.
// Missing, garbage, and zero values all coerce to day 1.
func FieldDay(fields []string, i int) int {
	if v := FieldInt(fields, i); v > 0 {
		return v
	}
	return 1
}

// NormalizeTime rewrites the legacy "HH.MM" notation to "HH:MM" by
// replacing the first dot. Already-normalized values pass through
// untouched, as do the sentinels "First" and "Last".
func NormalizeTime(t string) string {
	if t == "" || t == "First" || t == "Last" {
		return t
	}
	return strings.Replace(t, ".", ":", 1)
}

// ParseRunDays expands a 7-character run-day bitmask into day names,
// Sun first. Position i set to '1' means the train runs on day i.
// Anything that is not exactly 7 characters yields no days.
func ParseRunDays(bitmask string) []string {
	if len(bitmask) != 7 {
		return []string{}
	}

	days := []string{}
	for i, name := range dayNames {
		if bitmask[i] == '1' {
			days = append(days, name)
		}
	}
	return days
}
