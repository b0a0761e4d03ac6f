package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSerialEpoch(t *testing.T) {
	// 1900-01-01 minus the two correction days.
	assert.Equal(t, date(1899, time.December, 30), SerialEpoch())
}

func TestSerialToDate(t *testing.T) {
	tests := []struct {
		serial   float64
		expected time.Time
	}{
		{1, date(1899, time.December, 31)},
		{2, date(1900, time.January, 1)},
		{25569, date(1970, time.January, 1)},
		{45000, date(2023, time.March, 15)},
		{45000.99, date(2023, time.March, 15)}, // time-of-day fraction dropped
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, SerialToDate(test.serial), "serial %v", test.serial)
	}
}

func TestParseDateText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"2023-03-15", date(2023, time.March, 15), true},
		{"2023/03/15", date(2023, time.March, 15), true},
		{"3/15/2023", date(2023, time.March, 15), true},
		{"03/15/2023", date(2023, time.March, 15), true},
		{"3-15-2023", date(2023, time.March, 15), true},
		{"2023.03.15", date(2023, time.March, 15), true},
		{"March 15, 2023", date(2023, time.March, 15), true},
		{"Mar 15, 2023", date(2023, time.March, 15), true},
		{"15 March 2023", date(2023, time.March, 15), true},
		{"15 Mar 2023", date(2023, time.March, 15), true},
		{"2023-03-15T10:30:00", date(2023, time.March, 15), true},
		{"2023-03-15 10:30:00", date(2023, time.March, 15), true},
		{"2023-03-15T10:30:00Z", date(2023, time.March, 15), true},
		{"  2023-03-15  ", date(2023, time.March, 15), true},
		{"45000", time.Time{}, false}, // numeric text never takes the serial path
		{"tomorrow", time.Time{}, false},
		{"2023-13-45", time.Time{}, false},
		{"", time.Time{}, false},
		{"   ", time.Time{}, false},
	}

	for _, test := range tests {
		got, ok := ParseDateText(test.input)
		assert.Equal(t, test.ok, ok, "parse ok for %q", test.input)
		if test.ok {
			assert.Equal(t, test.expected, got, "parsed date for %q", test.input)
		}
	}
}

func TestNormalizeDueDate(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected time.Time
		ok       bool
	}{
		{"numeric serial", NumberCell("45000", 45000), date(2023, time.March, 15), true},
		{"date cell", DateCell("2023-03-15", time.Date(2023, time.March, 15, 9, 30, 0, 0, time.UTC)), date(2023, time.March, 15), true},
		{"iso text", TextCell("2023-03-15"), date(2023, time.March, 15), true},
		{"numeric-looking text", TextCell("45000"), time.Time{}, false},
		{"unparseable text", TextCell("next week"), time.Time{}, false},
		{"blank", BlankCell, time.Time{}, false},
		{"boolean", BoolCell(true), time.Time{}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := NormalizeDueDate(test.cell)
			assert.Equal(t, test.ok, ok)
			if test.ok {
				assert.Equal(t, test.expected, got)
			}
		})
	}
}

func TestTodayAt(t *testing.T) {
	// A late-UTC instant is already the next calendar day at +05:30.
	utcEvening := time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.January, 16), TodayAt(utcEvening))

	utcMorning := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.January, 15), TodayAt(utcMorning))
}

func TestReportLocation(t *testing.T) {
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC).In(ReportLocation())
	_, offset := at.Zone()
	// +05:30 year-round; the zone observes no daylight saving.
	assert.Equal(t, 19800, offset)
}
