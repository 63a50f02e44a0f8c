// Package dostime decodes the packed 32-bit DOS date/time fields ALZ
// local file entries carry (§4.6).
package dostime

import (
	"fmt"
	"time"
)

// DateTime is a decoded DOS date/time field.
type DateTime struct {
	Year   int // full year, e.g. 2019
	Month  int // 1..12
	Day    int // 1..31
	Hour   int // 0..23
	Minute int // 0..59
	Second int // 0, 2, 4, .. 58 (DOS only stores 2-second resolution)
}

// Decode unpacks a raw 32-bit DOS date/time value. It returns false if the
// month or day fields are out of range, per §4.6.
func Decode(raw uint32) (DateTime, bool) {
	dt := DateTime{
		Second: int((raw & 0x1f) << 1),
		Minute: int((raw >> 5) & 0x3f),
		Hour:   int((raw >> 11) & 0x1f),
		Day:    int((raw >> 16) & 0x1f),
		Month:  int((raw >> 21) & 0x0f),
		Year:   int((raw>>25)&0x7f) + 1980,
	}
	if dt.Month < 1 || dt.Month > 12 || dt.Day < 1 || dt.Day > 31 {
		return DateTime{}, false
	}
	return dt, true
}

// String formats the date/time as "YYYY-MM-DD HH:MM:SS", matching the
// reference implementation's display format.
func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// Time converts the decoded date/time into a UTC time.Time using the
// Howard Hinnant days-from-civil algorithm (no leap-second correction;
// not authoritative, per §4.6).
func (dt DateTime) Time() time.Time {
	days := daysFromCivil(dt.Year, dt.Month, dt.Day)
	secs := days*86400 + int64(dt.Hour)*3600 + int64(dt.Minute)*60 + int64(dt.Second)
	return time.Unix(secs, 0).UTC()
}

// Format decodes raw and renders it with String, returning "" for an
// invalid date/time.
func Format(raw uint32) string {
	dt, ok := Decode(raw)
	if !ok {
		return ""
	}
	return dt.String()
}

// daysFromCivil returns the number of days since the Unix epoch
// (1970-01-01) for the given proleptic Gregorian calendar date, using a
// 400-year cycle formula. Adapted from Howard Hinnant's "days from civil"
// algorithm (the same one the original ALZ extractor uses).
func daysFromCivil(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	m := int64(month)
	var doy int64
	if m > 2 {
		doy = (153*(m-3)+2)/5 + int64(day) - 1
	} else {
		doy = (153*(m+9)+2)/5 + int64(day) - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
