// utils/timeutil.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// ExportStampLayout is the timestamp embedded in export file names.
const ExportStampLayout = "20060102_150405"

// Layouts accepted when reading timestamps back from exports. Older exports
// carry ISO timestamps without a zone and with microseconds.
var recordTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ExportStamp(t time.Time) string {
	return t.Format(ExportStampLayout)
}

func FormatRecordTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseRecordTime parses a timestamp written by the recorder or by older
// exports.
func ParseRecordTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range recordTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
