package helpers

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// ISODateLayout is the YYYY-MM-DD layout used by request parameters
const ISODateLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// IsISODate reports whether s has the YYYY-MM-DD shape
func IsISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// ParseISODate parses a YYYY-MM-DD string
func ParseISODate(s string) (time.Time, error) {
	if !IsISODate(s) {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	return time.Parse(ISODateLayout, s)
}

// FormatTanggal renders a date as DD/MM/YYYY
func FormatTanggal(t time.Time) string {
	return t.Format("02/01/2006")
}

// TahunAjaran renders an academic year as "<tahun>/<tahun+1>"
func TahunAjaran(tahun int) string {
	return fmt.Sprintf("%d/%d", tahun, tahun+1)
}
