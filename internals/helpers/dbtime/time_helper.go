package dbtime

import (
	"strings"
	"sync"
	"time"

	"kreditku_backend/internals/configs"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location: timezone kantor (APP_TIMEZONE, default Asia/Jakarta). Fallback UTC.
func Location() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(configs.GetEnv("APP_TIMEZONE", "Asia/Jakarta"))
		l, err := time.LoadLocation(name)
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// StartOfDay mengembalikan jam 00:00 lokal untuk t, dalam UTC (siap dipakai query DB).
func StartOfDay(t time.Time) time.Time {
	lt := t.In(Location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, Location()).UTC()
}

// ParseDate menerima "2006-01-02" di timezone kantor.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), Location())
}
