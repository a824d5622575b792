package services

import (
	"time"

	"nsap-service/internal/models"
)

// IsSamplingDay derives whether a date is a sampling day at the given
// landing-center type. The day-of-month remainder mod 3 partitions the
// calendar: remainder 0 is a rest day, remainder 1 samples commercial
// centers, remainder 2 samples municipal centers. The stored flag is always
// this derivation, never user input.
func IsSamplingDay(date time.Time, centerType models.LandingCenterType) bool {
	switch date.Day() % 3 {
	case 1:
		return centerType == models.CenterCommercial
	case 2:
		return centerType == models.CenterMunicipal
	default:
		return false
	}
}
