package services

import (
	"testing"
	"time"

	"nsap-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsSamplingDay_CommercialSchedule(t *testing.T) {
	// Day-of-month mod 3 == 1 samples commercial centers only.
	assert.True(t, IsSamplingDay(day("2024-03-01"), models.CenterCommercial))
	assert.True(t, IsSamplingDay(day("2024-03-04"), models.CenterCommercial))
	assert.True(t, IsSamplingDay(day("2024-03-31"), models.CenterCommercial))

	assert.False(t, IsSamplingDay(day("2024-03-02"), models.CenterCommercial))
	assert.False(t, IsSamplingDay(day("2024-03-03"), models.CenterCommercial))
}

func TestIsSamplingDay_MunicipalSchedule(t *testing.T) {
	// Day-of-month mod 3 == 2 samples municipal centers only.
	assert.True(t, IsSamplingDay(day("2024-03-02"), models.CenterMunicipal))
	assert.True(t, IsSamplingDay(day("2024-03-05"), models.CenterMunicipal))
	assert.True(t, IsSamplingDay(day("2024-03-29"), models.CenterMunicipal))

	assert.False(t, IsSamplingDay(day("2024-03-01"), models.CenterMunicipal))
	assert.False(t, IsSamplingDay(day("2024-03-03"), models.CenterMunicipal))
}

func TestIsSamplingDay_RestDays(t *testing.T) {
	// Day-of-month mod 3 == 0 is never a sampling day for either type.
	for _, d := range []string{"2024-03-03", "2024-03-06", "2024-03-30"} {
		assert.False(t, IsSamplingDay(day(d), models.CenterCommercial), d)
		assert.False(t, IsSamplingDay(day(d), models.CenterMunicipal), d)
	}
}

func TestIsSamplingDay_TypeMismatch(t *testing.T) {
	// 2024-03-04 is a commercial slot; a municipal center must not match.
	assert.False(t, IsSamplingDay(day("2024-03-04"), models.CenterMunicipal))
	// And the converse on a municipal slot.
	assert.False(t, IsSamplingDay(day("2024-03-05"), models.CenterCommercial))
}
