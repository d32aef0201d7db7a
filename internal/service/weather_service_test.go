package service

import (
	"testing"
	"time"

	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticWeatherService_Forecast(t *testing.T) {
	svc := NewStaticWeatherService()

	f, err := svc.Forecast("Rocky Mountains", "July")
	require.NoError(t, err)
	assert.Equal(t, "Rocky Mountains", f.Location)
	assert.Equal(t, "July", f.Month)
	assert.Equal(t, 75, f.HighF)
	assert.Equal(t, 42, f.LowF)
	assert.Equal(t, "Afternoon thunderstorms", f.Condition)
	assert.Equal(t, 12, f.RainDays)
}

func TestStaticWeatherService_NormalizesInput(t *testing.T) {
	svc := NewStaticWeatherService()

	f, err := svc.Forecast("  pacific NORTHWEST ", "jANUary")
	require.NoError(t, err)
	assert.Equal(t, "January", f.Month)
	assert.Equal(t, "Persistent rain", f.Condition)
}

func TestStaticWeatherService_DefaultsToCurrentMonth(t *testing.T) {
	svc := NewStaticWeatherService()
	svc.now = func() time.Time { return time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC) }

	f, err := svc.Forecast("sierra nevada", "")
	require.NoError(t, err)
	assert.Equal(t, "October", f.Month)
	assert.Equal(t, "Clear", f.Condition)
}

func TestStaticWeatherService_UnknownLocation(t *testing.T) {
	svc := NewStaticWeatherService()

	_, err := svc.Forecast("Atlantis", "July")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WTH_001", appErr.Code)
}

func TestStaticWeatherService_SeasonBoundaries(t *testing.T) {
	svc := NewStaticWeatherService()

	tests := []struct {
		month     string
		condition string
	}{
		{"December", "Snow"},
		{"February", "Snow"},
		{"March", "Mixed rain and snow"},
		{"August", "Afternoon thunderstorms"},
		{"November", "Clear and crisp"},
	}
	for _, tt := range tests {
		f, err := svc.Forecast("rocky mountains", tt.month)
		require.NoError(t, err, tt.month)
		assert.Equal(t, tt.condition, f.Condition, tt.month)
	}
}
