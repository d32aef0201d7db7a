package service

import (
	"strings"
	"time"

	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"
)

// StaticWeatherService answers forecast lookups from a fixed seasonal table.
// It exists so trip planning works offline; it is not a weather provider.
type StaticWeatherService struct {
	table map[string]map[string]domain.Forecast
	now   func() time.Time
}

// NewStaticWeatherService creates the lookup service with the built-in table.
func NewStaticWeatherService() *StaticWeatherService {
	return &StaticWeatherService{table: forecastTable, now: time.Now}
}

var _ ports.WeatherService = (*StaticWeatherService)(nil)

// Forecast returns the seasonal outlook for a location. Month is optional;
// when empty, the current month applies. Unknown locations are a not-found
// condition, never a transport error.
func (s *StaticWeatherService) Forecast(location, month string) (*domain.Forecast, error) {
	seasons, ok := s.table[normalizeLocation(location)]
	if !ok {
		return nil, apperror.ErrLocationUnknown(location)
	}

	if month == "" {
		month = s.now().Month().String()
	}
	month = normalizeMonth(month)

	f, ok := seasons[seasonOf(month)]
	if !ok {
		return nil, apperror.ErrLocationUnknown(location)
	}
	f.Location = location
	f.Month = month
	return &f, nil
}

func normalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func normalizeMonth(month string) string {
	month = strings.ToLower(strings.TrimSpace(month))
	if len(month) == 0 {
		return month
	}
	return strings.ToUpper(month[:1]) + month[1:]
}

func seasonOf(month string) string {
	switch month {
	case "December", "January", "February":
		return "winter"
	case "March", "April", "May":
		return "spring"
	case "June", "July", "August":
		return "summer"
	case "September", "October", "November":
		return "fall"
	default:
		return ""
	}
}

// forecastTable holds typical conditions per region and season.
var forecastTable = map[string]map[string]domain.Forecast{
	"rocky mountains": {
		"winter": {HighF: 32, LowF: 8, Condition: "Snow", RainDays: 9},
		"spring": {HighF: 52, LowF: 26, Condition: "Mixed rain and snow", RainDays: 11},
		"summer": {HighF: 75, LowF: 42, Condition: "Afternoon thunderstorms", RainDays: 12},
		"fall":   {HighF: 58, LowF: 28, Condition: "Clear and crisp", RainDays: 7},
	},
	"pacific northwest": {
		"winter": {HighF: 45, LowF: 34, Condition: "Persistent rain", RainDays: 20},
		"spring": {HighF: 58, LowF: 41, Condition: "Showers", RainDays: 15},
		"summer": {HighF: 76, LowF: 52, Condition: "Dry and mild", RainDays: 4},
		"fall":   {HighF: 60, LowF: 44, Condition: "Rain returning", RainDays: 14},
	},
	"desert southwest": {
		"winter": {HighF: 62, LowF: 38, Condition: "Sunny", RainDays: 3},
		"spring": {HighF: 82, LowF: 52, Condition: "Sunny and windy", RainDays: 2},
		"summer": {HighF: 104, LowF: 78, Condition: "Extreme heat, monsoon storms", RainDays: 6},
		"fall":   {HighF: 85, LowF: 58, Condition: "Sunny", RainDays: 2},
	},
	"appalachian trail": {
		"winter": {HighF: 40, LowF: 22, Condition: "Cold rain and ice", RainDays: 12},
		"spring": {HighF: 62, LowF: 40, Condition: "Rain showers", RainDays: 13},
		"summer": {HighF: 80, LowF: 60, Condition: "Humid with storms", RainDays: 11},
		"fall":   {HighF: 64, LowF: 42, Condition: "Clear foliage season", RainDays: 8},
	},
	"sierra nevada": {
		"winter": {HighF: 42, LowF: 22, Condition: "Heavy snow", RainDays: 10},
		"spring": {HighF: 58, LowF: 32, Condition: "Melting snowpack", RainDays: 8},
		"summer": {HighF: 79, LowF: 48, Condition: "Dry and sunny", RainDays: 2},
		"fall":   {HighF: 64, LowF: 36, Condition: "Clear", RainDays: 4},
	},
}
