package handler

import (
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"
	"github.com/brandongraves08/packstack/pkg/response"

	"github.com/gin-gonic/gin"
)

// WeatherHandler handles the seasonal forecast lookup endpoint.
type WeatherHandler struct {
	weatherSvc ports.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(weatherSvc ports.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherSvc: weatherSvc}
}

// GetForecast handles GET /api/v1/weather.
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		response.Error(c, apperror.Validation("location query parameter is required"))
		return
	}

	forecast, err := h.weatherSvc.Forecast(location, c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, forecast)
}
