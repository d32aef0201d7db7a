package domain

// Forecast is a static per-region, per-month outlook used for trip planning.
type Forecast struct {
	Location  string `json:"location"`
	Month     string `json:"month"`
	HighF     int    `json:"high_f"`
	LowF      int    `json:"low_f"`
	Condition string `json:"condition"`
	RainDays  int    `json:"rain_days"`
}
