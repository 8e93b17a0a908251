package weather

// LocationSearchResponse is the AccuWeather city search payload.
type LocationSearchResponse []Location

type Location struct {
	Key           string `json:"Key"`
	LocalizedName string `json:"LocalizedName"`
	Country       struct {
		ID            string `json:"ID"`
		LocalizedName string `json:"LocalizedName"`
	} `json:"Country"`
}

// CurrentConditionsResponse is the AccuWeather current conditions payload.
type CurrentConditionsResponse []Conditions

type Conditions struct {
	WeatherText string `json:"WeatherText"`
	Temperature struct {
		Metric *struct {
			Value *float64 `json:"Value"`
			Unit  string   `json:"Unit"`
		} `json:"Metric"`
	} `json:"Temperature"`
}

// MetricValue returns the Celsius reading, or nil when the payload has none.
func (c Conditions) MetricValue() *float64 {
	if c.Temperature.Metric == nil {
		return nil
	}
	return c.Temperature.Metric.Value
}
