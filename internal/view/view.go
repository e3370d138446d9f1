// Package view holds the widget's display regions and its visible state.
//
// The renderer and the search orchestrator receive a View at construction time and
// only ever write to it through this interface.
package view

import "fmt"

// State is the widget section currently visible. Exactly one is shown at a time.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateWeather
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateWeather:
		return "weather"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateEmpty, StateLoading, StateWeather, StateError} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown view state %q", text)
}

// Region names a text slot of the widget.
type Region string

const (
	RegionLocation     Region = "location"
	RegionCurrentDate  Region = "current_date"
	RegionIcon         Region = "icon"
	RegionTemperature  Region = "temperature"
	RegionCondition    Region = "condition"
	RegionFeelsLike    Region = "feels_like"
	RegionHumidity     Region = "humidity"
	RegionWindSpeed    Region = "wind_speed"
	RegionPressure     Region = "pressure"
	RegionVisibility   Region = "visibility"
	RegionErrorMessage Region = "error_message"
)

// ForecastCard is one day in the forecast container.
type ForecastCard struct {
	DayName       string `json:"day_name"`
	ShortDate     string `json:"short_date"`
	Icon          string `json:"icon"`
	MaxTemp       string `json:"max_temp"`
	Description   string `json:"description"`
	MinTemp       string `json:"min_temp"`
	Precipitation string `json:"precipitation"`
}

type View interface {
	SetText(region Region, text string)
	ClearForecast()
	AppendForecast(card ForecastCard)
	// Show hides every state and then reveals state.
	Show(state State)
	// ResetInput clears the search field and gives it focus.
	ResetInput()
}
