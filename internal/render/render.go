// Package render writes a resolved location and its forecast into a view.
package render

import (
	"time"

	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/internal/view"
	"github.com/vzahanych/weather-widget/internal/weathercode"
)

// ForecastDays is the number of cards after today.
const ForecastDays = 5

type Renderer struct {
	view view.View
	now  func() time.Time
}

// NewRenderer returns a renderer writing to v. now supplies the current date; nil means time.Now.
func NewRenderer(v view.View, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{view: v, now: now}
}

// Render fills the current-conditions regions and the forecast cards, then shows the weather state.
func (r *Renderer) Render(loc *service.Location, fc *service.Forecast) {
	r.renderCurrent(loc, fc.Current)
	r.renderForecast(fc.Daily)
	r.view.Show(view.StateWeather)
}

func (r *Renderer) renderCurrent(loc *service.Location, cur service.CurrentConditions) {
	info := weathercode.Lookup(cur.WeatherCode)

	r.view.SetText(view.RegionLocation, loc.DisplayName())
	r.view.SetText(view.RegionCurrentDate, formatLongDate(r.now()))
	r.view.SetText(view.RegionTemperature, formatRounded(cur.Temperature))
	r.view.SetText(view.RegionIcon, info.Icon)
	r.view.SetText(view.RegionCondition, info.Description)
	r.view.SetText(view.RegionFeelsLike, "Cảm giác như "+formatRounded(cur.ApparentTemperature)+"°C")
	r.view.SetText(view.RegionHumidity, formatNumber(cur.RelativeHumidity)+"%")
	r.view.SetText(view.RegionWindSpeed, formatRounded(cur.WindSpeed)+" km/h")
	r.view.SetText(view.RegionPressure, formatRounded(cur.Pressure)+" hPa")
	r.view.SetText(view.RegionVisibility, formatVisibility(cur.Visibility))
}

// renderForecast shows day offsets 1..ForecastDays, stopping at the first missing day.
func (r *Renderer) renderForecast(daily service.DailySeries) {
	r.view.ClearForecast()

	for i := 1; i <= ForecastDays; i++ {
		day, ok := daily.Entry(i)
		if !ok {
			break
		}

		code := -1
		if day.WeatherCode != nil {
			code = *day.WeatherCode
		}
		info := weathercode.Lookup(code)
		dayName, shortDate := formatDay(day.Date)

		r.view.AppendForecast(view.ForecastCard{
			DayName:       dayName,
			ShortDate:     shortDate,
			Icon:          info.Icon,
			MaxTemp:       formatTemperature(day.TemperatureMax),
			Description:   info.Description,
			MinTemp:       formatTemperature(day.TemperatureMin),
			Precipitation: formatPrecipitation(day.PrecipitationSum),
		})
	}
}
