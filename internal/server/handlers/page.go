package handlers

import "html/template"

const pageTemplateName = "index"

// PageTemplate is the widget page served at /.
var PageTemplate = template.Must(template.New(pageTemplateName).Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>Thời tiết</title>
</head>
<body>
<form method="get" action="/">
	<input id="cityInput" name="city" value="{{.Query}}" placeholder="Nhập tên thành phố..."{{if .Focused}} autofocus{{end}}>
	<button id="searchBtn" type="submit">Tìm kiếm</button>
</form>
{{- $state := .State.String}}
{{- if eq $state "empty"}}
<section id="emptyState"><p>Nhập tên thành phố để xem thời tiết.</p></section>
{{- else if eq $state "error"}}
<section id="errorState">
	<p id="errorMessage">{{.Text "error_message"}}</p>
	<a id="retryBtn" href="/">Thử lại</a>
</section>
{{- else if eq $state "weather"}}
<section id="currentWeatherSection">
	<h2 id="locationName">{{.Text "location"}}</h2>
	<p id="currentDate">{{.Text "current_date"}}</p>
	<div id="weatherIcon">{{.Text "icon"}}</div>
	<div id="currentTemp">{{.Text "temperature"}}°C</div>
	<p id="weatherCondition">{{.Text "condition"}}</p>
	<p id="feelsLike">{{.Text "feels_like"}}</p>
	<ul>
		<li>Độ ẩm <span id="humidity">{{.Text "humidity"}}</span></li>
		<li>Gió <span id="windSpeed">{{.Text "wind_speed"}}</span></li>
		<li>Áp suất <span id="pressure">{{.Text "pressure"}}</span></li>
		<li>Tầm nhìn <span id="visibility">{{.Text "visibility"}}</span></li>
	</ul>
</section>
<section id="forecastSection">
	<div id="forecastContainer">
	{{- range .Forecast}}
		<article class="weather-card forecast-card">
			<div class="forecast-date">{{.DayName}}</div>
			<div class="forecast-day">{{.ShortDate}}</div>
			<div class="forecast-icon">{{.Icon}}</div>
			<div class="forecast-temp">{{.MaxTemp}}</div>
			<div class="forecast-description">{{.Description}}</div>
			<div class="forecast-details">
				<div>📉 {{.MinTemp}}</div>
				<div>💧 {{.Precipitation}}</div>
			</div>
		</article>
	{{- end}}
	</div>
</section>
{{- end}}
</body>
</html>
`))
