package view

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryViewStartsEmpty(t *testing.T) {
	v := NewMemoryView()
	s := v.Snapshot()

	assert.Equal(t, StateEmpty, s.State)
	assert.Empty(t, s.Forecast)
	assert.True(t, s.Focused)
}

func TestMemoryViewShowIsExclusive(t *testing.T) {
	v := NewMemoryView()

	for _, state := range []State{StateLoading, StateWeather, StateError, StateEmpty, StateLoading} {
		v.Show(state)
		assert.Equal(t, state, v.State())
	}
}

func TestMemoryViewForecastCards(t *testing.T) {
	v := NewMemoryView()
	v.AppendForecast(ForecastCard{DayName: "T2"})
	v.AppendForecast(ForecastCard{DayName: "T3"})

	snap := v.Snapshot()
	require.Len(t, snap.Forecast, 2)

	// snapshots are copies
	snap.Forecast[0].DayName = "changed"
	assert.Equal(t, "T2", v.Snapshot().Forecast[0].DayName)

	v.ClearForecast()
	assert.Empty(t, v.Snapshot().Forecast)
}

func TestMemoryViewResetInput(t *testing.T) {
	v := NewMemoryView()
	v.SetInput("Atlantis")
	assert.Equal(t, "Atlantis", v.Snapshot().Input)
	assert.False(t, v.Snapshot().Focused)

	v.ResetInput()
	assert.Equal(t, "", v.Snapshot().Input)
	assert.True(t, v.Snapshot().Focused)
}

func TestSnapshotJSON(t *testing.T) {
	v := NewMemoryView()
	v.SetText(RegionLocation, "Hanoi, Vietnam")
	v.Show(StateWeather)

	data, err := json.Marshal(v.Snapshot())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"state":"weather"`)
	assert.Contains(t, string(data), `"location":"Hanoi, Vietnam"`)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, StateWeather, decoded.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"sideways"}`), &decoded))
}

func TestTerminalViewPrintsVisibleState(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out)

	v.Show(StateLoading)
	assert.Contains(t, out.String(), "Đang tải")

	out.Reset()
	v.SetText(RegionErrorMessage, "Không tìm thấy thành phố \"Atlantis\".")
	v.Show(StateError)
	assert.Contains(t, out.String(), "Atlantis")
	assert.NotContains(t, out.String(), "Đang tải")

	out.Reset()
	v.SetText(RegionLocation, "Hanoi, Vietnam")
	v.SetText(RegionTemperature, "30")
	v.AppendForecast(ForecastCard{DayName: "T3", ShortDate: "20/10", MaxTemp: "31°C", MinTemp: "24°C", Precipitation: "3.2mm"})
	v.Show(StateWeather)

	text := out.String()
	assert.Contains(t, text, "📍 Hanoi, Vietnam")
	assert.Contains(t, text, "30°C")
	assert.Contains(t, text, "20/10")
	assert.NotContains(t, text, "Atlantis")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "weather", StateWeather.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}
