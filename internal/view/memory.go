package view

import "sync"

// Snapshot is a copy of everything a MemoryView holds.
type Snapshot struct {
	State    State             `json:"state"`
	Regions  map[Region]string `json:"regions"`
	Forecast []ForecastCard    `json:"forecast"`
	Input    string            `json:"input"`
	Focused  bool              `json:"focused"`
}

// Text returns the content of a region, empty when unset.
func (s Snapshot) Text(region Region) string {
	return s.Regions[region]
}

// MemoryView keeps the widget in memory. It is safe for concurrent use.
type MemoryView struct {
	mu       sync.RWMutex
	state    State
	regions  map[Region]string
	forecast []ForecastCard
	input    string
	focused  bool
}

func NewMemoryView() *MemoryView {
	return &MemoryView{
		state:   StateEmpty,
		regions: make(map[Region]string),
		focused: true,
	}
}

func (v *MemoryView) SetText(region Region, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.regions[region] = text
}

func (v *MemoryView) ClearForecast() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forecast = nil
}

func (v *MemoryView) AppendForecast(card ForecastCard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forecast = append(v.forecast, card)
}

func (v *MemoryView) Show(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
}

func (v *MemoryView) ResetInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = ""
	v.focused = true
}

// SetInput records what the user typed into the search field.
func (v *MemoryView) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
	v.focused = false
}

func (v *MemoryView) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *MemoryView) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	regions := make(map[Region]string, len(v.regions))
	for k, val := range v.regions {
		regions[k] = val
	}

	forecast := make([]ForecastCard, len(v.forecast))
	copy(forecast, v.forecast)

	return Snapshot{
		State:    v.state,
		Regions:  regions,
		Forecast: forecast,
		Input:    v.input,
		Focused:  v.focused,
	}
}
