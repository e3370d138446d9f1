// Package weathercode maps WMO weather interpretation codes to a display
// description and icon.
package weathercode

// Info is the display form of a weather code.
type Info struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Unknown is returned for codes missing from the table.
var Unknown = Info{Description: "Không xác định", Icon: "❓"}

var table = map[int]Info{
	0:  {Description: "Trời quang", Icon: "☀️"},
	1:  {Description: "Chủ yếu là nắng", Icon: "🌤️"},
	2:  {Description: "Có mây rải rác", Icon: "⛅"},
	3:  {Description: "Nhiều mây", Icon: "☁️"},
	45: {Description: "Sương mù", Icon: "🌫️"},
	48: {Description: "Sương muối", Icon: "🌫️"},
	51: {Description: "Mưa phùn nhẹ", Icon: "🌦️"},
	53: {Description: "Mưa phùn vừa", Icon: "🌦️"},
	55: {Description: "Mưa phùn nặng", Icon: "🌧️"},
	56: {Description: "Mưa phùn đóng băng nhẹ", Icon: "🌧️"},
	57: {Description: "Mưa phùn đóng băng nặng", Icon: "🌧️"},
	61: {Description: "Mưa nhỏ", Icon: "🌧️"},
	63: {Description: "Mưa vừa", Icon: "🌧️"},
	65: {Description: "Mưa to", Icon: "⛈️"},
	66: {Description: "Mưa đá nhẹ", Icon: "🌧️"},
	67: {Description: "Mưa đá nặng", Icon: "⛈️"},
	71: {Description: "Tuyết rơi nhẹ", Icon: "🌨️"},
	73: {Description: "Tuyết rơi vừa", Icon: "🌨️"},
	75: {Description: "Tuyết rơi nặng", Icon: "❄️"},
	77: {Description: "Hạt tuyết", Icon: "❄️"},
	80: {Description: "Mưa rào nhẹ", Icon: "🌦️"},
	81: {Description: "Mưa rào vừa", Icon: "🌧️"},
	82: {Description: "Mưa rào xối xả", Icon: "⛈️"},
	85: {Description: "Mưa tuyết nhẹ", Icon: "🌨️"},
	86: {Description: "Mưa tuyết nặng", Icon: "❄️"},
	95: {Description: "Giông bão", Icon: "⛈️"},
	96: {Description: "Giông bão kèm mưa đá", Icon: "⛈️"},
	99: {Description: "Giông bão kèm mưa đá lớn", Icon: "⛈️"},
}

// Lookup returns the description and icon for code, or Unknown.
func Lookup(code int) Info {
	if info, ok := table[code]; ok {
		return info
	}
	return Unknown
}

// Codes returns every code present in the table.
func Codes() []int {
	codes := make([]int, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes
}
