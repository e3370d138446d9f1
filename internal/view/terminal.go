package view

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// TerminalView is a MemoryView that prints the visible state on every Show.
type TerminalView struct {
	*MemoryView

	mu  sync.Mutex
	out io.Writer
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{
		MemoryView: NewMemoryView(),
		out:        out,
	}
}

func (v *TerminalView) Show(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.MemoryView.Show(state)
	io.WriteString(v.out, Format(v.MemoryView.Snapshot()))
}

func (v *TerminalView) ResetInput() {
	v.MemoryView.ResetInput()

	v.mu.Lock()
	defer v.mu.Unlock()
	io.WriteString(v.out, "> ")
}

// Format renders the visible state of a snapshot as plain text.
func Format(s Snapshot) string {
	var b strings.Builder

	switch s.State {
	case StateEmpty:
		b.WriteString("Nhập tên thành phố để xem thời tiết.\n")
	case StateLoading:
		b.WriteString("⏳ Đang tải dữ liệu thời tiết...\n")
	case StateError:
		fmt.Fprintf(&b, "❌ %s\n", s.Text(RegionErrorMessage))
		b.WriteString("   (gõ :retry để thử lại)\n")
	case StateWeather:
		fmt.Fprintf(&b, "\n📍 %s\n", s.Text(RegionLocation))
		fmt.Fprintf(&b, "   %s\n", s.Text(RegionCurrentDate))
		fmt.Fprintf(&b, "   %s %s°C  %s\n", s.Text(RegionIcon), s.Text(RegionTemperature), s.Text(RegionCondition))
		fmt.Fprintf(&b, "   %s\n", s.Text(RegionFeelsLike))
		fmt.Fprintf(&b, "   Độ ẩm %s · Gió %s · Áp suất %s · Tầm nhìn %s\n",
			s.Text(RegionHumidity), s.Text(RegionWindSpeed), s.Text(RegionPressure), s.Text(RegionVisibility))

		if len(s.Forecast) > 0 {
			b.WriteString("\n")
		}
		for _, card := range s.Forecast {
			fmt.Fprintf(&b, "   %-3s %-5s %s  %s  %s  📉 %s  💧 %s\n",
				card.DayName, card.ShortDate, card.Icon, card.MaxTemp, card.Description, card.MinTemp, card.Precipitation)
		}
		b.WriteString("\n")
	}

	return b.String()
}
