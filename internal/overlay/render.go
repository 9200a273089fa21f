package overlay

import (
	"strconv"
	"strings"

	"perfoverlay/internal/system"
)

// Span is a run of text rendered in one weight
type Span struct {
	Text string
	Bold bool
}

// Compose lays out a snapshot as alternating bold labels and plain
// values: CPU load and temperature, GPU load and temperature, RAM load.
func Compose(s system.Snapshot) []Span {
	return []Span{
		{Text: "CPU: ", Bold: true},
		{Text: strconv.Itoa(s.CPUUsage) + "%"},
		{Text: " | "},
		{Text: strconv.Itoa(s.CPUTemp) + "°C   "},
		{Text: "GPU: ", Bold: true},
		{Text: strconv.Itoa(s.GPUUsage) + "%"},
		{Text: " | "},
		{Text: strconv.Itoa(s.GPUTemp) + "°C   "},
		{Text: "RAM: ", Bold: true},
		{Text: strconv.Itoa(s.RAMUsage) + "%"},
	}
}

// PlainText joins the spans without styling
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
