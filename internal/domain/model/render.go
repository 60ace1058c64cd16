package model

import "fmt"

// RenderDuration formats a duration in seconds as H:MM:SS for durations of an
// hour or more, M:SS otherwise. Zero or unknown durations render as "0:00".
func RenderDuration(seconds float64) string {
	total := int(seconds)
	if total <= 0 {
		return "0:00"
	}

	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// RenderSize formats a byte count using the largest fitting unit up to GB,
// with two decimal places. Zero or unknown sizes render as "0 B".
func RenderSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
