package output

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration in seconds as h:mm:ss, dropping the
// hour component when zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "-"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatDistance renders a distance in meters, switching to kilometres
// at 1000 m.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatTime renders a Unix timestamp for the terminal.
func FormatTime(unix int64) string {
	if unix <= 0 {
		return "-"
	}
	return time.Unix(unix, 0).Local().Format("Jan 02, 2006 15:04:05")
}
