package timer

import (
	"fmt"
	"time"
)

// FormatElapsed renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

func FormatDuration(d time.Duration) string {
	return FormatElapsed(int64(d / time.Second))
}
