package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgo formats t relative to now, e.g. "3 hours ago". Zero times render as
// an empty string.
func TimeAgo(t time.Time) string {
	return timeAgo(t, time.Now())
}

func timeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
