package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/angeloszaimis/feed-dashboard/internal/indicator"
)

// NewWindow is how recent a post must be (strictly) to get the NEW badge.
const NewWindow = 5 * time.Minute

// MinutesAgo returns the whole minutes elapsed between t and now, rounded down.
// Timestamps in the future give negative values.
func MinutesAgo(now, t time.Time) int64 {
	return int64(math.Floor(now.Sub(t).Minutes()))
}

// RelativeLabel returns "Just now" for posts younger than a minute and
// "N minute(s) ago" otherwise.
func RelativeLabel(now, t time.Time) string {
	minutes := MinutesAgo(now, t)
	switch {
	case minutes < 1:
		return "Just now"
	case minutes == 1:
		return "1 minute ago"
	default:
		return fmt.Sprintf("%d minutes ago", minutes)
	}
}

// IsNew reports whether t is less than NewWindow before now.
func IsNew(now, t time.Time) bool {
	return now.Sub(t) < NewWindow
}

// AbbreviateFollowers formats a follower count as 1.2M, 2.5K or the plain number.
func AbbreviateFollowers(count int64) string {
	switch {
	case count >= 1_000_000:
		return strconv.FormatFloat(float64(count)/1_000_000, 'f', 1, 64) + "M"
	case count >= 1_000:
		return strconv.FormatFloat(float64(count)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(count, 10)
	}
}

// VerifiedClass returns the marker colour for the verified flag.
func VerifiedClass(verified bool) string {
	if verified {
		return indicator.ClassHealthy
	}
	return indicator.ClassUnhealthy
}

// CountLabel is the text shown under the table after a successful refresh.
func CountLabel(n int) string {
	return fmt.Sprintf("Showing %d of %d tweets (max 100)", n, n)
}
