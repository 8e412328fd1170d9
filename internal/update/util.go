package update

import (
	"fmt"
	"time"
)

// formatAge renders a creation time relative to now, coarsely: minutes,
// then hours, then days.
func formatAge(createdAt, now time.Time) string {
	age := now.Sub(createdAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
