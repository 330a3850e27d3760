package countdown

import "fmt"

// FormatSeconds renders a remaining-seconds value with one decimal, the way
// the countdown label displays it. Negative inputs clamp to "0.0".
func FormatSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%.1f", sec)
}
