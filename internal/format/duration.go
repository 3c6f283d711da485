package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows nanoseconds below a microsecond, microseconds below a
// millisecond, milliseconds below a second, and the default string
// representation otherwise. Kernel calls usually land in the first band.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatRate renders n calls over d as calls per second with a metric
// suffix.
func FormatRate(n int, d time.Duration) string {
	if d <= 0 || n <= 0 {
		return "-"
	}
	rate := float64(n) / d.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2fG/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2fM/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2fk/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumberString inserts thousands separators into a decimal integer
// string. Anything else is returned unchanged.
func FormatNumberString(s string) string {
	sign := ""
	digits := s
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		sign, digits = digits[:1], digits[1:]
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return s
		}
	}
	if len(digits) <= 3 {
		return s
	}
	out := make([]byte, 0, len(digits)+len(digits)/3)
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i:i+3]...)
	}
	return sign + string(out)
}
