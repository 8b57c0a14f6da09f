package schedule

import "math"

// durationDays converts effort hours to a calendar span in whole days,
// rounding partial days up. Effort is validated > 0 before this runs,
// so the result is always at least 1.
func durationDays(effortHours, hoursPerDay float64) int {
	d := int(math.Ceil(effortHours / hoursPerDay))
	if d < 1 {
		d = 1
	}
	return d
}
