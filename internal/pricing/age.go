package pricing

import "time"

// AgeHours returns the hours elapsed between created and now as whole days
// times 24 plus the remaining seconds over 3600. Both instants are compared
// in UTC. Ages below zero are clamped to 0.
func AgeHours(now, created time.Time) float64 {
	age := now.UTC().Sub(created.UTC())
	if age <= 0 {
		return 0
	}

	days := age / (24 * time.Hour)
	remaining := age - days*24*time.Hour

	return float64(days)*24 + remaining.Seconds()/3600
}

// Accrued returns the total cost of running at costPerHour since created
func Accrued(now, created time.Time, costPerHour float64) float64 {
	return AgeHours(now, created) * costPerHour
}
