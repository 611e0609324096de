package services

import "time"

// AddBusinessDays advances start one calendar day at a time, counting only
// weekdays, until n business days have been added. n=0 returns start
// unchanged.
func AddBusinessDays(start time.Time, n int) time.Time {
	date := start
	added := 0
	for added < n {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date
}
