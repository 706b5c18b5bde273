package visualizer

import (
	"time"

	"github.com/mahesh-hegde/instante/app/dataset"
)

var timeUnits = []string{"day", "week", "month", "quarter", "year"}

// truncateTime returns the start of the bucket containing t. Weeks start on
// Monday.
func truncateTime(t time.Time, unit string) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch unit {
	case "week":
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case "month":
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case "quarter":
		return time.Date(y, m-(m-1)%3, 1, 0, 0, 0, 0, loc)
	case "year":
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// bucketTimes returns a copy of a temporal column with every value moved
// to the start of its bucket.
func bucketTimes(col *dataset.Column, unit string) *dataset.Column {
	out := make([]time.Time, col.Len())
	for i := range out {
		if t, ok := col.Time(i); ok {
			out[i] = truncateTime(t, unit)
		}
	}
	return dataset.NewTemporalColumn(col.Name(), out)
}
