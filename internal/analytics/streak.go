package analytics

import (
	"time"

	"github.com/ponder/ponder-api/internal/models"
)

const dayKeyFormat = "2006-01-02"

// StreakResult is derived on every query and never persisted.
type StreakResult struct {
	Current   int `json:"current"`
	Longest   int `json:"longest"`
	ThisMonth int `json:"thisMonth"`
	Total     int `json:"total"`
}

// DayBucket is one calendar day of decision activity.
type DayBucket struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Quick int       `json:"quick"`
	Deep  int       `json:"deep"`
	Total int       `json:"total"`
}

// ComputeStreak walks backward from asOf's calendar day counting consecutive
// days with at least one decision. A day with no decision yet doesn't break
// the streak until it fully elapses: when today is empty the walk anchors on
// yesterday instead, and only a gap of a full day zeroes the streak.
// Calendar days use asOf's location.
func ComputeStreak(decisions []models.Decision, asOf time.Time) StreakResult {
	result := StreakResult{Total: len(decisions)}
	if len(decisions) == 0 {
		return result
	}

	loc := asOf.Location()
	days := make(map[string]bool, len(decisions))
	for _, d := range decisions {
		created := d.CreatedAt.In(loc)
		days[created.Format(dayKeyFormat)] = true
		if created.Year() == asOf.Year() && created.Month() == asOf.Month() {
			result.ThisMonth++
		}
	}

	cursor := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, loc)
	if !days[cursor.Format(dayKeyFormat)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[cursor.Format(dayKeyFormat)] {
			return result
		}
	}
	for days[cursor.Format(dayKeyFormat)] {
		result.Current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	// Longest mirrors the live streak; a true historical-maximum scan was
	// never part of the feature.
	result.Longest = result.Current
	return result
}

// BucketByDay buckets decisions by type into the windowDays most recent
// calendar days ending at asOf inclusive, oldest first. Always returns
// exactly windowDays buckets, zero-filled where no decisions exist.
func BucketByDay(decisions []models.Decision, asOf time.Time, windowDays int) []DayBucket {
	if windowDays <= 0 {
		windowDays = 7
	}

	loc := asOf.Location()
	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, loc)

	buckets := make([]DayBucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, i-windowDays+1)
		buckets[i] = DayBucket{Date: day, Label: day.Format("Mon")}
		index[day.Format(dayKeyFormat)] = i
	}

	for _, d := range decisions {
		i, ok := index[d.CreatedAt.In(loc).Format(dayKeyFormat)]
		if !ok {
			continue
		}
		if d.Type == models.DecisionTypeDeep {
			buckets[i].Deep++
		} else {
			buckets[i].Quick++
		}
		buckets[i].Total++
	}

	return buckets
}
