package repositories

import "time"

// Granularity selects the calendar unit timestamps are truncated to before
// grouping.
type Granularity int

const (
	GranularityHour Granularity = iota
	GranularityDay
	GranularityWeek
)

// truncateToBucket coarsens t to the start of its calendar bucket, in t's
// location. Weeks are ISO weeks: Monday 00:00.
func truncateToBucket(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case GranularityWeek:
		return startOfWeek(t)
	default:
		return startOfDay(t)
	}
}

// bucketLabel is the grouping key component derived from a timestamp: two
// events share a label iff their truncated timestamps match.
func bucketLabel(t time.Time, g Granularity) string {
	return truncateToBucket(t, g).Format(time.RFC3339)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns Monday 00:00 of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	days := int(t.Weekday()) - int(time.Monday)
	if days < 0 {
		days += 7 // Sunday
	}
	return startOfDay(t).AddDate(0, 0, -days)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// notificationWindow is one of the four query windows, half-open [Start, End)
// so an event landing exactly on a boundary belongs to one window only.
type notificationWindow struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

func dailyWindow(now time.Time) notificationWindow {
	return notificationWindow{
		Start:       startOfDay(now),
		End:         startOfDay(now).AddDate(0, 0, 1),
		Granularity: GranularityHour,
	}
}

func weeklyWindow(now time.Time) notificationWindow {
	return notificationWindow{
		Start:       startOfWeek(now),
		End:         startOfDay(now),
		Granularity: GranularityDay,
	}
}

func monthlyWindow(now time.Time) notificationWindow {
	return notificationWindow{
		Start:       startOfMonth(now),
		End:         startOfWeek(now),
		Granularity: GranularityDay,
	}
}

func earlierWindow(now time.Time) notificationWindow {
	return notificationWindow{
		Start:       now.AddDate(0, -4, 0),
		End:         startOfMonth(now),
		Granularity: GranularityWeek,
	}
}
