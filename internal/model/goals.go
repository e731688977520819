package model

// MaxWeeklyGoalHours caps a single weekly goal bucket; the editing surface
// clamps user input into [0, MaxWeeklyGoalHours].
const MaxWeeklyGoalHours = 40.0

// HourMap accumulates weekly hours per built-in activity kind. It is
// serialized through each key's stable string tag, never through the key's
// in-memory representation.
type HourMap map[Activity]float64

// CustomHourMap accumulates weekly hours per user-defined preference title.
type CustomHourMap map[string]float64

// Add adjusts the bucket for a by delta hours, clamping the result at zero.
func (m HourMap) Add(a Activity, delta float64) {
	next := m[a] + delta
	if next < 0 {
		next = 0
	}
	m[a] = next
}

// Add adjusts the bucket for title by delta hours, clamping the result at
// zero.
func (m CustomHourMap) Add(title string, delta float64) {
	next := m[title] + delta
	if next < 0 {
		next = 0
	}
	m[title] = next
}

// Tags returns the map re-keyed by stable string tag for persistence.
func (m HourMap) Tags() map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// HourMapFromTags rebuilds an HourMap from persisted string tags, dropping
// tags that no longer name a built-in activity.
func HourMapFromTags(tags map[string]float64) HourMap {
	out := make(HourMap, len(tags))
	for tag, v := range tags {
		if a, ok := ParseActivity(tag); ok {
			out[a] = v
		}
	}
	return out
}

// ClampGoalHours forces a user-entered weekly goal into the allowed range.
func ClampGoalHours(hours float64) float64 {
	if hours < 0 {
		return 0
	}
	if hours > MaxWeeklyGoalHours {
		return MaxWeeklyGoalHours
	}
	return hours
}
