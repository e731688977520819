// Package generator turns one day's declarative constraints (wake/sleep
// window, fixed commitments, free-time preferences, energy level) into an
// ordered, conflict-free list of time-blocked tasks. Generation is a greedy
// single forward pass per free range; it never backtracks or reorders
// preferences, so identical inputs always produce identical output.
package generator

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/timeutil"
)

const (
	// minFillBlock is the smallest span worth planning anything into.
	minFillBlock = 20 * time.Minute

	morningBlockMax  = 45 * time.Minute
	lunchBlockMax    = 40 * time.Minute
	dinnerBlockMax   = 45 * time.Minute
	windDownBlockMax = 30 * time.Minute

	morningTitle  = "Morning routine"
	lunchTitle    = "Lunch / Break"
	dinnerTitle   = "Dinner / Cook & eat"
	windDownTitle = "Wind down"
)

// Preference is one entry of the round-robin fill rotation. Activity is nil
// for custom free-text preferences; tasks built from those stay untyped.
type Preference struct {
	Title    string
	Activity *model.Activity
}

// Input carries everything one Generate call depends on. Now is the injected
// current moment used to suppress blocks that would end in the past; NewID
// supplies task identifiers and defaults to uuid.NewString.
type Input struct {
	Date          time.Time
	Weekday       int
	WakeDefault   time.Time
	SleepDefault  time.Time
	WakeOverride  *time.Time
	SleepOverride *time.Time
	Fixed         []model.FixedActivity
	AutoFill      bool
	Preferences   []Preference
	Energy        *int
	Now           time.Time
	NewID         func() string
}

// UsageFraction maps a self-reported energy level to the share of a free span
// the fill actually consumes: 0.5 for level 1, 0.9 for level 3, and 0.7 for
// anything else including unset.
func UsageFraction(energy *int) float64 {
	if energy == nil {
		return 0.7
	}
	switch *energy {
	case 1:
		return 0.5
	case 3:
		return 0.9
	default:
		return 0.7
	}
}

type span struct {
	start time.Time
	end   time.Time
}

// Generate produces the day's ordered task list. A degenerate window
// (effective sleep at or before effective wake) yields an empty list.
func Generate(in Input) []model.Task {
	newID := in.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	wake := effectiveInstant(in.WakeDefault, in.WakeOverride, in.Date)
	sleep := effectiveInstant(in.SleepDefault, in.SleepOverride, in.Date)
	if !sleep.After(wake) {
		return []model.Task{}
	}

	fraction := UsageFraction(in.Energy)
	blocks := fixedBlocksFor(in.Fixed, in.Weekday, in.Date, wake, sleep)

	tasks := make([]model.Task, 0, len(blocks)+8)
	ranges := make([]span, 0, len(blocks)+1)

	cursor := wake
	for _, b := range blocks {
		if b.start.After(cursor) {
			ranges = append(ranges, span{start: cursor, end: b.start})
		}
		tasks = append(tasks, model.Task{
			ID:    newID(),
			Title: b.name,
			Start: b.start,
			End:   b.end,
		})
		if b.end.After(cursor) {
			cursor = b.end
		}
	}
	if cursor.Before(sleep) {
		ranges = append(ranges, span{start: cursor, end: sleep})
	}
	if len(blocks) == 0 {
		ranges = []span{{start: wake, end: sleep}}
	}

	if in.AutoFill && len(in.Preferences) > 0 {
		tasks = append(tasks, fillRanges(ranges, in.Preferences, fraction, in.Now, newID)...)
	}

	model.SortTasks(tasks)
	return tasks
}

// effectiveInstant resolves a wake or sleep boundary for the target date:
// the override wins when present, otherwise the default's hour/minute is
// projected onto the date.
func effectiveInstant(def time.Time, override *time.Time, date time.Time) time.Time {
	if override != nil {
		return timeutil.OnDate(*override, date)
	}
	return timeutil.OnDate(def, date)
}

type fixedBlock struct {
	name  string
	start time.Time
	end   time.Time
}

func fixedBlocksFor(fixed []model.FixedActivity, weekday int, date, wake, sleep time.Time) []fixedBlock {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	out := make([]fixedBlock, 0, len(fixed))
	for _, fa := range fixed {
		day := fa.Days[weekday]
		if !day.Enabled {
			continue
		}
		start := timeutil.OnDate(day.Start, date)
		end := timeutil.OnDate(day.End, date)
		if start.Before(wake) {
			start = wake
		}
		if end.After(sleep) {
			end = sleep
		}
		if !end.After(start) {
			continue
		}
		out = append(out, fixedBlock{name: fa.Name, start: start, end: end})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start.Before(out[j].start)
	})
	return out
}

// fillRanges walks every free range with a local cursor, interleaving
// day-scoped one-shot routine blocks with the preference rotation. The
// one-shot flags deliberately persist across ranges so a day never gets a
// second lunch just because it has several free windows.
func fillRanges(ranges []span, prefs []Preference, fraction float64, now time.Time, newID func() string) []model.Task {
	out := make([]model.Task, 0, 8)
	prefIdx := 0
	var morningDone, lunchDone, dinnerDone, windDownDone bool

	for _, r := range ranges {
		cursor := r.start
		for {
			remaining := r.end.Sub(cursor)
			if remaining < minFillBlock {
				break
			}

			hour := cursor.Hour()
			if title, dur, ok := nextSpecialBlock(hour, remaining, fraction,
				&morningDone, &lunchDone, &dinnerDone, &windDownDone); ok {
				out = append(out, model.Task{
					ID:    newID(),
					Title: title,
					Start: cursor,
					End:   cursor.Add(dur),
				})
				cursor = cursor.Add(dur)
				continue
			}

			pref := prefs[prefIdx%len(prefs)]
			prefIdx++

			dur := scaledDuration(pref, fraction)
			if dur > remaining {
				dur = remaining / 2
				if dur < minFillBlock {
					dur = minFillBlock
				}
			}
			if dur > remaining {
				break
			}

			end := cursor.Add(dur)
			if !end.After(now) {
				// Never plan a block that would already be over.
				cursor = end
				continue
			}

			out = append(out, model.Task{
				ID:       newID(),
				Title:    pref.Title,
				Start:    cursor,
				End:      end,
				Activity: pref.Activity,
			})
			cursor = end
		}
	}
	return out
}

// nextSpecialBlock picks the highest-priority routine block allowed at the
// cursor's local hour, at most once each per day.
func nextSpecialBlock(hour int, remaining time.Duration, fraction float64, morning, lunch, dinner, windDown *bool) (string, time.Duration, bool) {
	switch {
	case hour < 10 && !*morning:
		*morning = true
		return morningTitle, capDuration(scaleDuration(remaining, fraction), morningBlockMax), true
	case hour >= 11 && hour <= 14 && !*lunch:
		*lunch = true
		return lunchTitle, capDuration(remaining, lunchBlockMax), true
	case hour >= 18 && hour <= 20 && !*dinner:
		*dinner = true
		return dinnerTitle, capDuration(remaining, dinnerBlockMax), true
	case hour >= 21 && !*windDown:
		*windDown = true
		return windDownTitle, capDuration(remaining, windDownBlockMax), true
	default:
		return "", 0, false
	}
}

func scaledDuration(pref Preference, fraction float64) time.Duration {
	base := 60 * time.Minute
	if pref.Activity != nil {
		base = pref.Activity.DefaultDuration()
	}
	return scaleDuration(base, fraction)
}

func scaleDuration(d time.Duration, fraction float64) time.Duration {
	return time.Duration(float64(d) * fraction)
}

func capDuration(d, max time.Duration) time.Duration {
	if d > max {
		return max
	}
	return d
}
