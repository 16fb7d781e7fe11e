package paladins

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// apiTimestampLayout is the timestamp format used across API responses. The
// month and day come without zero padding; the non-padded verbs accept both.
const apiTimestampLayout = "1/2/2006 3:04:05 PM"

// parseTimestamp converts an API timestamp. Empty or malformed values yield
// the zero time.
func parseTimestamp(value string) time.Time {
	t, err := time.ParseInLocation(apiTimestampLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// convertMapName strips the environment prefix and game-mode suffix the API
// attaches to map names.
func convertMapName(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range []string{"LIVE", "Ranked", "Practice", "WIP"} {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	for _, suffix := range []string{"(Siege)", "(Onslaught)", "(TDM)", "(KOTH)"} {
		if strings.HasSuffix(name, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	return strings.TrimSpace(name)
}

// chunked yields consecutive slices of at most size elements. The last chunk
// may be shorter.
func chunked[T any](items []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for i := 0; i < len(items); i += size {
			end := min(i+size, len(items))
			if !yield(items[i:end]) {
				return
			}
		}
	}
}

// deduplicated removes duplicates while preserving first-seen order, and
// drops the extra values given entirely.
func deduplicated[T comparable](items []T, remove ...T) []T {
	drop := make(map[T]struct{}, len(remove))
	for _, value := range remove {
		drop[value] = struct{}{}
	}
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, skip := drop[item]; skip {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// groupBy buckets items under the key each one maps to.
func groupBy[K comparable, T any](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		out[k] = append(out[k], item)
	}
	return out
}

func floorTime(t time.Time, d time.Duration) time.Time {
	return t.UTC().Truncate(d)
}

func ceilTime(t time.Time, d time.Duration) time.Time {
	floored := floorTime(t, d)
	if floored.Equal(t.UTC()) {
		return floored
	}
	return floored.Add(d)
}

// queueWindow is a single date+hour parameter pair for the match-listing
// endpoint. Hour is "-1" for a whole day, "H" for a whole hour, or "H,MM"
// for a ten-minute slice.
type queueWindow struct {
	date string
	hour string
}

func dayWindow(t time.Time) queueWindow {
	return queueWindow{date: t.Format("20060102"), hour: "-1"}
}

func hourWindow(t time.Time) queueWindow {
	return queueWindow{date: t.Format("20060102"), hour: strconv.Itoa(t.Hour())}
}

func minuteWindow(t time.Time) queueWindow {
	return queueWindow{
		date: t.Format("20060102"),
		hour: fmt.Sprintf("%d,%02d", t.Hour(), t.Minute()),
	}
}

// queueWindows yields the series of date+hour parameters covering the
// [start, end) range, using the coarsest granularity the range alignment
// allows: ten-minute slices up to an hour boundary, hours up to a day
// boundary, whole days across, then back down. Bounds are rounded outward
// to ten-minute marks. With reverse set, windows come newest first.
func queueWindows(start, end time.Time, reverse bool) iter.Seq[queueWindow] {
	const tenMinutes = 10 * time.Minute
	const day = 24 * time.Hour
	start = floorTime(start, tenMinutes)
	end = ceilTime(end, tenMinutes)
	return func(yield func(queueWindow) bool) {
		if !start.Before(end) {
			return
		}
		if reverse {
			if end.Minute() > 0 {
				closestHour := floorTime(end, time.Hour)
				for end.After(closestHour) {
					end = end.Add(-tenMinutes)
					if !yield(minuteWindow(end)) {
						return
					}
					if !end.After(start) {
						return
					}
				}
			}
			if end.Hour() > 0 {
				closestDay := floorTime(end, day)
				if !closestDay.Before(start) {
					for end.After(closestDay) {
						end = end.Add(-time.Hour)
						if !yield(hourWindow(end)) {
							return
						}
						if !end.After(start) {
							return
						}
					}
				}
			}
			closestDay := ceilTime(start, day)
			for end.After(closestDay) {
				end = end.Add(-day)
				if !yield(dayWindow(end)) {
					return
				}
			}
			if !end.After(start) {
				return
			}
			if start.Hour() > 0 {
				closestHour := ceilTime(start, time.Hour)
				for end.After(closestHour) {
					end = end.Add(-time.Hour)
					if !yield(hourWindow(end)) {
						return
					}
				}
				if !end.After(start) {
					return
				}
			}
			for end.After(start) {
				end = end.Add(-tenMinutes)
				if !yield(minuteWindow(end)) {
					return
				}
			}
		} else {
			if start.Minute() > 0 {
				closestHour := ceilTime(start, time.Hour)
				for start.Before(closestHour) {
					if !yield(minuteWindow(start)) {
						return
					}
					start = start.Add(tenMinutes)
					if !start.Before(end) {
						return
					}
				}
			}
			if start.Hour() > 0 {
				closestDay := ceilTime(start, day)
				if !closestDay.After(end) {
					for start.Before(closestDay) {
						if !yield(hourWindow(start)) {
							return
						}
						start = start.Add(time.Hour)
						if !start.Before(end) {
							return
						}
					}
				}
			}
			closestDay := floorTime(end, day)
			for start.Before(closestDay) {
				if !yield(dayWindow(start)) {
					return
				}
				start = start.Add(day)
			}
			if !start.Before(end) {
				return
			}
			if end.Hour() > 0 {
				closestHour := floorTime(end, time.Hour)
				for start.Before(closestHour) {
					if !yield(hourWindow(start)) {
						return
					}
					start = start.Add(time.Hour)
				}
				if !start.Before(end) {
					return
				}
			}
			for start.Before(end) {
				if !yield(minuteWindow(start)) {
					return
				}
				start = start.Add(tenMinutes)
			}
		}
	}
}

// Duration wraps time.Duration with a clock-style unit breakdown, the way
// match lengths and queue times are usually displayed.
type Duration struct {
	d time.Duration
}

// DurationOf wraps a time.Duration.
func DurationOf(d time.Duration) Duration {
	return Duration{d: d}
}

// DurationSeconds builds a Duration from a whole number of seconds, the unit
// the API reports lengths in.
func DurationSeconds(seconds int) Duration {
	return Duration{d: time.Duration(seconds) * time.Second}
}

// Days returns the whole days. May be negative for negative durations.
func (d Duration) Days() int {
	return int(d.d / (24 * time.Hour))
}

// Hours returns the hour component, in the 0-23 range.
func (d Duration) Hours() int {
	return int(d.d/time.Hour) % 24
}

// Minutes returns the minute component, in the 0-59 range.
func (d Duration) Minutes() int {
	return int(d.d/time.Minute) % 60
}

// Seconds returns the second component, in the 0-59 range.
func (d Duration) Seconds() int {
	return int(d.d/time.Second) % 60
}

// TotalDays returns the total duration expressed in days.
func (d Duration) TotalDays() float64 {
	return d.d.Hours() / 24
}

// TotalHours returns the total duration expressed in hours.
func (d Duration) TotalHours() float64 {
	return d.d.Hours()
}

// TotalMinutes returns the total duration expressed in minutes.
func (d Duration) TotalMinutes() float64 {
	return d.d.Minutes()
}

// TotalSeconds returns the total duration expressed in seconds.
func (d Duration) TotalSeconds() float64 {
	return d.d.Seconds()
}

// ToTimeDuration unwraps the underlying time.Duration.
func (d Duration) ToTimeDuration() time.Duration {
	return d.d
}

func (d Duration) String() string {
	var b strings.Builder
	if days := d.Days(); days != 0 {
		plural := ""
		if days != 1 && days != -1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "%d day%s, ", days, plural)
	}
	if hours := d.Hours(); hours != 0 {
		fmt.Fprintf(&b, "%d:", hours)
	}
	fmt.Fprintf(&b, "%02d:%02d", d.Minutes(), d.Seconds())
	return b.String()
}
