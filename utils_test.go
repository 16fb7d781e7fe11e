package paladins

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	parsed := parseTimestamp("10/11/2023 1:05:09 PM")
	assert.Equal(t, time.Date(2023, 10, 11, 13, 5, 9, 0, time.UTC), parsed)

	// single-digit months and days come without zero padding
	parsed = parseTimestamp("3/18/2019 2:05:01 PM")
	assert.Equal(t, time.Date(2019, 3, 18, 14, 5, 1, 0, time.UTC), parsed)
	parsed = parseTimestamp("12/3/2022 9:00:00 AM")
	assert.Equal(t, time.Date(2022, 12, 3, 9, 0, 0, 0, time.UTC), parsed)

	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("not a timestamp").IsZero())
}

func TestConvertMapName(t *testing.T) {
	cases := map[string]string{
		"LIVE Fish Market":       "Fish Market",
		"Ranked Frog Isle":       "Frog Isle",
		"Practice Jaguar Falls":  "Jaguar Falls",
		"Jaguar Falls (Siege)":   "Jaguar Falls",
		"Foreman's Rise (TDM)":   "Foreman's Rise",
		"Magistrate's Archives":  "Magistrate's Archives",
		"LIVE Snowfall Junction (Onslaught)": "Snowfall Junction",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, convertMapName(input), input)
	}
}

func TestChunked(t *testing.T) {
	var chunks [][]int
	for chunk := range chunked([]int{1, 2, 3, 4, 5}, 2) {
		chunks = append(chunks, chunk)
	}
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
}

func TestDeduplicated(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, deduplicated([]int{3, 1, 0, 3, 2, 1, 0}, 0))
	assert.Empty(t, deduplicated([]int{0, 0}, 0))
}

func TestQueueWindows(t *testing.T) {
	start := time.Date(2023, 10, 10, 9, 50, 0, 0, time.UTC)
	end := time.Date(2023, 10, 12, 1, 10, 0, 0, time.UTC)

	var forward []queueWindow
	for window := range queueWindows(start, end, false) {
		forward = append(forward, window)
	}
	// one 10-minute slice, 14 hours, a full day, one hour, one more slice
	require.Len(t, forward, 18)
	assert.Equal(t, queueWindow{date: "20231010", hour: "9,50"}, forward[0])
	assert.Equal(t, queueWindow{date: "20231010", hour: "10"}, forward[1])
	assert.Equal(t, queueWindow{date: "20231011", hour: "-1"}, forward[15])
	assert.Equal(t, queueWindow{date: "20231012", hour: "0"}, forward[16])
	assert.Equal(t, queueWindow{date: "20231012", hour: "1,00"}, forward[17])

	var reversed []queueWindow
	for window := range queueWindows(start, end, true) {
		reversed = append(reversed, window)
	}
	require.Len(t, reversed, 18)
	assert.Equal(t, queueWindow{date: "20231012", hour: "1,00"}, reversed[0])
	assert.Equal(t, queueWindow{date: "20231010", hour: "9,50"}, reversed[17])
}

func TestQueueWindowsBoundsRounding(t *testing.T) {
	start := time.Date(2023, 5, 1, 12, 3, 0, 0, time.UTC)
	end := time.Date(2023, 5, 1, 12, 17, 0, 0, time.UTC)

	var windows []queueWindow
	for window := range queueWindows(start, end, false) {
		windows = append(windows, window)
	}
	assert.Equal(t, []queueWindow{
		{date: "20230501", hour: "12,00"},
		{date: "20230501", hour: "12,10"},
	}, windows)
}

func TestQueueWindowsEmptyRange(t *testing.T) {
	at := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for range queueWindows(at, at, false) {
		t.Fatal("empty range yielded a window")
	}
	for range queueWindows(at.Add(time.Hour), at, false) {
		t.Fatal("inverted range yielded a window")
	}
}

func TestDuration(t *testing.T) {
	d := DurationSeconds(2*24*3600 + 3*3600 + 4*60 + 5)
	assert.Equal(t, 2, d.Days())
	assert.Equal(t, 3, d.Hours())
	assert.Equal(t, 4, d.Minutes())
	assert.Equal(t, 5, d.Seconds())
	assert.Equal(t, "2 days, 3:04:05", d.String())

	assert.Equal(t, "15:30", DurationSeconds(15*60+30).String())
	assert.InDelta(t, 0.5, DurationOf(12*time.Hour).TotalDays(), 1e-9)
	assert.Equal(t, 90.0, DurationOf(90*time.Minute).TotalMinutes())
}
