package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 10, hour, minute, 0, 0, time.Local)
}

func TestNextSlot(t *testing.T) {
	times := []string{"09:00", "12:00", "17:00"}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before first slot", at(7, 30), at(9, 0)},
		{"between slots", at(10, 15), at(12, 0)},
		{"just before last", at(16, 59), at(17, 0)},
		{"exactly on a slot rolls forward", at(12, 0), at(17, 0)},
		{"after last slot wraps to tomorrow", at(18, 0), at(9, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextSlot(tt.now, times)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.now), "slot must be strictly after now")
		})
	}
}

func TestNextSlot_EmptyTimesFallsBackToDefaults(t *testing.T) {
	now := at(10, 30)
	got := nextSlot(now, nil)
	assert.Equal(t, at(12, 0), got)
	assert.True(t, got.After(now))
}

func TestNextSlot_MalformedEntriesSkipped(t *testing.T) {
	now := at(8, 0)
	got := nextSlot(now, []string{"not-a-time", "25:99", "11:30"})
	assert.Equal(t, at(11, 30), got)
}

func TestNextSlot_AllMalformedFallsBackToDefaults(t *testing.T) {
	now := at(8, 0)
	got := nextSlot(now, []string{"nope", "also nope"})
	assert.Equal(t, at(9, 0), got)
}

func TestParsePostingTimes(t *testing.T) {
	parsed := parsePostingTimes([]string{"09:00", "23:59", "bad"})
	assert.Len(t, parsed, 2)
	assert.Equal(t, clockTime{9, 0}, parsed[0])
	assert.Equal(t, clockTime{23, 59}, parsed[1])
}
