package schedule

import (
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
)

// DefaultPostingTimes is the slot list used when none is configured.
var DefaultPostingTimes = []string{"09:00", "12:00", "17:00"}

type clockTime struct {
	hour, minute int
}

func parsePostingTimes(times []string) []clockTime {
	parsed := make([]clockTime, 0, len(times))
	for _, s := range times {
		t, err := time.Parse("15:04", s)
		if err != nil {
			debuglog.Warnf("ignoring malformed posting time %q", s)
			continue
		}
		parsed = append(parsed, clockTime{hour: t.Hour(), minute: t.Minute()})
	}
	return parsed
}

// nextSlot scans the posting times in configured order for the first one
// strictly after now on the same day; when today's slots are exhausted it
// wraps to the first configured time tomorrow. Each call computes from
// now, not from previously assigned slots, so two posts scheduled in one
// batch can land on the same slot.
func nextSlot(now time.Time, times []string) time.Time {
	parsed := parsePostingTimes(times)
	if len(parsed) == 0 {
		parsed = parsePostingTimes(DefaultPostingTimes)
	}

	for _, ct := range parsed {
		slot := time.Date(now.Year(), now.Month(), now.Day(), ct.hour, ct.minute, 0, 0, now.Location())
		if slot.After(now) {
			return slot
		}
	}

	first := parsed[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first.hour, first.minute, 0, 0, now.Location())
}
