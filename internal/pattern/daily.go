package pattern

import (
	"sort"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// dayHour is a (weekday, hour) bucket key. Weekday is zero-based Monday.
type dayHour struct {
	day  int
	hour int
}

// DiscoverDaily finds entities that reach the same state in the same
// (weekday, hour) slot week after week. A bucket needs at least
// opts.MinOccurrences events; its majority state must hold a share of at
// least opts.ConfidenceThreshold. Majority ties resolve to the state seen
// first in event order.
func DiscoverDaily(histories history.Map, opts Options) []Pattern {
	var patterns []Pattern

	for _, entityID := range sortedEntities(histories) {
		events := histories[entityID]
		if len(events) < opts.MinOccurrences {
			continue
		}
		domain := history.Domain(entityID)

		buckets := make(map[dayHour]*stateCounter)
		for _, ev := range events {
			key := dayHour{day: isoWeekday(ev.Timestamp.Weekday()), hour: ev.Timestamp.Hour()}
			c := buckets[key]
			if c == nil {
				c = newStateCounter()
				buckets[key] = c
			}
			c.add(ev.State)
		}

		keys := make([]dayHour, 0, len(buckets))
		for key := range buckets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].day != keys[j].day {
				return keys[i].day < keys[j].day
			}
			return keys[i].hour < keys[j].hour
		})

		for _, key := range keys {
			c := buckets[key]
			total := c.total()
			if total < opts.MinOccurrences {
				continue
			}
			state, count := c.majority()
			confidence := float64(count) / float64(total)
			if confidence < opts.ConfidenceThreshold {
				continue
			}
			patterns = append(patterns, Pattern{
				Kind:        KindDaily,
				EntityID:    entityID,
				Domain:      domain,
				DayOfWeek:   key.day,
				Hour:        key.hour,
				State:       state,
				Confidence:  confidence,
				Occurrences: count,
			})
		}
	}

	return patterns
}

// isoWeekday converts Go's Sunday-based time.Weekday to a zero-based
// Monday index, matching the day numbering used in daily patterns.
func isoWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// sortedEntities returns entity ids in lexical order so miner output is
// stable regardless of map iteration order.
func sortedEntities(histories history.Map) []string {
	ids := histories.Entities()
	sort.Strings(ids)
	return ids
}
