package comments

import (
	"sort"

	"kiricut/internal/types"
)

// Stats summarizes a chat replay. Duration is the span from the first to
// the last event, not the stream length.
func Stats(events []types.ChatEvent) types.ChatStats {
	st := types.ChatStats{TotalEvents: len(events)}
	if len(events) == 0 {
		return st
	}

	authors := make(map[string]struct{}, len(events))
	minTS, maxTS := events[0].Timestamp, events[0].Timestamp
	for _, ev := range events {
		if ev.Author != "" {
			authors[ev.Author] = struct{}{}
		}
		if ev.Timestamp < minTS {
			minTS = ev.Timestamp
		}
		if ev.Timestamp > maxTS {
			maxTS = ev.Timestamp
		}
	}
	st.UniqueAuthors = len(authors)
	st.Duration = maxTS - minTS
	if st.Duration > 0 {
		st.EventsPerMinute = float64(st.TotalEvents) / (st.Duration / 60)
	}
	return st
}

// TopAuthors returns the n most active authors, most events first. Ties
// break on author name so the order is stable.
func TopAuthors(events []types.ChatEvent, n int) []types.AuthorCount {
	if n <= 0 {
		return nil
	}
	byAuthor := make(map[string]int)
	for _, ev := range events {
		if ev.Author != "" {
			byAuthor[ev.Author]++
		}
	}
	out := make([]types.AuthorCount, 0, len(byAuthor))
	for author, count := range byAuthor {
		out = append(out, types.AuthorCount{Author: author, Events: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Events != out[j].Events {
			return out[i].Events > out[j].Events
		}
		return out[i].Author < out[j].Author
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
