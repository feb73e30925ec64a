package knowledge

import (
	"sort"
	"strings"
)

// Match pairs a pack entry with its relevance score.
type Match struct {
	Score int
	Entry Entry
}

// Search scores every entry in pack against query and returns the top
// limit matches, highest score first, ties broken by entry ID for
// deterministic ordering. The scoring weights are ported verbatim from the
// original implementation's search_builtin_pack:
//
//   - tag containment in the full query:  +15
//   - query word exactly equals a tag:    +10
//   - query word (len>3) is substring of a tag: +5
//   - query word (len>3) found in the title:    +8
//   - query word (len>4) found in the body:     +3
func Search(pack []Entry, query string, limit int) []Match {
	queryLower := strings.ToLower(query)
	words := strings.Fields(queryLower)

	var matches []Match
	for _, entry := range pack {
		score := 0

		for _, tag := range entry.Tags {
			if strings.Contains(queryLower, tag) {
				score += 15
			}
			for _, word := range words {
				switch {
				case word == tag:
					score += 10
				case len(word) > 3 && strings.Contains(tag, word):
					score += 5
				}
			}
		}

		titleLower := strings.ToLower(entry.Title)
		for _, word := range words {
			if len(word) > 3 && strings.Contains(titleLower, word) {
				score += 8
			}
		}

		bodyLower := strings.ToLower(entry.Body)
		for _, word := range words {
			if len(word) > 4 && strings.Contains(bodyLower, word) {
				score += 3
			}
		}

		if score > 0 {
			matches = append(matches, Match{Score: score, Entry: entry})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.ID < matches[j].Entry.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// TryAnswer returns the single best match for query if its score meets
// minScore, or false if nothing in pack clears the bar. This is the gate
// the specialist uses to decide whether a query can be answered straight
// from the knowledge pack without probe evidence or an LLM call.
func TryAnswer(pack []Entry, query string, minScore int) (Entry, bool) {
	matches := Search(pack, query, 1)
	if len(matches) == 0 || matches[0].Score < minScore {
		return Entry{}, false
	}
	return matches[0].Entry, true
}
