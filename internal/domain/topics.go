package domain

import (
	"sort"
	"strings"
)

// topicDelimiter is the only sequence that separates topics in the input
// sheets. A bare comma is part of the topic text, never a separator, because
// topic names themselves may contain commas.
const topicDelimiter = ", "

// SplitTopics splits a raw topic cell into a deduplicated, order-preserving
// topic list. Splitting happens only on the exact two-character sequence
// ", "; each piece is then whitespace-trimmed. An empty input yields an empty
// list. A piece that trims to the empty string (e.g. a trailing delimiter)
// makes the list ambiguous and returns ErrMalformedRecord.
func SplitTopics(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, topicDelimiter)
	seen := make(map[string]struct{}, len(parts))
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		topic := strings.TrimSpace(part)
		if topic == "" {
			return nil, ErrMalformedRecord
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics, nil
}

// PairOverlap returns the topic-overlap score of a reviewer pair for a paper:
// the number of paper topics covered by the union of the two reviewers' topic
// sets. This is the fixed scoring variant for the whole system; the
// alternative (summing each reviewer's individual overlap) double-counts
// topics both reviewers share and is deliberately not used.
func PairOverlap(paperTopics, r1Topics, r2Topics []string) int {
	union := make(map[string]struct{}, len(r1Topics)+len(r2Topics))
	for _, t := range r1Topics {
		union[t] = struct{}{}
	}
	for _, t := range r2Topics {
		union[t] = struct{}{}
	}

	score := 0
	for _, t := range paperTopics {
		if _, ok := union[t]; ok {
			score++
		}
	}
	return score
}

// SharedTopics returns the sorted list of paper topics covered by the union
// of the pair's topic sets. Used for the human-readable report column.
func SharedTopics(paperTopics, r1Topics, r2Topics []string) []string {
	union := make(map[string]struct{}, len(r1Topics)+len(r2Topics))
	for _, t := range r1Topics {
		union[t] = struct{}{}
	}
	for _, t := range r2Topics {
		union[t] = struct{}{}
	}

	var shared []string
	for _, t := range paperTopics {
		if _, ok := union[t]; ok {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	return shared
}
