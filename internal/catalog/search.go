package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxDistanceRatio mirrors the fuzzy cut-off used for description matching.
const maxDistanceRatio = 0.4

// Search filters courses by title. Substring hits rank first, then fuzzy word
// matches by edit distance. An empty query returns the catalog unchanged.
func Search(courses []Course, query string) []Course {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return courses
	}
	type hit struct {
		course Course
		score  float64
	}
	var hits []hit
	for _, c := range courses {
		if s, ok := score(strings.ToLower(c.Title), q); ok {
			hits = append(hits, hit{course: c, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]Course, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.course)
	}
	return out
}

// score is 0 for a substring hit, otherwise the best normalized edit distance
// between the query and any title word.
func score(title, q string) (float64, bool) {
	if strings.Contains(title, q) {
		return 0, true
	}
	best := 1.0
	for _, word := range strings.Fields(title) {
		d := float64(levenshtein.ComputeDistance(word, q)) / float64(max(len(word), len(q)))
		if d < best {
			best = d
		}
	}
	if best < maxDistanceRatio {
		return best, true
	}
	return 0, false
}
