package errors

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// SimilarNames returns up to three candidates close to target, best first.
// Subsequence matches are preferred; otherwise candidates within a small
// edit distance are returned.
func SimilarNames(target string, candidates []string) []string {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Sort(ranks)

	var names []string
	for _, rank := range ranks {
		if strings.EqualFold(rank.Target, target) {
			continue
		}
		names = append(names, rank.Target)
		if len(names) == maxSuggestions {
			return names
		}
	}
	if len(names) > 0 {
		return names
	}

	type scored struct {
		name     string
		distance int
	}
	var near []scored
	lower := strings.ToLower(target)
	for _, candidate := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate))
		if d > 0 && d <= 2 {
			near = append(near, scored{candidate, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].distance != near[j].distance {
			return near[i].distance < near[j].distance
		}
		return near[i].name < near[j].name
	})
	for _, c := range near {
		names = append(names, c.name)
		if len(names) == maxSuggestions {
			break
		}
	}
	return names
}
