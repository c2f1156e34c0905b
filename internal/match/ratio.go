// Package match implements the length-normalized string similarity used
// for strain dedup and effect fuzzy matching. Scores are 0-100 where 100
// is an exact match.
package match

import "sort"

// Match is a scored candidate returned by BestMatches.
type Match struct {
	Candidate string
	Score     int
}

// Ratio returns the similarity between a and b on a 0-100 scale,
// rounded down. The score is based on indel distance (edit distance
// where a substitution costs two, one delete plus one insert):
// 100 * (lenA + lenB - distance) / (lenA + lenB). Symmetric. Two empty
// strings score 100.
//
// Substitution cost two matters for short noisy names: "blue dream"
// against "blue dream 1" scores 90 here, where a plain edit-distance
// ratio over max length gives only 83 and would miss the default
// dedup threshold.
func Ratio(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 100
	}
	dist := indelDistance(ar, br)
	return (100 * (total - dist)) / total
}

// BestMatches scores query against every candidate and returns those at
// or above cutoff, ordered by score descending. Ties keep the candidates'
// input order so repeated runs over identical input are deterministic.
// limit <= 0 means no limit.
func BestMatches(query string, candidates []string, cutoff, limit int) []Match {
	matches := make([]Match, 0, 8)
	for _, c := range candidates {
		score := Ratio(query, c)
		if score >= cutoff {
			matches = append(matches, Match{Candidate: c, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// indelDistance computes edit distance over runes with substitutions
// disallowed (cost 2 via delete+insert), using a two-row table.
func indelDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			if del < ins {
				curr[j] = del
			} else {
				curr[j] = ins
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
