// Package fuzzy finds rows whose text attribute is similar to a query.
package fuzzy

import (
	"math"

	"github.com/agext/levenshtein"
)

// indel counts a substitution as a deletion plus an insertion.
var indel = levenshtein.NewParams().SubCost(2)

// Match is a row that passed the similarity threshold.
type Match[T any] struct {
	Row   T
	Score int
}

// Ratio returns the normalized InDel similarity of two strings, 0..100.
func Ratio(a, b string) int {
	return ratio([]rune(a), []rune(b))
}

func ratio(a, b []rune) int {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	dist := levenshtein.Distance(string(a), string(b), indel)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// PartialRatio scores how well the shorter string matches any part of the
// longer one, 0..100. It is the best Ratio of the shorter string against
// every window of the longer string of the same length. An empty string
// scores 0.
func PartialRatio(query, target string) int {
	short, long := []rune(query), []rune(target)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	var res int
	for i := 0; i+len(short) <= len(long); i++ {
		score := ratio(short, long[i:i+len(short)])
		if score > res {
			res = score
			if res == 100 {
				break
			}
		}
	}
	return res
}

// Search returns rows whose attribute scores at least threshold against
// the query. The attribute is read by attr, rows where it returns false
// never match. Matches keep the order of rows.
func Search[T any](
	rows []T,
	query string,
	attr func(T) (string, bool),
	threshold int,
) []Match[T] {
	var res []Match[T]
	for _, row := range rows {
		val, ok := attr(row)
		if !ok {
			continue
		}
		score := PartialRatio(query, val)
		if score >= threshold {
			res = append(res, Match[T]{Row: row, Score: score})
		}
	}
	return res
}

// SearchRecords is Search over key-value records, comparing the value
// stored under key.
func SearchRecords(
	records []map[string]string,
	query, key string,
	threshold int,
) []Match[map[string]string] {
	attr := func(r map[string]string) (string, bool) {
		v, ok := r[key]
		return v, ok
	}
	return Search(records, query, attr, threshold)
}
