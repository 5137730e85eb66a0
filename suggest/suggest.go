// Package suggest ranks known names by their spelling similarity to an unknown one.
//
// Similarity is measured on trigrams: both names are lower-cased, padded with two blanks on each
// side and cut into overlapping three-character grams. With s shared grams and a grams in the
// union of both (as multisets), the similarity is (a² - (a-s)²) / a², which favours names that
// share most of their grams over names that share a few.
package suggest

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Threshold is the minimum similarity a name needs to be suggested.
const Threshold = 0.40

const (
	arity = 3
	warp  = 2.0
)

// Similarity returns the trigram similarity of a and b in [0, 1], ignoring case.
func Similarity(a, b string) float64 {
	ga := grams(a)
	gb := grams(b)

	total := 0
	for _, n := range ga {
		total += n
	}
	for _, n := range gb {
		total += n
	}
	same := 0
	for g, n := range ga {
		if m, ok := gb[g]; ok {
			same += min(n, m)
		}
	}
	all := float64(total - same)
	if all == 0 {
		return 0
	}
	diff := all - float64(same)
	return (pow(all) - pow(diff)) / pow(all)
}

func pow(x float64) float64 {
	r := 1.0
	for i := 0; i < int(warp); i++ {
		r *= x
	}
	return r
}

func grams(s string) map[string]int {
	pad := strings.Repeat(" ", arity-1)
	rs := []rune(pad + strings.ToLower(s) + pad)
	gs := map[string]int{}
	for i := 0; i+arity <= len(rs); i++ {
		gs[string(rs[i:i+arity])]++
	}
	return gs
}

type candidate struct {
	name  string
	score float64
	dist  int
}

// Similar returns the candidates whose similarity to name reaches threshold, best first.
// Equally similar candidates are ordered by edit distance and then by name, so the result
// does not depend on the order of candidates.
func Similar(name string, candidates []string, threshold float64) []string {
	var cs []*candidate
	seen := map[string]struct{}{}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		score := Similarity(name, c)
		if score < threshold {
			continue
		}
		cs = append(cs, &candidate{
			name:  c,
			score: score,
			dist:  levenshtein.Distance(strings.ToLower(name), strings.ToLower(c), nil),
		})
	}
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].score != cs[j].score {
			return cs[i].score > cs[j].score
		}
		if cs[i].dist != cs[j].dist {
			return cs[i].dist < cs[j].dist
		}
		return cs[i].name < cs[j].name
	})

	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.name)
	}
	return names
}

// DidYouMean is Similar with the default threshold.
func DidYouMean(name string, candidates []string) []string {
	return Similar(name, candidates, Threshold)
}
