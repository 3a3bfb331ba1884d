package core

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Location struct {
	ID   string `mapstructure:"id" toml:"id" json:"id"`
	Name string `mapstructure:"name" toml:"name" json:"name"`
}

// Abbrev is the two-letter badge drawn on the ring.
func (l Location) Abbrev() string {
	r := []rune(l.Name)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

func DefaultLocations() []Location {
	return []Location{
		{ID: "new-york", Name: "New York"},
		{ID: "london", Name: "London"},
		{ID: "tokyo", Name: "Tokyo"},
		{ID: "paris", Name: "Paris"},
		{ID: "rome", Name: "Rome"},
		{ID: "cairo", Name: "Cairo"},
		{ID: "rio", Name: "Rio"},
		{ID: "sydney", Name: "Sydney"},
	}
}

// Locations is the fixed, ordered destination list.
type Locations []Location

func (ls Locations) Index(id string) int {
	for i, l := range ls {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (ls Locations) Contains(id string) bool {
	return ls.Index(id) >= 0
}

// Name resolves id to its display name, or "" when unknown.
func (ls Locations) Name(id string) string {
	if i := ls.Index(id); i >= 0 {
		return ls[i].Name
	}
	return ""
}

// maxResolveDistance bounds how many edits a typed destination may be away
// from an id or name before Resolve gives up.
const maxResolveDistance = 2

// Resolve maps free text ("Tokio", "new york", "rio") to a location. Exact id
// or name matches win, then ordered subsequence matches, then the closest
// edit distance within maxResolveDistance.
func (ls Locations) Resolve(query string) (Location, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Location{}, false
	}
	for _, l := range ls {
		if strings.EqualFold(l.ID, q) || strings.EqualFold(l.Name, q) {
			return l, true
		}
	}

	best, bestScore := -1, 0
	for i, l := range ls {
		score, ok := l.matchScore(q)
		if !ok {
			continue
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return ls[best], true
	}

	best, bestDist := -1, maxResolveDistance+1
	for i, l := range ls {
		d := min(
			levenshtein.ComputeDistance(q, strings.ToLower(l.ID)),
			levenshtein.ComputeDistance(q, strings.ToLower(l.Name)),
		)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Location{}, false
	}
	return ls[best], true
}

// Suggest ranks locations whose name or id contains query as an ordered
// subsequence, best first, keeping list order between equal scores.
func (ls Locations) Suggest(query string, limit int) []Location {
	q := strings.TrimSpace(query)
	if q == "" || limit <= 0 {
		return nil
	}
	type scored struct {
		loc   Location
		score int
		index int
	}
	rows := make([]scored, 0, len(ls))
	for i, l := range ls {
		score, ok := l.matchScore(q)
		if !ok {
			continue
		}
		rows = append(rows, scored{loc: l, score: score, index: i})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].index < rows[j].index
	})
	out := make([]Location, 0, min(limit, len(rows)))
	for _, r := range rows {
		if len(out) == limit {
			break
		}
		out = append(out, r.loc)
	}
	return out
}

// matchScore scores query against the name and id of l, keeping the better
// of the two. ok is false when neither contains query as an ordered
// subsequence.
func (l Location) matchScore(query string) (score int, ok bool) {
	for _, text := range []string{l.Name, l.ID} {
		if sc, hit := subsequenceScore(text, query); hit && (!ok || sc > score) {
			score, ok = sc, true
		}
	}
	return score, ok
}

// subsequenceScore awards a point per matched rune, a bonus when the match
// starts the text and another for every run of adjacent matches.
func subsequenceScore(text, query string) (int, bool) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return 0, true
	}
	score, next, prev := len(q), 0, -2
	for i, r := range []rune(strings.ToLower(text)) {
		if r != q[next] {
			continue
		}
		switch {
		case next == 0 && i == 0:
			score += 10
		case i == prev+1:
			score += 3
		}
		prev = i
		if next++; next == len(q) {
			return score, true
		}
	}
	return 0, false
}
