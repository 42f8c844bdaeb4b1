// Package matcher evaluates rule matchers against content units. All
// evaluation is pure: a matcher plus a unit yields zero or more hits and
// never an error, since every pattern was compiled at load time.
package matcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ghostai/ghostscan/internal/rules"
	"github.com/ghostai/ghostscan/internal/types"
)

// Evaluate runs one matcher over one content unit and returns its hits
// in ascending offset order. Hits never span unit boundaries.
func Evaluate(m rules.Matcher, u types.ContentUnit) []types.Hit {
	switch m.Kind {
	case rules.KindRegex:
		return evalRegex(m, u)
	case rules.KindKeyword:
		return evalKeyword(m, u)
	case rules.KindHeuristic:
		return evalHeuristic(m, u)
	}
	return nil
}

// Apply evaluates every matcher of a rule in declaration order and
// concatenates the hits. Enablement is not checked here; the engine
// filters disabled rules after override resolution.
func Apply(r rules.Rule, u types.ContentUnit) []types.Hit {
	var out []types.Hit
	for _, m := range r.Matchers {
		out = append(out, Evaluate(m, u)...)
	}
	return out
}

func evalRegex(m rules.Matcher, u types.ContentUnit) []types.Hit {
	locs := m.Regexp().FindAllStringIndex(u.Text, -1)
	if len(locs) == 0 {
		return nil
	}
	hits := make([]types.Hit, 0, len(locs))
	for _, loc := range locs {
		hits = append(hits, types.Hit{
			Offset:  loc[0],
			Line:    LineAt(u.Text, loc[0]),
			Matched: u.Text[loc[0]:loc[1]],
		})
	}
	return hits
}

func evalKeyword(m rules.Matcher, u types.ContentUnit) []types.Hit {
	// Scan the original text rune by rune under case folding. Lowering
	// a copy up front would be cheaper, but case mapping can change
	// rune widths (U+0130 shrinks, U+023A grows), so offsets into a
	// lowered copy are not offsets into the text.
	// First-starting phrase wins per offset.
	seen := map[int]bool{}
	var offsets []int
	matched := map[int]string{}
	for _, phrase := range m.Phrases() {
		for at := 0; at < len(u.Text); {
			if n := foldMatchLen(u.Text[at:], phrase); n > 0 && !seen[at] {
				seen[at] = true
				offsets = append(offsets, at)
				matched[at] = u.Text[at : at+n]
			}
			_, sz := utf8.DecodeRuneInString(u.Text[at:])
			if sz < 1 {
				sz = 1
			}
			at += sz
		}
	}
	if len(offsets) == 0 {
		return nil
	}
	sort.Ints(offsets)
	hits := make([]types.Hit, 0, len(offsets))
	for _, at := range offsets {
		hits = append(hits, types.Hit{Offset: at, Line: LineAt(u.Text, at), Matched: matched[at]})
	}
	return hits
}

// foldMatchLen reports how many bytes at the start of text match phrase
// under simple case folding, or 0 when they do not.
func foldMatchLen(text, phrase string) int {
	n := 0
	for _, pr := range phrase {
		tr, sz := utf8.DecodeRuneInString(text[n:])
		if sz == 0 || !foldEq(tr, pr) {
			return 0
		}
		n += sz
	}
	return n
}

func foldEq(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func evalHeuristic(m rules.Matcher, u types.ContentUnit) []types.Hit {
	// language mismatch is routing, not failure
	if !strings.EqualFold(m.Language, u.Language) {
		return nil
	}
	needle := m.Needle()
	var hits []types.Hit
	from := 0
	for {
		idx := strings.Index(u.Text[from:], needle)
		if idx < 0 {
			break
		}
		at := from + idx
		if tokenBoundaryBefore(u.Text, at) {
			hits = append(hits, types.Hit{Offset: at, Line: LineAt(u.Text, at), Matched: m.Construct})
		}
		from = at + len(needle)
	}
	return hits
}

// tokenBoundaryBefore reports whether the byte preceding offset cannot
// extend an identifier, so "eval(" does not fire inside "retrieval(".
func tokenBoundaryBefore(text string, offset int) bool {
	if offset == 0 {
		return true
	}
	c := text[offset-1]
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '.':
		return false
	}
	return true
}

// LineAt returns the 1-based line number containing the byte offset.
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
