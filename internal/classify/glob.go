package classify

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// globTokens are the wildcard forms recognised in a pattern, longest first so
// that "/**/" wins over "/**" and "**/" wins over "*".
var globTokens = []struct {
	glob  string
	regex string
}{
	{"/**/", "/(?:.*/)?"},
	{"/**", "/.*"},
	{"**/", "(?:.*/)?"},
	{"**", ".*"},
	{"*", "[^/]*"},
	{"?", "[^/]"},
}

// globBody translates one glob into an unanchored regular expression body.
func globBody(glob string) string {
	var sb strings.Builder
	literal := 0
	flush := func(end int) {
		if end > literal {
			sb.WriteString(regexp.QuoteMeta(glob[literal:end]))
		}
	}
	for i := 0; i < len(glob); {
		matched := false
		for _, tok := range globTokens {
			if strings.HasPrefix(glob[i:], tok.glob) {
				flush(i)
				sb.WriteString(tok.regex)
				i += len(tok.glob)
				literal = i
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	flush(len(glob))
	return sb.String()
}

// compileGlobs builds a single matcher for a set of globs. A path matches when
// any glob matches the whole path or a suffix of it that begins after a "/".
// A nil set yields a nil matcher; an empty set matches nothing.
func compileGlobs(globs []string) (*regexp.Regexp, error) {
	if globs == nil {
		return nil, nil
	}
	if len(globs) == 0 {
		return regexp.Compile(`[^\s\S]`)
	}
	sorted := slices.Clone(globs)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	bodies := make([]string, 0, len(sorted))
	for _, g := range sorted {
		bodies = append(bodies, globBody(g))
	}
	return regexp.Compile(`(?:^|/)(?:` + strings.Join(bodies, "|") + `)$`)
}
