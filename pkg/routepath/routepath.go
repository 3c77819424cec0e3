// Package routepath provides pure helpers for reasoning about project-relative
// route paths with bracketed dynamic segments, e.g. api/users/[id].ts.
package routepath

import (
	"path"
	"regexp"
	"strings"
)

var bracketSpan = regexp.MustCompile(`\[.*\]`)

// Stem returns segment with its final extension removed.
func Stem(segment string) string {
	return strings.TrimSuffix(segment, path.Ext(segment))
}

// SegmentName returns the parameter name of a dynamic segment. The extension
// is stripped before inspection, so "[id]" and "[id].ts" both yield "id".
// Literal segments report ok=false.
func SegmentName(segment string) (name string, ok bool) {
	stem := Stem(segment)
	if len(stem) >= 2 && strings.HasPrefix(stem, "[") && strings.HasSuffix(stem, "]") {
		return stem[1 : len(stem)-1], true
	}
	return "", false
}

// NormalizeAbsolute rewrites the bracketed placeholder span of every segment
// to the literal sentinel "1" and drops the file extension. Two paths
// normalize equally exactly when they resolve to the same runtime route once
// parameters are substituted: api/[id].ts and api/1.ts both become api/1.
func NormalizeAbsolute(p string) string {
	dir, file := path.Split(p)
	joined := path.Join(dir, Stem(file))
	parts := strings.Split(joined, "/")
	for i, part := range parts {
		if loc := bracketSpan.FindStringIndex(part); loc != nil {
			parts[i] = part[:loc[0]] + "1" + part[loc[1]:]
		}
	}
	return strings.Join(parts, "/")
}

// Escape quotes regex metacharacters in a literal segment so it can be
// embedded in a generated match pattern.
func Escape(literal string) string {
	return regexp.QuoteMeta(literal)
}
