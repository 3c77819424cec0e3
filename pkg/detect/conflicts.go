package detect

import (
	"fmt"
	"strings"

	"skylift/pkg/routepath"
)

// pathCache memoizes normalized absolute paths for a single detection run.
// The conflict scan is quadratic over the candidate files, so each distinct
// path must be normalized at most once. A fresh cache per call keeps
// concurrent detections isolated.
type pathCache struct {
	normalized map[string]string
}

func newPathCache() *pathCache {
	return &pathCache{normalized: make(map[string]string)}
}

func (c *pathCache) normalize(p string) string {
	if n, ok := c.normalized[p]; ok {
		return n
	}
	n := routepath.NormalizeAbsolute(p)
	c.normalized[p] = n
	return n
}

// conflictingSegment returns the first placeholder name that occurs in more
// than one segment of filePath.
func conflictingSegment(filePath string) (string, bool) {
	seen := make(map[string]bool)
	for _, segment := range strings.Split(filePath, "/") {
		if name, ok := routepath.SegmentName(segment); ok {
			if seen[name] {
				return name, true
			}
			seen[name] = true
		}
	}
	return "", false
}

// partiallyMatches reports whether two paths would read as the same logical
// route: their aligned leading segments are equal or both placeholders, and
// some placeholder pair at the same position disagrees on its name. Only the
// leading min(len) segments are compared; trailing segments of the longer
// path are never inspected.
func partiallyMatches(a, b string) bool {
	partsA := strings.Split(a, "/")
	partsB := strings.Split(b, "/")
	long, short := partsA, partsB
	if len(partsB) > len(partsA) {
		long, short = partsB, partsA
	}
	for i, segShort := range short {
		segLong := long[i]
		nameLong, okLong := routepath.SegmentName(segLong)
		nameShort, okShort := routepath.SegmentName(segShort)
		if segShort != segLong && (!okLong || !okShort) {
			return false
		}
		if nameLong != nameShort {
			return true
		}
	}
	return false
}

// conflictError checks filePath for a self-conflicting placeholder and for
// collisions with the other candidate files, either exact (equal normalized
// paths) or partial (placeholder-name mismatch at the same position). All
// conflicting paths are reported in one aggregated error.
func conflictError(filePath string, candidates []string, cache *pathCache) *Error {
	if name, ok := conflictingSegment(filePath); ok {
		return errf(CodeConflictingPathSegment,
			"The segment %q occurs more than one time in your path %q. Please make sure that every segment in a path is unique.",
			name, filePath)
	}
	current := cache.normalize(filePath)
	var conflicts []string
	for _, other := range candidates {
		if other == filePath {
			continue
		}
		if cache.normalize(other) == current || partiallyMatches(filePath, other) {
			conflicts = append(conflicts, fmt.Sprintf("%q", other))
		}
	}
	if len(conflicts) > 0 {
		return errf(CodeConflictingFilePath,
			"Two or more files have conflicting paths or names. Please make sure path segments and filenames, without their extension, are unique. The path %q has conflicts with %s.",
			filePath, concatText(conflicts))
	}
	return nil
}

// concatText joins items with natural-language conjunctions: "a", "a and b",
// "a, b, and c".
func concatText(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
