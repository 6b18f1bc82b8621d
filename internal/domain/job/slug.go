package job

import (
	"strconv"
	"strings"
)

const fallbackSlug = "job"

// NormalizeSlug lower-cases title, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends. Titles with
// nothing usable become "job". Length is not capped.
func NormalizeSlug(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte(c)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// SlugCandidate returns the n-th candidate for base: base itself for n < 2,
// otherwise base-n.
func SlugCandidate(base string, n int) string {
	if n < 2 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
