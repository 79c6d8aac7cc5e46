package bundle

import (
	"regexp"
	"strconv"
)

// hashPattern pulls the hash field straight out of the raw stats text.
// Stats files run to many megabytes; a full JSON parse just to read one
// field is not worth it.
var hashPattern = regexp.MustCompile(`"hash"\s*:\s*"([^"]+)"\s*,`)

// HashFromStatistics returns the bundle hash from raw stats text. When
// the field is missing the text length stands in as a coarse pseudo-hash:
// change detection then only notices edits that change the length. Known
// weak point, kept deliberately; do not strengthen it here.
func HashFromStatistics(text string) string {
	if m := hashPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strconv.Itoa(len(text))
}
