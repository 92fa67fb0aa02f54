package tag

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/dishhub/pkg/slice"
)

// Tag is a free-form label attached to dishes. Names are stored normalized
// and are unique; a tag outlives every dish that references it.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

var lower = cases.Lower(language.Und)

// Normalize strips every whitespace rune, composes to NFC and lower-cases.
// "  Spicy Food " and "spicyfood" normalize to the same name.
func Normalize(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return lower.String(norm.NFC.String(stripped))
}

// ParseList turns a comma separated request value into a sorted set of
// normalized names. Empty segments are dropped, so "spicy,,soup," yields
// [soup spicy] and "" or " , " yields an empty set.
func ParseList(raw string) []string {
	segments := slice.Filter(strings.Split(Normalize(raw), ","), func(segment string) bool {
		return segment != ""
	})

	names := slice.Unique(segments)
	sort.Strings(names)
	return names
}
