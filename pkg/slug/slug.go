// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns the readable part of an uploaded file name into an ASCII
// token safe for any content store: "Phở Bò.JPG" keeps "pho-bo".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps a slug so generated object names stay short.
const MaxLength = 64

// letters without a canonical decomposition to ASCII.
var folded = strings.NewReplacer(
	"đ", "d", "Đ", "d",
	"ß", "ss",
	"ø", "o", "Ø", "o",
	"ł", "l", "Ł", "l",
	"æ", "ae", "Æ", "ae",
)

// From lower-cases s, strips accents, and joins the remaining ASCII letter
// and digit runs with single hyphens. The result is at most MaxLength bytes
// and may be empty.
func From(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		folded.Replace(s),
	)
	if err != nil {
		stripped = s
	}

	var out strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && out.Len() > 0 {
				out.WriteByte('-')
			}
			pendingHyphen = false
			out.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	result := out.String()
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}
