// Package filename decodes the byte string an ALZ local file header stores
// for an entry's name. Modern archivers write UTF-8; older ones written on
// Korean systems write CP949 (EUC-KR plus IBM/Microsoft's extended hangul
// syllables), so a name that isn't valid UTF-8 is retried as CP949 before
// falling back to a lossy replacement (§4.6).
package filename

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// Decode converts raw entry-name bytes to a UTF-8 string.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return string(toValidUTF8(raw))
	}
	return string(decoded)
}

// toValidUTF8 replaces invalid bytes with the Unicode replacement
// character rather than dropping them, so a name with isolated bad bytes
// stays recognisable instead of silently shrinking.
func toValidUTF8(raw []byte) []rune {
	out := make([]rune, 0, len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		out = append(out, r)
		raw = raw[size:]
	}
	return out
}
