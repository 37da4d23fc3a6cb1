// Package ofx reads bank-statement documents: it repairs the known defects
// real-world OFX exports carry and delegates the structural parse to the
// ofxgo library.
package ofx

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// PlaceholderInstitution replaces the inner text of the ORG and FID tag
// pairs. Some banks emit malformed values there that break the structural
// parse; the actual value is never used, so a fixed placeholder is safe.
const PlaceholderInstitution = "BANCO"

// Known-problematic tag pairs. Matching is case-insensitive and non-greedy:
// the rewrite must stop at the first closing tag of the same name and never
// eat content past it. RE2 has no backreferences, so each pair gets its own
// pattern.
var (
	orgTagRe = regexp.MustCompile(`(?i)<ORG>.*?</ORG>`)
	fidTagRe = regexp.MustCompile(`(?i)<FID>.*?</FID>`)
)

// mojibakeArtifact is a stray character some exports leave behind from a
// bad encoding round-trip (U+0192, latin small f with hook).
const mojibakeArtifact = "ƒ"

// Repair turns the raw bytes of a statement file into text the structural
// parser accepts. Decoding is best effort and never fails: undecodable
// bytes are replaced, the known mojibake artifact is stripped, and the
// institution tag pairs are rewritten to the fixed placeholder.
func Repair(raw []byte) string {
	content := strings.ToValidUTF8(string(raw), string(utf8Replacement))
	content = strings.ReplaceAll(content, mojibakeArtifact, "")
	content = orgTagRe.ReplaceAllString(content, "<ORG>"+PlaceholderInstitution+"</ORG>")
	content = fidTagRe.ReplaceAllString(content, "<FID>"+PlaceholderInstitution+"</FID>")
	return content
}

const utf8Replacement = '�'

// RepairMemo recovers a double-encoded memo: the text reads as if Latin-1
// bytes had been stored through a second, wider decode. Re-encoding through
// Latin-1 (dropping runes that never fit) and re-reading the result as
// UTF-8 (dropping bytes that still fail) restores the intended text.
func RepairMemo(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			buf = append(buf, b)
		}
	}
	return strings.ToValidUTF8(string(buf), "")
}
