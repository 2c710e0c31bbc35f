package sorgu

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type temizlemeKurali struct {
	re   *regexp.Regexp
	repl string
}

// Reklam/iletişim kalıpları; sıra önemli, her kural bir öncekinin çıktısına uygulanır.
// (?i) basit case folding ile İ ve ı harflerini i ile eşleştirmez, bu yüzden
// i harfleri açıkça [iıİ] olarak yazılır.
var reklamKurallari = []temizlemeKurali{
	{re: regexp.MustCompile(`(?i)kah[iıİ]n`)},
	{re: regexp.MustCompile(`(?i)sah[iıİ]b[iıİ]nden`)},
	{re: regexp.MustCompile(`(?i)n[.\s\p{Z}]*a[.\s\p{Z}]*b[.\s\p{Z}]*[iıİ][.\s\p{Z}]*s[.\s\p{Z}]*y[.\s\p{Z}]*s[.\s\p{Z}]*t[.\s\p{Z}]*e[.\s\p{Z}]*m`)},
	{re: regexp.MustCompile(`(?i)telegram`)},
	{re: regexp.MustCompile(`(?i)https?://[^\s\p{Z}]+`)},
	{re: regexp.MustCompile(`(?i)@[^\s\p{Z}]+`)},
}

// Sanitize strips advertising and contact artifacts from an upstream text field.
// Non-string values are returned unchanged.
func Sanitize(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return sanitizeString(s)
}

// sanitizeString keeps the input bytes as they are unless an ad is removed.
// Decomposed text (e.g. "KAHI\u0307N") is only rewritten to NFC when that is
// what makes a pattern match.
func sanitizeString(s string) string {
	out, hit := stripAds(s)
	if !hit && !norm.NFC.IsNormalString(s) {
		if n, nhit := stripAds(norm.NFC.String(s)); nhit {
			out = n
		}
	}
	return strings.TrimSpace(out)
}

func stripAds(s string) (string, bool) {
	hit := false
	for _, k := range reklamKurallari {
		if k.re.MatchString(s) {
			hit = true
			s = k.re.ReplaceAllLiteralString(s, k.repl)
		}
	}
	return s, hit
}
