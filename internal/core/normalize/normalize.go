// Package normalize folds text for matching and cleans user submitted text for storage
//
// Fold pipeline
//  1. drop invalid UTF-8
//  2. NFKD so accents and Arabic hamza/harakat become separate marks
//  3. strip nonspacing marks, format chars, and tatweel
//  4. Unicode case folding, fullwidth to ASCII
//  5. a few Arabic letter variants to their common form
//  6. NFC and single spaces
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const tatweel = 'ـ'

// transformer chains are stateful; pool them so Fold is safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.Predicate(func(r rune) bool {
				return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Cf, r) || r == tatweel
			})),
			cases.Fold(),
			width.Fold,
			runes.Map(foldArabic),
			norm.NFC,
		)
	},
}

// foldArabic maps letter variants that Iraqi spellings use interchangeably
func foldArabic(r rune) rune {
	switch r {
	case 'ى': // alef maksura
		return 'ي'
	case 'ة': // teh marbuta
		return 'ه'
	case 'ک': // keheh
		return 'ك'
	case 'ی': // farsi yeh
		return 'ي'
	}
	return r
}

// Fold returns the match key for s. Beyond case it folds width, diacritics and Arabic letter
// variants, so it only ever adds matches over plain case folding
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Contains reports whether needle occurs in haystack after folding both
// an empty or blank needle matches everything
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// Sanitize drops invalid UTF-8, C0 controls other than \n \r \t, DEL, and C1 controls
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return r
		case r < 0x20, r == 0x7F, r >= 0x80 && r <= 0x9F:
			return -1
		}
		return r
	}, s)
}

// Clean prepares free text for storage: Sanitize, then collapse whitespace runs.
// Runs containing a newline become one newline, others one space; edges are trimmed
func Clean(s string) string {
	s = Sanitize(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		if inWS && b.Len() > 0 {
			if sawNL {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inWS, sawNL = false, false
		b.WriteRune(r)
	}
	return b.String()
}
