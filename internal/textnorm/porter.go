// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package textnorm

import (
	"strings"
	"unicode/utf8"
)

// irregular maps whole words to fixed stems before any suffix rule runs.
var irregular = map[string]string{
	"sky":      "sky",
	"skies":    "sky",
	"dying":    "die",
	"lying":    "lie",
	"tying":    "tie",
	"news":     "news",
	"innings":  "inning",
	"inning":   "inning",
	"outings":  "outing",
	"outing":   "outing",
	"cannings": "canning",
	"canning":  "canning",
	"howe":     "howe",
	"proceed":  "proceed",
	"exceed":   "exceed",
	"succeed":  "succeed",
}

// rule replaces suffix with repl when cond accepts the remaining stem.
// A nil cond always accepts.
type rule struct {
	suffix string
	repl   string
	cond   func(stem string) bool
}

// StemWord reduces a single lowercase word to its Porter stem, including
// the irregular-form table and the extra suffix rules (-ies/-ied on four
// letter words, -fulli, -lessli, -logi) that the common NLP toolkits apply
// on top of the 1980 algorithm.
func StemWord(word string) string {
	if s, ok := irregular[word]; ok {
		return s
	}
	if utf8.RuneCountInString(word) <= 2 {
		return word
	}

	w := step1a(word)
	w = step1b(w)
	w = step1c(w)
	w = step2(w)
	w = step3(w)
	w = step4(w)
	w = step5a(w)
	return step5b(w)
}

// consonants classifies every rune of w. y is a consonant at the start of
// a word or after a vowel.
func consonants(w string) []bool {
	rs := []rune(w)
	out := make([]bool, len(rs))
	for i, r := range rs {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			out[i] = false
		case 'y':
			out[i] = i == 0 || !out[i-1]
		default:
			out[i] = true
		}
	}
	return out
}

// measure counts vowel-consonant transitions: a stem of the form
// [C](VC){m}[V] has measure m.
func measure(stem string) int {
	c := consonants(stem)
	n := 0
	for i := 1; i < len(c); i++ {
		if !c[i-1] && c[i] {
			n++
		}
	}
	return n
}

func positiveMeasure(stem string) bool { return measure(stem) > 0 }

func measureAboveOne(stem string) bool { return measure(stem) > 1 }

func containsVowel(stem string) bool {
	for _, c := range consonants(stem) {
		if !c {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(w string) bool {
	rs := []rune(w)
	n := len(rs)
	return n >= 2 && rs[n-1] == rs[n-2] && consonants(w)[n-1]
}

// endsCVC reports consonant-vowel-consonant endings whose last letter is
// not w, x or y, and two letter vowel-consonant words such as "ow".
func endsCVC(w string) bool {
	rs := []rune(w)
	c := consonants(w)
	n := len(rs)
	if n >= 3 && c[n-3] && !c[n-2] && c[n-1] {
		switch rs[n-1] {
		case 'w', 'x', 'y':
		default:
			return true
		}
	}
	return n == 2 && !c[0] && c[1]
}

// applyRules fires the first rule whose suffix matches. A matching rule
// whose condition fails stops the list with w unchanged.
func applyRules(w string, rules []rule) string {
	for _, r := range rules {
		if !strings.HasSuffix(w, r.suffix) {
			continue
		}
		stem := w[:len(w)-len(r.suffix)]
		if r.cond == nil || r.cond(stem) {
			return stem + r.repl
		}
		return w
	}
	return w
}

// step1a removes plurals.
//
//	caresses -> caress    ponies -> poni    ties -> tie    cats -> cat
func step1a(w string) string {
	if strings.HasSuffix(w, "ies") && utf8.RuneCountInString(w) == 4 {
		return strings.TrimSuffix(w, "ies") + "ie"
	}
	return applyRules(w, []rule{
		{"sses", "ss", nil},
		{"ies", "i", nil},
		{"ss", "ss", nil},
		{"s", "", nil},
	})
}

// step1b removes -ed and -ing and tidies the stem left behind.
//
//	agreed -> agree    plastered -> plaster    hopping -> hop    filing -> file
func step1b(w string) string {
	if strings.HasSuffix(w, "ied") {
		if utf8.RuneCountInString(w) == 4 {
			return strings.TrimSuffix(w, "ied") + "ie"
		}
		return strings.TrimSuffix(w, "ied") + "i"
	}

	if strings.HasSuffix(w, "eed") {
		stem := strings.TrimSuffix(w, "eed")
		if measure(stem) > 0 {
			return stem + "ee"
		}
		return w
	}

	stem, ok := "", false
	for _, suffix := range []string{"ed", "ing"} {
		if strings.HasSuffix(w, suffix) {
			if s := strings.TrimSuffix(w, suffix); containsVowel(s) {
				stem, ok = s, true
				break
			}
		}
	}
	if !ok {
		return w
	}

	switch {
	case strings.HasSuffix(stem, "at"), strings.HasSuffix(stem, "bl"), strings.HasSuffix(stem, "iz"):
		return stem + "e"
	case endsDoubleConsonant(stem):
		rs := []rune(stem)
		switch rs[len(rs)-1] {
		case 'l', 's', 'z':
			return stem
		}
		return string(rs[:len(rs)-1])
	case measure(stem) == 1 && endsCVC(stem):
		return stem + "e"
	}
	return stem
}

// step1c turns a final y into i after a consonant, unless the stem is a
// single letter: happy -> happi, but play and boy keep their y.
func step1c(w string) string {
	if !strings.HasSuffix(w, "y") {
		return w
	}
	stem := strings.TrimSuffix(w, "y")
	c := consonants(stem)
	if len(c) > 1 && c[len(c)-1] {
		return stem + "i"
	}
	return w
}

// step2 maps double suffixes to single ones.
func step2(w string) string {
	// -alli is tried first and the result goes through step2 again.
	if strings.HasSuffix(w, "alli") && positiveMeasure(strings.TrimSuffix(w, "alli")) {
		return step2(strings.TrimSuffix(w, "alli") + "al")
	}

	return applyRules(w, []rule{
		{"ational", "ate", positiveMeasure},
		{"tional", "tion", positiveMeasure},
		{"enci", "ence", positiveMeasure},
		{"anci", "ance", positiveMeasure},
		{"izer", "ize", positiveMeasure},
		{"bli", "ble", positiveMeasure},
		{"alli", "al", positiveMeasure},
		{"entli", "ent", positiveMeasure},
		{"eli", "e", positiveMeasure},
		{"ousli", "ous", positiveMeasure},
		{"ization", "ize", positiveMeasure},
		{"ation", "ate", positiveMeasure},
		{"ator", "ate", positiveMeasure},
		{"alism", "al", positiveMeasure},
		{"iveness", "ive", positiveMeasure},
		{"fulness", "ful", positiveMeasure},
		{"ousness", "ous", positiveMeasure},
		{"aliti", "al", positiveMeasure},
		{"iviti", "ive", positiveMeasure},
		{"biliti", "ble", positiveMeasure},
		{"fulli", "ful", positiveMeasure},
		{"lessli", "less", positiveMeasure},
		// The l stays with the stem so short stems like geo- and theo- qualify.
		{"logi", "log", func(string) bool { return positiveMeasure(w[:len(w)-3]) }},
	})
}

func step3(w string) string {
	return applyRules(w, []rule{
		{"icate", "ic", positiveMeasure},
		{"ative", "", positiveMeasure},
		{"alize", "al", positiveMeasure},
		{"iciti", "ic", positiveMeasure},
		{"ical", "ic", positiveMeasure},
		{"ful", "", positiveMeasure},
		{"ness", "", positiveMeasure},
	})
}

// step4 strips a final suffix when the stem has measure above one.
func step4(w string) string {
	return applyRules(w, []rule{
		{"al", "", measureAboveOne},
		{"ance", "", measureAboveOne},
		{"ence", "", measureAboveOne},
		{"er", "", measureAboveOne},
		{"ic", "", measureAboveOne},
		{"able", "", measureAboveOne},
		{"ible", "", measureAboveOne},
		{"ant", "", measureAboveOne},
		{"ement", "", measureAboveOne},
		{"ment", "", measureAboveOne},
		{"ent", "", measureAboveOne},
		{"ion", "", func(stem string) bool {
			return measureAboveOne(stem) && (strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "t"))
		}},
		{"ou", "", measureAboveOne},
		{"ism", "", measureAboveOne},
		{"ate", "", measureAboveOne},
		{"iti", "", measureAboveOne},
		{"ous", "", measureAboveOne},
		{"ive", "", measureAboveOne},
		{"ize", "", measureAboveOne},
	})
}

// step5a drops a final e: probate -> probat, but rate keeps it.
func step5a(w string) string {
	if !strings.HasSuffix(w, "e") {
		return w
	}
	stem := strings.TrimSuffix(w, "e")
	m := measure(stem)
	if m > 1 || (m == 1 && !endsCVC(stem)) {
		return stem
	}
	return w
}

// step5b reduces -ll to -l on long stems: controll -> control.
func step5b(w string) string {
	if strings.HasSuffix(w, "ll") && measure(strings.TrimSuffix(w, "l")) > 1 {
		return strings.TrimSuffix(w, "l")
	}
	return w
}
